package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/classtrack/center-backend-go/internal/config"
	"github.com/classtrack/center-backend-go/internal/pkg/jwt"
)

// mktoken mints an access token for a console operator. There is no login
// flow; tokens are handed out by whoever runs the server.
func main() {
	operator := flag.String("operator", "", "operator name embedded in the token")
	admin := flag.Bool("admin", false, "grant admin claims")
	flag.Parse()

	if *operator == "" {
		fmt.Fprintln(os.Stderr, "usage: mktoken -operator <name> [-admin]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration)
	token, expiresAt, err := JWTService.GenerateToken(*operator, *admin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintln(os.Stderr, "expires:", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
