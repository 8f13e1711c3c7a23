package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/jwtauth/v5"
)

// operatorFrom returns the acting operator's name from the access token,
// for paid-by / approved-by stamps.
func operatorFrom(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	operator, _ := claims["operator"].(string)
	return operator
}

func queryInt(r *http.Request, key string) *int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func queryString(r *http.Request, key string) *string {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	return &raw
}

func queryIntDefault(r *http.Request, key string, def int) int {
	if v := queryInt(r, key); v != nil {
		return *v
	}
	return def
}

// parsePeriod reads the month/year pair every aggregate endpoint takes.
func parsePeriod(r *http.Request) (month, year int, ok bool) {
	m := queryInt(r, "month")
	y := queryInt(r, "year")
	if m == nil || y == nil {
		return 0, 0, false
	}
	return *m, *y, true
}
