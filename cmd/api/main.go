package main

import (
	"fmt"
	"net/http"

	"github.com/classtrack/center-backend-go/internal/config"
	appHTTP "github.com/classtrack/center-backend-go/internal/handler/http"
	"github.com/classtrack/center-backend-go/internal/pkg/database"
	"github.com/classtrack/center-backend-go/internal/pkg/jwt"
	"github.com/classtrack/center-backend-go/internal/repository/postgresql"
	expenseService "github.com/classtrack/center-backend-go/internal/service/expense"
	financeService "github.com/classtrack/center-backend-go/internal/service/finance"
	invoiceService "github.com/classtrack/center-backend-go/internal/service/invoice"
	"github.com/classtrack/center-backend-go/internal/service/pricing"
	reportService "github.com/classtrack/center-backend-go/internal/service/report"
	"github.com/classtrack/center-backend-go/internal/service/roster"
	salaryService "github.com/classtrack/center-backend-go/internal/service/salary"
	sessionService "github.com/classtrack/center-backend-go/internal/service/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), int32(cfg.Database.MaxConns))
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	studentRepo := postgresql.NewStudentRepository(db)
	teacherRepo := postgresql.NewTeacherRepository(db)
	classRepo := postgresql.NewClassRepository(db)
	courseRepo := postgresql.NewCourseRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	invoiceRepo := postgresql.NewInvoiceRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)
	financeRepo := postgresql.NewFinanceRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration)
	resolver := pricing.NewResolver(nil, pricing.Policy(cfg.Billing.PricePolicy))

	studentSvc := roster.NewStudentService(studentRepo)
	teacherSvc := roster.NewTeacherService(teacherRepo)
	classSvc := roster.NewClassService(classRepo, courseRepo, studentRepo)
	sessionSvc := sessionService.NewSessionService(sessionRepo, classRepo)
	invoiceSvc := invoiceService.NewInvoiceService(db, invoiceRepo, sessionRepo, classRepo, courseRepo, resolver, cfg.Billing.BankInfo)
	salarySvc := salaryService.NewSalaryService(salaryRepo, sessionRepo, classRepo)
	reportSvc := reportService.NewReportService(reportRepo, sessionRepo, classRepo)
	expenseSvc := expenseService.NewExpenseService(expenseRepo)
	financeSvc := financeService.NewFinanceService(financeRepo)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		appHTTP.NewStudentHandler(studentSvc),
		appHTTP.NewTeacherHandler(teacherSvc),
		appHTTP.NewClassHandler(classSvc),
		appHTTP.NewSessionHandler(sessionSvc),
		appHTTP.NewInvoiceHandler(invoiceSvc),
		appHTTP.NewSalaryHandler(salarySvc),
		appHTTP.NewReportHandler(reportSvc),
		appHTTP.NewExpenseHandler(expenseSvc),
		appHTTP.NewFinanceHandler(financeSvc),
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
