package http

import (
	"log/slog"
	"os"

	"github.com/classtrack/center-backend-go/internal/config"
	"github.com/classtrack/center-backend-go/internal/handler/http/middleware"
	"github.com/classtrack/center-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	studentHandler StudentHandler,
	teacherHandler TeacherHandler,
	classHandler ClassHandler,
	sessionHandler SessionHandler,
	invoiceHandler InvoiceHandler,
	salaryHandler SalaryHandler,
	reportHandler ReportHandler,
	expenseHandler ExpenseHandler,
	financeHandler FinanceHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "center-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

		r.Route("/students", func(r chi.Router) {
			r.Get("/", studentHandler.List)
			r.Post("/", studentHandler.Create)
			r.Get("/{id}", studentHandler.Get)
			r.Put("/{id}", studentHandler.Update)
			r.Delete("/{id}", studentHandler.Delete)
		})

		r.Route("/teachers", func(r chi.Router) {
			r.Get("/", teacherHandler.List)
			r.Post("/", teacherHandler.Create)
			r.Get("/{id}", teacherHandler.Get)
			r.Put("/{id}", teacherHandler.Update)
			r.Delete("/{id}", teacherHandler.Delete)
		})

		r.Route("/classes", func(r chi.Router) {
			r.Get("/", classHandler.List)
			r.Post("/", classHandler.Create)
			r.Get("/{id}", classHandler.Get)
			r.Put("/{id}", classHandler.Update)
			r.Delete("/{id}", classHandler.Delete)
			r.Post("/{id}/enrollments", classHandler.Enroll)
			r.Delete("/{id}/enrollments/{studentID}", classHandler.Unenroll)
		})

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", classHandler.ListCourses)
			r.Post("/", classHandler.CreateCourse)
			r.Put("/{id}", classHandler.UpdateCourse)
			r.Delete("/{id}", classHandler.DeleteCourse)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessionHandler.List)
			r.Post("/", sessionHandler.Create)
			r.Get("/{id}", sessionHandler.Get)
			r.Put("/{id}", sessionHandler.Update)
			r.Delete("/{id}", sessionHandler.Delete)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", invoiceHandler.List)
			r.Post("/generate", invoiceHandler.Generate)
			r.Get("/summary", invoiceHandler.GetSummary)
			r.Get("/{id}", invoiceHandler.Get)
			r.Put("/{id}", invoiceHandler.Update)

			// Money moves admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/mark-paid", invoiceHandler.MarkPaid)
				r.Post("/bulk-delete", invoiceHandler.BulkDelete)
				r.Delete("/{id}", invoiceHandler.Delete)
			})
		})

		r.Get("/students/{studentID}/outstanding", invoiceHandler.GetOutstanding)
		r.Get("/students/{studentID}/report", reportHandler.GetMerged)

		r.Route("/salaries", func(r chi.Router) {
			r.Get("/", salaryHandler.List)
			r.Post("/generate", salaryHandler.Generate)
			r.Get("/{id}", salaryHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/mark-paid", salaryHandler.MarkPaid)
				r.Delete("/{id}", salaryHandler.Delete)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", reportHandler.List)
			r.Post("/generate", reportHandler.Generate)
			r.Get("/{id}", reportHandler.Get)
			r.Put("/{id}/comment", reportHandler.UpdateComment)
			r.Post("/{id}/submit", reportHandler.Submit)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/{id}/approve", reportHandler.Approve)
				r.Post("/{id}/reject", reportHandler.Reject)
				r.Post("/approve-batch", reportHandler.ApproveBatch)
			})
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", expenseHandler.List)
			r.Post("/", expenseHandler.Create)
			r.Get("/{id}", expenseHandler.Get)
			r.Put("/{id}", expenseHandler.Update)
			r.Delete("/{id}", expenseHandler.Delete)
		})

		r.Route("/finance", func(r chi.Router) {
			r.Use(middleware.AdminOnly)
			r.Get("/summary", financeHandler.GetSummary)
			r.Get("/summary/export", financeHandler.ExportSummary)
		})
	})

	return r
}
