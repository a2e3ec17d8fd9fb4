package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/kintai-labs/kintai-backend-go/internal/config"
	"github.com/kintai-labs/kintai-backend-go/internal/handler/http/middleware"
	"github.com/kintai-labs/kintai-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler *AuthHandler,
	employeeHandler *EmployeeHandler,
	attendanceHandler *AttendanceHandler,
	leaveHandler *LeaveHandler,
	reportHandler *ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kintai-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Get("/{id}", employeeHandler.Get)
				r.Put("/{id}/leave-fields", employeeHandler.UpdateLeaveFields)
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Get("/report", attendanceHandler.MonthlyReport)
				r.Post("/import", attendanceHandler.Import)
				r.Put("/{id}", attendanceHandler.Update)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/balances", leaveHandler.AllBalances)
				r.Post("/grants", leaveHandler.CreateGrant)
				r.Post("/usages", leaveHandler.CreateUsage)
				r.Route("/{employeeID}", func(r chi.Router) {
					r.Get("/balance", leaveHandler.Balance)
					r.Get("/ledger", leaveHandler.Ledger)
					r.Get("/usages", leaveHandler.UsageDetails)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/attendances/xlsx", reportHandler.MonthlyReportXLSX)
				r.Get("/leaves/{employeeID}/ledger/xlsx", reportHandler.LeaveLedgerXLSX)
			})
		})
	})

	// Silence favicon noise from browser-initiated downloads.
	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return r
}
