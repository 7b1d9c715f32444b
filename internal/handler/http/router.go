package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/heakbomb/storeworks-backend-go/internal/config"
	"github.com/heakbomb/storeworks-backend-go/internal/handler/http/middleware"
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	shiftHandler ShiftHandler,
	attendanceHandler AttendanceHandler,
	wageHandler WageHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "storeworks"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
			r.Use(middleware.StoreContext)

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.List)
				r.Post("/", shiftHandler.Create)
				r.Post("/bulk", shiftHandler.BulkCreate)
				r.Delete("/range", shiftHandler.DeleteRange)
				r.Put("/{shiftID}", shiftHandler.Update)
				r.Delete("/{shiftID}", shiftHandler.Delete)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/punch", attendanceHandler.RecordPunch)
				r.Get("/status", attendanceHandler.ShiftStatus)
				r.Get("/recent", attendanceHandler.ListRecent)
				r.Get("/day", attendanceHandler.ListDay)
			})

			r.Route("/wages", func(r chi.Router) {
				r.Get("/", wageHandler.GetAll)
				r.Get("/{employeeID}", wageHandler.Get)
				r.Put("/{employeeID}", wageHandler.Upsert)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/calculate", payrollHandler.Calculate)
				r.Post("/save", payrollHandler.SaveHistory)
				r.Get("/runs/{yearMonth}", payrollHandler.RunStatus)
				r.Get("/history", payrollHandler.HistorySummary)
				r.Get("/history/{yearMonth}", payrollHandler.HistoryDetail)
				r.Patch("/records/{payrollID}/status", payrollHandler.UpdateRecordStatus)
			})
		})
	})
	return r
}
