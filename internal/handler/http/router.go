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

	"github.com/workhive-app/workhive-backend-go/internal/handler/http/middleware"
	"github.com/workhive-app/workhive-backend-go/internal/pkg/jwt"
)

func NewRouter(JWTService jwt.Service, shiftHandler ShiftHandler, reportHandler ReportHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workhive-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
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

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/shifts", func(r chi.Router) {
				// Employer only
				r.Group(func(r chi.Router) {
					r.Use(middleware.EmployerOnly)
					r.Post("/", shiftHandler.Schedule)
					r.Post("/generate", shiftHandler.Generate)
					r.Get("/", shiftHandler.List)
					r.Post("/{id}/complete", shiftHandler.MarkComplete)
					r.Patch("/{id}/hours", shiftHandler.UpdateHours)
				})

				// Worker only
				r.Group(func(r chi.Router) {
					r.Use(middleware.WorkerOnly)
					r.Get("/my", shiftHandler.GetMyShifts)
				})

				// Assigned worker, or the owning employer on their behalf.
				r.Post("/{id}/clock-in", shiftHandler.ClockIn)
				r.Post("/{id}/clock-out", shiftHandler.ClockOut)

				r.Get("/{id}", shiftHandler.Get)
			})

			r.Route("/reports", func(r chi.Router) {
				r.With(middleware.EmployerOnly).Get("/management", reportHandler.Management)
				r.With(middleware.WorkerOnly).Get("/my-schedule", reportHandler.MySchedule)
			})
		})
	})
	return r
}
