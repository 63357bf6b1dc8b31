package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aruna-2201/zidio-prj/internal/auth"
	"github.com/aruna-2201/zidio-prj/internal/config"
	"github.com/aruna-2201/zidio-prj/internal/http/handlers"
	"github.com/aruna-2201/zidio-prj/internal/metrics"
	"github.com/aruna-2201/zidio-prj/internal/middleware"
	"github.com/aruna-2201/zidio-prj/internal/models"
	"github.com/aruna-2201/zidio-prj/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires middleware, the route policy table, and handlers into a ready
// server. Route policy: auth, public, health, and metrics endpoints are open;
// profile routes require the student role; job creation requires the
// recruiter role; every other /api route requires an authenticated principal.
func New(cfg config.Config, store storage.Store, logger *slog.Logger) *Server {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	authSvc := auth.NewService(store, tokens, logger)
	m := metrics.New()

	authHandler := handlers.NewAuthHandler(authSvc, logger)
	studentHandler := handlers.NewStudentHandler(store, logger)
	jobHandler := handlers.NewJobHandler(store, logger)
	appHandler := handlers.NewApplicationHandler(store, logger)
	health := handlers.NewHealthHandler(time.Now())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(m.Instrument)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Authenticate(tokens, store, logger, time.Now))

	r.Get("/health", health.Handle)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", authHandler.Register)

		r.Route("/profile", func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleStudent))
			studentHandler.Register(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/jobs", jobHandler.HandleList)
			r.Get("/jobs/{id}", jobHandler.HandleGet)
			r.With(middleware.RequireRole(models.RoleRecruiter)).
				Post("/jobs", jobHandler.HandleCreate)

			r.Route("/applications", appHandler.Register)
		})
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Handler exposes the root handler for tests.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
