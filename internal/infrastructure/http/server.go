// Package http provides the JSON API server that fronts the panels. One
// chi router, cookie-scoped sessions, panel state kept server-side.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/culinaglass/core/internal/application/panels"
	"github.com/culinaglass/core/internal/infrastructure/config"
	"github.com/culinaglass/core/pkg/healthcheck"
)

// Server is the HTTP front of the application.
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	sessions *SessionStore
	server   *http.Server
}

// NewServer wires the router, session store and handlers. newSet builds
// the per-session panel group.
func NewServer(cfg *config.Config, logger *zap.Logger, newSet func() *panels.Set) *Server {
	s := &Server{
		config:   cfg,
		logger:   logger,
		sessions: NewSessionStore(newSet, cfg.Server.SessionMaxAge, logger),
	}

	health := healthcheck.New(cfg.App.Version)
	health.Register("ai_provider", healthcheck.CheckFunc(func(ctx context.Context) healthcheck.Check {
		if cfg.AI.APIKey == "" && cfg.IsProduction() {
			return healthcheck.Unhealthy("provider API key not configured")
		}
		return healthcheck.Healthy(fmt.Sprintf("model %s", cfg.AI.Model))
	}))
	health.Register("sessions", healthcheck.CheckFunc(func(ctx context.Context) healthcheck.Check {
		return healthcheck.Healthy(fmt.Sprintf("%d active", s.sessions.Len()))
	}))

	handlers := NewHandlers(s.sessions, health, cfg.Server.MaxUploadBytes, logger)
	router := s.setupRouter(handlers)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

func (s *Server) setupRouter(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	// Provider calls dominate request time, so the budget mirrors the
	// write timeout rather than a snappy API default.
	r.Use(chimiddleware.Timeout(s.config.Server.WriteTimeout))
	r.Use(chimiddleware.Compress(5))

	r.Get("/healthz", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/suggestions", h.Suggestions)

		r.Route("/recipes", func(r chi.Router) {
			r.Post("/search", h.Search)
			r.Post("/select", h.SelectRecipe)
			r.Post("/transform", h.Transform)
			r.Post("/nutrition", h.Nutrition)
			r.Post("/recommend", h.Recommend)
		})

		r.Post("/pantry/scan", h.ScanPantry)
		r.Post("/lessons", h.Lesson)

		r.Route("/chat", func(r chi.Router) {
			r.Post("/messages", h.ChatMessage)
			r.Get("/transcript", h.ChatTranscript)
		})
	})

	return r
}

// requestLogger emits one structured line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
		)
	})
}

// Start runs the server until it fails or is shut down.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the session sweep.
func (s *Server) Shutdown(ctx context.Context) error {
	s.sessions.Close()
	return s.server.Shutdown(ctx)
}
