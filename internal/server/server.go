// Package server exposes the prediction engine over HTTP and websocket.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/bacbo-predictor/internal/config"
	"github.com/yourusername/bacbo-predictor/internal/session"
)

// Server is the public API server for prediction sessions.
type Server struct {
	cfg      config.ServerConfig
	log      *logrus.Logger
	sessions *session.Manager
	limiter  *rate.Limiter
	server   *http.Server
}

// New creates an API server over the given session manager.
func New(cfg config.ServerConfig, log *logrus.Logger, sessions *session.Manager) *Server {
	limit := rate.Limit(cfg.RateLimitPerSecond)
	if cfg.RateLimitPerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}

	return &Server{
		cfg:      cfg,
		log:      log,
		sessions: sessions,
		limiter:  rate.NewLimiter(limit, burst),
	}
}

// Routes builds the request multiplexer.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /v1/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /v1/sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("POST /v1/sessions/{id}/outcomes", s.handleRecordOutcome)
	mux.HandleFunc("GET /v1/sessions/{id}/prediction", s.handleGetPrediction)
	mux.HandleFunc("GET /v1/sessions/{id}/stats", s.handleGetStats)
	mux.HandleFunc("POST /v1/sessions/{id}/reset", s.handleResetSession)
	mux.HandleFunc("GET /v1/sessions/{id}/feed", s.handleFeed)

	return mux
}

// Start starts the API server in the background and shuts it down when the
// context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.Routes(),
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.log.WithField("port", s.cfg.Port).Info("API server starting")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.WithError(err).Error("API server error")
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	s.log.Info("API server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
