// Package api serves recommendations and feedback over HTTP.
//
// Routes:
//
//	POST /api/recommendations                 recommend tools for each task
//	POST /api/favorites                       favorite or unfavorite a tool
//	POST /api/ratings                         rate a tool from 1 to 5
//	GET  /api/sessions/{sessionID}/interactions
//	GET  /healthz
//	GET  /metrics
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/picko-ai/picko/core"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recommender answers a batch of tasks, one result per task in order.
// recommend.Recommender satisfies it.
type Recommender interface {
	RecommendBatch(ctx context.Context, tasks []string) [][]*core.Tool
}

// Recorder saves user feedback. feedback.Recorder satisfies it.
type Recorder interface {
	SaveFavorite(ctx context.Context, sessionID string, toolID core.ID, toolName string, favorited bool) (*core.Interaction, error)
	SaveRating(ctx context.Context, sessionID string, toolID core.ID, toolName string, rating int) (*core.Interaction, error)
	Interactions(ctx context.Context, sessionID string) ([]*core.Interaction, error)
}

// Pinger reports store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the HTTP handlers and their collaborators.
type Server struct {
	recommender       Recommender
	recorder          Recorder
	pinger            Pinger
	validate          *validator.Validate
	requestTimeout    time.Duration
	corsOrigins       []string
	rateLimitRequests int
	rateLimitWindow   time.Duration
	logger            *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "api")
		return nil
	}
}

// WithPinger sets the health check target of /healthz.
func WithPinger(p Pinger) Option {
	return func(s *Server) error {
		s.pinger = p
		return nil
	}
}

// WithRequestTimeout bounds the work done for each /api request.
// Default: 60s
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) error {
		if d <= 0 {
			return errors.New("request timeout must be positive")
		}
		s.requestTimeout = d
		return nil
	}
}

// WithCORSOrigins allows browser calls from origins. None are allowed by default.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) error {
		s.corsOrigins = origins
		return nil
	}
}

// WithRateLimit limits each client IP to requests per window. Zero disables limiting.
func WithRateLimit(requests int, window time.Duration) Option {
	return func(s *Server) error {
		if requests < 0 || (requests > 0 && window <= 0) {
			return errors.New("rate limit needs a non-negative count and a positive window")
		}
		s.rateLimitRequests = requests
		s.rateLimitWindow = window
		return nil
	}
}

// NewServer creates a server.
func NewServer(recommender Recommender, recorder Recorder, opts ...Option) (*Server, error) {
	if recommender == nil {
		return nil, ErrRecommenderRequired
	}
	if recorder == nil {
		return nil, ErrRecorderRequired
	}

	s := &Server{
		recommender:    recommender,
		recorder:       recorder,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		requestTimeout: 60 * time.Second,
		logger:         slog.Default().With("component", "api"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.cors())
	r.Use(s.recordMetrics)

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(s.rateLimit())
		r.Use(s.timeout)

		r.Post("/recommendations", s.recommend)
		r.Post("/favorites", s.favorite)
		r.Post("/ratings", s.rate)
		r.Get("/sessions/{sessionID}/interactions", s.interactions)
	})

	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully
// within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
