// Package http exposes the dice game as a JSON API. The caller's account is
// taken from the X-Account-ID header set by a trusted upstream.
package http

import (
	"net/http"

	"github.com/KirkDiggler/fairdice/internal/services/roll"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Config holds configuration for the HTTP API
type Config struct {
	RollService roll.Service
	Logger      *zap.Logger

	// Gatherer backs GET /metrics; the route is omitted when nil
	Gatherer prometheus.Gatherer
}

// NewRouter builds the API handler.
//
// Routes:
//
//	GET  /healthz
//	GET  /metrics
//	GET  /balance
//	POST /commitments
//	GET  /commitments/current
//	POST /rolls
//	GET  /rolls
//	GET  /rolls/{rollID}/verify
func NewRouter(cfg *Config) (http.Handler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RollService == nil {
		return nil, ErrNilRollService
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http")

	h := &Handler{
		service: cfg.RollService,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(WithRequestLogging(logger))
	r.Use(chiMiddleware.Recoverer)

	r.Get("/healthz", h.Health)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	account := r.With(RequireAccount)
	account.Get("/balance", h.GetBalance)
	account.Post("/commitments", h.IssueCommitment)
	account.Get("/commitments/current", h.GetCommitment)
	account.Post("/rolls", h.PlaceRoll)
	account.Get("/rolls", h.ListRolls)

	// Any record can be verified by anyone
	r.Get("/rolls/{rollID}/verify", h.VerifyRoll)

	return r, nil
}
