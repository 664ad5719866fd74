// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/coinrng/internal/adapters/http/middleware"
	"github.com/okian/coinrng/internal/domain/coin"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CoinDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	metricsHandler http.Handler
	statsHandler   *StatsHandler
	coinHandler    *CoinHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		metricsHandler: NewMetricsHandler(),
		statsHandler:   NewStatsHandler(deps),
		coinHandler:    NewCoinHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /rng/coin", middleware.Metrics(s.coinHandler.HandleFlip, "rng_coin"))
	mux.HandleFunc("GET /rng/coin/{"+flipsParam+"}", middleware.Metrics(s.coinHandler.HandleFlips, "rng_coin_flips"))
	mux.HandleFunc("GET /healthz", middleware.Metrics(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", middleware.Metrics(s.statsHandler.HandleStats, "stats"))
	mux.Handle("GET /metrics", s.metricsHandler)
}

// flipResponse is the body of GET /rng/coin.
type flipResponse struct {
	CoinFlip coin.Side `json:"coin-flip"`
}

// flipsResponse is the body of GET /rng/coin/{flips}.
type flipsResponse struct {
	CoinFlips []coin.Side `json:"coin-flips"`
}

// errorResponse is the body for non-validation failures.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int) {
	writeJSON(w, status, errorResponse{Detail: http.StatusText(status)})
}
