// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/cupline/internal/domain/benchmark"
	"github.com/okian/cupline/internal/domain/model"
	"github.com/okian/cupline/internal/domain/scoring"
	"github.com/okian/cupline/internal/domain/types"
	"github.com/okian/cupline/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Benchmarks returns the active benchmark snapshot; nil when none is loaded.
	Benchmarks() *benchmark.Store
	Benchmark(ctx context.Context, r model.Role) (benchmark.RoleBenchmark, error)

	EvaluatePlayers(ctx context.Context, teamID, season string, players []model.PlayerSeason) (*types.RosterReport, error)
	TeamWeaknesses(ctx context.Context, teamID, season string) (*types.RosterReport, error)
	WeakLinks(ctx context.Context, teamID, season string) ([]scoring.WeaknessScore, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	benchmarkHandler *BenchmarkHandler
	rosterHandler    *RosterHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(statsProvider),
		benchmarkHandler: NewBenchmarkHandler(deps),
		rosterHandler:    NewRosterHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("GET /metrics", MetricsHandler())
	mux.HandleFunc("GET /benchmarks", MetricsMiddleware(s.benchmarkHandler.HandleList, "benchmarks"))
	mux.HandleFunc("GET /benchmarks/{role}", MetricsMiddleware(s.benchmarkHandler.HandleGet, "benchmark"))
	mux.HandleFunc("POST /rosters/evaluate", MetricsMiddleware(s.rosterHandler.HandleEvaluate, "rosters_evaluate"))
	mux.HandleFunc("GET /teams/{team}/seasons/{season}/weaknesses",
		MetricsMiddleware(s.rosterHandler.HandleWeaknesses, "team_weaknesses"))
	mux.HandleFunc("GET /teams/{team}/seasons/{season}/weak-links",
		MetricsMiddleware(s.rosterHandler.HandleWeakLinks, "team_weak_links"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError maps err and logs server-side failures.
func writeDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		logger.Get().Named("api").Error(ctx, "request failed",
			logger.Int("status", status),
			logger.String("code", code),
			logger.Error(err),
		)
	}
	writeError(w, status, code, err)
}
