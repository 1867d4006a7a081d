package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/cupline/pkg/metrics"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	Stats() map[string]any
	// Ready returns nil when benchmarks are loaded.
	Ready() error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	stats StatsProvider
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(stats StatsProvider) *HealthHandler {
	return &HealthHandler{stats: stats}
}

type healthResponse struct {
	Status string         `json:"status"`
	Reason string         `json:"reason,omitempty"`
	Stats  map[string]any `json:"stats,omitempty"`
}

// HandleHealth handles GET /healthz. The process is live whenever it answers;
// status is "degraded" while no benchmark table is loaded.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{Status: "ok"}
	if h.stats != nil {
		resp.Stats = h.stats.Stats()
		if err := h.stats.Ready(); err != nil {
			resp.Status = "degraded"
			resp.Reason = err.Error()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// MetricsHandler serves the custom metrics registry.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
