package api

import (
	"fmt"
	"net/http"

	"github.com/okian/cupline/internal/domain/model"
	"github.com/okian/cupline/internal/domain/types"
)

// BenchmarkHandler serves the active benchmark table.
type BenchmarkHandler struct {
	deps Dependencies
}

// NewBenchmarkHandler creates a new benchmark handler.
func NewBenchmarkHandler(deps Dependencies) *BenchmarkHandler {
	return &BenchmarkHandler{deps: deps}
}

// HandleList handles GET /benchmarks.
func (h *BenchmarkHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	store := h.deps.Benchmarks()
	if err := store.Available(); err != nil {
		writeDomainError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.BenchmarkEntries(store))
}

// HandleGet handles GET /benchmarks/{role}.
func (h *BenchmarkHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("role")
	rl, ok := model.ParseRole(name)
	if !ok {
		writeDomainError(r.Context(), w, fmt.Errorf("%w: %q", ErrUnknownRole, name))
		return
	}
	b, err := h.deps.Benchmark(r.Context(), rl)
	if err != nil {
		writeDomainError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.BenchmarkEntry{Role: rl, Benchmark: b})
}
