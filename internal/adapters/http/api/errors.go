package api

import (
	"errors"
	"net/http"

	"github.com/okian/cupline/internal/adapters/repository"
	service "github.com/okian/cupline/internal/app"
	"github.com/okian/cupline/internal/domain/benchmark"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnknownRole  = errors.New("unknown role")
	ErrBodyTooLarge = errors.New("request body too large")
)

// Error codes returned in errorResponse.Code.
const (
	codeBadRequest            = "bad_request"
	codeNotFound              = "not_found"
	codeRosterNotFound        = "roster_not_found"
	codeBenchmarksUnavailable = "benchmarks_unavailable"
	codeStatsUnavailable      = "stats_unavailable"
	codeInternal              = "internal_error"
)

// classify maps a domain error to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, benchmark.ErrBenchmarkUnavailable):
		return http.StatusServiceUnavailable, codeBenchmarksUnavailable
	case errors.Is(err, service.ErrNoStatSource):
		return http.StatusServiceUnavailable, codeStatsUnavailable
	case errors.Is(err, repository.ErrRosterNotFound):
		return http.StatusNotFound, codeRosterNotFound
	case errors.Is(err, benchmark.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrUnknownRole),
		errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, codeBadRequest
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
