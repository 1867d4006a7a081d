package benchmark

import "errors"

// Sentinel error kinds for this package.
var (
	// ErrNotFound means the store has no benchmark for the requested role.
	ErrNotFound = errors.New("benchmark not found")
	// ErrBenchmarkUnavailable means no usable benchmark data exists at all:
	// the store failed to load, was never built, or holds zero roles.
	ErrBenchmarkUnavailable = errors.New("benchmarks unavailable")
	// ErrInvalidBenchmark marks a malformed benchmark record.
	ErrInvalidBenchmark = errors.New("invalid benchmark")
)
