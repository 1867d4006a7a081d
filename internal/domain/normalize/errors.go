package normalize

import "errors"

// Sentinel error kinds for this package.
var (
	// ErrInsufficientSample marks players below the minimum games threshold.
	// Callers filter these out; it is not surfaced to end users.
	ErrInsufficientSample = errors.New("insufficient sample")
	// ErrInvalidMetricInput marks NaN, negative or out-of-range inputs.
	ErrInvalidMetricInput = errors.New("invalid metric input")
	// ErrUnknownIceTimeUnit is returned when parsing an unsupported unit name.
	ErrUnknownIceTimeUnit = errors.New("unknown ice time unit")
)
