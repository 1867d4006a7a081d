package scoring

import "errors"

// Sentinel error kinds for this package.
var (
	// ErrInvalidStat marks a stat line with NaN, infinite or negative rates.
	ErrInvalidStat = errors.New("invalid stat line")
)
