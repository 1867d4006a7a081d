package role

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnknownRole     = errors.New("unknown role")
	ErrUnknownStrategy = errors.New("unknown classifier strategy")
)
