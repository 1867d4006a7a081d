package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoStatSource   = errors.New("no stat source configured")
	ErrInvalidRequest = errors.New("invalid request")
)
