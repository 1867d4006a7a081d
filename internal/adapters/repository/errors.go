package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrRosterNotFound      = errors.New("roster not found")
	ErrUnsupportedFormat   = errors.New("unsupported benchmark file format")
	ErrInvalidPlayerSeason = errors.New("invalid player season")
)
