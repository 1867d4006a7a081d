package worker

import "errors"

// Sentinel kinds for worker errors.
var (
	ErrStopped = errors.New("worker pool stopped")
	ErrNilTask = errors.New("worker task is nil")
)
