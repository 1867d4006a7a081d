// Package worker runs batch work on a bounded set of goroutines.
package worker

import (
	"github.com/okian/cupline/pkg/logger"
)

// Option applies a configuration option to a Pool.
type Option func(*settings)

type settings struct {
	name    string
	workers int
	logger  logger.Logger
}

// WithName sets the pool name for identification and logging.
func WithName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.name = name
		}
	}
}

// WithWorkers sets the maximum number of concurrent workers.
func WithWorkers(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}
