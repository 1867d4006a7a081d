package service

import (
	"github.com/okian/cupline/internal/domain/benchmark"
	"github.com/okian/cupline/internal/domain/model"
	"github.com/okian/cupline/internal/domain/normalize"
	"github.com/okian/cupline/internal/domain/role"
	"github.com/okian/cupline/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStatSource sets where rosters and the championship corpus are read from.
func WithStatSource(src StatSource) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithBenchmarkRepository sets where benchmark tables are loaded from and saved to.
func WithBenchmarkRepository(repo BenchmarkRepository) Option {
	return func(s *Service) {
		if repo != nil {
			s.repo = repo
		}
	}
}

// WithStore installs an initial benchmark snapshot, skipping the repository load.
func WithStore(store *benchmark.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.initial = store
		}
	}
}

// WithMinGamesPlayed sets the sample threshold.
func WithMinGamesPlayed(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.normalizeOpts = append(s.normalizeOpts, normalize.WithMinGamesPlayed(n))
		}
	}
}

// WithDefaultSalary sets the cap hit imputed for players without one.
func WithDefaultSalary(millions float64) Option {
	return func(s *Service) {
		s.normalizeOpts = append(s.normalizeOpts, normalize.WithDefaultSalary(millions))
	}
}

// WithIceTimeUnit sets the unit raw ice time arrives in.
func WithIceTimeUnit(u normalize.IceTimeUnit) Option {
	return func(s *Service) {
		s.normalizeOpts = append(s.normalizeOpts, normalize.WithIceTimeUnit(u))
	}
}

// WithBuilderStrategy sets the classifier used to bucket the historical corpus.
func WithBuilderStrategy(st role.Strategy) Option {
	return func(s *Service) {
		if st != "" {
			s.builderStrategy = st
		}
	}
}

// WithScorerStrategy sets the classifier that picks each player's comparison benchmark.
func WithScorerStrategy(st role.Strategy) Option {
	return func(s *Service) {
		if st != "" {
			s.scorerStrategy = st
		}
	}
}

// WithPositionWeights overrides ranking multipliers per role.
func WithPositionWeights(weights map[model.Role]float64) Option {
	return func(s *Service) {
		if len(weights) > 0 {
			s.positionWeights = weights
		}
	}
}
