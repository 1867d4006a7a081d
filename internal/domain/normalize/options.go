package normalize

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithMinGamesPlayed sets the minimum games a player needs to be normalized.
func WithMinGamesPlayed(n int) Option {
	return func(s *Normalizer) {
		if n > 0 {
			s.minGamesPlayed = n
		}
	}
}

// WithIceTimeUnit sets how PlayerSeason.IceTime is interpreted.
func WithIceTimeUnit(u IceTimeUnit) Option {
	return func(s *Normalizer) {
		if u == SeasonSeconds || u == PerGameMinutes {
			s.iceTimeUnit = u
		}
	}
}

// WithDefaultSalary sets the cap hit used when contract data is absent.
func WithDefaultSalary(millions float64) Option {
	return func(s *Normalizer) {
		if millions >= 0 {
			s.defaultSalary = millions
		}
	}
}
