package benchmark

import (
	"errors"

	"github.com/okian/cupline/internal/domain/model"
	"github.com/okian/cupline/internal/domain/normalize"
	"github.com/okian/cupline/internal/domain/role"
)

// Roster is one championship roster of the historical corpus.
type Roster struct {
	Season  string               `yaml:"season" json:"season"`
	TeamID  string               `yaml:"teamId" json:"team_id"`
	Players []model.PlayerSeason `yaml:"players" json:"players"`
}

// Exclusions counts players left out of the buckets, by reason.
type Exclusions struct {
	InsufficientSample int `json:"insufficient_sample"`
	InvalidInput       int `json:"invalid_input"`
	UnknownRole        int `json:"unknown_role"`
}

// Total is the number of excluded players.
func (e Exclusions) Total() int {
	return e.InsufficientSample + e.InvalidInput + e.UnknownRole
}

func (e Exclusions) add(o Exclusions) Exclusions {
	return Exclusions{
		InsufficientSample: e.InsufficientSample + o.InsufficientSample,
		InvalidInput:       e.InvalidInput + o.InvalidInput,
		UnknownRole:        e.UnknownRole + o.UnknownRole,
	}
}

// Buckets holds qualifying players grouped by role. Partial buckets from
// independent shards are combined with Merge; statistics are only computed
// over the fully merged value lists.
type Buckets struct {
	ByRole   map[model.Role][]model.PlayerStat
	Excluded Exclusions
	Rosters  int
	Players  int
}

// Merge concatenates bucket sets in argument order.
func Merge(parts ...Buckets) Buckets {
	out := Buckets{ByRole: make(map[model.Role][]model.PlayerStat)}
	for _, p := range parts {
		for r, stats := range p.ByRole {
			out.ByRole[r] = append(out.ByRole[r], stats...)
		}
		out.Excluded = out.Excluded.add(p.Excluded)
		out.Rosters += p.Rosters
		out.Players += p.Players
	}
	return out
}

// Report describes a finished build.
type Report struct {
	Rosters   int                `json:"rosters"`
	Players   int                `json:"players"`
	Qualified int                `json:"qualified"`
	Excluded  Exclusions         `json:"excluded"`
	Roles     map[model.Role]int `json:"roles"`
}

// BuilderOption applies a configuration option to the Builder.
type BuilderOption func(*Builder)

// WithNormalizer sets the normalizer, which also carries the games threshold.
func WithNormalizer(n *normalize.Normalizer) BuilderOption {
	return func(b *Builder) {
		if n != nil {
			b.normalizer = n
		}
	}
}

// WithClassifier sets the classification strategy used to bucket players.
func WithClassifier(c role.Classifier) BuilderOption {
	return func(b *Builder) {
		if c != nil {
			b.classifier = c
		}
	}
}

// Builder turns historical rosters into a Store. It is stateless between
// calls, so Bucket may run concurrently on different rosters.
type Builder struct {
	normalizer *normalize.Normalizer
	classifier role.Classifier
}

// NewBuilder creates a Builder. Defaults: normalize.New() and the
// performance-only classifier.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		normalizer: normalize.New(),
		classifier: role.MustNew(role.Performance),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Classifier returns the strategy used for bucketing.
func (b *Builder) Classifier() role.Classifier { return b.classifier }

// Bucket normalizes and classifies one roster.
func (b *Builder) Bucket(r Roster) Buckets { //nolint:gocritic // hugeParam
	out := Buckets{ByRole: make(map[model.Role][]model.PlayerStat), Rosters: 1}
	for i := range r.Players {
		out.Players++
		stat, err := b.normalizer.Normalize(r.Players[i])
		switch {
		case errors.Is(err, normalize.ErrInsufficientSample):
			out.Excluded.InsufficientSample++
			continue
		case err != nil:
			out.Excluded.InvalidInput++
			continue
		}
		rl := b.classifier.Classify(stat)
		if rl == model.RoleUnknown {
			out.Excluded.UnknownRole++
			continue
		}
		out.ByRole[rl] = append(out.ByRole[rl], stat)
	}
	return out
}

// Finalize computes per-role statistics over merged buckets. Roles without
// members are left out of the store.
func (b *Builder) Finalize(bk Buckets) (*Store, Report, error) {
	rep := Report{
		Rosters:  bk.Rosters,
		Players:  bk.Players,
		Excluded: bk.Excluded,
		Roles:    make(map[model.Role]int),
	}
	entries := make(map[model.Role]RoleBenchmark)
	for r, stats := range bk.ByRole {
		if len(stats) == 0 {
			continue
		}
		entries[r] = compute(stats)
		rep.Roles[r] = len(stats)
		rep.Qualified += len(stats)
	}
	store, err := NewStore(entries)
	if err != nil {
		return nil, rep, err
	}
	return store, rep, nil
}

// Build runs Bucket over every roster in order, then Finalize.
func (b *Builder) Build(rosters []Roster) (*Store, Report, error) {
	parts := make([]Buckets, len(rosters))
	for i := range rosters {
		parts[i] = b.Bucket(rosters[i])
	}
	return b.Finalize(Merge(parts...))
}

func compute(stats []model.PlayerStat) RoleBenchmark {
	ppg := make([]float64, 0, len(stats))
	var ages, capHits, corsi, fenwick []float64
	for i := range stats {
		s := &stats[i]
		ppg = append(ppg, s.PointsPerGame)
		if v, ok := s.Age.Value(); ok {
			ages = append(ages, v)
		}
		if !s.SalaryImputed {
			capHits = append(capHits, s.SalaryMillions)
		}
		if v, ok := s.CorsiForPct.Value(); ok {
			corsi = append(corsi, v)
		}
		if v, ok := s.FenwickForPct.Value(); ok {
			fenwick = append(fenwick, v)
		}
	}

	p := summarize(ppg)
	return RoleBenchmark{
		SampleSize:          p.n,
		MeanPPG:             p.mean,
		StdDevPPG:           p.std,
		MedianPPG:           p.median,
		P25PPG:              p.p25,
		P75PPG:              p.p75,
		MinPPG:              p.min,
		MaxPPG:              p.max,
		MeanAge:             Mean(ages),
		MeanCapHit:          Mean(capHits),
		MeanCorsiForPct:     Mean(corsi),
		StdDevCorsiForPct:   PopStdDev(corsi),
		MeanFenwickForPct:   Mean(fenwick),
		StdDevFenwickForPct: PopStdDev(fenwick),
		AgeSamples:          len(ages),
		CapHitSamples:       len(capHits),
		CorsiSamples:        len(corsi),
		FenwickSamples:      len(fenwick),
	}
}
