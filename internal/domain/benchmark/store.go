package benchmark

import (
	"fmt"
	"sort"

	"github.com/okian/cupline/internal/domain/model"
)

// Store is an immutable role -> benchmark table. It is built or loaded once
// and then shared by every reader; nothing mutates it after construction, so
// concurrent reads need no locking. A nil *Store behaves as "unavailable".
type Store struct {
	byRole map[model.Role]RoleBenchmark
}

// NewStore validates and copies entries into a new Store.
func NewStore(entries map[model.Role]RoleBenchmark) (*Store, error) {
	byRole := make(map[model.Role]RoleBenchmark, len(entries))
	for r, b := range entries {
		if !r.Known() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidBenchmark, r)
		}
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("role %s: %w", r, err)
		}
		byRole[r] = b
	}
	return &Store{byRole: byRole}, nil
}

// Get returns the benchmark for r. It returns ErrBenchmarkUnavailable for a
// nil or empty store and ErrNotFound when only this role is missing.
func (s *Store) Get(r model.Role) (RoleBenchmark, error) {
	if err := s.Available(); err != nil {
		return RoleBenchmark{}, err
	}
	b, ok := s.byRole[r]
	if !ok {
		return RoleBenchmark{}, fmt.Errorf("%w: %s", ErrNotFound, r)
	}
	return b, nil
}

// Available reports ErrBenchmarkUnavailable when the store holds no roles.
func (s *Store) Available() error {
	if s == nil || len(s.byRole) == 0 {
		return ErrBenchmarkUnavailable
	}
	return nil
}

// Len returns the number of roles with a benchmark.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.byRole)
}

// Roles lists the roles present, in canonical role order.
func (s *Store) Roles() []model.Role {
	if s == nil {
		return nil
	}
	out := make([]model.Role, 0, len(s.byRole))
	for r := range s.byRole {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index() < out[j].Index() })
	return out
}

// Entries returns a copy of the table.
func (s *Store) Entries() map[model.Role]RoleBenchmark {
	out := make(map[model.Role]RoleBenchmark, s.Len())
	if s == nil {
		return out
	}
	for r, b := range s.byRole {
		out[r] = b
	}
	return out
}
