// Package service wires the domain packages into the operations exposed by
// the HTTP API and the CLI: roster evaluation, weak links and benchmark
// rebuilds over an immutable, atomically swapped benchmark snapshot.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/cupline/internal/adapters/mq/worker"
	"github.com/okian/cupline/internal/domain/benchmark"
	"github.com/okian/cupline/internal/domain/model"
	"github.com/okian/cupline/internal/domain/normalize"
	"github.com/okian/cupline/internal/domain/role"
	"github.com/okian/cupline/internal/domain/roster"
	"github.com/okian/cupline/internal/domain/scoring"
	"github.com/okian/cupline/internal/domain/types"
	"github.com/okian/cupline/pkg/logger"
	"github.com/okian/cupline/pkg/metrics"
)

// StatSource supplies raw player seasons.
type StatSource interface {
	// Roster returns every player season for team in season.
	Roster(ctx context.Context, teamID, season string) ([]model.PlayerSeason, error)
	// ChampionRosters returns the historical championship corpus.
	ChampionRosters(ctx context.Context) ([]benchmark.Roster, error)
}

// BenchmarkRepository persists benchmark tables.
type BenchmarkRepository interface {
	Load(ctx context.Context) (*benchmark.Store, error)
	Save(ctx context.Context, store *benchmark.Store) error
}

type playerJob struct {
	player model.PlayerSeason
	store  *benchmark.Store
}

// Service owns the active benchmark snapshot. Readers take the pointer once
// per request, so a rebuild never changes the table under an evaluation.
type Service struct {
	// rebuildMu serializes rebuilds; reads go through snapshot only.
	rebuildMu sync.Mutex
	snapshot  atomic.Pointer[benchmark.Store]
	loadedAt  atomic.Int64

	source StatSource
	repo   BenchmarkRepository

	// Configuration
	workerCount     int
	normalizeOpts   []normalize.Option
	builderStrategy role.Strategy
	scorerStrategy  role.Strategy
	positionWeights map[model.Role]float64
	initial         *benchmark.Store

	// Components
	builder    *benchmark.Builder
	aggregator *roster.Aggregator
	scorePool  *worker.Pool[playerJob, scoring.Outcome]
	bucketPool *worker.Pool[benchmark.Roster, benchmark.Buckets]

	now    func() time.Time
	logger logger.Logger
}

// New constructs a Service. Classifier strategies must be known.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		workerCount:     runtime.NumCPU() * 2,
		builderStrategy: role.Performance,
		scorerStrategy:  role.SalaryAware,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	builderClassifier, err := role.New(s.builderStrategy)
	if err != nil {
		return nil, fmt.Errorf("builder classifier: %w", err)
	}
	scorerClassifier, err := role.New(s.scorerStrategy)
	if err != nil {
		return nil, fmt.Errorf("scorer classifier: %w", err)
	}

	norm := normalize.New(s.normalizeOpts...)
	s.builder = benchmark.NewBuilder(
		benchmark.WithNormalizer(norm),
		benchmark.WithClassifier(builderClassifier),
	)
	s.aggregator = roster.New(
		roster.WithNormalizer(norm),
		roster.WithScorer(scoring.New(
			scoring.WithRoleClassifier(builderClassifier),
			scoring.WithBenchmarkClassifier(scorerClassifier),
			scoring.WithPositionWeights(s.positionWeights),
		)),
	)

	s.scorePool = worker.NewPool[playerJob, scoring.Outcome](s.scorePlayer,
		worker.WithName("score-pool"),
		worker.WithWorkers(s.workerCount),
		worker.WithLogger(s.logger.Named("score-pool")),
	)
	s.bucketPool = worker.NewPool[benchmark.Roster, benchmark.Buckets](s.bucketRoster,
		worker.WithName("bucket-pool"),
		worker.WithWorkers(s.workerCount),
		worker.WithLogger(s.logger.Named("bucket-pool")),
	)

	if s.initial != nil {
		s.install(s.initial)
	}
	return s, nil
}

// Start loads the benchmark table when none was installed. A failed load is
// logged and leaves the service unavailable rather than failing startup;
// evaluations then return benchmark.ErrBenchmarkUnavailable.
func (s *Service) Start(ctx context.Context) error {
	if s.snapshot.Load() != nil {
		return nil
	}
	if err := s.LoadBenchmarks(ctx); err != nil {
		s.logger.Error(ctx, "benchmarks unavailable; evaluations will fail until a rebuild", logger.Error(err))
	}
	s.logger.Info(ctx, "service started",
		logger.Int("workers", s.workerCount),
		logger.String("builder_classifier", string(s.builderStrategy)),
		logger.String("scorer_classifier", string(s.scorerStrategy)),
	)
	return nil
}

// LoadBenchmarks replaces the snapshot with the repository's table.
func (s *Service) LoadBenchmarks(ctx context.Context) error {
	if s.repo == nil {
		return fmt.Errorf("%w: no benchmark repository", benchmark.ErrBenchmarkUnavailable)
	}
	store, err := s.repo.Load(ctx)
	if err != nil {
		metrics.RecordBenchmarkLoadError()
		metrics.RecordErrorByComponent("service", "benchmark_load")
		return err
	}
	s.install(store)
	s.logger.Info(ctx, "benchmarks loaded", logger.Int("roles", store.Len()))
	return nil
}

func (s *Service) install(store *benchmark.Store) {
	s.snapshot.Store(store)
	t := s.now()
	s.loadedAt.Store(t.Unix())
	metrics.UpdateBenchmarkRoles(store.Len())
	metrics.MarkBenchmarkLoaded(t)
}

// Benchmarks returns the active snapshot, which may be nil.
func (s *Service) Benchmarks() *benchmark.Store {
	return s.snapshot.Load()
}

// Benchmark returns one role's benchmark from the active snapshot.
func (s *Service) Benchmark(_ context.Context, r model.Role) (benchmark.RoleBenchmark, error) {
	return s.snapshot.Load().Get(r)
}

// Ready reports whether evaluations can run.
func (s *Service) Ready() error {
	return s.snapshot.Load().Available()
}

// EvaluatePlayers scores a roster supplied by the caller.
func (s *Service) EvaluatePlayers(ctx context.Context, teamID, season string, players []model.PlayerSeason) (*types.RosterReport, error) {
	start := time.Now()
	evaluationID := uuid.NewString()
	log := s.logger.Named("evaluate")

	store := s.snapshot.Load()
	if err := store.Available(); err != nil {
		metrics.RecordRosterEvaluation("unavailable", msSince(start))
		metrics.RecordErrorByComponent("service", "benchmark_unavailable")
		log.Warn(ctx, "roster evaluation refused", logger.String("evaluation_id", evaluationID), logger.Error(err))
		return nil, err
	}

	jobs := make([]playerJob, len(players))
	for i := range players {
		jobs[i] = playerJob{player: players[i], store: store}
	}
	outcomes, err := s.scorePool.Process(ctx, jobs)
	if err != nil {
		label := "error"
		if errors.Is(err, benchmark.ErrBenchmarkUnavailable) {
			label = "unavailable"
		}
		metrics.RecordRosterEvaluation(label, msSince(start))
		log.Error(ctx, "roster evaluation failed", logger.String("evaluation_id", evaluationID), logger.Error(err))
		return nil, err
	}

	res := roster.Collect(outcomes)
	for i := range res.Scores {
		metrics.RecordPlayerEvaluated(string(res.Scores[i].Severity))
	}
	for i := range res.Excluded {
		ex := res.Excluded[i]
		metrics.RecordPlayerExcluded(string(ex.Reason))
		log.Debug(ctx, "player excluded",
			logger.String("evaluation_id", evaluationID),
			logger.String("player_id", ex.PlayerID),
			logger.String("reason", string(ex.Reason)),
			logger.String("detail", ex.Detail),
		)
	}

	metrics.RecordRosterEvaluation("ok", msSince(start))
	log.Info(ctx, "roster evaluated",
		logger.String("evaluation_id", evaluationID),
		logger.String("team_id", teamID),
		logger.String("season", season),
		logger.Int("evaluated", res.Summary.Evaluated),
		logger.Int("excluded", res.Summary.Excluded),
		logger.Int("weak_links", res.Summary.TierCounts[scoring.SeverityCritical]+res.Summary.TierCounts[scoring.SeverityHigh]),
	)

	return &types.RosterReport{
		EvaluationID: evaluationID,
		TeamID:       teamID,
		Season:       season,
		GeneratedAt:  s.now().UTC(),
		Scores:       res.Scores,
		Excluded:     res.Excluded,
		Summary:      res.Summary,
	}, nil
}

// TeamWeaknesses loads a stored roster and scores it.
func (s *Service) TeamWeaknesses(ctx context.Context, teamID, season string) (*types.RosterReport, error) {
	if s.source == nil {
		return nil, ErrNoStatSource
	}
	teamID, season = strings.TrimSpace(teamID), strings.TrimSpace(season)
	if teamID == "" || season == "" {
		return nil, fmt.Errorf("%w: team and season are required", ErrInvalidRequest)
	}
	// Check availability before touching the source so a missing table is
	// reported as such even for unknown rosters.
	if err := s.Ready(); err != nil {
		metrics.RecordRosterEvaluation("unavailable", 0)
		return nil, err
	}
	players, err := s.source.Roster(ctx, teamID, season)
	if err != nil {
		metrics.RecordRosterEvaluation("not_found", 0)
		return nil, err
	}
	return s.EvaluatePlayers(ctx, teamID, season, players)
}

// WeakLinks returns the critical and high tiers of a stored roster, worst first.
func (s *Service) WeakLinks(ctx context.Context, teamID, season string) ([]scoring.WeaknessScore, error) {
	report, err := s.TeamWeaknesses(ctx, teamID, season)
	if err != nil {
		return nil, err
	}
	return report.WeakLinks(), nil
}

// RebuildBenchmarks recomputes the table from the championship corpus,
// persists it and swaps it in. The previous snapshot stays active if any
// step fails.
func (s *Service) RebuildBenchmarks(ctx context.Context) (benchmark.Report, error) {
	if s.source == nil {
		return benchmark.Report{}, ErrNoStatSource
	}
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	start := time.Now()
	fail := func(err error) (benchmark.Report, error) {
		metrics.RecordBenchmarkBuild("error", msSince(start))
		metrics.RecordErrorByComponent("service", "benchmark_build")
		s.logger.Error(ctx, "benchmark rebuild failed", logger.Error(err))
		return benchmark.Report{}, err
	}

	rosters, err := s.source.ChampionRosters(ctx)
	if err != nil {
		return fail(fmt.Errorf("load corpus: %w", err))
	}
	parts, err := s.bucketPool.Process(ctx, rosters)
	if err != nil {
		return fail(err)
	}
	store, rep, err := s.builder.Finalize(benchmark.Merge(parts...))
	if err != nil {
		return fail(err)
	}
	if err := store.Available(); err != nil {
		return fail(fmt.Errorf("corpus of %d rosters produced no benchmarks: %w", len(rosters), err))
	}
	if s.repo != nil {
		if err := s.repo.Save(ctx, store); err != nil {
			return fail(fmt.Errorf("persist: %w", err))
		}
	}
	s.install(store)

	metrics.RecordBenchmarkBuild("ok", msSince(start))
	s.logger.Info(ctx, "benchmarks rebuilt",
		logger.Int("rosters", rep.Rosters),
		logger.Int("players", rep.Players),
		logger.Int("qualified", rep.Qualified),
		logger.Int("excluded", rep.Excluded.Total()),
		logger.Int("roles", store.Len()),
	)
	return rep, nil
}

// Stats returns service state for health reporting.
func (s *Service) Stats() map[string]any {
	store := s.snapshot.Load()
	stats := map[string]any{
		"workerCount":     s.workerCount,
		"benchmarkRoles":  store.Len(),
		"benchmarksReady": store.Available() == nil,
		"builderStrategy": string(s.builderStrategy),
		"scorerStrategy":  string(s.scorerStrategy),
	}
	if ts := s.loadedAt.Load(); ts > 0 {
		stats["benchmarksLoadedAt"] = time.Unix(ts, 0).UTC().Format(time.RFC3339)
	}
	return stats
}

func (s *Service) scorePlayer(_ context.Context, job playerJob) (scoring.Outcome, error) {
	start := time.Now()
	out, err := s.aggregator.EvaluatePlayer(job.player, job.store)
	metrics.RecordScoringLatency(msSince(start))
	return out, err
}

func (s *Service) bucketRoster(_ context.Context, r benchmark.Roster) (benchmark.Buckets, error) {
	return s.builder.Bucket(r), nil
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
