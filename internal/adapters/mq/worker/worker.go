// Package worker runs batch work on a bounded set of goroutines.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/cupline/pkg/logger"
	"github.com/okian/cupline/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
)

// Task processes one item. Tasks must be safe for concurrent use.
type Task[T, R any] func(ctx context.Context, item T) (R, error)

// Pool fans a slice of items out to at most Workers() goroutines and
// gathers the results back in input order.
type Pool[T, R any] struct {
	task    Task[T, R]
	name    string
	workers int
	logger  logger.Logger
}

// NewPool creates a pool that runs task for every item handed to Process.
func NewPool[T, R any](task Task[T, R], opts ...Option) *Pool[T, R] {
	s := settings{
		name:    "worker-pool",
		workers: runtime.NumCPU() * defaultWorkerMultiplier,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named(s.name)
	}

	metrics.UpdateWorkerCount(s.workers)

	return &Pool[T, R]{
		task:    task,
		name:    s.name,
		workers: s.workers,
		logger:  s.logger,
	}
}

// Workers returns the concurrency bound.
func (p *Pool[T, R]) Workers() int { return p.workers }

// Process runs the task over items. results[i] belongs to items[i]. The
// first task error cancels the remaining work and is returned; results are
// then partial and must not be used.
func (p *Pool[T, R]) Process(ctx context.Context, items []T) ([]R, error) {
	if p.task == nil {
		return nil, ErrNilTask
	}
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	n := min(p.workers, len(items))
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for w := 0; w < n; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			log := p.logger.Named("worker-" + strconv.Itoa(id))
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				start := time.Now()
				r, err := p.task(ctx, items[i])
				metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
				if err != nil {
					metrics.RecordWorkerError()
					metrics.RecordErrorByComponent("worker", "task_error")
					log.Debug(ctx, "task failed", logger.Int("index", i), logger.Error(err))
					fail(fmt.Errorf("%s: item %d: %w", p.name, i, err))
					continue
				}
				results[i] = r
			}
		}(w)
	}

dispatch:
	for i := range items {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStopped, err)
	}
	return results, nil
}
