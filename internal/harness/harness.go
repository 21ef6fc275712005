// Package harness runs many independent tournaments concurrently under a
// bounded parallelism limit. Tournaments share nothing in-process; the limit
// exists to protect external decision providers from a thundering herd.
package harness

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/semaphore"

	"holdem-arena/internal/game"
)

// DefaultConcurrency bounds in-flight tournaments when no limit is given.
const DefaultConcurrency = 100

// Factory builds tournament i. Each call must return a tournament owning its
// own players, RNG, and deck state; the harness never shares one across
// goroutines.
type Factory func(i int) *game.Tournament

// Outcome attributes one tournament's result back to its index. Exactly one
// of Result and Err is set.
type Outcome struct {
	Index  int
	Result *game.GameResult
	Err    error
}

// Config configures a harness run.
type Config struct {
	Games       int
	Concurrency int
	Logger      *log.Logger
}

// Run plays cfg.Games tournaments built by factory and returns their outcomes
// in completion order. A failed tournament yields an errored outcome without
// affecting the others; Run itself only fails if ctx is cancelled before all
// tournaments were started.
func Run(ctx context.Context, cfg Config, factory Factory) ([]Outcome, error) {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	sem := semaphore.NewWeighted(int64(concurrency))
	outcomes := make([]Outcome, 0, cfg.Games)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for i := 0; i < cfg.Games; i++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return outcomes, err
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)

			result, err := factory(i).Run(ctx)
			if err != nil && cfg.Logger != nil {
				cfg.Logger.Error("tournament failed", "game", i, "error", err)
			}

			mu.Lock()
			outcomes = append(outcomes, Outcome{Index: i, Result: result, Err: err})
			mu.Unlock()
		}(i)
	}

	wg.Wait()
	return outcomes, nil
}

// Results splits outcomes into successful results and the errors of failed
// tournaments.
func Results(outcomes []Outcome) ([]*game.GameResult, []error) {
	var (
		results []*game.GameResult
		errs    []error
	)
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
			continue
		}
		results = append(results, o.Result)
	}
	return results, errs
}
