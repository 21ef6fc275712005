package harness

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem-arena/internal/game"
)

type passiveStrategy struct{}

func (passiveStrategy) Decide(_ context.Context, s game.Situation) (game.ActionResponse, error) {
	if s.ToCall > 0 {
		return game.ActionResponse{Action: game.Call}, nil
	}
	return game.ActionResponse{Action: game.Check}, nil
}

type failingStrategy struct{ err error }

func (f failingStrategy) Decide(context.Context, game.Situation) (game.ActionResponse, error) {
	return game.ActionResponse{}, f.err
}

// gaugeStrategy tracks how many tournaments are acting at once.
type gaugeStrategy struct {
	current atomic.Int64
	peak    atomic.Int64
}

func (g *gaugeStrategy) Decide(_ context.Context, s game.Situation) (game.ActionResponse, error) {
	cur := g.current.Add(1)
	for {
		peak := g.peak.Load()
		if cur <= peak || g.peak.CompareAndSwap(peak, cur) {
			break
		}
	}
	time.Sleep(time.Millisecond)
	g.current.Add(-1)
	return passiveStrategy{}.Decide(context.Background(), s)
}

func newFactory(strategyFor func(i int) game.Strategy) Factory {
	return func(i int) *game.Tournament {
		players := []*game.Player{
			{ID: 0, Name: "A", Chips: game.DefaultStartingChips, Strategy: strategyFor(i)},
			{ID: 1, Name: "B", Chips: game.DefaultStartingChips, Strategy: passiveStrategy{}},
		}
		return game.NewTournament(game.TournamentConfig{
			Players:   players,
			MaxRounds: 3,
			Seed:      int64(i),
		})
	}
}

func TestRunCollectsAllOutcomes(t *testing.T) {
	outcomes, err := Run(context.Background(), Config{Games: 20, Concurrency: 4},
		newFactory(func(int) game.Strategy { return passiveStrategy{} }))
	require.NoError(t, err)
	require.Len(t, outcomes, 20)

	seen := make(map[int]bool)
	for _, o := range outcomes {
		assert.NoError(t, o.Err)
		require.NotNil(t, o.Result)
		assert.False(t, seen[o.Index], "index %d reported twice", o.Index)
		seen[o.Index] = true
	}
	assert.Len(t, seen, 20)
}

func TestRunIsolatesFailures(t *testing.T) {
	boom := errors.New("provider down")
	outcomes, err := Run(context.Background(), Config{Games: 8, Concurrency: 3},
		newFactory(func(i int) game.Strategy {
			if i == 3 {
				return failingStrategy{err: boom}
			}
			return passiveStrategy{}
		}))
	require.NoError(t, err)
	require.Len(t, outcomes, 8)

	results, errs := Results(outcomes)
	assert.Len(t, results, 7)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], boom)

	for _, o := range outcomes {
		if o.Index == 3 {
			assert.Error(t, o.Err)
			assert.Nil(t, o.Result, "failed tournament must not produce a result")
		} else {
			assert.NoError(t, o.Err)
		}
	}
}

func TestRunHonoursConcurrencyLimit(t *testing.T) {
	gauge := &gaugeStrategy{}
	outcomes, err := Run(context.Background(), Config{Games: 12, Concurrency: 2},
		newFactory(func(int) game.Strategy { return gauge }))
	require.NoError(t, err)
	require.Len(t, outcomes, 12)

	assert.LessOrEqual(t, gauge.peak.Load(), int64(2),
		"more tournaments in flight than the concurrency limit allows")
}

func TestRunDefaultsConcurrency(t *testing.T) {
	outcomes, err := Run(context.Background(), Config{Games: 3},
		newFactory(func(int) game.Strategy { return passiveStrategy{} }))
	require.NoError(t, err)
	assert.Len(t, outcomes, 3)
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := Run(ctx, Config{Games: 5, Concurrency: 1},
		newFactory(func(int) game.Strategy { return passiveStrategy{} }))
	require.Error(t, err)
	assert.Less(t, len(outcomes), 5)
}
