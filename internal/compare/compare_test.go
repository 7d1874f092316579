package compare

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/san-kum/algoviz/internal/problem"
	"github.com/san-kum/algoviz/internal/sorting"
	"github.com/san-kum/algoviz/internal/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sorter(fn func([]float64) sorting.Result) Func {
	return func(p problem.Problem) trace.Result { return fn(p.Numbers) }
}

func TestRun_RanksFastestFirst(t *testing.T) {
	slow := func(p problem.Problem) trace.Result {
		time.Sleep(20 * time.Millisecond)
		return sorting.InsertionPlain(p.Numbers)
	}
	entries, err := Run(context.Background(), map[string]Func{
		"slow":  slow,
		"quick": sorter(sorting.QuickPlain),
	}, problem.Numbers(3, 1, 2))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "quick", entries[0].Name)
	assert.Equal(t, "slow", entries[1].Name)
	assert.GreaterOrEqual(t, entries[1].Millis(), 20.0)
	for _, e := range entries {
		assert.Equal(t, []float64{1, 2, 3}, e.Result.(sorting.Result).Sorted)
	}
}

func TestRun_EachAlgorithmGetsItsOwnCopy(t *testing.T) {
	input := problem.Numbers(5, 4, 3)
	mutate := func(p problem.Problem) trace.Result {
		p.Numbers[0] = -1
		return sorting.Result{Sorted: p.Numbers}
	}
	entries, err := Run(context.Background(), map[string]Func{
		"a": mutate,
		"b": mutate,
	}, input)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 4, 3}, input.Numbers)
	for _, e := range entries {
		assert.Equal(t, []float64{-1, 4, 3}, e.Result.(sorting.Result).Sorted)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	fn := func(p problem.Problem) trace.Result {
		calls++
		cancel()
		return sorting.Result{}
	}
	entries, err := Run(ctx, map[string]Func{"a": fn, "b": fn, "c": fn}, problem.Numbers(1))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, calls)
	assert.Len(t, entries, 1)
}

func TestRun_Empty(t *testing.T) {
	_, err := Run(context.Background(), nil, problem.Numbers())
	assert.ErrorIs(t, err, ErrNoAlgorithms)
}
