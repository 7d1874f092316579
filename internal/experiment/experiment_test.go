package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/algoviz/internal/greedy"
	"github.com/san-kum/algoviz/internal/problem"
	"github.com/san-kum/algoviz/internal/sorting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AllAlgorithms(t *testing.T) {
	r := NewRegistry()
	names := []string{"quick", "merge", "heap", "bubble", "insertion", "jobs", "knapsack", "activities", "coloring", "kadane"}
	assert.Equal(t, names, r.ListNames())
	assert.Len(t, r.List(Sorting), 5)
	assert.Len(t, r.List(Greedy), 5)

	for _, n := range names {
		a, err := r.Get(n)
		require.NoError(t, err)
		assert.NotEmpty(t, a.Title)
		assert.NotNil(t, a.Trace)
		assert.NotNil(t, a.Plain)
	}
}

func TestRegistry_Unknown(t *testing.T) {
	_, err := NewRegistry().Get("bogo")
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
	assert.Contains(t, err.Error(), "quick")
}

func TestRegistry_PlainFuncsSameKind(t *testing.T) {
	r := NewRegistry()
	fns, err := r.PlainFuncs("quick", "merge", "kadane")
	require.NoError(t, err)
	assert.Len(t, fns, 3)

	_, err = r.PlainFuncs("quick", "jobs")
	assert.Error(t, err)
}

func setup(t *testing.T, cfg Config) *Experiment {
	t.Helper()
	r := NewRegistry()
	alg, err := r.Get(cfg.Algorithm)
	require.NoError(t, err)
	exp := New(cfg)
	require.NoError(t, exp.Setup(alg, r.DefaultMetrics(alg.Name)))
	return exp
}

func TestExperiment_ParsedInput(t *testing.T) {
	exp := setup(t, Config{Algorithm: "kadane", Input: "-2, 1, -3, 4, -1, 2, 1, -5, 4"})
	res, err := exp.Run(context.Background())
	require.NoError(t, err)

	out := res.Outcome.(greedy.SubarrayResult)
	assert.Equal(t, 6.0, out.MaxSum)
	assert.Equal(t, 6.0, res.Metrics["max_sum"])
	assert.Equal(t, float64(res.History.Len()), res.Metrics["steps"])
}

func TestExperiment_InvalidInputRunsNothing(t *testing.T) {
	exp := setup(t, Config{Algorithm: "quick", Input: "3, x, 1"})
	res, err := exp.Run(context.Background())
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, problem.ErrValidation))
}

func TestExperiment_SeededGenerationIsDeterministic(t *testing.T) {
	a, err := setup(t, Config{Algorithm: "heap", Size: 12, Seed: 9}).Run(context.Background())
	require.NoError(t, err)
	b, err := setup(t, Config{Algorithm: "heap", Size: 12, Seed: 9}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Problem, b.Problem)
	assert.Equal(t, a.History, b.History)
	assert.Equal(t, a.Outcome.(sorting.Result).Sorted, b.Outcome.(sorting.Result).Sorted)
}

func TestExperiment_NotSetup(t *testing.T) {
	_, err := New(Config{}).Run(context.Background())
	assert.ErrorIs(t, err, ErrNotSetup)
}

func TestExperiment_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := setup(t, Config{Algorithm: "merge", Size: 5}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnsemble(t *testing.T) {
	r := NewRegistry()
	results, err := NewEnsemble(r, Config{Algorithm: "bubble", Size: 10}, 4, 100).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, res := range results {
		assert.Equal(t, int64(100+i), res.Seed)
	}
	mean := Mean(results)
	assert.Greater(t, mean["comparisons"], 0.0)
	assert.Empty(t, Mean(nil))
}
