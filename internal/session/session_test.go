package session

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/greedy"
	"github.com/san-kum/algoviz/internal/kvstore"
	"github.com/san-kum/algoviz/internal/player"
	"github.com/san-kum/algoviz/internal/problem"
	"github.com/san-kum/algoviz/internal/trace"
)

type memStore struct {
	data    map[string][]byte
	failPut bool
}

func newMemStore() *memStore { return &memStore{data: make(map[string][]byte)} }

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, kvstore.ErrNotFound
	}
	return v, nil
}

func (m *memStore) Put(_ context.Context, key string, value []byte) error {
	if m.failPut {
		return errors.New("disk full")
	}
	m.data[key] = value
	return nil
}

func newSession(t *testing.T, vis experiment.Visualizer, opts ...Option) (*Session, *player.ManualScheduler) {
	t.Helper()
	sched := player.NewManualScheduler()
	s, err := New(experiment.NewRegistry(), vis, sched, opts...)
	require.NoError(t, err)
	return s, sched
}

func TestNew_FirstAlgorithm(t *testing.T) {
	s, _ := newSession(t, experiment.Greedy)
	assert.Equal(t, "jobs", s.Algorithm().Name)
	assert.Equal(t, player.Idle, s.Player().Status())
}

func TestRun_WithoutProblem(t *testing.T) {
	s, _ := newSession(t, experiment.Sorting)
	assert.ErrorIs(t, s.Run(), ErrNoProblem)
	assert.ErrorIs(t, s.Step(), ErrNoProblem)
}

func TestSetInput_InvalidKeepsState(t *testing.T) {
	s, _ := newSession(t, experiment.Sorting)
	require.NoError(t, s.SetInput("3, 1, 2"))

	err := s.SetInput("3, x, 2")
	require.ErrorIs(t, err, problem.ErrValidation)

	orig, ok := s.Original()
	require.True(t, ok)
	assert.Equal(t, []float64{3, 1, 2}, orig.Numbers)
	assert.Nil(t, s.History())
}

func TestRun_PlaysToTheEnd(t *testing.T) {
	s, sched := newSession(t, experiment.Sorting)
	require.NoError(t, s.SetInput("5, 3, 8, 1"))
	require.NoError(t, s.Run())

	total := s.History().Len()
	require.Greater(t, total, 1)

	for s.Player().Status() == player.Running {
		sched.Advance(time.Hour)
	}
	assert.Equal(t, player.Finished, s.Player().Status())

	last, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, trace.LabelResult, last.Label)
	assert.Equal(t, []float64{1, 3, 5, 8}, last.Payload.(*trace.Array).Values)

	orig, _ := s.Original()
	assert.Equal(t, []float64{5, 3, 8, 1}, orig.Numbers)
}

func TestStep_FromIdleBuildsHistory(t *testing.T) {
	s, sched := newSession(t, experiment.Greedy)
	require.NoError(t, s.SetAlgorithm("kadane"))
	require.NoError(t, s.SetInput("-2, 1, -3, 4, -1, 2, 1, -5, 4"))

	require.NoError(t, s.Step())
	require.NotNil(t, s.History())
	assert.Equal(t, player.Paused, s.Player().Status())
	assert.Equal(t, 0, sched.Pending())

	for i := 1; i < s.History().Len(); i++ {
		require.NoError(t, s.Step())
	}
	assert.Equal(t, player.Finished, s.Player().Status())
	res, ok := s.Result().(greedy.SubarrayResult)
	require.True(t, ok)
	assert.Equal(t, 6.0, res.MaxSum)
}

func TestReset_CancelsAndClears(t *testing.T) {
	s, sched := newSession(t, experiment.Sorting)
	require.NoError(t, s.SetInput("4, 3, 2, 1"))
	require.NoError(t, s.Run())
	require.Equal(t, 1, sched.Pending())

	s.Reset()
	assert.Equal(t, 0, sched.Pending())
	assert.Nil(t, s.History())
	assert.Nil(t, s.Result())
	assert.Equal(t, player.Idle, s.Player().Status())
	_, ok := s.Current()
	assert.False(t, ok)

	_, ok = s.Original()
	assert.True(t, ok, "reset keeps the original problem")
}

func TestResetThenRunIsIdentical(t *testing.T) {
	s, _ := newSession(t, experiment.Sorting)
	require.NoError(t, s.SetInput("9, 4, 7, 4, 1"))
	require.NoError(t, s.Run())
	first := s.History()

	s.Reset()
	require.NoError(t, s.Run())
	assert.Equal(t, first, s.History())
	assert.NotSame(t, first, s.History())
}

func TestSetAlgorithm(t *testing.T) {
	s, sched := newSession(t, experiment.Sorting)
	require.NoError(t, s.SetInput("2, 1"))
	require.NoError(t, s.Run())

	require.NoError(t, s.SetAlgorithm("merge"))
	assert.Equal(t, 0, sched.Pending())
	assert.Nil(t, s.History())
	_, ok := s.Original()
	assert.True(t, ok, "same input kind keeps the problem")

	assert.ErrorIs(t, s.SetAlgorithm("jobs"), ErrWrongVisualizer)
	assert.ErrorIs(t, s.SetAlgorithm("bogo"), experiment.ErrUnknownAlgorithm)
}

func TestSetAlgorithm_DifferentKindDropsProblem(t *testing.T) {
	s, _ := newSession(t, experiment.Greedy)
	require.NoError(t, s.NewProblem(5, rand.New(rand.NewSource(1)), problem.GenerateOptions{}))
	require.NoError(t, s.SetAlgorithm("kadane"))
	_, ok := s.Original()
	assert.False(t, ok)
}

func TestSaveRestore(t *testing.T) {
	store := newMemStore()
	s, _ := newSession(t, experiment.Greedy, WithStore(store))
	require.NoError(t, s.SetAlgorithm("kadane"))
	require.NoError(t, s.SetInput("1, -2, 3"))
	s.SetSpeed(80)
	require.NoError(t, s.Step())
	require.NoError(t, s.Step())
	s.Save(context.Background())

	var st State
	require.NoError(t, json.Unmarshal(store.data["state/greedy"], &st))
	assert.Equal(t, State{Algorithm: "kadane", Speed: 80, Input: "1, -2, 3", Step: 1}, st)

	restored, _ := newSession(t, experiment.Greedy, WithStore(store))
	require.True(t, restored.Restore(context.Background()))
	assert.Equal(t, "kadane", restored.Algorithm().Name)
	assert.Equal(t, 80, restored.Player().Machine().Speed)
	assert.Equal(t, 1, restored.Player().Machine().Current)
	assert.Equal(t, player.Paused, restored.Player().Status())
}

func TestRestore_DegradesToNothing(t *testing.T) {
	store := newMemStore()
	s, _ := newSession(t, experiment.Sorting, WithStore(store))
	assert.False(t, s.Restore(context.Background()), "nothing saved")

	store.data["state/sorting"] = []byte("{not json")
	assert.False(t, s.Restore(context.Background()))

	store.data["state/sorting"] = []byte(`{"algorithm":"jobs","speed":10,"input":"","step":-1}`)
	assert.False(t, s.Restore(context.Background()), "greedy algorithm in sorting state")

	store.data["state/sorting"] = []byte(`{"algorithm":"quick","speed":10,"input":"1, y","step":-1}`)
	assert.False(t, s.Restore(context.Background()))
	assert.Equal(t, "quick", s.Algorithm().Name)
}

func TestSave_FailureIsSwallowed(t *testing.T) {
	store := newMemStore()
	store.failPut = true
	s, _ := newSession(t, experiment.Sorting, WithStore(store))
	require.NoError(t, s.SetInput("1"))
	assert.NotPanics(t, func() { s.Save(context.Background()) })
	assert.Empty(t, store.data)
}

func TestSaveRestore_Badger(t *testing.T) {
	store, err := kvstore.OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	s, _ := newSession(t, experiment.Sorting, WithStore(store))
	require.NoError(t, s.SetAlgorithm("heap"))
	require.NoError(t, s.SetInput("3, 1, 2"))
	s.Save(context.Background())

	other, _ := newSession(t, experiment.Sorting, WithStore(store))
	require.True(t, other.Restore(context.Background()))
	assert.Equal(t, "heap", other.Algorithm().Name)
	assert.Equal(t, "3, 1, 2", other.Input())
	assert.Equal(t, player.Idle, other.Player().Status())
}
