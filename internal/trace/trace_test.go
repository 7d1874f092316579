package trace

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/san-kum/algoviz/internal/problem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_CopyOnRecord(t *testing.T) {
	work := []float64{3, 1, 2}
	marks := Markers{MarkComparing: {0, 1}}
	lines := []int{4}

	rec := NewRecorder("bubble")
	rec.Record(LabelCompare, &Array{Values: work, Markers: marks}, lines, "compare 3 and 1")

	work[0] = 99
	marks[MarkComparing][0] = 7
	lines[0] = 10

	h := rec.History()
	require.Equal(t, 1, h.Len())
	snap, err := h.At(0)
	require.NoError(t, err)

	arr := snap.Payload.(*Array)
	assert.Equal(t, []float64{3, 1, 2}, arr.Values)
	assert.Equal(t, []int{0, 1}, arr.Markers[MarkComparing])
	assert.Equal(t, []int{4}, snap.Lines)
}

func TestPayloadClone_Deep(t *testing.T) {
	c := &Coloring{
		Intervals: []problem.Interval{{ID: 1, Start: 0, End: 2}},
		Colors:    map[int]int{1: 0},
		InUse:     []bool{true},
	}
	d := c.Clone().(*Coloring)
	d.Colors[1] = 5
	d.InUse[0] = false
	d.Intervals[0].End = 9

	assert.Equal(t, 0, c.Colors[1])
	assert.True(t, c.InUse[0])
	assert.Equal(t, 2.0, c.Intervals[0].End)
}

func TestMarkers_AbsentVersusEmpty(t *testing.T) {
	m := Markers{MarkSorted: {}}
	_, hasSorted := m[MarkSorted]
	_, hasPivot := m[MarkPivot]
	assert.True(t, hasSorted)
	assert.False(t, hasPivot)
	assert.False(t, m.Has(MarkSorted, 0))

	cloned := m.clone()
	_, stillThere := cloned[MarkSorted]
	assert.True(t, stillThere)
}

func TestHistory_Bounds(t *testing.T) {
	var h *History
	assert.Equal(t, 0, h.Len())
	_, ok := h.Last()
	assert.False(t, ok)

	h = &History{}
	_, err := h.At(0)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestInversions(t *testing.T) {
	assert.Equal(t, 0, Inversions([]float64{1, 2, 3}))
	assert.Equal(t, 3, Inversions([]float64{3, 2, 1}))
	assert.Equal(t, 0, Inversions(nil))
}

func TestSnapshotJSON_RoundTrip(t *testing.T) {
	rec := NewRecorder("mixed")
	rec.Record(LabelSwap, &Array{Values: []float64{2, 1}, Markers: Markers{MarkSwapping: {0, 1}}}, []int{3}, "swap")
	rec.Record(LabelBest, &Subarray{Nums: []float64{-1, 2}, Index: 1, BestStart: 1, BestEnd: 1, CurrentSum: 2, MaxSum: 2}, nil, "best")
	rec.Record(LabelPlace, &Schedule{Jobs: []problem.Job{{ID: 1, Deadline: 1, Profit: 5}}, Slots: []int{1}, TriedSlot: 0}, nil, "place")
	rec.Record(LabelTake, &Knapsack{Items: []problem.Item{{ID: 1, Value: 6, Weight: 2}}, Ratios: []float64{3}, Taken: []problem.Selection{{Item: problem.Item{ID: 1, Value: 6, Weight: 2}, Fraction: 1}}, Capacity: 5, Remaining: 3, TotalValue: 6}, nil, "take")
	rec.Record(LabelSelect, &Activities{Activities: []problem.Activity{{ID: 1, Start: 0, Finish: 1}}, Selected: []int{0}, LastFinish: 1}, nil, "select")
	rec.Record(LabelAssign, &Coloring{Events: []Event{{Time: 0, IntervalID: 1}}, Colors: map[int]int{1: 0}, InUse: []bool{true}, Active: 1, MaxRooms: 1}, nil, "assign")
	h := rec.History()

	data, err := json.Marshal(h)
	require.NoError(t, err)

	var back History
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, h.Algorithm, back.Algorithm)
	require.Equal(t, h.Len(), back.Len())
	for i := range h.Snapshots {
		assert.Equal(t, h.Snapshots[i].Label, back.Snapshots[i].Label)
		assert.Equal(t, h.Snapshots[i].Payload, back.Snapshots[i].Payload, "step %d", i)
	}
}

func TestSnapshotJSON_UnknownKind(t *testing.T) {
	var s Snapshot
	err := json.Unmarshal([]byte(`{"label":"x","kind":"graph","payload":{}}`), &s)
	assert.True(t, errors.Is(err, ErrUnknownPayload))
}
