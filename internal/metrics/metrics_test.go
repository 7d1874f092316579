package metrics

import (
	"testing"

	"github.com/san-kum/algoviz/internal/greedy"
	"github.com/san-kum/algoviz/internal/problem"
	"github.com/san-kum/algoviz/internal/sorting"
	"github.com/stretchr/testify/assert"
)

func TestSummarize_Bubble(t *testing.T) {
	h, _ := sorting.Bubble([]float64{3, 2, 1})
	got := Summarize(h)

	// pass 1: 2 compares, 2 swaps; pass 2: 1 compare, 1 swap
	assert.Equal(t, 3.0, got["comparisons"])
	assert.Equal(t, 3.0, got["swaps"])
	assert.Equal(t, float64(h.Len()), got["steps"])
	assert.Zero(t, got["writes"])
}

func TestSummarize_IsRepeatable(t *testing.T) {
	h, _ := sorting.Insertion([]float64{4, 1, 3})
	ms := Counters()
	first := Summarize(h, ms...)
	second := Summarize(h, ms...)
	assert.Equal(t, first, second)
}

func TestPeakAndFinal(t *testing.T) {
	h, res := greedy.Coloring([]problem.Interval{
		{ID: 1, Start: 0, End: 4},
		{ID: 2, Start: 1, End: 3},
		{ID: 3, Start: 2, End: 5},
		{ID: 4, Start: 6, End: 7},
	})
	got := Summarize(h, NewPeak("peak_active", "active"), NewFinal("rooms", "max_rooms"))
	assert.Equal(t, 3.0, got["peak_active"])
	assert.Equal(t, float64(res.MaxRooms), got["rooms"])
}

func TestPeak_NegativeValues(t *testing.T) {
	h, _ := greedy.Kadane([]float64{-5, -3, -4})
	got := Summarize(h, NewPeak("best", "max_sum"))
	assert.Equal(t, -3.0, got["best"])
}

func TestCounterReset(t *testing.T) {
	c := NewCounter("steps")
	h, _ := sorting.Quick([]float64{2, 1})
	for _, s := range h.Snapshots {
		c.Observe(s)
	}
	assert.NotZero(t, c.Value())
	c.Reset()
	assert.Zero(t, c.Value())
}
