package export

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/greedy"
	"github.com/san-kum/algoviz/internal/problem"
	"github.com/san-kum/algoviz/internal/sorting"
	"github.com/san-kum/algoviz/internal/trace"
)

func runKadane(t *testing.T) *experiment.Result {
	t.Helper()
	reg := experiment.NewRegistry()
	alg, err := reg.Get("kadane")
	require.NoError(t, err)

	exp := experiment.New(experiment.Config{Algorithm: "kadane", Input: "-2, 1, -3, 4, -1, 2, 1, -5, 4"})
	require.NoError(t, exp.Setup(alg, reg.DefaultMetrics("kadane")))
	res, err := exp.Run(context.Background())
	require.NoError(t, err)
	return res
}

func TestJSON(t *testing.T) {
	d, err := FromResult(runKadane(t))
	require.NoError(t, err)
	assert.Equal(t, "-2, 1, -3, 4, -1, 2, 1, -5, 4", d.Input)
	assert.Contains(t, d.Summary, "6")

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, d))

	var back Data
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, d.Steps, back.History.Len())
	assert.Equal(t, d.History.Labels(), back.History.Labels())
	assert.Equal(t, 6.0, back.Metrics["max_sum"])
}

func TestCSV(t *testing.T) {
	h, _ := greedy.Kadane([]float64{1, -2, 3})

	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, h))

	header := strings.SplitN(buf.String(), "\n", 2)[0]
	assert.Equal(t, "step,label,explanation,lines,current_sum,max_sum", header)

	rows, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, rows, h.Len())
	for i, r := range rows {
		assert.Equal(t, i, r.Step)
		assert.Equal(t, h.Snapshots[i].Label, r.Label)
		assert.Equal(t, h.Snapshots[i].Explanation, r.Explanation)
		assert.Equal(t, h.Snapshots[i].Lines, r.Lines)
	}

	maxSums := Series(rows, "max_sum")
	last, _ := h.Last()
	assert.Equal(t, last.Payload.Scalars()["max_sum"], maxSums[len(maxSums)-1])
}

func TestReadCSV_Empty(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSnapshotSVG_Array(t *testing.T) {
	h, _ := sorting.Bubble([]float64{3, 1, 2})
	s, err := h.At(1)
	require.NoError(t, err)

	svg := SnapshotSVG(s, 400, 200)
	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	// background plus one bar per value
	assert.Equal(t, 4, strings.Count(svg, "<rect"))
	assert.Contains(t, svg, "#ffd75f", "compared bars are highlighted")
}

func TestSnapshotSVG_EveryPayload(t *testing.T) {
	histories := []*trace.History{}
	add := func(h *trace.History, _ trace.Result) { histories = append(histories, h) }

	add(greedy.Jobs([]problem.Job{{ID: 1, Deadline: 2, Profit: 100}, {ID: 2, Deadline: 1, Profit: 19}}))
	add(greedy.Knapsack([]problem.Item{{ID: 1, Value: 60, Weight: 10}, {ID: 2, Value: 100, Weight: 20}}, 15))
	add(greedy.Activities([]problem.Activity{{ID: 1, Start: 1, Finish: 4}, {ID: 2, Start: 3, Finish: 5}}))
	add(greedy.Coloring([]problem.Interval{{ID: 1, Start: 0, End: 3}, {ID: 2, Start: 1, End: 4}}))
	add(greedy.Kadane([]float64{-1, 2}))

	for _, h := range histories {
		for _, s := range h.Snapshots {
			svg := SnapshotSVG(s, 320, 160)
			assert.Contains(t, svg, "</svg>", h.Algorithm)
			assert.NotContains(t, svg, "NaN", h.Algorithm)
		}
	}
}

func TestSnapshotSVG_EscapesExplanation(t *testing.T) {
	s := trace.Snapshot{Label: trace.LabelCompare, Explanation: "3 < 5 & done", Payload: &trace.Array{Values: []float64{3, 5}}}
	svg := SnapshotSVG(s, 200, 100)
	assert.Contains(t, svg, "3 &lt; 5 &amp; done")
}

func TestSeriesSVG(t *testing.T) {
	assert.Empty(t, SeriesSVG([]float64{1}, 100, 50, "#fff"))

	svg := SeriesSVG([]float64{3, 2, 1, 0}, 100, 50, "#00ff00")
	assert.Contains(t, svg, `stroke="#00ff00"`)
	assert.Equal(t, 3, strings.Count(svg, " L"))
}
