// Package sorting implements comparison sorts that record every comparison
// and mutation into a trace history, along with plain variants for timing.
package sorting

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/san-kum/algoviz/internal/listing"
	"github.com/san-kum/algoviz/internal/trace"
)

type Result struct {
	Sorted []float64 `json:"sorted"`
}

func (r Result) Summary() string {
	if len(r.Sorted) == 0 {
		return "nothing to sort"
	}
	return fmt.Sprintf("sorted %d values: %s", len(r.Sorted), formatValues(r.Sorted))
}

// Func is the shape shared by every traced sort.
type Func func(input []float64) (*trace.History, Result)

type tracer struct {
	rec    *trace.Recorder
	src    *listing.Listing
	a      []float64
	sorted []int
}

// begin copies the input and records the setup step. It returns nil for
// empty input; callers then return empty(name).
func begin(name string, input []float64) *tracer {
	if len(input) == 0 {
		return nil
	}
	src, _ := listing.For(name)
	t := &tracer{
		rec:    trace.NewRecorder(name),
		src:    src,
		a:      slices.Clone(input),
		sorted: []int{},
	}
	t.record(trace.LabelSetup, nil, "", "start with %d values: %s", len(t.a), formatValues(t.a))
	return t
}

func (t *tracer) record(label trace.Label, marks trace.Markers, tag string, format string, args ...any) {
	if marks == nil {
		marks = trace.Markers{}
	}
	marks[trace.MarkSorted] = t.sorted
	var lines []int
	if tag != "" {
		lines = t.src.Tag(tag)
	}
	t.rec.Recordf(label, &trace.Array{Values: t.a, Markers: marks}, lines, format, args...)
}

func (t *tracer) markSorted(idx ...int) {
	for _, i := range idx {
		if !slices.Contains(t.sorted, i) {
			t.sorted = append(t.sorted, i)
		}
	}
	slices.Sort(t.sorted)
}

func (t *tracer) swap(i, j int) {
	t.a[i], t.a[j] = t.a[j], t.a[i]
}

func (t *tracer) finish() (*trace.History, Result) {
	t.markSorted(span(0, len(t.a)-1)...)
	t.record(trace.LabelResult, nil, "", "sorted: %s", formatValues(t.a))
	return t.rec.History(), Result{Sorted: slices.Clone(t.a)}
}

func empty(name string) (*trace.History, Result) {
	rec := trace.NewRecorder(name)
	rec.Record(trace.LabelEmpty, &trace.Array{Values: []float64{}}, nil, "the input is empty, nothing to sort")
	return rec.History(), Result{Sorted: []float64{}}
}

func span(lo, hi int) []int {
	if hi < lo {
		return []int{}
	}
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}

func formatValues(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmtNum(x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func fmtNum(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
