// Package greedy implements the greedy and scan algorithms: job sequencing,
// fractional knapsack, activity selection, interval coloring and Kadane's
// maximum subarray. Traced variants record every decision; plain variants
// compute the same result without a history.
package greedy

import (
	"strconv"

	"github.com/san-kum/algoviz/internal/listing"
	"github.com/san-kum/algoviz/internal/trace"
)

type run struct {
	rec *trace.Recorder
	src *listing.Listing
}

func newRun(name string) *run {
	src, _ := listing.For(name)
	return &run{rec: trace.NewRecorder(name), src: src}
}

func (r *run) record(label trace.Label, p trace.Payload, tag string, format string, args ...any) {
	var lines []int
	if tag != "" {
		lines = r.src.Tag(tag)
	}
	r.rec.Recordf(label, p, lines, format, args...)
}

func (r *run) empty(p trace.Payload, what string) *trace.History {
	r.rec.Record(trace.LabelEmpty, p, nil, "no "+what+" given, nothing to do")
	return r.rec.History()
}

func fmtNum(x float64) string {
	return strconv.FormatFloat(x, 'g', 6, 64)
}
