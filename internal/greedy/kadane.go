package greedy

import (
	"fmt"
	"slices"

	"github.com/san-kum/algoviz/internal/trace"
)

// SubarrayResult is the best contiguous span. Start and End are -1 for empty input.
type SubarrayResult struct {
	MaxSum float64 `json:"max_sum"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
}

func (r SubarrayResult) Summary() string {
	if r.Start < 0 {
		return "no numbers given"
	}
	return fmt.Sprintf("max sum %s over indices [%d, %d]", fmtNum(r.MaxSum), r.Start, r.End)
}

// Kadane finds the maximum sum contiguous subarray. Sums are seeded from the
// first element, so an all-negative input yields its largest element.
func Kadane(input []float64) (*trace.History, SubarrayResult) {
	r := newRun("kadane")
	if len(input) == 0 {
		return r.empty(&trace.Subarray{Nums: []float64{}, Index: -1, CandidateStart: -1, BestStart: -1, BestEnd: -1}, "numbers"),
			SubarrayResult{Start: -1, End: -1}
	}

	st := &trace.Subarray{
		Nums:       slices.Clone(input),
		CurrentSum: input[0],
		MaxSum:     input[0],
	}
	r.record(trace.LabelSetup, st, "setup", "start with %s as both running and best sum", fmtNum(input[0]))

	for i := 1; i < len(st.Nums); i++ {
		x := st.Nums[i]
		st.Index = i
		if st.CurrentSum < 0 {
			st.CurrentSum = x
			st.CandidateStart = i
			r.record(trace.LabelReset, st, "reset", "running sum is negative, restart at index %d with %s", i, fmtNum(x))
		} else {
			st.CurrentSum += x
			r.record(trace.LabelExtend, st, "extend", "add %s, running sum is %s", fmtNum(x), fmtNum(st.CurrentSum))
		}
		if st.CurrentSum > st.MaxSum {
			st.MaxSum = st.CurrentSum
			st.BestStart, st.BestEnd = st.CandidateStart, i
			r.record(trace.LabelBest, st, "best", "new best %s over [%d, %d]", fmtNum(st.MaxSum), st.BestStart, st.BestEnd)
		}
	}

	res := SubarrayResult{MaxSum: st.MaxSum, Start: st.BestStart, End: st.BestEnd}
	r.record(trace.LabelResult, st, "result", "%s", res.Summary())
	return r.rec.History(), res
}
