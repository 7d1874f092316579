package greedy

import (
	"fmt"
	"slices"
	"sort"

	"github.com/san-kum/algoviz/internal/problem"
	"github.com/san-kum/algoviz/internal/trace"
)

type ActivitiesResult struct {
	Selected []problem.Activity `json:"selected"`
}

func (r ActivitiesResult) Summary() string {
	ids := make([]int, len(r.Selected))
	for i, a := range r.Selected {
		ids[i] = a.ID
	}
	return fmt.Sprintf("selected %d activities %v", len(ids), ids)
}

func byFinish(acts []problem.Activity) {
	sort.SliceStable(acts, func(i, k int) bool { return acts[i].Finish < acts[k].Finish })
}

// Activities selects a maximum set of non-overlapping activities by always
// taking the compatible activity that finishes first.
func Activities(input []problem.Activity) (*trace.History, ActivitiesResult) {
	r := newRun("activities")
	if len(input) == 0 {
		return r.empty(&trace.Activities{Activities: []problem.Activity{}, Selected: []int{}, Current: -1}, "activities"),
			ActivitiesResult{Selected: []problem.Activity{}}
	}

	acts := slices.Clone(input)
	st := &trace.Activities{Activities: acts, Selected: []int{}, Current: -1}
	r.record(trace.LabelSetup, st, "", "%d activities", len(acts))

	byFinish(acts)
	r.record(trace.LabelSort, st, "sort", "sort activities by finish time")

	st.Current = 0
	st.Selected = append(st.Selected, 0)
	st.LastFinish = acts[0].Finish
	r.record(trace.LabelSelect, st, "first", "activity %d finishes first, select it", acts[0].ID)

	for i := 1; i < len(acts); i++ {
		a := acts[i]
		st.Current = i
		r.record(trace.LabelConsider, st, "consider", "does activity %d start (%s) at or after %s?", a.ID, fmtNum(a.Start), fmtNum(st.LastFinish))
		if a.Start >= st.LastFinish {
			st.Selected = append(st.Selected, i)
			st.LastFinish = a.Finish
			r.record(trace.LabelSelect, st, "select", "select activity %d, next must start at or after %s", a.ID, fmtNum(a.Finish))
		} else {
			r.record(trace.LabelReject, st, "reject", "activity %d overlaps the last selection, reject it", a.ID)
		}
	}

	res := ActivitiesResult{Selected: make([]problem.Activity, len(st.Selected))}
	for i, pos := range st.Selected {
		res.Selected[i] = acts[pos]
	}
	st.Current = -1
	r.record(trace.LabelResult, st, "result", "%s", res.Summary())
	return r.rec.History(), res
}
