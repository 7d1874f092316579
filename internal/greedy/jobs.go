package greedy

import (
	"fmt"
	"slices"
	"sort"

	"github.com/san-kum/algoviz/internal/problem"
	"github.com/san-kum/algoviz/internal/trace"
)

type JobsResult struct {
	// Scheduled jobs in slot order.
	Scheduled   []problem.Job `json:"scheduled"`
	TotalProfit float64       `json:"total_profit"`
}

func (r JobsResult) Summary() string {
	if len(r.Scheduled) == 0 {
		return "no jobs scheduled"
	}
	ids := make([]int, len(r.Scheduled))
	for i, j := range r.Scheduled {
		ids[i] = j.ID
	}
	return fmt.Sprintf("scheduled jobs %v for total profit %s", ids, fmtNum(r.TotalProfit))
}

// byProfit sorts jobs by profit descending. Equal profits keep input order.
func byProfit(jobs []problem.Job) {
	sort.SliceStable(jobs, func(i, k int) bool { return jobs[i].Profit > jobs[k].Profit })
}

// Jobs sequences unit-time jobs to maximise profit. Jobs are taken in profit
// order and each is placed in the latest free slot before its deadline.
func Jobs(input []problem.Job) (*trace.History, JobsResult) {
	r := newRun("jobs")
	if len(input) == 0 {
		return r.empty(&trace.Schedule{Jobs: []problem.Job{}, Slots: []int{}, Current: -1, TriedSlot: -1}, "jobs"),
			JobsResult{Scheduled: []problem.Job{}}
	}

	jobs := slices.Clone(input)
	slots := make([]int, problem.SlotCount(jobs))
	owner := make([]int, len(slots))
	for i := range slots {
		slots[i] = -1
		owner[i] = -1
	}
	st := &trace.Schedule{Jobs: jobs, Slots: slots, Current: -1, TriedSlot: -1}
	r.record(trace.LabelSetup, st, "", "%d jobs, %d time slots", len(jobs), len(slots))

	byProfit(jobs)
	r.record(trace.LabelSort, st, "sort", "sort jobs by profit, highest first")

	for i, job := range jobs {
		st.Current, st.TriedSlot = i, -1
		r.record(trace.LabelConsider, st, "consider", "consider job %d (profit %s, deadline %d)", job.ID, fmtNum(job.Profit), job.Deadline)
		placed := false
		for s := min(len(slots), job.Deadline) - 1; s >= 0; s-- {
			st.TriedSlot = s
			if slots[s] != -1 {
				r.record(trace.LabelCompare, st, "try", "slot %d is taken by job %d", s+1, slots[s])
				continue
			}
			slots[s], owner[s] = job.ID, i
			st.TotalProfit += job.Profit
			r.record(trace.LabelPlace, st, "place", "place job %d in slot %d, profit now %s", job.ID, s+1, fmtNum(st.TotalProfit))
			placed = true
			break
		}
		if !placed {
			r.record(trace.LabelReject, st, "reject", "no free slot before deadline %d, reject job %d", job.Deadline, job.ID)
		}
	}

	res := JobsResult{Scheduled: []problem.Job{}, TotalProfit: st.TotalProfit}
	for _, o := range owner {
		if o >= 0 {
			res.Scheduled = append(res.Scheduled, jobs[o])
		}
	}
	st.Current, st.TriedSlot = -1, -1
	r.record(trace.LabelResult, st, "result", "%s", res.Summary())
	return r.rec.History(), res
}
