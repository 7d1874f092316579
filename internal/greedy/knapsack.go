package greedy

import (
	"fmt"
	"slices"
	"sort"

	"github.com/san-kum/algoviz/internal/problem"
	"github.com/san-kum/algoviz/internal/trace"
)

type KnapsackResult struct {
	Selected   []problem.Selection `json:"selected"`
	TotalValue float64             `json:"total_value"`
}

func (r KnapsackResult) Summary() string {
	return fmt.Sprintf("took %d items for total value %s", len(r.Selected), fmtNum(r.TotalValue))
}

func byRatio(items []problem.Item) {
	sort.SliceStable(items, func(i, k int) bool { return items[i].Ratio() > items[k].Ratio() })
}

// Knapsack fills capacity greedily by value per weight, taking whole items
// while they fit and a fraction of the first item that does not.
func Knapsack(input []problem.Item, capacity float64) (*trace.History, KnapsackResult) {
	r := newRun("knapsack")
	if len(input) == 0 {
		return r.empty(&trace.Knapsack{Items: []problem.Item{}, Ratios: []float64{}, Current: -1, Capacity: capacity, Remaining: capacity}, "items"),
			KnapsackResult{Selected: []problem.Selection{}}
	}

	items := slices.Clone(input)
	st := &trace.Knapsack{
		Items:     items,
		Ratios:    make([]float64, len(items)),
		Current:   -1,
		Taken:     []problem.Selection{},
		Capacity:  capacity,
		Remaining: capacity,
	}
	r.record(trace.LabelSetup, st, "", "%d items, capacity %s", len(items), fmtNum(capacity))
	for i, it := range items {
		st.Current = i
		st.Ratios[i] = it.Ratio()
		r.record(trace.LabelSetup, st, "", "item %d: ratio %s / %s = %s", it.ID, fmtNum(it.Value), fmtNum(it.Weight), fmtNum(st.Ratios[i]))
	}

	byRatio(items)
	for i, it := range items {
		st.Ratios[i] = it.Ratio()
	}
	st.Current = -1
	r.record(trace.LabelSort, st, "sort", "sort items by ratio, highest first")

	for i, it := range items {
		st.Current = i
		r.record(trace.LabelConsider, st, "consider", "consider item %d (value %s, weight %s)", it.ID, fmtNum(it.Value), fmtNum(it.Weight))
		switch {
		case st.Remaining <= 0:
			r.record(trace.LabelSkip, st, "skip", "knapsack is full, skip item %d", it.ID)
		case it.Weight <= st.Remaining:
			st.Taken = append(st.Taken, problem.Selection{Item: it, Fraction: 1})
			st.Remaining -= it.Weight
			st.TotalValue += it.Value
			r.record(trace.LabelTake, st, "take", "take all of item %d, %s capacity left", it.ID, fmtNum(st.Remaining))
		default:
			f := st.Remaining / it.Weight
			st.Taken = append(st.Taken, problem.Selection{Item: it, Fraction: f})
			st.TotalValue += it.Value * f
			st.Remaining = 0
			r.record(trace.LabelPartial, st, "partial", "take %s%% of item %d, knapsack is full", fmtNum(f*100), it.ID)
		}
	}

	res := KnapsackResult{Selected: slices.Clone(st.Taken), TotalValue: st.TotalValue}
	st.Current = -1
	r.record(trace.LabelResult, st, "result", "%s", res.Summary())
	return r.rec.History(), res
}
