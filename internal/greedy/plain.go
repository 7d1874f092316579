package greedy

import (
	"slices"

	"github.com/san-kum/algoviz/internal/problem"
)

func JobsPlain(input []problem.Job) JobsResult {
	jobs := slices.Clone(input)
	byProfit(jobs)
	owner := make([]int, problem.SlotCount(jobs))
	for i := range owner {
		owner[i] = -1
	}
	res := JobsResult{Scheduled: []problem.Job{}}
	for i, job := range jobs {
		for s := min(len(owner), job.Deadline) - 1; s >= 0; s-- {
			if owner[s] == -1 {
				owner[s] = i
				res.TotalProfit += job.Profit
				break
			}
		}
	}
	for _, o := range owner {
		if o >= 0 {
			res.Scheduled = append(res.Scheduled, jobs[o])
		}
	}
	return res
}

func KnapsackPlain(input []problem.Item, capacity float64) KnapsackResult {
	items := slices.Clone(input)
	byRatio(items)
	res := KnapsackResult{Selected: []problem.Selection{}}
	remaining := capacity
	for _, it := range items {
		if remaining <= 0 {
			break
		}
		if it.Weight <= remaining {
			res.Selected = append(res.Selected, problem.Selection{Item: it, Fraction: 1})
			res.TotalValue += it.Value
			remaining -= it.Weight
			continue
		}
		f := remaining / it.Weight
		res.Selected = append(res.Selected, problem.Selection{Item: it, Fraction: f})
		res.TotalValue += it.Value * f
		remaining = 0
	}
	return res
}

func ActivitiesPlain(input []problem.Activity) ActivitiesResult {
	acts := slices.Clone(input)
	byFinish(acts)
	res := ActivitiesResult{Selected: []problem.Activity{}}
	for i, a := range acts {
		if i == 0 || a.Start >= res.Selected[len(res.Selected)-1].Finish {
			res.Selected = append(res.Selected, a)
		}
	}
	return res
}

func ColoringPlain(input []problem.Interval) ColoringResult {
	res := ColoringResult{Colors: map[int]int{}}
	var inUse []bool
	active := 0
	for _, ev := range sweepEvents(input) {
		if ev.End {
			if c, ok := res.Colors[ev.IntervalID]; ok {
				inUse[c] = false
				active--
			}
			continue
		}
		c := lowestFree(inUse)
		if c == len(inUse) {
			inUse = append(inUse, false)
		}
		inUse[c] = true
		res.Colors[ev.IntervalID] = c
		active++
		res.MaxRooms = max(res.MaxRooms, active)
	}
	return res
}

func KadanePlain(nums []float64) SubarrayResult {
	if len(nums) == 0 {
		return SubarrayResult{Start: -1, End: -1}
	}
	cur, best := nums[0], nums[0]
	start, bs, be := 0, 0, 0
	for i := 1; i < len(nums); i++ {
		if cur < 0 {
			cur, start = nums[i], i
		} else {
			cur += nums[i]
		}
		if cur > best {
			best, bs, be = cur, start, i
		}
	}
	return SubarrayResult{MaxSum: best, Start: bs, End: be}
}
