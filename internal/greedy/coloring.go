package greedy

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/san-kum/algoviz/internal/problem"
	"github.com/san-kum/algoviz/internal/trace"
)

type ColoringResult struct {
	// Colors maps interval id to room.
	Colors   map[int]int `json:"colors"`
	MaxRooms int         `json:"max_rooms"`
}

func (r ColoringResult) Summary() string {
	return fmt.Sprintf("%d intervals fit in %d rooms", len(r.Colors), r.MaxRooms)
}

// buildEvents returns a start and an end event per interval, in input order.
func buildEvents(ivs []problem.Interval) []trace.Event {
	events := make([]trace.Event, 0, 2*len(ivs))
	for _, iv := range ivs {
		events = append(events,
			trace.Event{Time: iv.Start, IntervalID: iv.ID},
			trace.Event{Time: iv.End, IntervalID: iv.ID, End: true})
	}
	return events
}

// sortEvents orders events by time. At equal times end events come first so
// a room freed at t can be reused by a start at t.
func sortEvents(events []trace.Event) {
	sort.SliceStable(events, func(i, k int) bool {
		a, b := events[i], events[k]
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.End && !b.End
	})
}

func sweepEvents(ivs []problem.Interval) []trace.Event {
	events := buildEvents(ivs)
	sortEvents(events)
	return events
}

func lowestFree(inUse []bool) int {
	for c, used := range inUse {
		if !used {
			return c
		}
	}
	return len(inUse)
}

// Coloring assigns each interval the lowest free room with a sweep line.
// The number of rooms used equals the maximum overlap.
func Coloring(input []problem.Interval) (*trace.History, ColoringResult) {
	r := newRun("coloring")
	if len(input) == 0 {
		return r.empty(&trace.Coloring{Intervals: []problem.Interval{}, Events: []trace.Event{}, CurrentEvent: -1, Colors: map[int]int{}, InUse: []bool{}}, "intervals"),
			ColoringResult{Colors: map[int]int{}}
	}

	ivs := slices.Clone(input)
	st := &trace.Coloring{
		Intervals:    ivs,
		Events:       []trace.Event{},
		CurrentEvent: -1,
		Colors:       map[int]int{},
		InUse:        []bool{},
	}
	st.Events = buildEvents(ivs)
	r.record(trace.LabelSetup, st, "events", "%d intervals, create a start and an end event for each", len(ivs))

	sortEvents(st.Events)
	r.record(trace.LabelSort, st, "sort", "sort %d events by time, ends before starts", len(st.Events))

	for i, ev := range st.Events {
		st.CurrentEvent = i
		if ev.End {
			c, ok := st.Colors[ev.IntervalID]
			if !ok {
				// zero-length interval: its end sorts before its start
				r.record(trace.LabelSkip, st, "", "interval %d is empty, skip it", ev.IntervalID)
				continue
			}
			st.InUse[c] = false
			st.Active--
			r.record(trace.LabelFree, st, "free", "interval %d ends at %s, free room %d", ev.IntervalID, fmtNum(ev.Time), c)
			continue
		}
		c := lowestFree(st.InUse)
		if c == len(st.InUse) {
			st.InUse = append(st.InUse, false)
		}
		st.InUse[c] = true
		st.Colors[ev.IntervalID] = c
		st.Active++
		st.MaxRooms = max(st.MaxRooms, st.Active)
		r.record(trace.LabelAssign, st, "assign", "interval %d starts at %s, assign room %d", ev.IntervalID, fmtNum(ev.Time), c)
	}

	res := ColoringResult{Colors: maps.Clone(st.Colors), MaxRooms: st.MaxRooms}
	st.CurrentEvent = -1
	r.record(trace.LabelResult, st, "result", "%s", res.Summary())
	return r.rec.History(), res
}
