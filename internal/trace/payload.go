package trace

import (
	"maps"
	"slices"

	"github.com/san-kum/algoviz/internal/problem"
)

// Marker is the role an index plays in an Array step.
type Marker string

const (
	MarkComparing Marker = "comparing"
	MarkSwapping  Marker = "swapping"
	MarkPivot     Marker = "pivot"
	MarkMerging   Marker = "merging"
	MarkKey       Marker = "key"
	MarkSorted    Marker = "sorted"
	MarkRange     Marker = "range"
)

// Markers maps a role to the indices holding it. An absent role is not
// applicable to the step; a present role with no indices is applicable but empty.
type Markers map[Marker][]int

func (m Markers) Has(role Marker, index int) bool {
	return slices.Contains(m[role], index)
}

func (m Markers) clone() Markers {
	if m == nil {
		return nil
	}
	c := make(Markers, len(m))
	for k, v := range m {
		c[k] = slices.Clone(v)
	}
	return c
}

// Array is the working array of a comparison sort.
type Array struct {
	Values  []float64 `json:"values"`
	Markers Markers   `json:"markers,omitempty"`
}

func (*Array) Family() Family { return FamilySequence }
func (*Array) Kind() string   { return "array" }
func (*Array) sealed()        {}

func (a *Array) Clone() Payload {
	return &Array{Values: slices.Clone(a.Values), Markers: a.Markers.clone()}
}

func (a *Array) Scalars() map[string]float64 {
	return map[string]float64{
		"size":       float64(len(a.Values)),
		"inversions": float64(Inversions(a.Values)),
	}
}

// Inversions counts pairs i < j with v[i] > v[j]; zero means sorted.
func Inversions(v []float64) int {
	n := 0
	for i := range v {
		for j := i + 1; j < len(v); j++ {
			if v[i] > v[j] {
				n++
			}
		}
	}
	return n
}

// Subarray is the state of Kadane's maximum subarray scan.
type Subarray struct {
	Nums           []float64 `json:"nums"`
	Index          int       `json:"index"`
	CandidateStart int       `json:"candidate_start"`
	BestStart      int       `json:"best_start"`
	BestEnd        int       `json:"best_end"`
	CurrentSum     float64   `json:"current_sum"`
	MaxSum         float64   `json:"max_sum"`
}

func (*Subarray) Family() Family { return FamilySequence }
func (*Subarray) Kind() string   { return "subarray" }
func (*Subarray) sealed()        {}

func (s *Subarray) Clone() Payload {
	c := *s
	c.Nums = slices.Clone(s.Nums)
	return &c
}

func (s *Subarray) Scalars() map[string]float64 {
	return map[string]float64{
		"current_sum": s.CurrentSum,
		"max_sum":     s.MaxSum,
	}
}

// Schedule is the job sequencing state. Slots hold job ids, -1 when free.
type Schedule struct {
	Jobs        []problem.Job `json:"jobs"`
	Slots       []int         `json:"slots"`
	Current     int           `json:"current"`
	TriedSlot   int           `json:"tried_slot"`
	TotalProfit float64       `json:"total_profit"`
}

func (*Schedule) Family() Family { return FamilyInterval }
func (*Schedule) Kind() string   { return "schedule" }
func (*Schedule) sealed()        {}

func (s *Schedule) Clone() Payload {
	c := *s
	c.Jobs = slices.Clone(s.Jobs)
	c.Slots = slices.Clone(s.Slots)
	return &c
}

func (s *Schedule) Scalars() map[string]float64 {
	used := 0
	for _, id := range s.Slots {
		if id >= 0 {
			used++
		}
	}
	return map[string]float64{
		"total_profit": s.TotalProfit,
		"scheduled":    float64(used),
	}
}

// Knapsack is the fractional knapsack state. Ratios is parallel to Items.
type Knapsack struct {
	Items      []problem.Item      `json:"items"`
	Ratios     []float64           `json:"ratios"`
	Current    int                 `json:"current"`
	Taken      []problem.Selection `json:"taken"`
	Capacity   float64             `json:"capacity"`
	Remaining  float64             `json:"remaining"`
	TotalValue float64             `json:"total_value"`
}

func (*Knapsack) Family() Family { return FamilyInterval }
func (*Knapsack) Kind() string   { return "knapsack" }
func (*Knapsack) sealed()        {}

func (k *Knapsack) Clone() Payload {
	c := *k
	c.Items = slices.Clone(k.Items)
	c.Ratios = slices.Clone(k.Ratios)
	c.Taken = slices.Clone(k.Taken)
	return &c
}

func (k *Knapsack) Scalars() map[string]float64 {
	return map[string]float64{
		"remaining":   k.Remaining,
		"total_value": k.TotalValue,
	}
}

// Activities is the activity selection state. Selected holds positions in Activities.
type Activities struct {
	Activities []problem.Activity `json:"activities"`
	Selected   []int              `json:"selected"`
	Current    int                `json:"current"`
	LastFinish float64            `json:"last_finish"`
}

func (*Activities) Family() Family { return FamilyInterval }
func (*Activities) Kind() string   { return "activities" }
func (*Activities) sealed()        {}

func (a *Activities) Clone() Payload {
	c := *a
	c.Activities = slices.Clone(a.Activities)
	c.Selected = slices.Clone(a.Selected)
	return &c
}

func (a *Activities) Scalars() map[string]float64 {
	return map[string]float64{
		"selected":    float64(len(a.Selected)),
		"last_finish": a.LastFinish,
	}
}

// Event is one end of an interval on the sweep line.
type Event struct {
	Time       float64 `json:"time"`
	IntervalID int     `json:"interval_id"`
	End        bool    `json:"end"`
}

// Coloring is the sweep-line room allocation state. Colors maps interval id
// to room; InUse[c] reports whether room c is occupied.
type Coloring struct {
	Intervals    []problem.Interval `json:"intervals"`
	Events       []Event            `json:"events"`
	CurrentEvent int                `json:"current_event"`
	Colors       map[int]int        `json:"colors"`
	InUse        []bool             `json:"in_use"`
	Active       int                `json:"active"`
	MaxRooms     int                `json:"max_rooms"`
}

func (*Coloring) Family() Family { return FamilyEvent }
func (*Coloring) Kind() string   { return "coloring" }
func (*Coloring) sealed()        {}

func (c *Coloring) Clone() Payload {
	d := *c
	d.Intervals = slices.Clone(c.Intervals)
	d.Events = slices.Clone(c.Events)
	d.Colors = maps.Clone(c.Colors)
	d.InUse = slices.Clone(c.InUse)
	return &d
}

func (c *Coloring) Scalars() map[string]float64 {
	return map[string]float64{
		"active":    float64(c.Active),
		"max_rooms": float64(c.MaxRooms),
	}
}
