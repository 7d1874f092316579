// Package problem defines the inputs the visualizers operate on: plain number
// lists for the sorts and Kadane's scan, and record lists for the greedy
// problems. It parses user text, validates it and generates seeded random
// instances. Nothing in this package records traces.
package problem

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind identifies the shape of a problem.
type Kind string

const (
	KindNumbers    Kind = "numbers"
	KindJobs       Kind = "jobs"
	KindKnapsack   Kind = "knapsack"
	KindActivities Kind = "activities"
	KindIntervals  Kind = "intervals"
)

// Kinds lists every supported kind in display order.
func Kinds() []Kind {
	return []Kind{KindNumbers, KindJobs, KindKnapsack, KindActivities, KindIntervals}
}

type Job struct {
	ID       int     `json:"id" yaml:"id"`
	Deadline int     `json:"deadline" yaml:"deadline"`
	Profit   float64 `json:"profit" yaml:"profit"`
}

// SlotCount is the number of unit time slots a schedule of jobs needs: the
// latest deadline, capped at one slot per job since no more can be filled.
func SlotCount(jobs []Job) int {
	m := 0
	for _, j := range jobs {
		m = max(m, j.Deadline)
	}
	return min(m, len(jobs))
}

type Item struct {
	ID     int     `json:"id" yaml:"id"`
	Value  float64 `json:"value" yaml:"value"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Ratio is value per unit of weight. Weight is validated to be positive.
func (it Item) Ratio() float64 {
	return it.Value / it.Weight
}

type Activity struct {
	ID     int     `json:"id" yaml:"id"`
	Start  float64 `json:"start" yaml:"start"`
	Finish float64 `json:"finish" yaml:"finish"`
}

type Interval struct {
	ID    int     `json:"id" yaml:"id"`
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Overlaps reports whether two half-open intervals share any instant.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Selection is an item taken into the knapsack, possibly partially.
type Selection struct {
	Item     Item    `json:"item"`
	Fraction float64 `json:"fraction"`
}

func (s Selection) Value() float64  { return s.Item.Value * s.Fraction }
func (s Selection) Weight() float64 { return s.Item.Weight * s.Fraction }

// Problem is a tagged container: only the fields matching Kind are set.
type Problem struct {
	Kind       Kind       `json:"kind" yaml:"kind"`
	Numbers    []float64  `json:"numbers,omitempty" yaml:"numbers,omitempty"`
	Jobs       []Job      `json:"jobs,omitempty" yaml:"jobs,omitempty"`
	Items      []Item     `json:"items,omitempty" yaml:"items,omitempty"`
	Capacity   float64    `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	Activities []Activity `json:"activities,omitempty" yaml:"activities,omitempty"`
	Intervals  []Interval `json:"intervals,omitempty" yaml:"intervals,omitempty"`
}

func Numbers(values ...float64) Problem {
	return Problem{Kind: KindNumbers, Numbers: append([]float64(nil), values...)}
}

// Clone returns a structural copy; no slice is shared with p.
func (p Problem) Clone() Problem {
	return Problem{
		Kind:       p.Kind,
		Numbers:    cloneSlice(p.Numbers),
		Jobs:       cloneSlice(p.Jobs),
		Items:      cloneSlice(p.Items),
		Capacity:   p.Capacity,
		Activities: cloneSlice(p.Activities),
		Intervals:  cloneSlice(p.Intervals),
	}
}

// Len is the number of elements the algorithm will iterate over.
func (p Problem) Len() int {
	switch p.Kind {
	case KindNumbers:
		return len(p.Numbers)
	case KindJobs:
		return len(p.Jobs)
	case KindKnapsack:
		return len(p.Items)
	case KindActivities:
		return len(p.Activities)
	case KindIntervals:
		return len(p.Intervals)
	}
	return 0
}

func (p Problem) Empty() bool { return p.Len() == 0 }

// Format renders p in the text form accepted by Parse for the same kind.
func Format(p Problem) (string, error) {
	switch p.Kind {
	case KindNumbers:
		parts := make([]string, len(p.Numbers))
		for i, v := range p.Numbers {
			parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		return strings.Join(parts, ", "), nil
	case KindJobs:
		return marshalYAML(p.Jobs)
	case KindKnapsack:
		return marshalYAML(struct {
			Capacity float64 `yaml:"capacity"`
			Items    []Item  `yaml:"items"`
		}{p.Capacity, p.Items})
	case KindActivities:
		return marshalYAML(p.Activities)
	case KindIntervals:
		return marshalYAML(p.Intervals)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, p.Kind)
}

func marshalYAML(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	c := make([]T, len(s))
	copy(c, s)
	return c
}
