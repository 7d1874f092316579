package problem

import (
	"fmt"
	"math/rand"
)

// Range bounds generated numbers and record values, inclusive.
type Range struct {
	Min int
	Max int
}

func (r Range) pick(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// GenerateOptions tunes random instances. Zero values fall back to defaults.
type GenerateOptions struct {
	Values   Range
	Capacity float64
}

var DefaultRange = Range{Min: 1, Max: 99}

// Generate builds a random problem of the given size. The same rng state
// always yields the same problem.
func Generate(kind Kind, size int, rng *rand.Rand, opts GenerateOptions) (Problem, error) {
	if size < 0 {
		return Problem{}, invalid("size", "must be >= 0, got %d", size)
	}
	values := opts.Values
	if values == (Range{}) {
		values = DefaultRange
	}

	p := Problem{Kind: kind}
	switch kind {
	case KindNumbers:
		p.Numbers = make([]float64, size)
		for i := range p.Numbers {
			p.Numbers[i] = float64(values.pick(rng))
		}
	case KindJobs:
		maxDeadline := size/2 + 1
		for i := 0; i < size; i++ {
			p.Jobs = append(p.Jobs, Job{
				ID:       i + 1,
				Deadline: 1 + rng.Intn(maxDeadline),
				Profit:   float64(Range{Min: 10, Max: 100}.pick(rng)),
			})
		}
	case KindKnapsack:
		total := 0.0
		for i := 0; i < size; i++ {
			it := Item{
				ID:     i + 1,
				Value:  float64(Range{Min: 10, Max: 100}.pick(rng)),
				Weight: float64(Range{Min: 1, Max: 30}.pick(rng)),
			}
			total += it.Weight
			p.Items = append(p.Items, it)
		}
		p.Capacity = opts.Capacity
		if p.Capacity <= 0 {
			p.Capacity = float64(int(total / 2))
		}
	case KindActivities:
		for i := 0; i < size; i++ {
			start := float64(rng.Intn(2*size + 1))
			p.Activities = append(p.Activities, Activity{
				ID:     i + 1,
				Start:  start,
				Finish: start + float64(Range{Min: 1, Max: 5}.pick(rng)),
			})
		}
	case KindIntervals:
		for i := 0; i < size; i++ {
			start := float64(rng.Intn(2*size + 1))
			p.Intervals = append(p.Intervals, Interval{
				ID:    i + 1,
				Start: start,
				End:   start + float64(Range{Min: 1, Max: 6}.pick(rng)),
			})
		}
	default:
		return Problem{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return p, nil
}
