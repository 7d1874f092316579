package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/algoviz/internal/compare"
	"github.com/san-kum/algoviz/internal/greedy"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/problem"
	"github.com/san-kum/algoviz/internal/sorting"
	"github.com/san-kum/algoviz/internal/trace"
)

var ErrUnknownAlgorithm = errors.New("experiment: unknown algorithm")

type Visualizer string

const (
	Sorting Visualizer = "sorting"
	Greedy  Visualizer = "greedy"
)

type TraceFunc func(p problem.Problem) (*trace.History, trace.Result)

type Algorithm struct {
	Name       string
	Title      string
	Visualizer Visualizer
	Kind       problem.Kind
	// Score is the payload scalar reported as the algorithm's outcome, if any.
	Score string
	Trace TraceFunc
	Plain compare.Func
}

type Registry struct {
	algorithms map[string]Algorithm
	order      []string
}

func NewRegistry() *Registry {
	r := &Registry{algorithms: make(map[string]Algorithm)}

	r.add(Algorithm{Name: "quick", Title: "Quick Sort", Score: "inversions", Trace: sortTrace(sorting.Quick), Plain: sortPlain(sorting.QuickPlain)})
	r.add(Algorithm{Name: "merge", Title: "Merge Sort", Score: "inversions", Trace: sortTrace(sorting.Merge), Plain: sortPlain(sorting.MergePlain)})
	r.add(Algorithm{Name: "heap", Title: "Heap Sort", Score: "inversions", Trace: sortTrace(sorting.Heap), Plain: sortPlain(sorting.HeapPlain)})
	r.add(Algorithm{Name: "bubble", Title: "Bubble Sort", Score: "inversions", Trace: sortTrace(sorting.Bubble), Plain: sortPlain(sorting.BubblePlain)})
	r.add(Algorithm{Name: "insertion", Title: "Insertion Sort", Score: "inversions", Trace: sortTrace(sorting.Insertion), Plain: sortPlain(sorting.InsertionPlain)})

	r.add(Algorithm{
		Name: "jobs", Title: "Job Scheduling", Visualizer: Greedy, Kind: problem.KindJobs, Score: "total_profit",
		Trace: func(p problem.Problem) (*trace.History, trace.Result) { return greedy.Jobs(p.Jobs) },
		Plain: func(p problem.Problem) trace.Result { return greedy.JobsPlain(p.Jobs) },
	})
	r.add(Algorithm{
		Name: "knapsack", Title: "Fractional Knapsack", Visualizer: Greedy, Kind: problem.KindKnapsack, Score: "total_value",
		Trace: func(p problem.Problem) (*trace.History, trace.Result) { return greedy.Knapsack(p.Items, p.Capacity) },
		Plain: func(p problem.Problem) trace.Result { return greedy.KnapsackPlain(p.Items, p.Capacity) },
	})
	r.add(Algorithm{
		Name: "activities", Title: "Activity Selection", Visualizer: Greedy, Kind: problem.KindActivities, Score: "selected",
		Trace: func(p problem.Problem) (*trace.History, trace.Result) { return greedy.Activities(p.Activities) },
		Plain: func(p problem.Problem) trace.Result { return greedy.ActivitiesPlain(p.Activities) },
	})
	r.add(Algorithm{
		Name: "coloring", Title: "Interval Coloring", Visualizer: Greedy, Kind: problem.KindIntervals, Score: "max_rooms",
		Trace: func(p problem.Problem) (*trace.History, trace.Result) { return greedy.Coloring(p.Intervals) },
		Plain: func(p problem.Problem) trace.Result { return greedy.ColoringPlain(p.Intervals) },
	})
	r.add(Algorithm{
		Name: "kadane", Title: "Maximum Subarray", Visualizer: Greedy, Kind: problem.KindNumbers, Score: "max_sum",
		Trace: func(p problem.Problem) (*trace.History, trace.Result) { return greedy.Kadane(p.Numbers) },
		Plain: func(p problem.Problem) trace.Result { return greedy.KadanePlain(p.Numbers) },
	})

	return r
}

func (r *Registry) add(a Algorithm) {
	if a.Visualizer == "" {
		a.Visualizer = Sorting
		a.Kind = problem.KindNumbers
	}
	r.algorithms[a.Name] = a
	r.order = append(r.order, a.Name)
}

func sortTrace(fn sorting.Func) TraceFunc {
	return func(p problem.Problem) (*trace.History, trace.Result) { return fn(p.Numbers) }
}

func sortPlain(fn func([]float64) sorting.Result) compare.Func {
	return func(p problem.Problem) trace.Result { return fn(p.Numbers) }
}

func (r *Registry) Get(name string) (Algorithm, error) {
	a, ok := r.algorithms[name]
	if !ok {
		return Algorithm{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownAlgorithm, name, r.sortedNames())
	}
	return a, nil
}

// List returns algorithms in registration order, optionally limited to one visualizer.
func (r *Registry) List(vis Visualizer) []Algorithm {
	out := make([]Algorithm, 0, len(r.order))
	for _, name := range r.order {
		a := r.algorithms[name]
		if vis == "" || a.Visualizer == vis {
			out = append(out, a)
		}
	}
	return out
}

func (r *Registry) ListNames() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

func (r *Registry) Visualizers() []Visualizer {
	return []Visualizer{Sorting, Greedy}
}

// PlainFuncs collects the plain variants of the named algorithms. All of them
// must take the same kind of input.
func (r *Registry) PlainFuncs(names ...string) (map[string]compare.Func, error) {
	out := make(map[string]compare.Func, len(names))
	var kind problem.Kind
	for _, name := range names {
		a, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		if kind != "" && a.Kind != kind {
			return nil, fmt.Errorf("cannot compare %s (%s input) with %s input", name, a.Kind, kind)
		}
		kind = a.Kind
		out[name] = a.Plain
	}
	return out, nil
}

func (r *Registry) DefaultMetrics(name string) []metrics.Metric {
	ms := metrics.Counters()
	if a, ok := r.algorithms[name]; ok && a.Score != "" {
		if a.Visualizer == Sorting {
			ms = append(ms, metrics.NewPeak("peak_"+a.Score, a.Score))
		} else {
			ms = append(ms, metrics.NewFinal(a.Score, a.Score))
		}
	}
	return ms
}

func (r *Registry) sortedNames() []string {
	names := r.ListNames()
	sort.Strings(names)
	return names
}
