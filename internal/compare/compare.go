// Package compare times plain algorithm variants on the same input.
package compare

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/san-kum/algoviz/internal/problem"
	"github.com/san-kum/algoviz/internal/trace"
)

var ErrNoAlgorithms = errors.New("compare: no algorithms given")

type Func func(p problem.Problem) trace.Result

type Entry struct {
	Name    string
	Result  trace.Result
	Elapsed time.Duration
}

// Millis is the elapsed time in fractional milliseconds.
func (e Entry) Millis() float64 {
	return float64(e.Elapsed.Microseconds()) / 1000
}

// Run executes each algorithm once, sequentially, on its own copy of input
// and returns the entries fastest first. Cancellation is checked between
// algorithms; entries finished so far are returned with the error.
func Run(ctx context.Context, algorithms map[string]Func, input problem.Problem) ([]Entry, error) {
	if len(algorithms) == 0 {
		return nil, ErrNoAlgorithms
	}
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			rank(entries)
			return entries, fmt.Errorf("compare stopped before %s: %w", name, err)
		}
		own := input.Clone()
		start := time.Now()
		res := algorithms[name](own)
		entries = append(entries, Entry{Name: name, Result: res, Elapsed: time.Since(start)})
	}
	rank(entries)
	return entries, nil
}

func rank(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Elapsed < entries[j].Elapsed
	})
}
