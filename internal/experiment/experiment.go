package experiment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/problem"
	"github.com/san-kum/algoviz/internal/trace"
)

var ErrNotSetup = errors.New("experiment: not set up")

type Config struct {
	Algorithm string
	// Input is parsed for the algorithm's kind when set; otherwise a
	// problem of Size is generated from Seed.
	Input    string
	Size     int
	Seed     int64
	Values   problem.Range
	Capacity float64
}

type Result struct {
	Algorithm string
	Seed      int64
	Problem   problem.Problem
	History   *trace.History
	Outcome   trace.Result
	Metrics   map[string]float64
	Elapsed   time.Duration
}

type Experiment struct {
	cfg        Config
	alg        *Algorithm
	metrics    []metrics.Metric
	randSource *rand.Rand
}

func New(cfg Config) *Experiment {
	return &Experiment{
		cfg:        cfg,
		randSource: rand.New(rand.NewSource(cfg.Seed)),
	}
}

func (e *Experiment) Setup(alg Algorithm, ms []metrics.Metric) error {
	if alg.Trace == nil {
		return fmt.Errorf("%w: %s has no trace function", ErrUnknownAlgorithm, alg.Name)
	}
	e.alg = &alg
	e.metrics = ms
	return nil
}

// Problem parses the configured input or generates one. Generation draws
// from the experiment's seeded source, so call it once per run.
func (e *Experiment) Problem() (problem.Problem, error) {
	if e.alg == nil {
		return problem.Problem{}, ErrNotSetup
	}
	if strings.TrimSpace(e.cfg.Input) != "" {
		return problem.Parse(e.alg.Kind, e.cfg.Input)
	}
	return problem.Generate(e.alg.Kind, e.cfg.Size, e.randSource, problem.GenerateOptions{
		Values:   e.cfg.Values,
		Capacity: e.cfg.Capacity,
	})
}

// Run builds the problem and records the full history before returning.
// Invalid input fails before the algorithm runs.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.alg == nil {
		return nil, ErrNotSetup
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := e.Problem()
	if err != nil {
		return nil, err
	}
	return e.RunProblem(ctx, p)
}

// RunProblem traces an already built problem. The caller's problem is not modified.
func (e *Experiment) RunProblem(ctx context.Context, p problem.Problem) (*Result, error) {
	if e.alg == nil {
		return nil, ErrNotSetup
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	h, outcome := e.alg.Trace(p.Clone())
	elapsed := time.Since(start)

	return &Result{
		Algorithm: e.alg.Name,
		Seed:      e.cfg.Seed,
		Problem:   p,
		History:   h,
		Outcome:   outcome,
		Metrics:   metrics.Summarize(h, e.metrics...),
		Elapsed:   elapsed,
	}, nil
}

// Ensemble runs one algorithm over a range of seeds in parallel.
type Ensemble struct {
	registry  *Registry
	base      Config
	numRuns   int
	seedStart int64
}

func NewEnsemble(r *Registry, base Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{registry: r, base: base, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	alg, err := e.registry.Get(e.base.Algorithm)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := e.base
			cfg.Seed = e.seedStart + int64(idx)
			cfg.Input = ""

			exp := New(cfg)
			// metrics are stateful, so each run gets its own set
			if errs[idx] = exp.Setup(alg, e.registry.DefaultMetrics(alg.Name)); errs[idx] != nil {
				return
			}
			results[idx], errs[idx] = exp.Run(ctx)
		}(i)
	}

	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return results, nil
}

// Mean averages each metric over results.
func Mean(results []*Result) map[string]float64 {
	out := make(map[string]float64)
	if len(results) == 0 {
		return out
	}
	for _, r := range results {
		for k, v := range r.Metrics {
			out[k] += v
		}
	}
	for k := range out {
		out[k] /= float64(len(results))
	}
	return out
}
