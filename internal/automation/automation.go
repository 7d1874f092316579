package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/problem"
	"github.com/san-kum/algoviz/internal/storage"
)

var ErrEmptyScenario = errors.New("automation: scenario has no steps")

// Scenario is a scripted list of algorithm runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. Input wins over Preset, and Preset over Size/Seed.
type ScenarioStep struct {
	Algorithm string  `yaml:"algorithm"`
	Preset    string  `yaml:"preset"`
	Input     string  `yaml:"input"`
	Size      int     `yaml:"size"`
	Seed      int64   `yaml:"seed"`
	Capacity  float64 `yaml:"capacity"`
	Save      bool    `yaml:"save"`
}

type StepResult struct {
	Step   int
	RunID  string
	Result *experiment.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyScenario, path)
	}
	return &scenario, nil
}

// Runner executes scenarios. Store may be nil when no step saves.
type Runner struct {
	Registry *experiment.Registry
	Store    *storage.Store
	Log      *logging.Logger
}

// RunScenario executes every step in order and stops at the first failure,
// returning the results gathered so far.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	log := r.logger().With("scenario", scenario.Name)
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		log.Info("running step", "step", i+1, "of", len(scenario.Steps), "algorithm", step.Algorithm)

		cfg, err := stepConfig(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		alg, err := r.Registry.Get(cfg.Algorithm)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(alg, r.Registry.DefaultMetrics(alg.Name)); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: i + 1, Result: result}
		if step.Save {
			if r.Store == nil {
				return results, fmt.Errorf("step %d: save requested without a run store", i+1)
			}
			if sr.RunID, err = r.Store.Save(alg.Visualizer, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			log.Info("run saved", "step", i+1, "run_id", sr.RunID)
		}
		results = append(results, sr)
	}

	return results, nil
}

func stepConfig(step ScenarioStep) (experiment.Config, error) {
	cfg := experiment.Config{
		Algorithm: step.Algorithm,
		Input:     step.Input,
		Size:      step.Size,
		Seed:      step.Seed,
		Capacity:  step.Capacity,
	}
	if step.Input == "" && step.Preset != "" {
		p := config.GetPreset(step.Algorithm, step.Preset)
		if p == nil {
			return cfg, fmt.Errorf("unknown preset %s/%s", step.Algorithm, step.Preset)
		}
		cfg.Input, cfg.Size, cfg.Seed = p.Input, p.Size, p.Seed
	}
	if cfg.Input == "" && cfg.Size == 0 {
		cfg.Size = config.DefaultSize
	}
	return cfg, nil
}

func (r *Runner) logger() *logging.Logger {
	if r.Log == nil {
		return logging.Nop()
	}
	return r.Log
}

// SizeSweep runs one algorithm on random inputs of growing size to show how
// its step counts scale.
type SizeSweep struct {
	Algorithm string
	MinSize   int
	MaxSize   int
	NumSteps  int
	Seed      int64
}

type SweepResult struct {
	Size    int
	Steps   int
	Metrics map[string]float64
}

func (r *Runner) RunSweep(ctx context.Context, sweep *SizeSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 || sweep.MaxSize < sweep.MinSize || sweep.MinSize < 0 {
		return nil, fmt.Errorf("%w: sweep needs 0 <= min <= max and at least 2 steps", problem.ErrValidation)
	}
	alg, err := r.Registry.Get(sweep.Algorithm)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	sizeStep := float64(sweep.MaxSize-sweep.MinSize) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		size := sweep.MinSize + int(float64(i)*sizeStep+0.5)

		exp := experiment.New(experiment.Config{Algorithm: alg.Name, Size: size, Seed: sweep.Seed})
		if err := exp.Setup(alg, r.Registry.DefaultMetrics(alg.Name)); err != nil {
			return nil, err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{Size: size, Steps: result.History.Len(), Metrics: result.Metrics})
		r.logger().Debug("sweep point", "algorithm", alg.Name, "size", size, "steps", result.History.Len())
	}

	return results, nil
}

// Column extracts one metric across a sweep, in size order.
func Column(results []SweepResult, metric string) []float64 {
	out := make([]float64, len(results))
	for i, r := range results {
		out[i] = r.Metrics[metric]
	}
	return out
}
