package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/greedy"
	"github.com/san-kum/algoviz/internal/problem"
	"github.com/san-kum/algoviz/internal/storage"
)

const scenarioYAML = `
name: tour
description: one of each family
steps:
  - algorithm: jobs
    preset: classic
    save: true
  - algorithm: insertion
    input: "5, 2, 4, 6, 1, 3"
  - algorithm: coloring
    size: 6
    seed: 9
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "tour" || len(sc.Steps) != 3 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	if !sc.Steps[0].Save || sc.Steps[0].Preset != "classic" {
		t.Errorf("first step not decoded: %+v", sc.Steps[0])
	}

	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); !errors.Is(err, ErrEmptyScenario) {
		t.Errorf("expected ErrEmptyScenario, got %v", err)
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	store := storage.New(t.TempDir())
	r := &Runner{Registry: experiment.NewRegistry(), Store: store}

	results, err := r.RunScenario(context.Background(), sc)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	jobs, ok := results[0].Result.Outcome.(greedy.JobsResult)
	if !ok || jobs.TotalProfit != 142 {
		t.Errorf("expected the classic jobs preset to earn 142, got %+v", results[0].Result.Outcome)
	}
	if results[0].RunID == "" || results[1].RunID != "" {
		t.Errorf("only the first step saves: %q %q", results[0].RunID, results[1].RunID)
	}

	runs, err := store.List()
	if err != nil || len(runs) != 1 {
		t.Errorf("expected one saved run, got %d (%v)", len(runs), err)
	}

	if got := results[2].Result.Problem.Len(); got != 6 {
		t.Errorf("expected generated size 6, got %d", got)
	}
}

func TestRunScenario_StopsAtFailure(t *testing.T) {
	sc := &Scenario{Name: "broken", Steps: []ScenarioStep{
		{Algorithm: "bubble", Input: "2, 1"},
		{Algorithm: "bubble", Input: "2, x"},
		{Algorithm: "bubble", Input: "3, 1"},
	}}
	r := &Runner{Registry: experiment.NewRegistry()}

	results, err := r.RunScenario(context.Background(), sc)
	if !errors.Is(err, problem.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected the first result only, got %d", len(results))
	}
}

func TestRunScenario_SaveWithoutStore(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{Algorithm: "kadane", Input: "1", Save: true}}}
	r := &Runner{Registry: experiment.NewRegistry()}
	if _, err := r.RunScenario(context.Background(), sc); err == nil {
		t.Error("expected an error when saving without a store")
	}
}

func TestRunScenario_UnknownPreset(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{Algorithm: "kadane", Preset: "nope"}}}
	r := &Runner{Registry: experiment.NewRegistry()}
	if _, err := r.RunScenario(context.Background(), sc); err == nil {
		t.Error("expected an error for an unknown preset")
	}
}

func TestRunSweep(t *testing.T) {
	r := &Runner{Registry: experiment.NewRegistry()}
	results, err := r.RunSweep(context.Background(), &SizeSweep{Algorithm: "insertion", MinSize: 4, MaxSize: 40, NumSteps: 5, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 points, got %d", len(results))
	}
	if results[0].Size != 4 || results[4].Size != 40 {
		t.Errorf("unexpected sizes %d..%d", results[0].Size, results[4].Size)
	}

	steps := Column(results, "steps")
	if steps[4] <= steps[0] {
		t.Errorf("step count should grow with size: %v", steps)
	}
	if results[4].Steps != int(steps[4]) {
		t.Errorf("steps metric %v disagrees with history length %d", steps[4], results[4].Steps)
	}
}

func TestRunSweep_Invalid(t *testing.T) {
	r := &Runner{Registry: experiment.NewRegistry()}
	if _, err := r.RunSweep(context.Background(), &SizeSweep{Algorithm: "quick", MinSize: 10, MaxSize: 5, NumSteps: 3}); !errors.Is(err, problem.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
