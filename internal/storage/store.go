package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/export"
	"github.com/san-kum/algoviz/internal/trace"
)

var (
	ErrRunNotFound  = errors.New("storage: run not found")
	ErrAmbiguousRun = errors.New("storage: run id prefix matches several runs")
)

const (
	metadataFile = "metadata.json"
	stepsFile    = "steps.csv"
	historyFile  = "history.json"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID         string             `json:"id"`
	Algorithm  string             `json:"algorithm"`
	Visualizer string             `json:"visualizer"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Input      string             `json:"input"`
	Steps      int                `json:"steps"`
	Summary    string             `json:"summary"`
	ElapsedMs  float64            `json:"elapsed_ms"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a run as metadata.json, steps.csv and history.json under a
// fresh directory and returns its id.
func (s *Store) Save(vis experiment.Visualizer, result *experiment.Result) (string, error) {
	data, err := export.FromResult(result)
	if err != nil {
		return "", fmt.Errorf("prepare run: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	runID := fmt.Sprintf("%s_%s", result.Algorithm, id)
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Algorithm:  result.Algorithm,
		Visualizer: string(vis),
		Timestamp:  time.Now(),
		Seed:       result.Seed,
		Input:      data.Input,
		Steps:      data.Steps,
		Summary:    data.Summary,
		ElapsedMs:  float64(result.Elapsed.Microseconds()) / 1000,
		Metrics:    result.Metrics,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, historyFile), result.History); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, stepsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()
	if err := export.CSV(csvFile, result.History); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List returns saved runs, oldest first. Unreadable run directories are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

// Resolve expands a unique prefix of a run id.
func (s *Store) Resolve(prefix string) (string, error) {
	if _, err := os.Stat(filepath.Join(s.baseDir, prefix, metadataFile)); err == nil {
		return prefix, nil
	}
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	var match []string
	for _, r := range runs {
		if strings.HasPrefix(r.ID, prefix) {
			match = append(match, r.ID)
		}
	}
	switch len(match) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	case 1:
		return match[0], nil
	}
	return "", fmt.Errorf("%w: %s (%d runs)", ErrAmbiguousRun, prefix, len(match))
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := s.read(runID, metadataFile)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadHistory(runID string) (*trace.History, error) {
	data, err := s.read(runID, historyFile)
	if err != nil {
		return nil, err
	}

	var h trace.History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("decode history of %s: %w", runID, err)
	}
	return &h, nil
}

func (s *Store) LoadSteps(runID string) ([]export.Row, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, stepsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()
	return export.ReadCSV(file)
}

func (s *Store) read(runID, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return data, err
}
