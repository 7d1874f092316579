package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Algorithm != "quick" {
		t.Errorf("expected algorithm quick, got %s", cfg.Algorithm)
	}
	if cfg.MinDelayMs <= 0 || cfg.MaxDelayMs <= cfg.MinDelayMs {
		t.Error("delays should be positive and ordered")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"speed too low", func(c *Config) { c.Speed = 0 }},
		{"speed too high", func(c *Config) { c.Speed = 101 }},
		{"delays inverted", func(c *Config) { c.MaxDelayMs = c.MinDelayMs }},
		{"value range inverted", func(c *Config) { c.ValueMax = c.ValueMin - 1 }},
		{"negative size", func(c *Config) { c.Size = -1 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"missing algorithm", func(c *Config) { c.Algorithm = "" }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algoviz.yaml")
	cfg := DefaultConfig()
	cfg.Algorithm = "kadane"
	cfg.Input = "1, -2, 3"
	cfg.Speed = 80

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Algorithm != "kadane" || got.Input != "1, -2, 3" || got.Speed != 80 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("kadane", "classic")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Input != "-2, 1, -3, 4, -1, 2, 1, -5, 4" {
		t.Errorf("unexpected input %q", cfg.Input)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg := GetPreset("kadane", "nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg = GetPreset("nonexistent", "classic")
	if cfg != nil {
		t.Error("expected nil for nonexistent algorithm")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("jobs")
	if len(presets) != 2 || presets[0] != "classic" {
		t.Errorf("expected sorted presets for jobs, got %v", presets)
	}

	presets = ListPresets("nonexistent")
	if presets != nil {
		t.Error("expected nil for nonexistent algorithm")
	}
}

func TestPresetsMatchTheirAlgorithm(t *testing.T) {
	for alg, presets := range Presets {
		for name, cfg := range presets {
			if cfg.Algorithm != alg {
				t.Errorf("%s/%s names algorithm %s", alg, name, cfg.Algorithm)
			}
			if cfg.Input == "" && cfg.Size == 0 {
				t.Errorf("%s/%s has neither input nor size", alg, name)
			}
		}
	}
}
