package logging

import (
	"bufio"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"", LevelInfo},
		{"warning", LevelWarn},
		{" error ", LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestQuietFileLogger(t *testing.T) {
	dir := t.TempDir()
	l := New(Config{Level: LevelDebug, LogDir: dir, Service: "viz", Quiet: true})
	require.NotEmpty(t, l.Path())

	l.With("algorithm", "quick").Info("run finished", "steps", 42)
	l.Debug("tick")
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	f, err := os.Open(l.Path())
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		lines = append(lines, rec)
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "run finished", lines[0]["msg"])
	assert.Equal(t, "quick", lines[0]["algorithm"])
	assert.Equal(t, "viz", lines[0]["service"])
	assert.Equal(t, float64(42), lines[0]["steps"])
}

func TestLevelFilters(t *testing.T) {
	dir := t.TempDir()
	l := New(Config{Level: LevelWarn, LogDir: dir, Quiet: true})
	l.Info("dropped")
	l.Warn("kept")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("nothing happens")
	assert.Empty(t, l.Path())
	assert.NoError(t, l.Close())
}
