package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qprefix.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "regex", cfg.Backend)
	assert.Equal(t, 8, cfg.Circuit.RegisterWidth)
	assert.Equal(t, 1024, cfg.Simulation.Shots)
	assert.Zero(t, cfg.Simulation.Seed)
	assert.Equal(t, 4096, cfg.MaxLineLength)
	assert.Equal(t, int64(1<<20), cfg.MaxFileSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
backend: parallel
workers: 4
circuit:
  register_width: 5
simulation:
  shots: 2048
  seed: 7
log:
  level: debug
  pretty: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "parallel", cfg.Backend)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 5, cfg.Circuit.RegisterWidth)
	assert.Equal(t, 2048, cfg.Simulation.Shots)
	assert.Equal(t, uint64(7), cfg.Simulation.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	// untouched keys keep their defaults
	assert.Equal(t, 4096, cfg.MaxLineLength)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "backend: parallel\nsimulation:\n  shots: 2048\n")
	t.Setenv("QPREFIX_BACKEND", "ast")
	t.Setenv("QPREFIX_SIMULATION_SHOTS", "99")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ast", cfg.Backend)
	assert.Equal(t, 99, cfg.Simulation.Shots)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown backend", "backend: gpu\n"},
		{"negative workers", "workers: -1\n"},
		{"narrow register", "circuit:\n  register_width: 1\n"},
		{"wide register", "circuit:\n  register_width: 13\n"},
		{"no shots", "simulation:\n  shots: 0\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"no file size", "max_file_size: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}
