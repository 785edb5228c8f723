package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/southpole/internal/cli"
	"github.com/rshade/southpole/pkg/version"
)

func TestRun(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "none.env")

	t.Run("version", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"--version"}, &stdout, &stderr)
		assert.Equal(t, exitOK, code)
		assert.Contains(t, stdout.String(), version.GetVersion())
	})

	t.Run("estimate", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"--env-file", envFile, "estimate",
			"--turbine-power-kw", "100", "--wind-kw", "1000", "--bess-energy-kwh", "1240"}, &stdout, &stderr)
		assert.Equal(t, exitOK, code)
		assert.Contains(t, stdout.String(), "TOTAL")
	})

	t.Run("error", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"--env-file", envFile, "estimate", "--wind-kw", "10"}, &stdout, &stderr)
		assert.Equal(t, exitError, code)
		assert.Contains(t, stderr.String(), "Error: ")
	})

	t.Run("partial sweep", func(t *testing.T) {
		grid := filepath.Join(t.TempDir(), "grid.yaml")
		require.NoError(t, os.WriteFile(grid, []byte(
			"schema_version: 1.0.0\nbase:\n  wind_kw: 10\n  bess_energy_kwh: 1240\naxes:\n  turbine_power_kw: [0, 5]\n"), 0o600))

		var stdout, stderr bytes.Buffer
		code := run([]string{"--env-file", envFile, "sweep", "--grid", grid}, &stdout, &stderr)
		assert.Equal(t, exitSweepFailed, code)
		assert.Contains(t, stdout.String(), "1 failed")
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"generic", errors.New("boom"), exitError},
		{"sweep failure", &cli.SweepFailedError{Failed: 1, Total: 2}, exitSweepFailed},
		{"wrapped sweep failure", fmt.Errorf("outer: %w", &cli.SweepFailedError{Failed: 1}), exitSweepFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
