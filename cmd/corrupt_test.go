package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	m "tamper.dev/pkg/tamper/internal/model"
)

func TestResolveRuns(t *testing.T) {
	t.Run("no manifest builds a single run from the configuration", func(t *testing.T) {
		runs, err := resolveRuns("")
		require.NoError(t, err)
		require.Len(t, runs, 1)

		run := runs[0]
		require.Equal(t, parseErrorTypes(defaultErrorTypes), run.ErrorTypes)
		require.Equal(t, defaultDifficulty, run.Difficulty)
		require.InDelta(t, defaultFraction, run.Fraction, 1e-12)
		require.Equal(t, int64(defaultSeed), run.Seed)
	})

	t.Run("manifest overrides the run flags", func(t *testing.T) {
		manifest := `runs:
  - errors: [wrong_entity]
    difficulty: 2
    fraction: 0.5
    seed: 7
  - errors: [wrong_direction, add_unsupported_step]
    difficulty: 1
    fraction: 0.25
    seed: 8
`
		path := filepath.Join(t.TempDir(), "runs.yaml")
		require.NoError(t, os.WriteFile(path, []byte(manifest), 0o600))

		runs, err := resolveRuns(path)
		require.NoError(t, err)
		require.Len(t, runs, 2)

		require.Equal(t, []m.ErrorType{m.ErrorWrongEntity}, runs[0].ErrorTypes)
		require.Equal(t, 2, runs[0].Difficulty)
		require.InDelta(t, 0.5, runs[0].Fraction, 1e-12)
		require.Equal(t, int64(7), runs[0].Seed)

		require.Equal(t, []m.ErrorType{m.ErrorWrongDirection, m.ErrorUnsupportedStep}, runs[1].ErrorTypes)
	})

	t.Run("empty manifest is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "runs.yaml")
		require.NoError(t, os.WriteFile(path, []byte("runs: []\n"), 0o600))

		_, err := resolveRuns(path)
		require.ErrorContains(t, err, "contains no runs")
	})

	t.Run("missing manifest file", func(t *testing.T) {
		_, err := resolveRuns(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorContains(t, err, "failed to read manifest")
	})

	t.Run("malformed manifest", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "runs.yaml")
		require.NoError(t, os.WriteFile(path, []byte("runs: {not: a list}\n"), 0o600))

		_, err := resolveRuns(path)
		require.ErrorContains(t, err, "failed to parse manifest")
	})
}
