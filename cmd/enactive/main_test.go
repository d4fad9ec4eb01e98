package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ENACTIVE_TURNS", "")
	t.Setenv("ENACTIVE_ENVIRONMENT", "")
	t.Setenv("ENACTIVE_LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	t.Run("fixed environment", func(t *testing.T) {
		out, err := execute(t, "run", "--env", "fixed", "--turns", "4")
		require.NoError(t, err)

		want := []string{
			"[enactive] 0: e1r1,-1 PAINED",
			"[enactive] 1: e2r2,1 PLEASED (learned)",
			"[enactive] 2: e2r2,1 PLEASED (learned)",
			"[enactive] 3: e2r2,1 PLEASED afforded e2r2,1",
		}
		assert.Equal(t, want, strings.Split(strings.TrimSpace(out), "\n"))
	})

	t.Run("all environments", func(t *testing.T) {
		out, err := execute(t, "run", "--env", "all", "--turns", "5")
		require.NoError(t, err)
		for _, name := range []string{"fixed", "alternating", "windowed"} {
			assert.Equal(t, 5, strings.Count(out, "["+name+"]"), name)
		}
	})

	t.Run("more turns than the printer buffer", func(t *testing.T) {
		const turns = 4 * printerBuffer
		out, err := execute(t, "run", "--env", "all", "--turns", strconv.Itoa(turns))
		require.NoError(t, err)
		for _, name := range []string{"fixed", "alternating", "windowed"} {
			assert.Equal(t, turns, strings.Count(out, "["+name+"]"), name)
		}
	})

	t.Run("huge turn count", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var err error
		require.NotPanics(t, func() {
			_, err = executeContext(t, ctx, "run", "--env", "all", "--turns", "2000000000000")
		})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("csv statistics", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stats.csv")
		_, err := execute(t, "run", "--env", "all", "--turns", "3", "--csv", path)
		require.NoError(t, err)

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		assert.Len(t, rows, 1+3*3)
		assert.Equal(t, "experiment", rows[0][0])
	})

	t.Run("unknown environment", func(t *testing.T) {
		_, err := execute(t, "run", "--env", "maze")
		assert.Error(t, err)
	})

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "enactive.yaml")
		yaml := `name: lonely
turns: 2
environment:
  kind: fixed
interactions:
  - {experiment: e1, result: r1, valence: 2}
`
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

		out, err := execute(t, "run", "--config", path)
		require.NoError(t, err)
		assert.Equal(t, "[lonely] 0: e1r1,2 PLEASED\n[lonely] 1: e1r1,2 PLEASED (learned)\n", out)
	})

	t.Run("unmodeled result", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "partial.yaml")
		yaml := `environment:
  kind: fixed
interactions:
  - {experiment: e1, result: r2, valence: 1}
`
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

		_, err := execute(t, "run", "--config", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unmodeled")
	})
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "config", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "kind: windowed")
	assert.Contains(t, out, "level: debug")
	assert.Contains(t, out, "turns: 10")
}
