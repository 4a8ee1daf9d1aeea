package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/odestep/internal/config"
	"github.com/san-kum/odestep/internal/storage"
)

func TestResolveConfig_Defaults(t *testing.T) {
	cmd := newRunCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := resolveConfig(cmd, "")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestResolveConfig_PresetThenFlags(t *testing.T) {
	cmd := newRunCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--preset", "unit", "--points", "11"}))

	cfg, err := resolveConfig(cmd, "decay")
	require.NoError(t, err)
	assert.Equal(t, "decay", cfg.Equation)
	assert.Equal(t, "rk4", cfg.Method)
	assert.Equal(t, 1.0, cfg.X0)
	assert.Equal(t, 5.0, cfg.Grid.End)
	assert.Equal(t, 11, cfg.Grid.Points)
}

func TestResolveConfig_FileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("equation: cosine\nmethod: euler\nx0: 2\n"), 0644))

	cmd := newRunCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--method", "rk2", "--strict-grid=false"}))

	cfg, err := resolveConfig(cmd, "")
	require.NoError(t, err)
	assert.Equal(t, "cosine", cfg.Equation)
	assert.Equal(t, "rk2", cfg.Method)
	assert.Equal(t, 2.0, cfg.X0)
	assert.False(t, cfg.StrictGrid)
}

func TestResolveConfig_UnknownPreset(t *testing.T) {
	cmd := newRunCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--preset", "missing"}))

	_, err := resolveConfig(cmd, "cubic")
	assert.ErrorContains(t, err, "unknown preset")
}

func TestRunCommandStoresRun(t *testing.T) {
	dir := t.TempDir()

	root := newRootCmd()
	root.SetArgs([]string{"--data", dir, "run", "--preset", "example"})
	require.NoError(t, root.Execute())

	runs, err := storage.New(dir).List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "cubic", runs[0].Equation)
	assert.Equal(t, "rk4", runs[0].Method)
	assert.Equal(t, int64(12), runs[0].Evaluations)

	_, traj, exact, err := storage.New(dir).LoadTrajectory(runs[0].ID)
	require.NoError(t, err)
	assert.Nil(t, exact)
	assert.InDelta(t, 0.79754751, traj[len(traj)-1], 1e-6)
}

func TestRunCommandRejectsUnknownMethod(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"--data", t.TempDir(), "run", "--method", "heun"})
	root.SetErr(io.Discard)
	assert.Error(t, root.Execute())
}

func TestResolveConfig_FileOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("method: euler\n"), 0644))

	cmd := newRunCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--preset", "unit", "--config", path}))

	cfg, err := resolveConfig(cmd, "decay")
	require.NoError(t, err)
	assert.Equal(t, "euler", cfg.Method)
	// The preset survives wherever the file is silent.
	assert.Equal(t, 1.0, cfg.X0)
	assert.Equal(t, config.GridConfig{Start: 0, End: 5, Points: 51}, cfg.Grid)
}

func TestRunCommandSavesConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resolved.yaml")

	root := newRootCmd()
	root.SetArgs([]string{"--data", dir, "run", "decay", "--preset", "unit", "--points", "11", "--save-config", path})
	require.NoError(t, root.Execute())

	saved := config.DefaultConfig()
	require.NoError(t, config.LoadInto(path, saved))
	want := config.GetPreset("decay", "unit")
	want.Grid.Points = 11
	assert.Equal(t, want, saved)
}

func TestConvergeCommandDefaults(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"--data", t.TempDir(), "converge", "--levels", "3"})
	assert.NoError(t, root.Execute())
}

func TestRunCommandOffsetDomain(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"--data", t.TempDir(), "run", "decay", "--t0", "1000", "--t1", "1001", "--points", "10001"})
	assert.NoError(t, root.Execute())
}
