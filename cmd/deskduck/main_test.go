package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/desk-duck/core"
)

// execute runs the root command with fresh flag state and a private data dir
func execute(t *testing.T, env []string, args ...string) (string, error) {
	t.Helper()
	configPath, speechPath, logPath = "", "", ""
	debug, mute, noPersist = false, false, false
	count = 1

	prev := environ
	environ = func() []string { return env }
	t.Cleanup(func() { environ = prev })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func isolateHome(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
}

func TestConfigSetThenGet(t *testing.T) {
	isolateHome(t)

	_, err := execute(t, nil, "config", "set", "size", "150")
	require.NoError(t, err)

	out, err := execute(t, nil, "config", "get", "size")
	require.NoError(t, err)
	assert.Equal(t, "150", strings.TrimSpace(out))
}

func TestConfigGetLayersFileAndEnv(t *testing.T) {
	isolateHome(t)

	path := filepath.Join(t.TempDir(), "duck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("skin: goose\nopacity: 0.5\n"), 0o644))

	out, err := execute(t, []string{"DESKDUCK_OPACITY=0.25"}, "--no-persist", "--config", path, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "skin=goose\n")
	assert.Contains(t, out, "opacity=0.25\n")
}

func TestConfigSetSkipsOverrides(t *testing.T) {
	isolateHome(t)

	_, err := execute(t, []string{"DESKDUCK_SKIN=robot"}, "config", "set", "opacity", "0.75")
	require.NoError(t, err)

	out, err := execute(t, nil, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "opacity=0.75\n")
	assert.Contains(t, out, "skin=duck\n")
}

func TestConfigUnknownKey(t *testing.T) {
	isolateHome(t)

	_, err := execute(t, nil, "--no-persist", "config", "get", "wings")
	assert.Error(t, err)

	_, err = execute(t, nil, "--no-persist", "config", "set", "wings", "2")
	assert.Error(t, err)
}

func TestSpawnPositions(t *testing.T) {
	pos := spawnPositions(core.Bounds{Width: 900, Height: 600}, 100, 2)
	require.Len(t, pos, 2)
	assert.Equal(t, 250.0, pos[0].X)
	assert.Equal(t, 550.0, pos[1].X)
	assert.Equal(t, 250.0, pos[0].Y)
	assert.Equal(t, 250.0, pos[1].Y)
}
