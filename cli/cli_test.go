package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const islandInput = "../pkg/stack/job/testdata/island.json"

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewRootCommand()
	cmd.SetArgs(append(args, "--log-level", "error"))
	return cmd.Execute()
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := []string{}
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, execute(t, "build", islandInput, "-o", dir))
	assert.Equal(t, []string{"island.json", "island_cut_xsection.json", "island_layers.txt"}, listDir(t, dir))
}

func TestCrossSectionCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, execute(t, "xsection", islandInput, "-o", dir))
	assert.Equal(t, []string{"island_cut_xsection.json"}, listDir(t, dir))
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, execute(t, "render", islandInput, "-o", dir, "--pixel", "5"))
	assert.Contains(t, listDir(t, dir), "island_vacuum.png")
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"parameters": {"substrate_height": -1}}`), 0o644))

	t.Run("SkipErrors", func(t *testing.T) {
		require.NoError(t, execute(t, "batch", islandInput, broken, "-o", dir, "--skip-errors"))
		assert.Equal(t, []string{"island"}, listDir(t, dir))
		assert.Contains(t, listDir(t, filepath.Join(dir, "island")), "island.json")
	})

	t.Run("FailFast", func(t *testing.T) {
		assert.Error(t, execute(t, "batch", islandInput, broken, "-o", t.TempDir()))
	})

	t.Run("MissingFile", func(t *testing.T) {
		assert.Error(t, execute(t, "batch", filepath.Join(dir, "missing.json"), "-o", t.TempDir()))
	})
}

func TestCommandErrors(t *testing.T) {
	assert.Error(t, execute(t, "build"))
	assert.Error(t, execute(t, "build", "missing.json"))
	assert.Error(t, execute(t, "batch", islandInput, "--workers", "0"))
	assert.Error(t, execute(t, "serve", "--port", "1"))
}
