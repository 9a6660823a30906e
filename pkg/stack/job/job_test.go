package job

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaptide/chipstack/pkg/stack/setup"
	"github.com/yaptide/chipstack/pkg/stack/simulation"
)

func readIsland(t *testing.T) Input {
	t.Helper()
	data, err := os.ReadFile("testdata/island.json")
	require.NoError(t, err)
	in, err := Parse(data)
	require.NoError(t, err)
	return in
}

func TestParseFillsDefaults(t *testing.T) {
	in := readIsland(t)

	assert.Equal(t, "island", in.Parameters.Name)
	assert.Equal(t, 0.001, in.Parameters.DBU)
	assert.Equal(t, setup.Floats{500}, in.Parameters.SubstrateHeight)
	assert.Equal(t, "vacuum", in.Parameters.VacuumMaterial)
	require.NotNil(t, in.CrossSection)
	assert.Equal(t, "island_cut", in.CrossSection.Name)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte(`{"parameters": 1}`))
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	out, err := Run(readIsland(t))
	require.NoError(t, err)

	assert.Equal(t, "island", out.Name)
	assert.Equal(t, []string{"1t1_signal", "1t1_ground", "substrate_1", "vacuum"}, out.LayerNames)
	assert.Equal(t, []string{"island.json", "island_cut_xsection.json", "island_layers.txt"}, out.FileNames())
}

func TestRunSharedRegistry(t *testing.T) {
	registry := simulation.NewRegistry()
	_, err := Run(readIsland(t), simulation.WithRegistry(registry))
	require.NoError(t, err)

	number, ok := registry.Lookup("1t1_signal")
	assert.True(t, ok)
	assert.Equal(t, simulation.FirstLayerNumber, number)
}

func TestRunCrossSection(t *testing.T) {
	in := readIsland(t)
	out, err := RunCrossSection(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"island_cut_xsection.json"}, out.FileNames())

	in.CrossSection = nil
	_, err = RunCrossSection(in)
	assert.Error(t, err)
}

func TestRunInvalidParameters(t *testing.T) {
	in := readIsland(t)
	in.Parameters.SubstrateHeight = setup.Floats{-1}
	_, err := Run(in)
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	images, err := Render(readIsland(t), 5)
	require.NoError(t, err)
	assert.Len(t, images, 4)
	assert.Contains(t, images, "island_1t1_signal.png")

	_, err = Render(readIsland(t), 0)
	assert.Error(t, err)
}
