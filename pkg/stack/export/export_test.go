package export

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaptide/chipstack/pkg/region"
	"github.com/yaptide/chipstack/pkg/stack/layers"
	"github.com/yaptide/chipstack/pkg/stack/setup"
	"github.com/yaptide/chipstack/pkg/stack/simulation"
)

func sampleData() simulation.Data {
	number := 1000
	return simulation.Data{
		SimulationName: "island",
		Units:          simulation.Units,
		Layers: map[string]simulation.LayerData{
			"1t1_signal":  {Z: 0, Thickness: 0.2, Material: setup.Pec, Layer: &number},
			"substrate_1": {Z: -500, Thickness: 500, Material: "silicon"},
			"vacuum":      {Z: 0, Thickness: 1000, Material: "vacuum", Subtract: []string{"1t1_signal"}},
		},
		LayerOrder:   []string{"1t1_signal", "substrate_1", "vacuum"},
		MaterialDict: setup.DefaultMaterialDict(),
		Box:          setup.Box{P2: setup.Point{100, 100}},
		Ports:        []simulation.PortData{},
		Parameters:   setup.DefaultParameters(),
	}
}

func TestFiles(t *testing.T) {
	files, err := Files(sampleData())
	require.NoError(t, err)
	require.Len(t, files, 2)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(files["island.json"]), &decoded))
	assert.Equal(t, "island", decoded["simulation_name"])
	assert.Equal(t, "um", decoded["units"])

	lines := strings.Split(strings.TrimSpace(files["island_layers.txt"]), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "1t1_signal"))
	assert.Contains(t, lines[1], "0.2")
	assert.Contains(t, lines[1], "1000  pec")
	assert.Contains(t, lines[2], "-500")
	assert.True(t, strings.HasSuffix(lines[3], "vacuum - 1t1_signal"))
}

func TestCrossSectionFiles(t *testing.T) {
	files, err := CrossSectionFiles(simulation.CrossSectionData{SimulationName: "cut", Units: simulation.Units})
	require.NoError(t, err)
	assert.Contains(t, files, "cut_xsection.json")
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, Write(dir, map[string]string{"a.json": "{}"}))

	content, err := os.ReadFile(filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(content))
}

func TestImages(t *testing.T) {
	box := region.NewBox(region.Point{X: 0, Y: 0}, region.Point{X: 100, Y: 100})
	half := region.FromBox(region.NewBox(region.Point{X: 0, Y: 0}, region.Point{X: 50, Y: 100}))
	entries := []layers.Entry{
		{Name: "signal", Region: half},
		{Name: "vacuum", Region: region.FromBox(box)},
	}

	files, err := Images("island", entries, box, 10)
	require.NoError(t, err)
	require.Len(t, files, 2)

	img, err := png.Decode(bytes.NewReader(files["island_signal.png"]))
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 10, img.Bounds().Dy())
	_, _, _, left := img.At(2, 5).RGBA()
	_, _, _, right := img.At(7, 5).RGBA()
	assert.NotZero(t, left)
	assert.Zero(t, right)
}
