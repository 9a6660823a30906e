// Package job reads build requests and turns them into exported files.
// It is shared by the command line, the batch runner and the http api.
package job

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/yaptide/chipstack/config"
	"github.com/yaptide/chipstack/pkg/region"
	"github.com/yaptide/chipstack/pkg/stack/export"
	"github.com/yaptide/chipstack/pkg/stack/layout"
	"github.com/yaptide/chipstack/pkg/stack/setup"
	"github.com/yaptide/chipstack/pkg/stack/simulation"
)

var log = config.NamedLogger("job")

// Input of one build.
type Input struct {
	Parameters   setup.Parameters    `json:"parameters"`
	Layout       layout.Document     `json:"layout"`
	CrossSection *setup.CrossSection `json:"cross_section,omitempty"`
}

// UnmarshalJSON fills parameters missing in b with defaults.
func (in *Input) UnmarshalJSON(b []byte) error {
	type rawInput Input
	raw := rawInput{Parameters: setup.DefaultParameters()}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*in = Input(raw)
	return nil
}

// Parse reads JSON input.
func Parse(data []byte) (Input, error) {
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return Input{}, fmt.Errorf("malformed input: %s", err)
	}
	return in, nil
}

// Output of one build.
type Output struct {
	Name string
	// Files maps file name to content.
	Files map[string]string
	// LayerNames lists finalized layers in order.
	LayerNames []string
}

// FileNames returns sorted names of output files.
func (o Output) FileNames() []string {
	names := make([]string, 0, len(o.Files))
	for name := range o.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewSimulation converts layout and creates simulation without building it.
func (in Input) NewSimulation(opts ...simulation.Option) (*simulation.Simulation, error) {
	grid := region.Grid{DBU: in.Parameters.DBU}
	if grid.DBU <= 0 {
		return nil, fmt.Errorf("dbu should be positive")
	}
	static, layoutErr := layout.NewStatic(in.Layout, grid)
	if layoutErr != nil {
		return nil, layoutErr
	}
	return simulation.New(in.Parameters, static, opts...)
}

// Run builds simulation and, when input has a cut, its cross-section.
func Run(in Input, opts ...simulation.Option) (Output, error) {
	sim, simErr := in.NewSimulation(opts...)
	if simErr != nil {
		return Output{}, simErr
	}
	data, dataErr := sim.SimulationData()
	if dataErr != nil {
		return Output{}, dataErr
	}
	files, exportErr := export.Files(data)
	if exportErr != nil {
		return Output{}, exportErr
	}
	out := Output{Name: data.SimulationName, Files: files, LayerNames: data.LayerOrder}

	if in.CrossSection != nil {
		xs, xsErr := crossSection(sim, *in.CrossSection)
		if xsErr != nil {
			return Output{}, xsErr
		}
		for name, content := range xs.Files {
			out.Files[name] = content
		}
	}
	log.Infof("built %s: %d layers, %d files", out.Name, len(out.LayerNames), len(out.Files))
	return out, nil
}

// RunCrossSection builds only the cross-section of input.
func RunCrossSection(in Input, opts ...simulation.Option) (Output, error) {
	if in.CrossSection == nil {
		return Output{}, fmt.Errorf("input has no cross_section")
	}
	sim, simErr := in.NewSimulation(opts...)
	if simErr != nil {
		return Output{}, simErr
	}
	return crossSection(sim, *in.CrossSection)
}

func crossSection(sim *simulation.Simulation, cut setup.CrossSection) (Output, error) {
	xs, xsErr := simulation.FromSimulation(sim, cut)
	if xsErr != nil {
		return Output{}, xsErr
	}
	data, dataErr := xs.SimulationData()
	if dataErr != nil {
		return Output{}, dataErr
	}
	files, exportErr := export.CrossSectionFiles(data)
	if exportErr != nil {
		return Output{}, exportErr
	}
	return Output{Name: data.SimulationName, Files: files, LayerNames: data.LayerOrder}, nil
}

// Render builds simulation and draws every finalized layer into a png
// image with square pixels of the given size in micrometers.
func Render(in Input, pixel float64, opts ...simulation.Option) (map[string][]byte, error) {
	if pixel <= 0 {
		return nil, fmt.Errorf("pixel size should be positive")
	}
	sim, simErr := in.NewSimulation(opts...)
	if simErr != nil {
		return nil, simErr
	}
	if err := sim.Build(); err != nil {
		return nil, err
	}
	return export.Images(sim.Parameters().Name, sim.Layers(), sim.Box(), pixel/sim.Grid().DBU)
}
