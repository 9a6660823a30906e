package simulation

import (
	"github.com/yaptide/chipstack/pkg/stack"
	"github.com/yaptide/chipstack/pkg/stack/layers"
	"github.com/yaptide/chipstack/pkg/stack/setup"
)

// Units of all lengths in simulation data.
const Units = "um"

// LayerData describes one finalized layer for exporters.
type LayerData struct {
	Z            float64  `json:"z"`
	Thickness    float64  `json:"thickness"`
	Material     string   `json:"material,omitempty"`
	EdgeMaterial string   `json:"edge_material,omitempty"`
	Background   string   `json:"background,omitempty"`
	Subtract     []string `json:"subtract,omitempty"`
	Layer        *int     `json:"layer,omitempty"`
}

// Data is the solver independent description of a simulation. Field
// names follow the snake case convention of solver exporters.
type Data struct {
	SimulationName string               `json:"simulation_name"`
	Units          string               `json:"units"`
	Layers         map[string]LayerData `json:"layers"`
	// LayerOrder lists layer names in the order they were finalized.
	LayerOrder   []string           `json:"layer_order"`
	MaterialDict setup.MaterialDict `json:"material_dict"`
	Box          setup.Box          `json:"box"`
	Ports        []PortData         `json:"ports"`
	Parameters   setup.Parameters   `json:"parameters"`
	Diagnostics  Diagnostics        `json:"diagnostics"`
}

// SimulationData builds the stack if needed and returns its data. Every
// material used by a layer has to be in the material dictionary.
func (s *Simulation) SimulationData() (Data, error) {
	if err := s.Build(); err != nil {
		return Data{}, err
	}
	if err := checkMaterials(s.result.Entries, s.params.MaterialDict); err != nil {
		return Data{}, err
	}
	ports, err := s.PortData()
	if err != nil {
		return Data{}, err
	}

	data := Data{
		SimulationName: s.params.Name,
		Units:          Units,
		Layers:         map[string]LayerData{},
		LayerOrder:     []string{},
		MaterialDict:   s.params.MaterialDict,
		Box:            s.params.Box,
		Ports:          ports,
		Parameters:     s.params,
		Diagnostics:    s.Diagnostics(),
	}
	for _, e := range s.result.Entries {
		data.LayerOrder = append(data.LayerOrder, e.Name)
		data.Layers[e.Name] = LayerData{
			Z:            e.Z,
			Thickness:    e.Thickness,
			Material:     e.Material,
			EdgeMaterial: e.EdgeMaterial,
			Background:   e.Background,
			Subtract:     e.Subtract,
			Layer:        e.Layer,
		}
	}
	return data, nil
}

func checkMaterials(entries []layers.Entry, dict setup.MaterialDict) error {
	for _, e := range entries {
		for _, m := range []string{e.Material, e.EdgeMaterial} {
			if m != "" && !dict.Has(m) {
				return stack.MaterialError("layer %q uses material %q missing in material_dict", e.Name, m)
			}
		}
	}
	return nil
}
