package simulation

import (
	"strings"

	"github.com/yaptide/chipstack/pkg/region"
	"github.com/yaptide/chipstack/pkg/stack"
	"github.com/yaptide/chipstack/pkg/stack/setup"
	"github.com/yaptide/chipstack/pkg/stack/xsection"
)

// Names of synthesized oxide layers.
const (
	OxideMA = "ma_layer"
	OxideMS = "ms_layer"
	OxideSA = "sa_layer"
)

// CrossSectionSimulation is a 2D cell cut out of a built simulation.
type CrossSectionSimulation struct {
	Name string
	Cut  setup.CrossSection
	// Grid of the cell, finer than the layout grid by the magnification
	// order.
	Grid    region.Grid
	Section xsection.Section
	Shapes  xsection.Shapes

	params    setup.Parameters
	materials map[string]string
}

// FromSimulation cuts sim along cut. Oxide layers are synthesized when
// the cut has a positive oxide thickness.
func FromSimulation(sim *Simulation, cut setup.CrossSection) (*CrossSectionSimulation, error) {
	if err := cut.Validate(); err != nil {
		return nil, stack.ConfigError("invalid cross-section %q: %s", cut.Name, err)
	}
	if err := sim.Build(); err != nil {
		return nil, err
	}
	params := sim.Parameters()
	entries := sim.Layers()

	profile, err := xsection.NewStackProfile(entries, cut.Profile)
	if err != nil {
		return nil, err
	}
	for face, fl := range sim.ZLevels().Faces {
		if fl.MetalTop == fl.MetalBottom {
			log.Warnf("face %s has zero metal height, metal is missing in cross-section %s", face, cut.Name)
		}
	}

	footprints := make([]xsection.Footprint, 0, len(entries))
	materials := map[string]string{}
	substrates := map[string]bool{}
	for _, e := range entries {
		footprints = append(footprints, xsection.Footprint{Name: e.Name, Region: e.Region})
		target := e.Name
		if to := profile.ChangeTo(e.Name); to != "" {
			target = to
		}
		if _, ok := materials[target]; !ok {
			materials[target] = e.Material
		}
		if strings.HasPrefix(e.Source, "substrate_") {
			substrates[target] = true
		}
	}

	layoutGrid := sim.Grid()
	edge := region.Edge{
		P1: layoutGrid.Point(cut.P1[0], cut.P1[1]),
		P2: layoutGrid.Point(cut.P2[0], cut.P2[1]),
	}
	x := &CrossSectionSimulation{
		Name:      cut.Name,
		Cut:       cut,
		Grid:      layoutGrid.Magnified(cut.MagnificationOrder),
		params:    params,
		materials: materials,
	}
	if x.Name == "" {
		x.Name = params.Name + "_xsection"
	}
	x.Section = xsection.TakeCrossSection(footprints, edge, layoutGrid)
	x.Shapes = xsection.ProduceIntersectionShapes(x.Section, profile, x.Grid)
	x.oxidise(substrates)
	log.Infof("cross-section %s: %d layers, %d oblique crossings", x.Name, len(x.Shapes.Names), x.Section.Warnings)
	return x, nil
}

func (x *CrossSectionSimulation) oxidise(substrates map[string]bool) {
	var t [3]float64
	thick := false
	for kind := range t {
		if kind < len(x.Cut.OxideThickness) {
			t[kind] = x.Grid.Length(x.Cut.OxideThickness[kind])
			thick = thick || t[kind] > 0
		}
	}
	if !thick {
		return
	}

	metal, substrate := region.Empty(), region.Empty()
	for _, name := range x.Shapes.Names {
		switch {
		case x.materials[name] == setup.Pec:
			metal = metal.Union(x.Shapes.Layers[name])
		case substrates[name]:
			substrate = substrate.Union(x.Shapes.Layers[name])
		}
	}
	o := xsection.Oxidise(metal, substrate, x.Shapes.Box, t)
	oxides := region.UnionAll(o.MA, o.MS, o.SA)

	for _, name := range x.Shapes.Names {
		x.Shapes.Layers[name] = x.Shapes.Layers[name].Difference(oxides)
	}
	substrateMaterial := x.params.SubstrateMaterial.At(0)
	hosts := map[string]string{OxideMA: x.params.VacuumMaterial, OxideMS: substrateMaterial, OxideSA: substrateMaterial}
	for kind, item := range []struct {
		name string
		r    region.Region
	}{{OxideMA, o.MA}, {OxideMS, o.MS}, {OxideSA, o.SA}} {
		if item.r.IsEmpty() {
			continue
		}
		material := hosts[item.name]
		if len(x.params.TLSLayerMaterial) > 0 {
			material = x.params.TLSLayerMaterial.At(kind)
		}
		x.Shapes.Names = append(x.Shapes.Names, item.name)
		x.Shapes.Layers[item.name] = item.r
		x.materials[item.name] = material
	}
}

// CrossSectionLayer is one layer of a cross-section in micrometers.
type CrossSectionLayer struct {
	Material string         `json:"material,omitempty"`
	Polygons [][][2]float64 `json:"polygons"`
}

// CrossSectionData is the solver independent description of a
// cross-section. Coordinates are (distance along cut, z).
type CrossSectionData struct {
	SimulationName string                       `json:"simulation_name"`
	Units          string                       `json:"units"`
	Cut            [2]setup.Point               `json:"cut"`
	Length         float64                      `json:"length"`
	Layers         map[string]CrossSectionLayer `json:"layers"`
	LayerOrder     []string                     `json:"layer_order"`
	MaterialDict   setup.MaterialDict           `json:"material_dict"`
	// Warnings counts layer outlines crossing the cut at an angle.
	Warnings int `json:"warnings"`
}

// SimulationData returns cross-section data after the material check.
func (x *CrossSectionSimulation) SimulationData() (CrossSectionData, error) {
	data := CrossSectionData{
		SimulationName: x.Name,
		Units:          Units,
		Cut:            [2]setup.Point{x.Cut.P1, x.Cut.P2},
		Length:         x.Section.Length,
		Layers:         map[string]CrossSectionLayer{},
		LayerOrder:     []string{},
		MaterialDict:   x.params.MaterialDict,
		Warnings:       x.Section.Warnings,
	}
	for _, name := range x.Shapes.Names {
		r := x.Shapes.Layers[name]
		if r.IsEmpty() {
			continue
		}
		material := x.materials[name]
		if material != "" && !x.params.MaterialDict.Has(material) {
			return CrossSectionData{}, stack.MaterialError("cross-section layer %q uses material %q missing in material_dict", name, material)
		}
		data.LayerOrder = append(data.LayerOrder, name)
		data.Layers[name] = CrossSectionLayer{Material: material, Polygons: x.Grid.RingsUm(r)}
	}
	return data, nil
}
