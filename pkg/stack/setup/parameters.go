// Package setup contains the declarative input of a layer stack build:
// parameters, face stack, ports, partition regions and materials.
package setup

import (
	"fmt"

	"github.com/yaptide/chipstack/validate"
)

// TLS interface kinds, in the order used by list parameters.
const (
	MA = iota
	MS
	SA
)

// Parameters of one simulation. Lengths are in micrometers.
type Parameters struct {
	Name string  `json:"name"`
	Box  Box     `json:"box"`
	DBU  float64 `json:"dbu"`

	FaceStack         FaceStack `json:"face_stack"`
	SubstrateHeight   Floats    `json:"substrate_height"`
	SubstrateMaterial Strings   `json:"substrate_material"`
	ChipDistance      Floats    `json:"chip_distance"`
	LowerBoxHeight    float64   `json:"lower_box_height"`
	UpperBoxHeight    float64   `json:"upper_box_height"`

	// Per face lists, indexed by position of the face in the face stack.
	MetalHeight        Floats  `json:"metal_height"`
	DielectricHeight   Floats  `json:"dielectric_height"`
	DielectricMaterial Strings `json:"dielectric_material"`
	TrenchDepth        Floats  `json:"substrate_trench_depth,omitempty"`

	VacuumMaterial string       `json:"vacuum_material"`
	MaterialDict   MaterialDict `json:"material_dict"`

	OverEtching   float64 `json:"over_etching"`
	WithGrid      bool    `json:"with_grid"`
	PortTolerance float64 `json:"port_tolerance"`

	AirbridgeHeight    float64 `json:"airbridge_height"`
	AirbridgeThickness float64 `json:"airbridge_thickness"`

	// TLSLayerThickness [ma, ms, sa].
	TLSLayerThickness     Floats  `json:"tls_layer_thickness,omitempty"`
	TLSLayerMaterial      Strings `json:"tls_layer_material,omitempty"`
	TLSSheetApproximation bool    `json:"tls_sheet_approximation,omitempty"`

	Ports            []Port            `json:"ports"`
	PartitionRegions []PartitionRegion `json:"partition_regions,omitempty"`
	CorrectionCuts   []CorrectionCut   `json:"correction_cuts,omitempty"`

	// Names of registered providers extending partition regions and
	// correction cuts.
	PartitionRegionProvider string `json:"partition_region_provider,omitempty"`
	CorrectionCutProvider   string `json:"correction_cut_provider,omitempty"`
}

// DefaultParameters returns parameters of a single face chip in a
// 500x500 um box.
func DefaultParameters() Parameters {
	return Parameters{
		Name:               "simulation",
		Box:                Box{P1: Point{0, 0}, P2: Point{500, 500}},
		DBU:                0.001,
		FaceStack:          FaceStack{{"1t1"}},
		SubstrateHeight:    Floats{550},
		SubstrateMaterial:  Strings{"silicon"},
		ChipDistance:       Floats{8},
		LowerBoxHeight:     0,
		UpperBoxHeight:     1000,
		MetalHeight:        Floats{0},
		DielectricHeight:   Floats{0},
		DielectricMaterial: Strings{"silicon"},
		VacuumMaterial:     "vacuum",
		MaterialDict:       DefaultMaterialDict(),
		PortTolerance:      1,
		AirbridgeHeight:    3.4,
		AirbridgeThickness: 0.3,
		Ports:              []Port{},
	}
}

// TLSThickness returns thickness of given interface kind.
func (p Parameters) TLSThickness(kind int) float64 {
	if kind >= len(p.TLSLayerThickness) {
		return 0
	}
	return p.TLSLayerThickness[kind]
}

// HasTLS reports whether interface layers of given kind are created.
func (p Parameters) HasTLS(kind int) bool {
	return p.TLSSheetApproximation || p.TLSThickness(kind) > 0
}

// Validate ...
func (p Parameters) Validate() error {
	result := E{}

	if p.Box.Width() <= 0 || p.Box.Height() <= 0 {
		result["box"] = fmt.Errorf("should have positive width and height")
	}
	if !validate.Positive(p.DBU) {
		result["dbu"] = fmt.Errorf("should be positive")
	}
	result.merge("face_stack", p.FaceStack.Validate())

	nonNegativeLists := map[string]Floats{
		"substrate_height":       p.SubstrateHeight,
		"chip_distance":          p.ChipDistance,
		"metal_height":           p.MetalHeight,
		"dielectric_height":      p.DielectricHeight,
		"substrate_trench_depth": p.TrenchDepth,
		"tls_layer_thickness":    p.TLSLayerThickness,
	}
	for key, values := range nonNegativeLists {
		if !validate.NonNegativeAll(values) {
			result[key] = fmt.Errorf("should be non-negative")
		}
	}
	nonNegative := map[string]float64{
		"lower_box_height":    p.LowerBoxHeight,
		"upper_box_height":    p.UpperBoxHeight,
		"port_tolerance":      p.PortTolerance,
		"airbridge_height":    p.AirbridgeHeight,
		"airbridge_thickness": p.AirbridgeThickness,
	}
	for key, value := range nonNegative {
		if !validate.NonNegative(value) {
			result[key] = fmt.Errorf("should be non-negative")
		}
	}
	if len(p.SubstrateHeight) == 0 {
		result["substrate_height"] = fmt.Errorf("is required")
	}
	if len(p.TLSLayerThickness) > 3 {
		result["tls_layer_thickness"] = fmt.Errorf("expected at most 3 values [ma, ms, sa]")
	}
	if p.VacuumMaterial == "" {
		result["vacuum_material"] = fmt.Errorf("is required")
	}
	result.merge("material_dict", p.MaterialDict.Validate())

	for i, port := range p.Ports {
		result.merge(fmt.Sprintf("ports.%d", i), port.Validate(p.FaceStack))
	}
	for i, region := range p.PartitionRegions {
		result.merge(fmt.Sprintf("partition_regions.%d", i), region.Validate(p.FaceStack))
	}
	return result.orNil()
}
