// Package layout defines how the stack reads mask geometry of a chip.
package layout

import (
	"github.com/yaptide/chipstack/pkg/region"
)

// Names of layout layers read by the stack.
const (
	MetalGap       = "base_metal_gap_wo_grid"
	MetalAddition  = "base_metal_addition"
	GroundGrid     = "ground_grid"
	AirbridgePads  = "airbridge_pads"
	AirbridgeFlyer = "airbridge_flyover"
	TSV            = "through_silicon_via"
	Trench         = "substrate_trench"
	Dielectric     = "dielectric"
)

// Layout gives access to element geometry. Regions are in database
// units.
type Layout interface {
	// RegionFromLayer returns geometry drawn on layer of face. Missing
	// layers give an empty region.
	RegionFromLayer(face, layer string) region.Region
	// Refpoints returns named reference points.
	Refpoints() map[string]region.Point
}
