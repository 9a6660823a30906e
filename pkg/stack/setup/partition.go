package setup

import (
	"fmt"

	"github.com/yaptide/chipstack/validate"
)

// PartitionRegion declares a named volume used to split layers for
// participation ratio analysis.
type PartitionRegion struct {
	Name string `json:"name"`
	// Face limits the region to the z-window of one face. Empty face
	// means the whole stack height.
	Face string `json:"face,omitempty"`
	// Region polygons in micrometers. Missing region means whatever
	// earlier regions did not claim.
	Region [][]Point `json:"region,omitempty"`
	// VerticalDimensions are the extents [into substrate, into vacuum]
	// measured from the face. A single value is used for both.
	VerticalDimensions Floats `json:"vertical_dimensions"`
	// MetalEdgeDimensions are widths [etch side, metal side] of the
	// metal edge band. When set the region is split into mer and bulk.
	MetalEdgeDimensions Floats `json:"metal_edge_dimensions,omitempty"`
	Visualise           bool   `json:"visualise,omitempty"`
}

// Validate ...
func (p PartitionRegion) Validate(faces FaceStack) error {
	result := E{}
	if p.Name == "" {
		result["name"] = fmt.Errorf("is required")
	}
	if p.Face != "" && faces.Index(p.Face) < 0 {
		result["face"] = fmt.Errorf("face %q is not in face_stack", p.Face)
	}
	if n := len(p.VerticalDimensions); n < 1 || n > 2 {
		result["vertical_dimensions"] = fmt.Errorf("expected 1 or 2 values, got %d", n)
	} else if !validate.NonNegativeAll(p.VerticalDimensions) {
		result["vertical_dimensions"] = fmt.Errorf("should be non-negative")
	}
	if n := len(p.MetalEdgeDimensions); n > 2 {
		result["metal_edge_dimensions"] = fmt.Errorf("expected at most 2 values, got %d", n)
	} else if !validate.NonNegativeAll(p.MetalEdgeDimensions) {
		result["metal_edge_dimensions"] = fmt.Errorf("should be non-negative")
	}
	for i, polygon := range p.Region {
		if len(polygon) < 3 {
			result[fmt.Sprintf("region.%d", i)] = fmt.Errorf("polygon needs at least 3 points")
		}
	}
	return result.orNil()
}

// CorrectionCut is a cross-section used to correct participation ratios
// of the partition regions it crosses.
type CorrectionCut struct {
	Name             string   `json:"name"`
	P1               Point    `json:"p1"`
	P2               Point    `json:"p2"`
	PartitionRegions []string `json:"partition_regions"`
	Simulate         bool     `json:"simulate,omitempty"`
}
