// Package partition resolves partition regions used to split layers for
// energy participation ratio analysis.
package partition

import (
	"fmt"
	"strings"

	"github.com/yaptide/chipstack/config"
	"github.com/yaptide/chipstack/pkg/region"
	"github.com/yaptide/chipstack/pkg/stack"
	"github.com/yaptide/chipstack/pkg/stack/litho"
	"github.com/yaptide/chipstack/pkg/stack/setup"
	"github.com/yaptide/chipstack/pkg/stack/zlevel"
)

var log = config.NamedLogger("partition")

// Suffixes of metal edge split regions.
const (
	MerSuffix  = "mer"
	BulkSuffix = "bulk"
)

// Context is the stack geometry partition regions are evaluated against.
type Context struct {
	Box    region.Box
	Grid   region.Grid
	Levels zlevel.Table
	Litho  map[string]litho.Regions
}

// Region is a resolved partition region.
type Region struct {
	Name string
	// Declared is the name of the declaring partition region.
	Declared  string
	Face      string
	Region    region.Region
	Bottom    float64
	Top       float64
	Visualise bool
}

// IsSheetInside reports whether z lies in the closed z-range.
func (r Region) IsSheetInside(z float64) bool {
	return z >= r.Bottom && z <= r.Top
}

// CheckNaming rejects duplicate names and names which are a suffix of
// another name, as those make energy attribution ambiguous.
func CheckNaming(declared []setup.PartitionRegion) error {
	seen := map[string]bool{}
	for _, p := range declared {
		if seen[p.Name] {
			return stack.ConfigError("partition region name %q is used more than once", p.Name)
		}
		seen[p.Name] = true
	}
	for i, a := range declared {
		for j, b := range declared {
			if i != j && strings.HasSuffix(b.Name, a.Name) {
				return stack.ConfigError(
					"partition region name %q is a suffix of %q", a.Name, b.Name)
			}
		}
	}
	return nil
}

// ZRange returns z-range of a declared partition region.
func ZRange(p setup.PartitionRegion, levels zlevel.Table) (float64, float64, error) {
	if p.Face == "" {
		return levels.Bottom(), levels.Top(), nil
	}
	f, ok := levels.Faces[p.Face]
	if !ok {
		return 0, 0, stack.PartitionError(p.Name, "face %q is not in face stack", p.Face)
	}
	below := p.VerticalDimensions.At(0)
	above := p.VerticalDimensions.At(1)
	a, b := f.Offset(-below), f.Offset(above)
	if a > b {
		a, b = b, a
	}
	return a, b, nil
}

// Resolve evaluates declared regions in declaration order. A region nested
// in z-range inside an earlier one loses the area of the earlier region.
// Regions with metal edge dimensions are split into mer and bulk parts.
func Resolve(declared []setup.PartitionRegion, ctx Context) ([]Region, error) {
	if err := CheckNaming(declared); err != nil {
		return nil, err
	}
	boxRegion := region.FromBox(ctx.Box)

	base := make([]Region, len(declared))
	for i, p := range declared {
		bottom, top, err := ZRange(p, ctx.Levels)
		if err != nil {
			return nil, err
		}
		r := boxRegion
		if p.Region != nil {
			parts := make([]region.Region, 0, len(p.Region))
			for _, polygon := range p.Region {
				points := make([][2]float64, len(polygon))
				for k, pt := range polygon {
					points[k] = [2]float64(pt)
				}
				parts = append(parts, ctx.Grid.Polygon(points))
			}
			r = region.UnionAll(parts...).Intersection(boxRegion)
		}
		for j := 0; j < i; j++ {
			if base[j].Bottom <= bottom && top <= base[j].Top {
				r = r.Difference(base[j].Region)
			}
		}
		base[i] = Region{
			Name:      p.Name,
			Declared:  p.Name,
			Face:      p.Face,
			Region:    r,
			Bottom:    bottom,
			Top:       top,
			Visualise: p.Visualise,
		}
	}

	resolved := []Region{}
	for i, p := range declared {
		if len(p.MetalEdgeDimensions) == 0 {
			resolved = append(resolved, base[i])
			continue
		}
		mer, bulk, err := splitMetalEdge(p, base[i], ctx)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, mer, bulk)
	}
	log.Debugf("resolved %d partition regions from %d declared", len(resolved), len(declared))
	return resolved, nil
}

// MetalEdgeBand returns the band of width etchWidth on the etch side and
// metalWidth on the metal side of the metal edges of a face.
func MetalEdgeBand(l litho.Regions, etchWidth, metalWidth float64) region.Region {
	metal := l.Metal()
	etch := l.Etch
	return metal.Sized(etchWidth).Intersection(etch).
		Union(etch.Sized(metalWidth).Intersection(metal))
}

func splitMetalEdge(p setup.PartitionRegion, base Region, ctx Context) (Region, Region, error) {
	if p.Face == "" {
		return Region{}, Region{}, stack.PartitionError(p.Name, "metal_edge_dimensions need a face")
	}
	l, ok := ctx.Litho[p.Face]
	if !ok {
		return Region{}, Region{}, stack.PartitionError(p.Name, "no lithography for face %q", p.Face)
	}
	etchWidth := ctx.Grid.Length(p.MetalEdgeDimensions.At(0))
	metalWidth := ctx.Grid.Length(p.MetalEdgeDimensions.At(1))
	band := MetalEdgeBand(l, etchWidth, metalWidth)

	mer, bulk := base, base
	mer.Name = base.Name + MerSuffix
	mer.Region = base.Region.Intersection(band)
	bulk.Name = base.Name + BulkSuffix
	bulk.Region = base.Region.Difference(band)
	return mer, bulk, nil
}

// Dimensions shared by partition regions referenced by a correction cut.
type Dimensions struct {
	Vertical  [2]float64
	MetalEdge []float64
}

// CorrectionCutDimensions returns dimensions shared by the partition
// regions of cut. Regions with different dimensions are rejected.
func CorrectionCutDimensions(cut setup.CorrectionCut, declared []setup.PartitionRegion) (Dimensions, error) {
	byName := map[string]setup.PartitionRegion{}
	for _, p := range declared {
		byName[p.Name] = p
	}
	if len(cut.PartitionRegions) == 0 {
		return Dimensions{}, stack.ConfigError("correction cut %q references no partition region", cut.Name)
	}

	var result Dimensions
	for i, name := range cut.PartitionRegions {
		p, ok := byName[name]
		if !ok {
			return Dimensions{}, stack.ConfigError("correction cut %q references unknown partition region %q", cut.Name, name)
		}
		d := Dimensions{Vertical: [2]float64{p.VerticalDimensions.At(0), p.VerticalDimensions.At(1)}}
		if len(p.MetalEdgeDimensions) > 0 {
			d.MetalEdge = []float64{p.MetalEdgeDimensions.At(0), p.MetalEdgeDimensions.At(1)}
		}
		if i == 0 {
			result = d
			continue
		}
		if d.Vertical != result.Vertical || fmt.Sprint(d.MetalEdge) != fmt.Sprint(result.MetalEdge) {
			return Dimensions{}, stack.ConfigError(
				"correction cut %q: partition regions %q and %q have inconsistent dimensions",
				cut.Name, cut.PartitionRegions[0], name)
		}
	}
	return result, nil
}
