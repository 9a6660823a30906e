package xsection

import (
	"math"
	"sort"

	"github.com/yaptide/chipstack/config"
	"github.com/yaptide/chipstack/pkg/region"
)

var log = config.NamedLogger("xsection")

// perpendicularTolerance is the largest sine of the angle between the cut
// normal and an outline edge crossing the cut that is still accepted as a
// clean crossing.
const perpendicularTolerance = 1e-3

// Footprint is a layer outline in layout database units.
type Footprint struct {
	Name   string
	Region region.Region
}

// Segment is an interval along the cut in micrometers.
type Segment struct {
	Start float64
	End   float64
}

// Section is the intersection of footprints with a cut.
type Section struct {
	// Length of the cut in micrometers.
	Length   float64
	Names    []string
	Segments map[string][]Segment
	// Warnings counts outline edges crossing the cut at an angle.
	Warnings int
}

// TakeCrossSection intersects every footprint with a corridor around the
// cut and projects the pieces on the cut direction. The corridor is one
// database unit wide on either side of an axis-aligned cut and widens
// with the slope of the cut up to the grid diagonal.
func TakeCrossSection(footprints []Footprint, cut region.Edge, grid region.Grid) Section {
	length := cut.Length()
	s := Section{Length: grid.Um(length), Segments: map[string][]Segment{}}
	halfWidth := corridorHalfWidth(cut)
	corridor := corridorOf(cut, halfWidth)

	for _, f := range footprints {
		s.Names = append(s.Names, f.Name)
		pieces := f.Region.Intersection(corridor)
		if pieces.IsEmpty() {
			continue
		}
		s.Warnings += obliqueCrossings(f, cut, halfWidth)

		segments := []Segment{}
		for _, c := range pieces.Components() {
			lo, hi := math.Inf(1), math.Inf(-1)
			for _, ring := range c.Rings() {
				for _, p := range ring {
					t := cut.Project(p)
					lo, hi = math.Min(lo, t), math.Max(hi, t)
				}
			}
			lo, hi = math.Max(lo, 0), math.Min(hi, length)
			if hi > lo {
				segments = append(segments, Segment{Start: grid.Um(lo), End: grid.Um(hi)})
			}
		}
		s.Segments[f.Name] = mergeSegments(segments)
	}
	return s
}

// corridorHalfWidth covers grid points rounded off the cut line: a
// snapped vertex is up to half a unit away along each axis.
func corridorHalfWidth(cut region.Edge) float64 {
	length := cut.Length()
	if length == 0 {
		return 1
	}
	return (math.Abs(cut.P2.X-cut.P1.X) + math.Abs(cut.P2.Y-cut.P1.Y)) / length
}

func corridorOf(cut region.Edge, halfWidth float64) region.Region {
	n := cut.Normal()
	offset := func(p region.Point, k float64) region.Point {
		return region.Point{X: p.X + n.X*halfWidth*k, Y: p.Y + n.Y*halfWidth*k}
	}
	return region.FromPolygon([]region.Point{
		offset(cut.P1, -1), offset(cut.P2, -1), offset(cut.P2, 1), offset(cut.P1, 1),
	})
}

// obliqueCrossings counts outline edges which cross the cut and are not
// perpendicular to it.
func obliqueCrossings(f Footprint, cut region.Edge, halfWidth float64) int {
	edges := f.Region.Edges()
	idx := region.NewEdgeIndex(edges)
	count := 0
	normal := region.Edge{P2: cut.Normal()}
	for _, i := range idx.Near(cut, halfWidth) {
		e := edges[i]
		if !e.Crosses(cut) || e.IsCollinear(cut, perpendicularTolerance) {
			continue
		}
		if !e.IsParallel(normal, perpendicularTolerance) {
			log.Warnf("layer %s: edge %v-%v crosses cut at an angle, cross-section is approximate", f.Name, e.P1, e.P2)
			count++
		}
	}
	return count
}

func mergeSegments(segments []Segment) []Segment {
	sort.Slice(segments, func(i, j int) bool { return segments[i].Start < segments[j].Start })
	merged := []Segment{}
	for _, s := range segments {
		if n := len(merged); n > 0 && s.Start <= merged[n-1].End {
			merged[n-1].End = math.Max(merged[n-1].End, s.End)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// Shapes is a 2D cell in (distance along cut, z) coordinates.
type Shapes struct {
	Grid region.Grid
	// Box spans the cut length and the vertical extent of all levels.
	Box    region.Box
	Names  []string
	Layers map[string]region.Region
}

// ProduceIntersectionShapes turns segments into rectangles spanning the
// profile levels, then applies shadowing by dominant layers, removes
// invisible layers and merges renamed layers.
func ProduceIntersectionShapes(s Section, profile Profile, grid region.Grid) Shapes {
	rects := map[string]region.Region{}
	names := []string{}
	bottom, top := math.Inf(1), math.Inf(-1)
	for _, name := range s.Names {
		level, ok := profile.Level(name)
		if !ok {
			continue
		}
		bottom, top = math.Min(bottom, level.Bottom), math.Max(top, level.Top)
		parts := []region.Region{}
		for _, seg := range s.Segments[name] {
			parts = append(parts, region.FromBox(grid.Box(seg.Start, level.Bottom, seg.End, level.Top)))
		}
		if r := region.UnionAll(parts...); !r.IsEmpty() {
			rects[name] = r
			names = append(names, name)
		}
	}

	shadowed := map[string]region.Region{}
	for _, name := range names {
		r := rects[name]
		if re := profile.Dominant(name); re != nil {
			for _, other := range names {
				if other != name && re.MatchString(other) {
					r = r.Difference(rects[other])
				}
			}
		}
		shadowed[name] = r
	}

	out := Shapes{Grid: grid, Layers: map[string]region.Region{}}
	if !math.IsInf(bottom, 1) {
		out.Box = grid.Box(0, bottom, s.Length, top)
	}
	for _, name := range names {
		if !profile.Visible(name) || shadowed[name].IsEmpty() {
			continue
		}
		target := name
		if to := profile.ChangeTo(name); to != "" {
			target = to
		}
		if _, ok := out.Layers[target]; !ok {
			out.Names = append(out.Names, target)
		}
		out.Layers[target] = out.Layers[target].Union(shadowed[name])
	}
	return out
}
