// Package region implements planar regions on the database-unit grid.
//
// A Region is an immutable set of non-overlapping polygons. Boolean
// operations are delegated to github.com/ctessum/geom; this package adds
// what the layer stack needs on top of it: sizing, ring orientation,
// connected components, oriented edges and rasterization.
package region

import (
	"github.com/ctessum/geom"
)

// Point is a point on the database-unit grid.
type Point = geom.Point

// Region is a set of polygons in database units. The zero value is an
// empty region.
type Region struct {
	poly geom.Polygon
}

// Empty returns empty region.
func Empty() Region {
	return Region{}
}

// FromBox returns rectangular region spanned by two corners.
func FromBox(b Box) Region {
	if b.IsEmpty() {
		return Region{}
	}
	return Region{poly: geom.Polygon{{
		{X: b.Min.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Max.Y},
		{X: b.Min.X, Y: b.Max.Y},
	}}}
}

// FromPolygon returns region enclosed by a single ring of points.
func FromPolygon(points []Point) Region {
	ring := cleanRing(points)
	if len(ring) < 3 || ringArea(ring) == 0 {
		return Region{}
	}
	if ringArea(ring) < 0 {
		ring = reversed(ring)
	}
	return Region{poly: geom.Polygon{ring}}
}

// FromPolygons returns union of regions enclosed by the given rings.
func FromPolygons(rings ...[]Point) Region {
	regions := make([]Region, 0, len(rings))
	for _, r := range rings {
		regions = append(regions, FromPolygon(r))
	}
	return UnionAll(regions...)
}

// FromGeom wraps polygon produced elsewhere with the geom library.
func FromGeom(p geom.Polygon) Region {
	return Region{poly: dropDegenerate(p)}
}

// Geom returns underlying polygon.
func (r Region) Geom() geom.Polygon {
	return r.poly
}

// IsEmpty reports whether region has no area.
func (r Region) IsEmpty() bool {
	return len(r.poly) == 0 || r.Area() <= 0
}

// Area in square database units.
func (r Region) Area() float64 {
	if len(r.poly) == 0 {
		return 0
	}
	return r.poly.Area()
}

// Bounds returns bounding box of the region.
func (r Region) Bounds() Box {
	if len(r.poly) == 0 {
		return Box{}
	}
	return boxFromBounds(r.poly.Bounds())
}

// Union returns r ∪ o.
func (r Region) Union(o Region) Region {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return Region{poly: dropDegenerate(polygonOf(r.poly.Union(o.poly)))}
}

// Difference returns r \ o.
func (r Region) Difference(o Region) Region {
	if r.IsEmpty() || o.IsEmpty() || !r.Bounds().Overlaps(o.Bounds()) {
		return r
	}
	return Region{poly: dropDegenerate(polygonOf(r.poly.Difference(o.poly)))}
}

// Intersection returns r ∩ o.
func (r Region) Intersection(o Region) Region {
	if r.IsEmpty() || o.IsEmpty() || !r.Bounds().Overlaps(o.Bounds()) {
		return Region{}
	}
	return Region{poly: dropDegenerate(polygonOf(r.poly.Intersection(o.poly)))}
}

// Overlaps reports whether r and o share a non-zero area.
func (r Region) Overlaps(o Region) bool {
	return !r.Intersection(o).IsEmpty()
}

// Covers reports whether o is completely inside r.
func (r Region) Covers(o Region) bool {
	return o.Difference(r).IsEmpty()
}

// Equal reports whether r and o cover the same area.
func (r Region) Equal(o Region) bool {
	return r.Covers(o) && o.Covers(r)
}

// Contains reports whether p is inside r or on its boundary.
func (r Region) Contains(p Point) bool {
	if r.IsEmpty() || !r.Bounds().ContainsPoint(p) {
		return false
	}
	return p.Within(r.poly) != geom.Outside
}

// Simplified merges collinear points of the region outline.
func (r Region) Simplified() Region {
	if r.IsEmpty() {
		return Region{}
	}
	simplified, ok := r.poly.Simplify(0).(geom.Polygon)
	if !ok {
		return r
	}
	return Region{poly: dropDegenerate(simplified)}
}

// Transformed returns region with every point mapped by f.
func (r Region) Transformed(f func(Point) Point) Region {
	out := make(geom.Polygon, 0, len(r.poly))
	for _, ring := range r.poly {
		mapped := make(geom.Path, len(ring))
		for i, p := range ring {
			mapped[i] = f(p)
		}
		out = append(out, mapped)
	}
	return Region{poly: dropDegenerate(out)}
}

// Moved returns region translated by (dx, dy).
func (r Region) Moved(dx, dy float64) Region {
	return r.Transformed(func(p Point) Point {
		return Point{X: p.X + dx, Y: p.Y + dy}
	})
}

// Scaled returns region scaled by factor around origin.
func (r Region) Scaled(factor float64) Region {
	return r.Transformed(func(p Point) Point {
		return Point{X: p.X * factor, Y: p.Y * factor}
	})
}

// Snapped returns region with coordinates rounded to the grid.
func (r Region) Snapped() Region {
	return r.Transformed(snap)
}

// Rings returns outlines of the region, outer rings counter-clockwise
// and holes clockwise.
func (r Region) Rings() [][]Point {
	rings := analyzeRings(r.poly)
	out := make([][]Point, len(rings))
	for i, ri := range rings {
		out[i] = ri.points
	}
	return out
}

// Components returns connected polygons of the region, each with its holes.
func (r Region) Components() []Region {
	rings := analyzeRings(r.poly)
	comps := []Region{}
	index := map[int]int{}
	for i, ri := range rings {
		if ri.hole {
			continue
		}
		index[i] = len(comps)
		comps = append(comps, Region{poly: geom.Polygon{ri.points}})
	}
	for _, ri := range rings {
		if !ri.hole || ri.parent < 0 {
			continue
		}
		c, ok := index[ri.parent]
		if !ok {
			continue
		}
		comps[c].poly = append(comps[c].poly, ri.points)
	}
	return comps
}

// Interacting returns components of r overlapping o.
func (r Region) Interacting(o Region) Region {
	if r.IsEmpty() || o.IsEmpty() {
		return Region{}
	}
	ob := o.Bounds()
	selected := []Region{}
	for _, c := range r.Components() {
		if !c.Bounds().Overlaps(ob) {
			continue
		}
		if c.Overlaps(o) {
			selected = append(selected, c)
		}
	}
	return UnionAll(selected...)
}

// UnionAll merges regions pairwise.
func UnionAll(regions ...Region) Region {
	nonEmpty := make([]Region, 0, len(regions))
	for _, r := range regions {
		if !r.IsEmpty() {
			nonEmpty = append(nonEmpty, r)
		}
	}
	for len(nonEmpty) > 1 {
		merged := make([]Region, 0, (len(nonEmpty)+1)/2)
		for i := 0; i < len(nonEmpty); i += 2 {
			if i+1 < len(nonEmpty) {
				merged = append(merged, nonEmpty[i].Union(nonEmpty[i+1]))
			} else {
				merged = append(merged, nonEmpty[i])
			}
		}
		nonEmpty = merged
	}
	if len(nonEmpty) == 0 {
		return Region{}
	}
	return nonEmpty[0]
}

// polygonOf flattens result of a boolean operation into a single polygon.
func polygonOf(p geom.Polygonal) geom.Polygon {
	if poly, ok := p.(geom.Polygon); ok {
		return poly
	}
	out := geom.Polygon{}
	for _, part := range p.Polygons() {
		out = append(out, part...)
	}
	return out
}

func dropDegenerate(p geom.Polygon) geom.Polygon {
	out := make(geom.Polygon, 0, len(p))
	for _, ring := range p {
		cleaned := cleanRing(ring)
		if len(cleaned) < 3 || ringArea(cleaned) == 0 {
			continue
		}
		out = append(out, cleaned)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
