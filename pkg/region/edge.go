package region

import (
	"math"

	"github.com/ctessum/geom"
)

// Edge is a directed segment of a region outline. Edges returned by
// Region.Edges have the region interior on their left side.
type Edge struct {
	P1 Point
	P2 Point
}

// Edges returns oriented outline edges of the region.
func (r Region) Edges() []Edge {
	edges := []Edge{}
	for _, ring := range r.Rings() {
		n := len(ring)
		for i := 0; i < n; i++ {
			edges = append(edges, Edge{P1: ring[i], P2: ring[(i+1)%n]})
		}
	}
	return edges
}

// Length ...
func (e Edge) Length() float64 {
	return math.Hypot(e.P2.X-e.P1.X, e.P2.Y-e.P1.Y)
}

// Direction returns unit vector from P1 to P2.
func (e Edge) Direction() Point {
	l := e.Length()
	if l == 0 {
		return Point{}
	}
	return Point{X: (e.P2.X - e.P1.X) / l, Y: (e.P2.Y - e.P1.Y) / l}
}

// Normal returns unit normal on the right side of the edge, which points
// out of the region for edges returned by Region.Edges.
func (e Edge) Normal() Point {
	d := e.Direction()
	return Point{X: d.Y, Y: -d.X}
}

// Reversed ...
func (e Edge) Reversed() Edge {
	return Edge{P1: e.P2, P2: e.P1}
}

// Bounds implements spatial item interface of the rtree index.
func (e Edge) Bounds() *geom.Bounds {
	return &geom.Bounds{
		Min: Point{X: math.Min(e.P1.X, e.P2.X), Y: math.Min(e.P1.Y, e.P2.Y)},
		Max: Point{X: math.Max(e.P1.X, e.P2.X), Y: math.Max(e.P1.Y, e.P2.Y)},
	}
}

// Project returns position of p along the edge line measured from P1.
func (e Edge) Project(p Point) float64 {
	d := e.Direction()
	return (p.X-e.P1.X)*d.X + (p.Y-e.P1.Y)*d.Y
}

// At returns point at distance t from P1 along the edge line.
func (e Edge) At(t float64) Point {
	d := e.Direction()
	return Point{X: e.P1.X + d.X*t, Y: e.P1.Y + d.Y*t}
}

// DistanceTo returns distance from p to the closed segment.
func (e Edge) DistanceTo(p Point) float64 {
	l := e.Length()
	if l == 0 {
		return math.Hypot(p.X-e.P1.X, p.Y-e.P1.Y)
	}
	t := math.Max(0, math.Min(l, e.Project(p)))
	q := e.At(t)
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// IsParallel reports whether edges have parallel (or anti-parallel)
// directions within tolerance given as sine of the angle.
func (e Edge) IsParallel(o Edge, tolerance float64) bool {
	d1, d2 := e.Direction(), o.Direction()
	return math.Abs(d1.X*d2.Y-d1.Y*d2.X) <= tolerance
}

// IsCollinear reports whether o lies on the infinite line through e.
func (e Edge) IsCollinear(o Edge, tolerance float64) bool {
	if !e.IsParallel(o, tolerance) {
		return false
	}
	n := e.Normal()
	offset := (o.P1.X-e.P1.X)*n.X + (o.P1.Y-e.P1.Y)*n.Y
	return math.Abs(offset) <= tolerance
}

// Crosses reports whether two segments intersect, touching included.
func (e Edge) Crosses(o Edge) bool {
	d1 := orientation(o.P1, o.P2, e.P1)
	d2 := orientation(o.P1, o.P2, e.P2)
	d3 := orientation(e.P1, e.P2, o.P1)
	d4 := orientation(e.P1, e.P2, o.P2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && onSegment(e.P1, o.P1, o.P2)) ||
		(d2 == 0 && onSegment(e.P2, o.P1, o.P2)) ||
		(d3 == 0 && onSegment(o.P1, e.P1, e.P2)) ||
		(d4 == 0 && onSegment(o.P2, e.P1, e.P2))
}

func orientation(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// DistanceTo returns distance from p to the region, zero inside.
func (r Region) DistanceTo(p Point) float64 {
	if r.IsEmpty() {
		return math.Inf(1)
	}
	if r.Contains(p) {
		return 0
	}
	return r.BoundaryDistance(p)
}

// BoundaryDistance returns distance from p to the nearest outline edge.
func (r Region) BoundaryDistance(p Point) float64 {
	d := math.Inf(1)
	for _, e := range r.Edges() {
		d = math.Min(d, e.DistanceTo(p))
	}
	return d
}
