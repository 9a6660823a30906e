package region

import (
	"sort"
)

// Sized grows (d > 0) or shrinks (d < 0) the region isotropically by |d|
// using a square structuring element, so axis aligned outlines keep their
// sharp corners.
func (r Region) Sized(d float64) Region {
	switch {
	case r.IsEmpty() || d == 0:
		return r
	case d > 0:
		return r.grown(d)
	default:
		return r.shrunk(-d)
	}
}

// SizedXY grows by dx horizontally and dy vertically. Both have to be
// non-negative.
func (r Region) SizedXY(dx, dy float64) Region {
	if r.IsEmpty() || (dx == 0 && dy == 0) {
		return r
	}
	parts := []Region{r}
	for _, e := range r.Edges() {
		parts = append(parts, sweptEdge(e, dx, dy))
	}
	return UnionAll(parts...)
}

func (r Region) grown(d float64) Region {
	return r.SizedXY(d, d)
}

// shrunk erodes the region: everything closer than d to the complement
// is removed. The complement is taken inside an enlarged bounding box so
// the box border never erodes the result.
func (r Region) shrunk(d float64) Region {
	frame := FromBox(r.Bounds().Enlarged(2*d + 1))
	complement := frame.Difference(r)
	return r.Difference(complement.grown(d))
}

// sweptEdge is the Minkowski sum of edge with a dx by dy rectangle.
func sweptEdge(e Edge, dx, dy float64) Region {
	points := make([]Point, 0, 8)
	for _, p := range []Point{e.P1, e.P2} {
		points = append(points,
			Point{X: p.X - dx, Y: p.Y - dy},
			Point{X: p.X + dx, Y: p.Y - dy},
			Point{X: p.X + dx, Y: p.Y + dy},
			Point{X: p.X - dx, Y: p.Y + dy},
		)
	}
	return FromPolygon(convexHull(points))
}

// convexHull is Andrew's monotone chain; returns counter-clockwise hull.
func convexHull(points []Point) []Point {
	pts := append([]Point(nil), points...)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	if len(pts) < 3 {
		return pts
	}
	cross := func(o, a, b Point) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}
	hull := make([]Point, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}
