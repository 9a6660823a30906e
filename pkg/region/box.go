package region

import (
	"math"

	"github.com/ctessum/geom"
)

// Box is an axis aligned rectangle. The zero value is empty.
type Box struct {
	Min Point
	Max Point
}

// NewBox returns box spanned by two arbitrary corners.
func NewBox(p1, p2 Point) Box {
	return Box{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

func boxFromBounds(b *geom.Bounds) Box {
	if b == nil || b.Min.X > b.Max.X || b.Min.Y > b.Max.Y {
		return Box{}
	}
	return Box{Min: b.Min, Max: b.Max}
}

// IsEmpty reports whether box has no area.
func (b Box) IsEmpty() bool {
	return b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y
}

// Width ...
func (b Box) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height ...
func (b Box) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Center ...
func (b Box) Center() Point {
	return Point{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Enlarged returns box grown by d on every side.
func (b Box) Enlarged(d float64) Box {
	return Box{
		Min: Point{X: b.Min.X - d, Y: b.Min.Y - d},
		Max: Point{X: b.Max.X + d, Y: b.Max.Y + d},
	}
}

// Overlaps reports whether boxes share interior or boundary points.
func (b Box) Overlaps(o Box) bool {
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X &&
		b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y
}

// ContainsPoint includes boundary.
func (b Box) ContainsPoint(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Union returns smallest box containing both boxes.
func (b Box) Union(o Box) Box {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return Box{
		Min: Point{X: math.Min(b.Min.X, o.Min.X), Y: math.Min(b.Min.Y, o.Min.Y)},
		Max: Point{X: math.Max(b.Max.X, o.Max.X), Y: math.Max(b.Max.Y, o.Max.Y)},
	}
}

// Bounds implements spatial item interface of the rtree index.
func (b Box) Bounds() *geom.Bounds {
	return &geom.Bounds{Min: b.Min, Max: b.Max}
}

// Frame returns ring of width w lying inside the box along its border.
func (b Box) Frame(w float64) Region {
	return FromBox(b).Difference(FromBox(b.Enlarged(-w)))
}
