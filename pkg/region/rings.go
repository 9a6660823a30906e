package region

import (
	"math"

	"github.com/ctessum/geom"
)

type ringInfo struct {
	points []Point
	area   float64
	depth  int
	hole   bool
	parent int
}

// analyzeRings orients rings by nesting depth. Even depth rings are outer
// boundaries (counter-clockwise), odd depth rings are holes (clockwise)
// with parent set to the enclosing ring one level up.
func analyzeRings(p geom.Polygon) []ringInfo {
	rings := make([]ringInfo, 0, len(p))
	for _, ring := range p {
		cleaned := cleanRing(ring)
		if len(cleaned) < 3 {
			continue
		}
		a := ringArea(cleaned)
		if a == 0 {
			continue
		}
		rings = append(rings, ringInfo{points: cleaned, area: math.Abs(a), parent: -1})
	}

	containers := make([][]int, len(rings))
	for i := range rings {
		for j := range rings {
			if i == j || rings[j].area <= rings[i].area {
				continue
			}
			if ringInside(rings[i].points, rings[j].points) {
				containers[i] = append(containers[i], j)
			}
		}
		rings[i].depth = len(containers[i])
		rings[i].hole = rings[i].depth%2 == 1
	}

	for i := range rings {
		if rings[i].hole {
			best := -1
			for _, j := range containers[i] {
				if rings[j].depth != rings[i].depth-1 {
					continue
				}
				if best < 0 || rings[j].area < rings[best].area {
					best = j
				}
			}
			rings[i].parent = best
		}
		ccw := ringArea(rings[i].points) > 0
		if ccw == rings[i].hole {
			rings[i].points = reversed(rings[i].points)
		}
	}
	return rings
}

// ringInside tests whether inner lies inside outer using the first vertex
// of inner that is not on the outline of outer.
func ringInside(inner, outer []Point) bool {
	for _, p := range inner {
		inside, onEdge := pointInRing(p, outer)
		if !onEdge {
			return inside
		}
	}
	for i := range inner {
		a, b := inner[i], inner[(i+1)%len(inner)]
		mid := Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
		inside, onEdge := pointInRing(mid, outer)
		if !onEdge {
			return inside
		}
	}
	return false
}

// pointInRing is an even-odd ray casting test.
func pointInRing(p Point, ring []Point) (inside, onEdge bool) {
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[j], ring[i]
		if onSegment(p, a, b) {
			return false, true
		}
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside, false
}

func onSegment(p, a, b Point) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if math.Abs(cross) > 1e-9*math.Max(1, math.Abs(b.X-a.X)+math.Abs(b.Y-a.Y)) {
		return false
	}
	return p.X >= math.Min(a.X, b.X) && p.X <= math.Max(a.X, b.X) &&
		p.Y >= math.Min(a.Y, b.Y) && p.Y <= math.Max(a.Y, b.Y)
}

// ringArea is the signed shoelace area, positive for counter-clockwise rings.
func ringArea(ring []Point) float64 {
	a := 0.0
	n := len(ring)
	for i := 0; i < n; i++ {
		p, q := ring[i], ring[(i+1)%n]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// cleanRing removes repeated points, the closing point and collinear
// vertices.
func cleanRing(ring []Point) []Point {
	out := make([]Point, 0, len(ring))
	for _, p := range ring {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	for changed := true; changed && len(out) >= 3; {
		changed = false
		for i := 0; i < len(out); i++ {
			prev := out[(i+len(out)-1)%len(out)]
			next := out[(i+1)%len(out)]
			cross := (out[i].X-prev.X)*(next.Y-prev.Y) - (out[i].Y-prev.Y)*(next.X-prev.X)
			if cross == 0 {
				out = append(out[:i], out[i+1:]...)
				changed = true
				break
			}
		}
	}
	return out
}

func reversed(ring []Point) []Point {
	out := make([]Point, len(ring))
	for i, p := range ring {
		out[len(ring)-1-i] = p
	}
	return out
}

func snap(p Point) Point {
	return Point{X: math.Round(p.X), Y: math.Round(p.Y)}
}
