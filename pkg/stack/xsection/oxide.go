package xsection

import (
	"math"

	"github.com/yaptide/chipstack/pkg/region"
)

const pointTolerance = 1e-6

// Oxides are the interface layers synthesized around metal.
type Oxides struct {
	// MA is the metal-air interface.
	MA region.Region
	// MS is the metal-substrate interface.
	MS region.Region
	// SA is the substrate-air interface.
	SA region.Region
}

// Oxidise grows interface layers of thickness t = [ma, ms, sa] along the
// boundaries of metal and substrate which are not on the border of box.
// MA grows out of metal into the air, MS out of metal into the substrate
// and SA into the substrate. MS takes precedence over both others.
func Oxidise(metal, substrate region.Region, box region.Box, t [3]float64) Oxides {
	metalEdges := offBorder(metal.Edges(), box)
	substrateEdges := offBorder(substrate.Edges(), box)

	ma, ms := removeSharedPoints(metalEdges, substrateEdges)
	sa, _ := removeSharedPoints(substrateEdges, metalEdges)

	o := Oxides{
		MA: thickenEdges(ma, t[0], true),
		MS: thickenEdges(ms, t[1], true),
		SA: thickenEdges(sa, t[2], false),
	}
	o.MS = o.MS.Intersection(substrate)
	o.MA = o.MA.Difference(metal).Difference(substrate).Difference(o.MS)
	o.SA = o.SA.Intersection(substrate).Difference(o.MS)
	return o
}

func offBorder(edges []region.Edge, box region.Box) []region.Edge {
	out := []region.Edge{}
	for _, e := range edges {
		if !onBorder(e, box) {
			out = append(out, e)
		}
	}
	return out
}

func onBorder(e region.Edge, box region.Box) bool {
	same := func(a, b float64) bool { return math.Abs(a-b) <= pointTolerance }
	vertical := same(e.P1.X, e.P2.X) && (same(e.P1.X, box.Min.X) || same(e.P1.X, box.Max.X))
	horizontal := same(e.P1.Y, e.P2.Y) && (same(e.P1.Y, box.Min.Y) || same(e.P1.Y, box.Max.Y))
	return vertical || horizontal
}

// removeSharedPoints splits edges into the parts which run along an
// opposite edge of others and the free remainder.
func removeSharedPoints(edges, others []region.Edge) (free, shared []region.Edge) {
	idx := region.NewEdgeIndex(others)
	for _, e := range edges {
		pieces := []region.Edge{e}
		for _, i := range idx.Near(e, pointTolerance) {
			next := []region.Edge{}
			for _, p := range pieces {
				kept, removed, ok := cutEdge(p, others[i])
				next = append(next, kept...)
				if ok {
					shared = append(shared, removed)
				}
			}
			pieces = next
		}
		free = append(free, pieces...)
	}
	return free, shared
}

// cutEdge removes from e the part it shares with an anti-parallel
// collinear edge o. Up to two pieces are kept when the shared part lies
// in the middle of e.
func cutEdge(e, o region.Edge) (kept []region.Edge, removed region.Edge, ok bool) {
	de, do := e.Direction(), o.Direction()
	if de.X*do.X+de.Y*do.Y >= 0 || !e.IsCollinear(o, pointTolerance) {
		return []region.Edge{e}, region.Edge{}, false
	}
	length := e.Length()
	lo := math.Max(0, math.Min(e.Project(o.P1), e.Project(o.P2)))
	hi := math.Min(length, math.Max(e.Project(o.P1), e.Project(o.P2)))
	if hi-lo <= pointTolerance {
		return []region.Edge{e}, region.Edge{}, false
	}
	if lo > pointTolerance {
		kept = append(kept, region.Edge{P1: e.P1, P2: e.At(lo)})
	}
	if length-hi > pointTolerance {
		kept = append(kept, region.Edge{P1: e.At(hi), P2: e.P2})
	}
	return kept, region.Edge{P1: e.At(lo), P2: e.At(hi)}, true
}

func samePoint(a, b region.Point) bool {
	return math.Abs(a.X-b.X) <= pointTolerance && math.Abs(a.Y-b.Y) <= pointTolerance
}

// chains links edges end to start.
func chains(edges []region.Edge) [][]region.Edge {
	used := make([]bool, len(edges))
	next := func(p region.Point) int {
		for i, e := range edges {
			if !used[i] && samePoint(e.P1, p) {
				return i
			}
		}
		return -1
	}
	prev := func(p region.Point) int {
		for i, e := range edges {
			if !used[i] && samePoint(e.P2, p) {
				return i
			}
		}
		return -1
	}

	out := [][]region.Edge{}
	for i := range edges {
		if used[i] {
			continue
		}
		used[i] = true
		chain := []region.Edge{edges[i]}
		for j := next(chain[len(chain)-1].P2); j >= 0; j = next(chain[len(chain)-1].P2) {
			used[j] = true
			chain = append(chain, edges[j])
		}
		for j := prev(chain[0].P1); j >= 0; j = prev(chain[0].P1) {
			used[j] = true
			chain = append([]region.Edge{edges[j]}, chain...)
		}
		out = append(out, chain)
	}
	return out
}

// thickenEdges builds ribbons of width t along edge chains, on the right
// side of the edges if outward, else on the left side.
func thickenEdges(edges []region.Edge, t float64, outward bool) region.Region {
	if t <= 0 {
		return region.Empty()
	}
	parts := []region.Region{}
	for _, chain := range chains(edges) {
		if len(chain) > 2 && samePoint(chain[0].P1, chain[len(chain)-1].P2) {
			parts = append(parts, thickenLoop(chain, t, outward))
		} else {
			parts = append(parts, thickenOpen(chain, t, outward))
		}
	}
	return region.UnionAll(parts...)
}

func thickenLoop(chain []region.Edge, t float64, outward bool) region.Region {
	points := make([]region.Point, len(chain))
	signed := 0.0
	for i, e := range chain {
		points[i] = e.P1
		signed += e.P1.X*e.P2.Y - e.P2.X*e.P1.Y
	}
	inside := region.FromPolygon(points)
	// interior of the original region is on the left side, so a clockwise
	// loop is a hole and its right side is inside of the polygon
	if (signed > 0) == outward {
		return inside.Sized(t).Difference(inside)
	}
	return inside.Difference(inside.Sized(-t))
}

func thickenOpen(chain []region.Edge, t float64, outward bool) region.Region {
	side := 1.0
	if !outward {
		side = -1
	}
	normals := make([]region.Point, len(chain))
	for i, e := range chain {
		n := e.Normal()
		normals[i] = region.Point{X: n.X * side, Y: n.Y * side}
	}

	base := make([]region.Point, 0, len(chain)+1)
	offset := make([]region.Point, 0, len(chain)+1)
	shift := func(p, m region.Point) region.Point {
		return region.Point{X: p.X + m.X, Y: p.Y + m.Y}
	}
	base = append(base, chain[0].P1)
	offset = append(offset, shift(chain[0].P1, scale(normals[0], t)))
	for i := 1; i < len(chain); i++ {
		base = append(base, chain[i].P1)
		offset = append(offset, shift(chain[i].P1, mitre(normals[i-1], normals[i], t)))
	}
	last := chain[len(chain)-1]
	base = append(base, last.P2)
	offset = append(offset, shift(last.P2, scale(normals[len(normals)-1], t)))

	ring := base
	for i := len(offset) - 1; i >= 0; i-- {
		ring = append(ring, offset[i])
	}
	return region.FromPolygon(ring)
}

// mitre returns offset of a vertex joining edges with unit normals n1 and
// n2 so both offset edges stay at distance t.
func mitre(n1, n2 region.Point, t float64) region.Point {
	dot := n1.X*n2.X + n1.Y*n2.Y
	if dot <= -1+pointTolerance {
		return scale(n1, t)
	}
	m := scale(region.Point{X: n1.X + n2.X, Y: n1.Y + n2.Y}, t/(1+dot))
	if l := math.Hypot(m.X, m.Y); l > 2*t {
		log.Debugf("mitre of %v clamped to %v", l, 2*t)
		m = scale(m, 2*t/l)
	}
	return m
}

func scale(p region.Point, k float64) region.Point {
	return region.Point{X: p.X * k, Y: p.Y * k}
}
