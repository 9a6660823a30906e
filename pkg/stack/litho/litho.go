// Package litho derives signal, ground, gap and etch regions of a face
// from its lithography.
package litho

import (
	"math"

	"github.com/yaptide/chipstack/config"
	"github.com/yaptide/chipstack/pkg/region"
	"github.com/yaptide/chipstack/pkg/stack/layout"
	"github.com/yaptide/chipstack/pkg/stack/setup"
)

var log = config.NamedLogger("litho")

// Regions of one face. Signal, Ground and Gap tile the simulation box.
type Regions struct {
	Face string
	// Litho is the drawn metal removal after over-etching and port etches.
	Litho  region.Region
	Signal region.Region
	// Ground includes the area covered by the ground grid.
	Ground region.Region
	Gap    region.Region
	// Grid is the part of ground removed by the ground grid.
	Grid region.Region
	// Etch is Gap extended by Grid.
	Etch region.Region
	// PortsOffEdge counts ports not located on a lithography edge.
	PortsOffEdge int
}

// GroundMetal returns ground with the grid removed.
func (r Regions) GroundMetal() region.Region {
	return r.Ground.Difference(r.Grid)
}

// Metal returns all metal of the face.
func (r Regions) Metal() region.Region {
	return r.Signal.Union(r.GroundMetal())
}

// Resolve computes regions of face. Ports of other faces are ignored.
func Resolve(face string, params setup.Parameters, l layout.Layout) Regions {
	grid := region.Grid{DBU: params.DBU}
	box := grid.Box(params.Box.P1[0], params.Box.P1[1], params.Box.P2[0], params.Box.P2[1])
	boxRegion := region.FromBox(box)

	ports := []setup.Port{}
	for _, p := range params.Ports {
		if p.PortFace() == face {
			ports = append(ports, p)
		}
	}

	gap := l.RegionFromLayer(face, layout.MetalGap)
	addition := l.RegionFromLayer(face, layout.MetalAddition)
	lithography := gap.Difference(addition).Simplified()
	lithography = overEtch(lithography, box, grid.Length(params.OverEtching))
	lithography = lithography.Union(portEtch(ports, grid)).Intersection(boxRegion)

	result := Regions{Face: face, Litho: lithography}
	signalAll := boxRegion.Difference(lithography)
	result.Gap = boxRegion.Intersection(lithography)
	result.Ground = groundOf(signalAll, box, ports, grid)
	result.Signal = signalAll.Difference(result.Ground)

	result.Etch = result.Gap
	if params.WithGrid {
		result.Grid = l.RegionFromLayer(face, layout.GroundGrid).Intersection(result.Ground)
		result.Etch = result.Gap.Union(result.Grid)
	}

	result.PortsOffEdge = checkPorts(face, ports, result.Gap, box, grid, params.PortTolerance)
	log.Debugf("face %s: signal %.0f, ground %.0f, gap %.0f dbu^2",
		face, result.Signal.Area(), result.Ground.Area(), result.Gap.Area())
	return result
}

// overEtch grows the lithography by d. Negative d shrinks it by growing
// the metal inside the box, so the box border does not erode.
func overEtch(lithography region.Region, box region.Box, d float64) region.Region {
	boxRegion := region.FromBox(box)
	switch {
	case d > 0:
		return lithography.Sized(d).Intersection(boxRegion)
	case d < 0:
		metal := boxRegion.Difference(lithography)
		return boxRegion.Difference(metal.Sized(-d))
	default:
		return lithography
	}
}

// portEtch returns strips of metal removed between signal and ground
// locations of internal ports.
func portEtch(ports []setup.Port, grid region.Grid) region.Region {
	strips := []region.Region{}
	for _, p := range ports {
		internal, ok := p.PortType.(setup.InternalPort)
		if !ok || internal.EtchWidth <= 0 {
			continue
		}
		s := grid.Point(internal.SignalLocation[0], internal.SignalLocation[1])
		g := grid.Point(internal.GroundLocation[0], internal.GroundLocation[1])
		e := region.Edge{P1: s, P2: g}
		n := e.Normal()
		hw := grid.Length(internal.EtchWidth) / 2
		strips = append(strips, region.FromPolygon([]region.Point{
			{X: s.X + n.X*hw, Y: s.Y + n.Y*hw},
			{X: g.X + n.X*hw, Y: g.Y + n.Y*hw},
			{X: g.X - n.X*hw, Y: g.Y - n.Y*hw},
			{X: s.X - n.X*hw, Y: s.Y - n.Y*hw},
		}).Snapped())
	}
	return region.UnionAll(strips...)
}

// groundOf selects metal connected to the box border. Metal at port
// signal locations never joins ground, metal at ground locations of non
// floating ports always does.
func groundOf(metal region.Region, box region.Box, ports []setup.Port, grid region.Grid) region.Region {
	index := region.NewComponentIndex(metal)
	components := index.Components()
	frame := box.Frame(1)

	inGround := map[int]bool{}
	for _, id := range index.Interacting(frame) {
		inGround[id] = true
	}
	for changed := true; changed; {
		changed = false
		for _, p := range ports {
			s := grid.Point(p.Signal()[0], p.Signal()[1])
			for _, id := range index.Near(s, 1) {
				if inGround[id] {
					delete(inGround, id)
					changed = true
				}
			}
			internal, ok := p.PortType.(setup.InternalPort)
			if !ok || internal.Floating {
				continue
			}
			g := grid.Point(internal.GroundLocation[0], internal.GroundLocation[1])
			for _, id := range index.Near(g, 1) {
				if !inGround[id] && !nearSignal(index, id, ports, grid) {
					inGround[id] = true
					changed = true
				}
			}
		}
	}

	selected := make([]region.Region, 0, len(inGround))
	for id := range components {
		if inGround[id] {
			selected = append(selected, components[id])
		}
	}
	return region.UnionAll(selected...)
}

func nearSignal(index *region.ComponentIndex, id int, ports []setup.Port, grid region.Grid) bool {
	for _, p := range ports {
		s := grid.Point(p.Signal()[0], p.Signal()[1])
		for _, other := range index.Near(s, 1) {
			if other == id {
				return true
			}
		}
	}
	return false
}

// checkPorts counts port locations farther than tolerance from the edge
// they have to lie on: lithography edge for internal ports, box border
// for edge ports.
func checkPorts(face string, ports []setup.Port, gap region.Region, box region.Box, grid region.Grid, tolerance float64) int {
	offEdge := 0
	border := region.FromBox(box)
	check := func(number int, name string, p setup.Point, edge region.Region) {
		d := grid.Um(edge.BoundaryDistance(grid.Point(p[0], p[1])))
		if d <= tolerance {
			return
		}
		offEdge++
		if math.IsInf(d, 1) {
			log.Warnf("face %s port %d: %s location %v, face has no lithography", face, number, name, p)
			return
		}
		log.Warnf("face %s port %d: %s location %v is %.3f um away from lithography edge", face, number, name, p, d)
	}
	for _, p := range ports {
		internal, ok := p.PortType.(setup.InternalPort)
		if !ok {
			check(p.PortNumber(), "signal", p.Signal(), border)
			continue
		}
		check(p.PortNumber(), "signal", p.Signal(), gap)
		check(p.PortNumber(), "ground", internal.GroundLocation, gap)
	}
	return offEdge
}
