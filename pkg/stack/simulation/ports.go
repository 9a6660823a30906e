package simulation

import (
	"math"

	"github.com/yaptide/chipstack/pkg/region"
	"github.com/yaptide/chipstack/pkg/stack"
	"github.com/yaptide/chipstack/pkg/stack/setup"
)

// Point3 is a point in micrometers.
type Point3 [3]float64

// PortData describes a port with its geometry in the stack.
type PortData struct {
	Number int    `json:"number"`
	Type   string `json:"type"`
	Face   string `json:"face"`
	// Polygon spanned by the port.
	Polygon []Point3 `json:"polygon"`
	// SignalEdge and GroundEdge are the lithography edges nearest to the
	// locations of an internal port.
	SignalEdge []Point3 `json:"signal_edge,omitempty"`
	GroundEdge []Point3 `json:"ground_edge,omitempty"`
	DeembedLen float64  `json:"deembed_len,omitempty"`
	setup.Impedance
}

// PortData returns geometry of all ports. Valid after Build.
func (s *Simulation) PortData() ([]PortData, error) {
	out := []PortData{}
	for _, p := range s.params.Ports {
		var (
			d   PortData
			err error
		)
		switch port := p.PortType.(type) {
		case setup.InternalPort:
			d, err = s.internalPortData(port)
		case setup.EdgePort:
			d, err = s.edgePortData(port)
		default:
			err = stack.PortError(p.PortNumber(), "unsupported port type %T", port)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *Simulation) internalPortData(p setup.InternalPort) (PortData, error) {
	l, ok := s.litho[p.Face]
	if !ok {
		return PortData{}, stack.PortError(p.Number, "no lithography for face %q", p.Face)
	}
	edges := l.Litho.Edges()
	if len(edges) == 0 {
		return PortData{}, stack.PortError(p.Number, "face %q has no lithography edges", p.Face)
	}
	z := s.levels.Faces[p.Face].Surface()
	signal := nearestEdge(edges, s.grid.Point(p.SignalLocation[0], p.SignalLocation[1]))
	ground := nearestEdge(edges, s.grid.Point(p.GroundLocation[0], p.GroundLocation[1]))

	// order ground edge so the polygon does not cross itself
	dist := func(a, b region.Point) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }
	if dist(signal.P2, ground.P1) > dist(signal.P2, ground.P2) {
		ground = ground.Reversed()
	}
	d := PortData{
		Number:     p.Number,
		Type:       "internal",
		Face:       p.Face,
		SignalEdge: []Point3{s.point3(signal.P1, z), s.point3(signal.P2, z)},
		GroundEdge: []Point3{s.point3(ground.P1, z), s.point3(ground.P2, z)},
		Impedance:  p.Impedance,
	}
	d.Polygon = []Point3{d.SignalEdge[0], d.SignalEdge[1], d.GroundEdge[0], d.GroundEdge[1]}
	return d, nil
}

// edgePortData returns a port spanning the whole height of the stack on
// the box side nearest to the signal location.
func (s *Simulation) edgePortData(p setup.EdgePort) (PortData, error) {
	loc := s.grid.Point(p.SignalLocation[0], p.SignalLocation[1])
	b := s.box
	corners := []region.Point{b.Min, {X: b.Max.X, Y: b.Min.Y}, b.Max, {X: b.Min.X, Y: b.Max.Y}}
	best, bestDist := region.Edge{}, math.Inf(1)
	for i := range corners {
		e := region.Edge{P1: corners[i], P2: corners[(i+1)%len(corners)]}
		if d := e.DistanceTo(loc); d < bestDist {
			best, bestDist = e, d
		}
	}
	if s.grid.Um(bestDist) > s.params.PortTolerance {
		return PortData{}, stack.PortError(p.Number, "edge port is %v um away from the box", s.grid.Um(bestDist))
	}
	bottom, top := s.levels.Bottom(), s.levels.Top()
	return PortData{
		Number: p.Number,
		Type:   "edge",
		Face:   p.Face,
		Polygon: []Point3{
			s.point3(best.P1, bottom), s.point3(best.P2, bottom),
			s.point3(best.P2, top), s.point3(best.P1, top),
		},
		DeembedLen: p.DeembedLength,
		Impedance:  p.Impedance,
	}, nil
}

func nearestEdge(edges []region.Edge, p region.Point) region.Edge {
	best, bestDist := edges[0], math.Inf(1)
	for _, e := range edges {
		if d := e.DistanceTo(p); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

func (s *Simulation) point3(p region.Point, z float64) Point3 {
	xy := s.grid.PointUm(p)
	return Point3{xy[0], xy[1], z}
}
