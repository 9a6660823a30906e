// Package simulation builds the layer stack of a chip: z-levels,
// lithography, partition regions and finalized layers, and exposes them
// as solver independent simulation data.
package simulation

import (
	"github.com/yaptide/chipstack/config"
	"github.com/yaptide/chipstack/pkg/region"
	"github.com/yaptide/chipstack/pkg/stack"
	"github.com/yaptide/chipstack/pkg/stack/layers"
	"github.com/yaptide/chipstack/pkg/stack/layout"
	"github.com/yaptide/chipstack/pkg/stack/litho"
	"github.com/yaptide/chipstack/pkg/stack/partition"
	"github.com/yaptide/chipstack/pkg/stack/setup"
	"github.com/yaptide/chipstack/pkg/stack/zlevel"
)

var log = config.NamedLogger("simulation")

// Option configures a Simulation.
type Option func(*Simulation)

// WithRegistry shares a layer number registry between simulations.
func WithRegistry(r *Registry) Option {
	return func(s *Simulation) {
		s.registry = r
	}
}

// WithProviders sets registry of partition region and correction cut
// providers.
func WithProviders(p *partition.Registry) Option {
	return func(s *Simulation) {
		s.providers = p
	}
}

// Diagnostics collects input which was accepted but had no effect.
type Diagnostics struct {
	layers.Diagnostics
	// PortsOffEdge counts per face ports not located on a lithography edge.
	PortsOffEdge map[string]int `json:"ports_off_edge,omitempty"`
}

// Simulation is one layer stack build.
type Simulation struct {
	params    setup.Parameters
	layout    layout.Layout
	grid      region.Grid
	box       region.Box
	registry  *Registry
	providers *partition.Registry

	built      bool
	levels     zlevel.Table
	litho      map[string]litho.Regions
	declared   []setup.PartitionRegion
	cuts       []setup.CorrectionCut
	partitions []partition.Region
	result     layers.Result
}

// New validates parameters. The stack is computed by Build.
func New(params setup.Parameters, l layout.Layout, opts ...Option) (*Simulation, error) {
	if err := params.Validate(); err != nil {
		return nil, stack.ConfigError("invalid parameters of %q: %s", params.Name, err)
	}
	grid := region.Grid{DBU: params.DBU}
	s := &Simulation{
		params: params,
		layout: l,
		grid:   grid,
		box:    grid.Box(params.Box.P1[0], params.Box.P1[1], params.Box.P2[0], params.Box.P2[1]),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = NewRegistry()
	}
	if s.providers == nil {
		s.providers = partition.DefaultRegistry()
	}
	return s, nil
}

// Parameters ...
func (s *Simulation) Parameters() setup.Parameters {
	return s.params
}

// Layout ...
func (s *Simulation) Layout() layout.Layout {
	return s.layout
}

// Grid ...
func (s *Simulation) Grid() region.Grid {
	return s.grid
}

// Box returns simulation box in database units.
func (s *Simulation) Box() region.Box {
	return s.box
}

// Build computes the stack. Calling it again has no effect.
func (s *Simulation) Build() error {
	if s.built {
		return nil
	}
	if err := s.collectPartitionRegions(); err != nil {
		return err
	}

	levels, err := zlevel.Resolve(s.params)
	if err != nil {
		return err
	}
	s.levels = levels

	s.litho = map[string]litho.Regions{}
	for _, face := range s.params.FaceStack.Faces() {
		s.litho[face] = litho.Resolve(face, s.params, s.layout)
	}

	s.partitions, err = partition.Resolve(s.declared, partition.Context{
		Box:    s.box,
		Grid:   s.grid,
		Levels: s.levels,
		Litho:  s.litho,
	})
	if err != nil {
		return err
	}

	raw := s.rawLayers()
	s.result, err = layers.Produce(raw, s.partitions, s.box, s.registry)
	if err != nil {
		return err
	}
	s.built = true
	log.Infof("built %s: %d raw layers, %d entries, %d partition regions",
		s.params.Name, len(raw), len(s.result.Entries), len(s.partitions))
	return nil
}

func (s *Simulation) collectPartitionRegions() error {
	s.declared = append([]setup.PartitionRegion{}, s.params.PartitionRegions...)
	s.cuts = append([]setup.CorrectionCut{}, s.params.CorrectionCuts...)

	if name := s.params.PartitionRegionProvider; name != "" {
		p, err := s.providers.Provider(name)
		if err != nil {
			return err
		}
		provided, err := p.PartitionRegions(s)
		if err != nil {
			return err
		}
		s.declared = append(s.declared, provided...)
	}
	if name := s.params.CorrectionCutProvider; name != "" {
		p, err := s.providers.CutProvider(name)
		if err != nil {
			return err
		}
		provided, err := p.CorrectionCuts(s, s.declared)
		if err != nil {
			return err
		}
		s.cuts = append(s.cuts, provided...)
	}
	return partition.CheckNaming(s.declared)
}

// ZLevels returns z-level table. Valid after Build.
func (s *Simulation) ZLevels() zlevel.Table {
	return s.levels
}

// LithoRegions returns regions of face. Valid after Build.
func (s *Simulation) LithoRegions(face string) (litho.Regions, bool) {
	r, ok := s.litho[face]
	return r, ok
}

// PartitionRegions returns resolved partition regions. Valid after Build.
func (s *Simulation) PartitionRegions() []partition.Region {
	return s.partitions
}

// CorrectionCuts returns declared and provided correction cuts.
func (s *Simulation) CorrectionCuts() []setup.CorrectionCut {
	return s.cuts
}

// Layers returns finalized layer entries. Valid after Build.
func (s *Simulation) Layers() []layers.Entry {
	return s.result.Entries
}

// Cell maps layer numbers to geometry of entries.
func (s *Simulation) Cell() map[int]region.Region {
	return s.result.Cell
}

// Diagnostics ...
func (s *Simulation) Diagnostics() Diagnostics {
	d := Diagnostics{Diagnostics: s.result.Diagnostics}
	for face, l := range s.litho {
		if l.PortsOffEdge > 0 {
			if d.PortsOffEdge == nil {
				d.PortsOffEdge = map[string]int{}
			}
			d.PortsOffEdge[face] = l.PortsOffEdge
		}
	}
	return d
}

// CorrectionCutDimensions returns dimensions shared by partition regions
// of the named correction cut.
func (s *Simulation) CorrectionCutDimensions(name string) (partition.Dimensions, error) {
	if err := s.Build(); err != nil {
		return partition.Dimensions{}, err
	}
	for _, cut := range s.cuts {
		if cut.Name == name {
			return partition.CorrectionCutDimensions(cut, s.declared)
		}
	}
	return partition.Dimensions{}, stack.ConfigError("unknown correction cut %q", name)
}
