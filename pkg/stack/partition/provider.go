package partition

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/yaptide/chipstack/pkg/stack"
	"github.com/yaptide/chipstack/pkg/stack/layout"
	"github.com/yaptide/chipstack/pkg/stack/setup"
)

// Source is what providers may inspect to derive their output.
type Source interface {
	Parameters() setup.Parameters
	Layout() layout.Layout
}

// Provider derives partition regions of a simulation.
type Provider interface {
	PartitionRegions(src Source) ([]setup.PartitionRegion, error)
}

// CorrectionCutProvider derives correction cuts for partition regions.
type CorrectionCutProvider interface {
	CorrectionCuts(src Source, regions []setup.PartitionRegion) ([]setup.CorrectionCut, error)
}

// Registry maps provider names used in parameters to implementations.
type Registry struct {
	mu           sync.RWMutex
	providers    map[string]Provider
	cutProviders map[string]CorrectionCutProvider
}

// NewRegistry returns registry with no providers.
func NewRegistry() *Registry {
	return &Registry{
		providers:    map[string]Provider{},
		cutProviders: map[string]CorrectionCutProvider{},
	}
}

// DefaultRegistry returns registry with the built-in providers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register("refpoint_squares", RefpointSquares{
		Prefix:             "epr_",
		Size:               20,
		VerticalDimensions: setup.Floats{5},
	})
	_ = r.RegisterCutProvider("region_centers", CenterCuts{Length: 40})
	return r
}

// Register adds provider under name.
func (r *Registry) Register(name string, p Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[name]; ok {
		return stack.ConfigError("partition region provider %q already registered", name)
	}
	r.providers[name] = p
	return nil
}

// RegisterCutProvider adds correction cut provider under name.
func (r *Registry) RegisterCutProvider(name string, p CorrectionCutProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cutProviders[name]; ok {
		return stack.ConfigError("correction cut provider %q already registered", name)
	}
	r.cutProviders[name] = p
	return nil
}

// Names returns sorted names of partition region and correction cut
// providers.
func (r *Registry) Names() (providers []string, cutProviders []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name := range r.providers {
		providers = append(providers, name)
	}
	for name := range r.cutProviders {
		cutProviders = append(cutProviders, name)
	}
	sort.Strings(providers)
	sort.Strings(cutProviders)
	return providers, cutProviders
}

// Provider ...
func (r *Registry) Provider(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	if !ok {
		return nil, stack.ConfigError("unknown partition region provider %q", name)
	}
	return p, nil
}

// CutProvider ...
func (r *Registry) CutProvider(name string) (CorrectionCutProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.cutProviders[name]
	if !ok {
		return nil, stack.ConfigError("unknown correction cut provider %q", name)
	}
	return p, nil
}

// RefpointSquares creates a square partition region around every layout
// refpoint whose name starts with Prefix. The region is named after the
// refpoint with the prefix removed.
type RefpointSquares struct {
	Prefix              string
	Size                float64
	Face                string
	VerticalDimensions  setup.Floats
	MetalEdgeDimensions setup.Floats
}

// PartitionRegions ...
func (p RefpointSquares) PartitionRegions(src Source) ([]setup.PartitionRegion, error) {
	params := src.Parameters()
	face := p.Face
	if face == "" {
		faces := params.FaceStack.Faces()
		if len(faces) == 0 {
			return nil, nil
		}
		face = faces[0]
	}

	refpoints := src.Layout().Refpoints()
	names := make([]string, 0, len(refpoints))
	for name := range refpoints {
		if strings.HasPrefix(name, p.Prefix) && len(name) > len(p.Prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	regions := make([]setup.PartitionRegion, 0, len(names))
	h := p.Size / 2
	for _, name := range names {
		rp := refpoints[name]
		x, y := rp.X*params.DBU, rp.Y*params.DBU
		regions = append(regions, setup.PartitionRegion{
			Name: strings.TrimPrefix(name, p.Prefix),
			Face: face,
			Region: [][]setup.Point{{
				{x - h, y - h}, {x + h, y - h}, {x + h, y + h}, {x - h, y + h},
			}},
			VerticalDimensions:  p.VerticalDimensions,
			MetalEdgeDimensions: p.MetalEdgeDimensions,
		})
	}
	return regions, nil
}

// CenterCuts creates a horizontal cut of given length through the center
// of every partition region that has explicit geometry and metal edge
// dimensions.
type CenterCuts struct {
	Length float64
}

// CorrectionCuts ...
func (c CenterCuts) CorrectionCuts(src Source, regions []setup.PartitionRegion) ([]setup.CorrectionCut, error) {
	cuts := []setup.CorrectionCut{}
	for _, p := range regions {
		if len(p.Region) == 0 || len(p.MetalEdgeDimensions) == 0 {
			continue
		}
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, polygon := range p.Region {
			for _, pt := range polygon {
				minX, maxX = math.Min(minX, pt[0]), math.Max(maxX, pt[0])
				minY, maxY = math.Min(minY, pt[1]), math.Max(maxY, pt[1])
			}
		}
		cx, cy := (minX+maxX)/2, (minY+maxY)/2
		cuts = append(cuts, setup.CorrectionCut{
			Name:             p.Name + "_cut",
			P1:               setup.Point{cx - c.Length/2, cy},
			P2:               setup.Point{cx + c.Length/2, cy},
			PartitionRegions: []string{p.Name},
		})
	}
	return cuts, nil
}
