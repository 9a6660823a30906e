package simulation

import (
	"fmt"
	"math"

	"github.com/yaptide/chipstack/pkg/region"
	"github.com/yaptide/chipstack/pkg/stack/layers"
	"github.com/yaptide/chipstack/pkg/stack/layout"
	"github.com/yaptide/chipstack/pkg/stack/setup"
	"github.com/yaptide/chipstack/pkg/stack/zlevel"
)

// Suffixes of names of TLS interface layers.
var tlsSuffixes = [3]string{"MA", "MS", "SA"}

// rawLayers lists layers of all faces followed by substrates and vacuum
// blocks.
func (s *Simulation) rawLayers() []layers.Layer {
	raw := []layers.Layer{}
	for _, face := range s.params.FaceStack.Faces() {
		raw = append(raw, s.faceLayers(face)...)
	}
	raw = append(raw, s.blockLayers()...)
	return raw
}

func (s *Simulation) faceLayers(face string) []layers.Layer {
	fl := s.levels.Faces[face]
	l := s.litho[face]
	idx := fl.Index
	metalHeight := math.Abs(fl.MetalTop - fl.MetalBottom)
	boxRegion := region.FromBox(s.box)

	edgeMaterial := ""
	if s.params.TLSSheetApproximation {
		edgeMaterial = s.params.VacuumMaterial
	}
	mb, mt := fl.MetalRange()
	wb, wt := fl.Window()

	out := []layers.Layer{
		{Name: face + "_signal", Region: l.Signal, Bottom: mb, Top: mt, Material: setup.Pec, EdgeMaterial: edgeMaterial},
		{Name: face + "_ground", Region: l.GroundMetal(), Bottom: mb, Top: mt, Material: setup.Pec, EdgeMaterial: edgeMaterial},
		{Name: face + "_etch", Region: l.Etch, Bottom: wb, Top: wt},
	}

	if s.params.DielectricHeight.At(idx) > 0 {
		r := s.layout.RegionFromLayer(face, layout.Dielectric)
		if r.IsEmpty() {
			r = boxRegion
		}
		db, dt := fl.DielectricRange()
		out = append(out, layers.Layer{
			Name:         face + "_dielectric",
			Region:       r.Intersection(boxRegion),
			Bottom:       db,
			Top:          dt,
			Material:     s.params.DielectricMaterial.At(idx),
			SubtractKeys: []string{face + "_etch"},
		})
	}

	if pads := s.layout.RegionFromLayer(face, layout.AirbridgePads); !pads.IsEmpty() {
		b, t := outward(fl, metalHeight, s.params.AirbridgeHeight)
		out = append(out, layers.Layer{Name: face + "_airbridge_pads", Region: pads, Bottom: b, Top: t, Material: setup.Pec})
	}
	if flyover := s.layout.RegionFromLayer(face, layout.AirbridgeFlyer); !flyover.IsEmpty() {
		b, t := outward(fl, metalHeight+s.params.AirbridgeHeight, s.params.AirbridgeThickness)
		out = append(out, layers.Layer{Name: face + "_airbridge_flyover", Region: flyover, Bottom: b, Top: t, Material: setup.Pec})
	}

	if trench := s.layout.RegionFromLayer(face, layout.Trench); !trench.IsEmpty() {
		depth := s.substrateBlock(fl.Substrate).Thickness()
		if len(s.params.TrenchDepth) > 0 && s.params.TrenchDepth.At(idx) > 0 {
			depth = math.Min(depth, s.params.TrenchDepth.At(idx))
		}
		b, t := inward(fl, depth)
		out = append(out, layers.Layer{Name: face + "_trench", Region: trench, Bottom: b, Top: t, Material: s.params.VacuumMaterial})
	}

	return append(out, s.tlsLayers(face, fl, l.Metal(), l.Etch, metalHeight)...)
}

func (s *Simulation) tlsLayers(face string, fl zlevel.FaceLevels, metal, etch region.Region, metalHeight float64) []layers.Layer {
	substrate := s.params.SubstrateMaterial.At(fl.Substrate - 1)
	hosts := [3]string{s.params.VacuumMaterial, substrate, substrate}
	regions := [3]region.Region{metal, metal, etch}

	out := []layers.Layer{}
	for kind := setup.MA; kind <= setup.SA; kind++ {
		if !s.params.HasTLS(kind) {
			continue
		}
		t := s.params.TLSThickness(kind)
		material := hosts[kind]
		if s.params.TLSSheetApproximation {
			t = 0
		} else if len(s.params.TLSLayerMaterial) > 0 {
			material = s.params.TLSLayerMaterial.At(kind)
		}
		var b, top float64
		if kind == setup.MA {
			b, top = outward(fl, metalHeight, t)
		} else {
			b, top = inward(fl, t)
		}
		out = append(out, layers.Layer{
			Name:     face + "_layer" + tlsSuffixes[kind],
			Region:   regions[kind],
			Bottom:   b,
			Top:      top,
			Material: material,
		})
	}
	return out
}

// outward returns z-range of thickness t starting at distance d from the
// substrate surface on the metal side.
func outward(fl zlevel.FaceLevels, d, t float64) (float64, float64) {
	a, b := fl.Offset(d), fl.Offset(d+t)
	return math.Min(a, b), math.Max(a, b)
}

// inward returns z-range of depth t below the substrate surface.
func inward(fl zlevel.FaceLevels, t float64) (float64, float64) {
	a, b := fl.Surface(), fl.Offset(-t)
	return math.Min(a, b), math.Max(a, b)
}

func (s *Simulation) substrateBlock(number int) zlevel.Block {
	for _, b := range s.levels.Substrates() {
		if b.Number == number {
			return b
		}
	}
	return zlevel.Block{}
}

func (s *Simulation) blockLayers() []layers.Layer {
	boxRegion := region.FromBox(s.box)
	out := []layers.Layer{}

	tsvs := map[int]region.Region{}
	for _, face := range s.params.FaceStack.Faces() {
		n := s.levels.Faces[face].Substrate
		tsvs[n] = tsvs[n].Union(s.layout.RegionFromLayer(face, layout.TSV))
	}
	for _, b := range s.levels.Substrates() {
		if tsv := tsvs[b.Number]; !tsv.IsEmpty() && b.Thickness() > 0 {
			out = append(out, layers.Layer{
				Name: fmt.Sprintf("tsv_%d", b.Number), Region: tsv.Intersection(boxRegion),
				Bottom: b.Bottom, Top: b.Top, Material: setup.Pec,
			})
		}
	}

	for _, b := range s.levels.Substrates() {
		if b.Thickness() <= 0 {
			continue
		}
		out = append(out, layers.Layer{
			Name: fmt.Sprintf("substrate_%d", b.Number), Region: boxRegion,
			Bottom: b.Bottom, Top: b.Top, Material: s.params.SubstrateMaterial.At(b.Number - 1),
		})
	}

	vacuums := s.levels.Vacuums()
	for _, b := range vacuums {
		if b.Thickness() <= 0 {
			continue
		}
		name := "vacuum"
		if len(vacuums) > 1 {
			name = fmt.Sprintf("vacuum_%d", b.Number)
		}
		out = append(out, layers.Layer{
			Name: name, Region: boxRegion, Bottom: b.Bottom, Top: b.Top, Material: s.params.VacuumMaterial,
		})
	}
	return out
}
