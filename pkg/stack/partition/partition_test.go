package partition

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaptide/chipstack/errors"
	"github.com/yaptide/chipstack/pkg/region"
	"github.com/yaptide/chipstack/pkg/stack/layout"
	"github.com/yaptide/chipstack/pkg/stack/litho"
	"github.com/yaptide/chipstack/pkg/stack/setup"
	"github.com/yaptide/chipstack/pkg/stack/test"
	"github.com/yaptide/chipstack/pkg/stack/zlevel"
)

func newContext(t *testing.T) Context {
	t.Helper()
	params := setup.DefaultParameters()
	params.DBU = 1
	params.Box = setup.Box{P1: setup.Point{0, 0}, P2: setup.Point{100, 100}}
	params.FaceStack = setup.FaceStack{{"1t1"}, {"2b1"}}
	params.MetalHeight = setup.Floats{0.2}

	levels, err := zlevel.Resolve(params)
	require.NoError(t, err)

	l, err := layout.NewStatic(layout.Document{}, region.Grid{DBU: 1})
	require.NoError(t, err)
	l.Set("1t1", layout.MetalGap, test.Box(43, 43, 57, 57).Difference(test.Box(45, 45, 55, 55)))

	return Context{
		Box:    region.NewBox(region.Point{X: 0, Y: 0}, region.Point{X: 100, Y: 100}),
		Grid:   region.Grid{DBU: 1},
		Levels: levels,
		Litho: map[string]litho.Regions{
			"1t1": litho.Resolve("1t1", params, l),
			"2b1": litho.Resolve("2b1", params, l),
		},
	}
}

func square(x1, y1, x2, y2 float64) [][]setup.Point {
	return [][]setup.Point{{{x1, y1}, {x2, y1}, {x2, y2}, {x1, y2}}}
}

func TestCheckNaming(t *testing.T) {
	for _, tc := range []struct {
		name  string
		names []string
		valid bool
	}{
		{"Distinct", []string{"a", "b", "qubit"}, true},
		{"Duplicate", []string{"a", "a"}, false},
		{"Suffix", []string{"b", "ab"}, false},
		{"SuffixReversedOrder", []string{"couplerleg", "leg"}, false},
		{"Prefix", []string{"a", "ab"}, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			declared := []setup.PartitionRegion{}
			for _, n := range tc.names {
				declared = append(declared, setup.PartitionRegion{Name: n, VerticalDimensions: setup.Floats{1}})
			}
			err := CheckNaming(declared)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, stderrors.Is(err, errors.ErrConfiguration))
			}
		})
	}
}

func TestZRange(t *testing.T) {
	ctx := newContext(t)
	check := func(p setup.PartitionRegion, bottom, top float64) {
		t.Helper()
		b, tp, err := ZRange(p, ctx.Levels)
		require.NoError(t, err)
		assert.Equal(t, bottom, b)
		assert.Equal(t, top, tp)
	}
	check(setup.PartitionRegion{Face: "1t1", VerticalDimensions: setup.Floats{5, 10}}, -5, 10)
	check(setup.PartitionRegion{Face: "2b1", VerticalDimensions: setup.Floats{5, 2}}, 6, 13)
	check(setup.PartitionRegion{VerticalDimensions: setup.Floats{5}}, ctx.Levels.Bottom(), ctx.Levels.Top())

	_, _, err := ZRange(setup.PartitionRegion{Name: "x", Face: "3t1"}, ctx.Levels)
	assert.Error(t, err)
}

func TestRegionOutsideMetalHasEmptyMer(t *testing.T) {
	ctx := newContext(t)
	declared := []setup.PartitionRegion{{
		Name:                "far",
		Face:                "1t1",
		Region:              square(0, 0, 20, 20),
		VerticalDimensions:  setup.Floats{5},
		MetalEdgeDimensions: setup.Floats{2.0},
	}}

	resolved, err := Resolve(declared, ctx)
	require.NoError(t, err)
	require.Equal(t, 2, len(resolved))
	assert.Equal(t, "farmer", resolved[0].Name)
	assert.True(t, resolved[0].Region.IsEmpty())
	assert.Equal(t, "farbulk", resolved[1].Name)
	test.RegionsEqual(t, test.Box(0, 0, 20, 20), resolved[1].Region)
	assert.Equal(t, "far", resolved[1].Declared)
}

func TestMetalEdgeSplitConservesRegion(t *testing.T) {
	ctx := newContext(t)
	declared := []setup.PartitionRegion{{
		Name:                "qb",
		Face:                "1t1",
		Region:              square(40, 40, 60, 60),
		VerticalDimensions:  setup.Floats{5},
		MetalEdgeDimensions: setup.Floats{1, 1},
	}}

	resolved, err := Resolve(declared, ctx)
	require.NoError(t, err)
	mer, bulk := resolved[0].Region, resolved[1].Region

	assert.False(t, mer.IsEmpty())
	test.RegionsEqual(t, test.Box(40, 40, 60, 60), mer.Union(bulk))
	assert.True(t, mer.Intersection(bulk).IsEmpty())
	assert.InDelta(t, 192.0, mer.Area(), 1e-6)
}

func TestMetalEdgeBand(t *testing.T) {
	ctx := newContext(t)
	band := MetalEdgeBand(ctx.Litho["1t1"], 1, 1)
	assert.InDelta(t, 96.0+36.0+60.0, band.Area(), 1e-6)
}

func TestLaterNestedRegionLosesArea(t *testing.T) {
	ctx := newContext(t)
	declared := []setup.PartitionRegion{
		{Name: "a", Face: "1t1", Region: square(0, 0, 20, 20), VerticalDimensions: setup.Floats{5}},
		{Name: "rest", Face: "1t1", VerticalDimensions: setup.Floats{1}},
		{Name: "wide", Face: "1t1", Region: square(0, 0, 30, 30), VerticalDimensions: setup.Floats{50}},
	}

	resolved, err := Resolve(declared, ctx)
	require.NoError(t, err)
	require.Equal(t, 3, len(resolved))
	assert.InDelta(t, 10000.0-400.0, resolved[1].Region.Area(), 1e-6)
	test.RegionsEqual(t, test.Box(0, 0, 30, 30), resolved[2].Region)
}

func TestMetalEdgeNeedsFace(t *testing.T) {
	ctx := newContext(t)
	_, err := Resolve([]setup.PartitionRegion{{
		Name:                "global",
		VerticalDimensions:  setup.Floats{1},
		MetalEdgeDimensions: setup.Floats{1},
	}}, ctx)
	assert.Error(t, err)
}

func TestCorrectionCutDimensions(t *testing.T) {
	declared := []setup.PartitionRegion{
		{Name: "a", VerticalDimensions: setup.Floats{5}, MetalEdgeDimensions: setup.Floats{1}},
		{Name: "b", VerticalDimensions: setup.Floats{5, 5}, MetalEdgeDimensions: setup.Floats{1, 1}},
		{Name: "c", VerticalDimensions: setup.Floats{3}},
	}

	d, err := CorrectionCutDimensions(setup.CorrectionCut{Name: "cut", PartitionRegions: []string{"a", "b"}}, declared)
	require.NoError(t, err)
	assert.Equal(t, Dimensions{Vertical: [2]float64{5, 5}, MetalEdge: []float64{1, 1}}, d)

	_, err = CorrectionCutDimensions(setup.CorrectionCut{Name: "cut", PartitionRegions: []string{"a", "c"}}, declared)
	assert.True(t, stderrors.Is(err, errors.ErrConfiguration))

	_, err = CorrectionCutDimensions(setup.CorrectionCut{Name: "cut", PartitionRegions: []string{"x"}}, declared)
	assert.True(t, stderrors.Is(err, errors.ErrConfiguration))
}

type fakeSource struct {
	params setup.Parameters
	layout layout.Layout
}

func (s fakeSource) Parameters() setup.Parameters { return s.params }
func (s fakeSource) Layout() layout.Layout        { return s.layout }

func TestRegistryAndBuiltinProviders(t *testing.T) {
	registry := DefaultRegistry()
	assert.Error(t, registry.Register("refpoint_squares", RefpointSquares{}))
	_, err := registry.Provider("missing")
	assert.True(t, stderrors.Is(err, errors.ErrConfiguration))

	providers, cutProviders := registry.Names()
	assert.Equal(t, []string{"refpoint_squares"}, providers)
	assert.Equal(t, []string{"region_centers"}, cutProviders)

	l, err := layout.NewStatic(layout.Document{}, region.Grid{DBU: 0.001})
	require.NoError(t, err)
	l.SetRefpoint("epr_qb", region.Point{X: 100, Y: 50})
	l.SetRefpoint("port_1", region.Point{X: 0, Y: 0})
	params := setup.DefaultParameters()
	params.DBU = 1
	src := fakeSource{params: params, layout: l}

	provider, err := registry.Provider("refpoint_squares")
	require.NoError(t, err)
	regions, err := provider.PartitionRegions(src)
	require.NoError(t, err)
	require.Equal(t, 1, len(regions))
	assert.Equal(t, "qb", regions[0].Name)
	assert.Equal(t, "1t1", regions[0].Face)
	assert.Equal(t, square(90, 40, 110, 60), regions[0].Region)

	regions[0].MetalEdgeDimensions = setup.Floats{1}
	cutProvider, err := registry.CutProvider("region_centers")
	require.NoError(t, err)
	cuts, err := cutProvider.CorrectionCuts(src, regions)
	require.NoError(t, err)
	assert.Equal(t, []setup.CorrectionCut{{
		Name:             "qb_cut",
		P1:               setup.Point{80, 50},
		P2:               setup.Point{120, 50},
		PartitionRegions: []string{"qb"},
	}}, cuts)
}
