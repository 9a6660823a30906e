package region

import (
	"testing"

	"github.com/ctessum/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(x1, y1, x2, y2 float64) Region {
	return FromBox(NewBox(Point{X: x1, Y: y1}, Point{X: x2, Y: y2}))
}

func TestBooleanOperations(t *testing.T) {
	a := box(0, 0, 10, 10)
	b := box(5, 0, 15, 10)

	t.Run("Union", func(t *testing.T) {
		assert.InDelta(t, 150.0, a.Union(b).Area(), 1e-9)
		assert.Equal(t, 1, len(a.Union(b).Components()))
	})
	t.Run("Intersection", func(t *testing.T) {
		assert.InDelta(t, 50.0, a.Intersection(b).Area(), 1e-9)
	})
	t.Run("Difference", func(t *testing.T) {
		assert.InDelta(t, 50.0, a.Difference(b).Area(), 1e-9)
	})
	t.Run("DisjointIntersectionIsEmpty", func(t *testing.T) {
		assert.True(t, a.Intersection(box(20, 20, 30, 30)).IsEmpty())
	})
	t.Run("EmptyOperands", func(t *testing.T) {
		assert.True(t, Empty().Union(a).Equal(a))
		assert.True(t, a.Difference(Empty()).Equal(a))
		assert.True(t, Empty().Intersection(a).IsEmpty())
	})
}

func TestPolygonOf(t *testing.T) {
	t.Run("Polygon", func(t *testing.T) {
		p := box(0, 0, 10, 10).Geom()
		assert.Equal(t, p, polygonOf(p))
	})
	t.Run("Bounds", func(t *testing.T) {
		b := &geom.Bounds{Min: Point{X: 0, Y: 0}, Max: Point{X: 4, Y: 5}}
		r := FromGeom(polygonOf(b))
		assert.InDelta(t, 20.0, r.Area(), 1e-9)
		assert.True(t, r.Equal(box(0, 0, 4, 5)))
	})
	t.Run("DisjointUnionKeepsBothRings", func(t *testing.T) {
		r := box(0, 0, 10, 10).Union(box(20, 0, 30, 10))
		assert.Equal(t, 2, len(r.Geom()))
		assert.InDelta(t, 200.0, r.Area(), 1e-9)
	})
}

func TestIndexedItemsAreGeometries(t *testing.T) {
	var g geom.Geom = indexedEdge{Geom: Edge{P1: Point{X: 1, Y: 2}, P2: Point{X: 3, Y: 0}}.Bounds(), id: 7}
	assert.Equal(t, &geom.Bounds{Min: Point{X: 1, Y: 0}, Max: Point{X: 3, Y: 2}}, g.Bounds())
	g = indexedComponent{Geom: NewBox(Point{X: 0, Y: 0}, Point{X: 2, Y: 2}).Bounds(), id: 1}
	assert.Equal(t, 4, g.Len())
}

func TestComponentsWithHoles(t *testing.T) {
	frame := box(0, 0, 30, 30).Difference(box(10, 10, 20, 20))
	island := box(12, 12, 18, 18)
	r := frame.Union(island)

	components := r.Components()
	require.Equal(t, 2, len(components))
	areas := []float64{components[0].Area(), components[1].Area()}
	assert.ElementsMatch(t, []float64{800, 36}, areas)

	assert.True(t, r.Contains(Point{X: 15, Y: 15}))
	assert.False(t, r.Contains(Point{X: 11, Y: 11}))
	assert.True(t, r.Contains(Point{X: 0, Y: 5}))
}

func TestInteracting(t *testing.T) {
	r := box(0, 0, 10, 10).Union(box(20, 0, 30, 10))
	seed := box(25, 5, 26, 6)

	got := r.Interacting(seed)
	assert.InDelta(t, 100.0, got.Area(), 1e-9)
	assert.True(t, got.Contains(Point{X: 21, Y: 1}))
	assert.True(t, r.Interacting(box(40, 40, 41, 41)).IsEmpty())
}

func TestSized(t *testing.T) {
	for _, tc := range []struct {
		name     string
		d        float64
		expected float64
	}{
		{"Grow", 1, 144},
		{"Shrink", -1, 64},
		{"Zero", 0, 100},
		{"ShrinkAway", -6, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := box(0, 0, 10, 10).Sized(tc.d)
			assert.InDelta(t, tc.expected, got.Area(), 1e-6)
		})
	}

	t.Run("KeepsCorners", func(t *testing.T) {
		got := box(0, 0, 10, 10).Sized(2)
		assert.True(t, got.Equal(box(-2, -2, 12, 12)))
	})
}

func TestEdgesAreOrientedOutwards(t *testing.T) {
	r := box(0, 0, 10, 10)
	edges := r.Edges()
	require.Equal(t, 4, len(edges))
	for _, e := range edges {
		n := e.Normal()
		mid := e.At(e.Length() / 2)
		outside := Point{X: mid.X + n.X, Y: mid.Y + n.Y}
		inside := Point{X: mid.X - n.X, Y: mid.Y - n.Y}
		assert.False(t, r.Contains(outside))
		assert.True(t, r.Contains(inside))
	}

	hole := box(0, 0, 10, 10).Difference(box(4, 4, 6, 6))
	for _, e := range hole.Edges() {
		n := e.Normal()
		mid := e.At(e.Length() / 2)
		assert.True(t, hole.Contains(Point{X: mid.X - 0.5*n.X, Y: mid.Y - 0.5*n.Y}))
	}
}

func TestEdgeGeometry(t *testing.T) {
	e := Edge{P1: Point{X: 0, Y: 0}, P2: Point{X: 10, Y: 0}}
	assert.Equal(t, 10.0, e.Length())
	assert.Equal(t, 3.0, e.DistanceTo(Point{X: 5, Y: 3}))
	assert.Equal(t, 5.0, e.DistanceTo(Point{X: 13, Y: 4}))
	assert.True(t, e.Crosses(Edge{P1: Point{X: 5, Y: -1}, P2: Point{X: 5, Y: 1}}))
	assert.False(t, e.Crosses(Edge{P1: Point{X: 11, Y: -1}, P2: Point{X: 11, Y: 1}}))
	assert.True(t, e.IsCollinear(Edge{P1: Point{X: 20, Y: 0}, P2: Point{X: 15, Y: 0}}, 1e-9))
}

func TestRasterize(t *testing.T) {
	r := box(0, 0, 10, 10).Difference(box(4, 4, 6, 6))
	raster := r.Rasterize(NewBox(Point{X: 0, Y: 0}, Point{X: 20, Y: 20}), 1)

	assert.Equal(t, 96, raster.CoveredCount())
	assert.True(t, raster.Covered(0, 19))
	assert.False(t, raster.Covered(5, 15))
	assert.Equal(t, Point{X: 0.5, Y: 19.5}, raster.Center(0, 0))
}

func TestGrid(t *testing.T) {
	g := Grid{DBU: 0.001}
	assert.Equal(t, 12346.0, g.Length(12.3456))
	assert.InDelta(t, 2.5, g.Um(2500), 1e-12)
	assert.InDelta(t, 0.00001, g.Magnified(2).DBU, 1e-15)

	r := g.Polygon([][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	assert.InDelta(t, 1e6, r.Area(), 1e-6)
}

func TestComponentIndex(t *testing.T) {
	r := box(0, 0, 10, 10).Union(box(20, 0, 30, 10))
	idx := NewComponentIndex(r)
	require.Equal(t, 2, len(idx.Components()))

	ids := idx.Near(Point{X: 25, Y: 5}, 0)
	require.Equal(t, 1, len(ids))
	assert.True(t, idx.Components()[ids[0]].Contains(Point{X: 21, Y: 1}))
	assert.Equal(t, 2, len(idx.Interacting(box(5, 5, 25, 6))))
	assert.Equal(t, []int{}, idx.Near(Point{X: 15, Y: 5}, 4))
	assert.Equal(t, 2, len(idx.Near(Point{X: 15, Y: 5}, 5.5)))
}

func TestEdgeIndex(t *testing.T) {
	edges := box(0, 0, 10, 10).Edges()
	idx := NewEdgeIndex(edges)
	assert.Equal(t, 4, idx.Len())
	near := idx.Near(Edge{P1: Point{X: 3, Y: -1}, P2: Point{X: 4, Y: -1}}, 1.5)
	require.Equal(t, 1, len(near))
	assert.Equal(t, 0.0, edges[near[0]].P1.Y+edges[near[0]].P2.Y)
}
