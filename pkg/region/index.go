package region

import (
	"math"
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// EdgeIndex answers bounding box queries over a set of edges.
type EdgeIndex struct {
	tree *rtree.Rtree
	size int
}

// indexedEdge carries the edge bounding box as its geometry.
type indexedEdge struct {
	geom.Geom
	id int
}

// NewEdgeIndex indexes edges, keeping their positions as identifiers.
func NewEdgeIndex(edges []Edge) *EdgeIndex {
	idx := &EdgeIndex{tree: rtree.NewTree(25, 50), size: len(edges)}
	for i, e := range edges {
		idx.tree.Insert(indexedEdge{Geom: e.Bounds(), id: i})
	}
	return idx
}

// Len ...
func (idx *EdgeIndex) Len() int {
	return idx.size
}

// Near returns identifiers of edges whose bounding box, enlarged by d,
// touches the bounding box of e.
func (idx *EdgeIndex) Near(e Edge, d float64) []int {
	b := e.Bounds()
	query := &geom.Bounds{
		Min: Point{X: b.Min.X - d, Y: b.Min.Y - d},
		Max: Point{X: b.Max.X + d, Y: b.Max.Y + d},
	}
	found := idx.tree.SearchIntersect(query)
	ids := make([]int, 0, len(found))
	for _, s := range found {
		if ie, ok := s.(indexedEdge); ok {
			ids = append(ids, ie.id)
		}
	}
	return ids
}

// ComponentIndex answers which connected components of a region
// interact with another region.
type ComponentIndex struct {
	tree       *rtree.Rtree
	components []Region
}

type indexedComponent struct {
	geom.Geom
	id int
}

// NewComponentIndex splits r into components and indexes them.
func NewComponentIndex(r Region) *ComponentIndex {
	idx := &ComponentIndex{tree: rtree.NewTree(25, 50), components: r.Components()}
	for i, c := range idx.components {
		idx.tree.Insert(indexedComponent{Geom: c.Bounds().Bounds(), id: i})
	}
	return idx
}

// Components ...
func (idx *ComponentIndex) Components() []Region {
	return idx.components
}

// Interacting returns identifiers of components with a positive area
// overlap with o.
func (idx *ComponentIndex) Interacting(o Region) []int {
	if o.IsEmpty() {
		return nil
	}
	ids := []int{}
	for _, s := range idx.tree.SearchIntersect(o.Bounds().Bounds()) {
		ic, ok := s.(indexedComponent)
		if !ok {
			continue
		}
		if idx.components[ic.id].Overlaps(o) {
			ids = append(ids, ic.id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Near returns identifiers of components closer than d to p, boundary
// included.
func (idx *ComponentIndex) Near(p Point, d float64) []int {
	pad := math.Max(d, 0.5)
	query := &geom.Bounds{
		Min: Point{X: p.X - pad, Y: p.Y - pad},
		Max: Point{X: p.X + pad, Y: p.Y + pad},
	}
	ids := []int{}
	for _, s := range idx.tree.SearchIntersect(query) {
		ic, ok := s.(indexedComponent)
		if !ok {
			continue
		}
		if idx.components[ic.id].DistanceTo(p) <= d {
			ids = append(ids, ic.id)
		}
	}
	sort.Ints(ids)
	return ids
}
