package layers

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/yaptide/chipstack/config"
	"github.com/yaptide/chipstack/pkg/region"
	"github.com/yaptide/chipstack/pkg/stack"
	"github.com/yaptide/chipstack/pkg/stack/partition"
)

var log = config.NamedLogger("layers")

const (
	zTolerance    = 1e-9
	areaTolerance = 1e-9
)

// solid is the current geometry of a node: region extruded over z-range.
type solid struct {
	region region.Region
	bottom float64
	top    float64
}

func (s solid) isSheet() bool {
	return scalar.EqualWithinAbs(s.bottom, s.top, zTolerance)
}

func (s solid) isEmpty() bool {
	return s.region.IsEmpty() || s.top < s.bottom
}

// zOverlaps uses open intervals for solids. A sheet overlaps a solid only
// strictly inside it and another sheet only at the same z.
func zOverlaps(a, b solid) bool {
	switch {
	case a.isSheet() && b.isSheet():
		return scalar.EqualWithinAbs(a.bottom, b.bottom, zTolerance)
	case a.isSheet():
		return a.bottom > b.bottom+zTolerance && a.bottom < b.top-zTolerance
	case b.isSheet():
		return b.bottom > a.bottom+zTolerance && b.bottom < a.top-zTolerance
	default:
		return a.bottom < b.top-zTolerance && b.bottom < a.top-zTolerance
	}
}

// separate reports whether two nodes do not interact. The region test is
// the most expensive one so it goes last.
func separate(a, b solid) bool {
	return !zOverlaps(a, b) || !a.region.Overlaps(b.region)
}

const (
	unvisited = iota
	visiting
	hardened
)

// node is an arena record: a raw layer or a partitioned part of one.
type node struct {
	id        int
	name      string
	layer     Layer
	partition string
	state     solid
	// tools are obligations found in the first phase.
	tools []int
	// soft are obligations which could not be hardened.
	soft   []int
	status int
	// derived lists nodes emitted in place of this node.
	derived     []int
	partitioned bool
}

type producer struct {
	nodes []*node
	order []int
	box   region.Box
}

// Produce finalizes layers. Unmodifiable layers (pec and helpers) come
// first; modifiable layers follow from the thinnest and smallest, and
// every modifiable layer gives way to all layers before it.
//
// Subtraction is lazy: an obligation is hardened into a region difference
// only when the tool spans the whole z-range of the object, into a z
// truncation when the tool covers the object region and one of its ends,
// and is kept in Entry.Subtract otherwise.
func Produce(raw []Layer, parts []partition.Region, box region.Box, numbers Numberer) (Result, error) {
	p := &producer{box: box}
	byName := map[string]int{}
	for i, l := range raw {
		if _, ok := byName[l.Name]; ok {
			return Result{}, stack.LayerError(l.Name, "layer name is used more than once")
		}
		byName[l.Name] = i
		p.nodes = append(p.nodes, &node{
			id:    i,
			name:  l.Name,
			layer: l,
			state: solid{region: l.Region, bottom: l.Bottom, top: l.Top},
		})
	}

	p.sortNodes()
	if err := p.buildGraph(byName); err != nil {
		return Result{}, err
	}
	for _, i := range p.order {
		if err := p.harden(i); err != nil {
			return Result{}, err
		}
	}

	matched := p.partition(parts)
	result := p.assemble(numbers)
	for i, part := range parts {
		if !matched[i] {
			result.Diagnostics.UnmatchedPartitionRegions = append(
				result.Diagnostics.UnmatchedPartitionRegions, part.Name)
		}
	}
	if n := len(result.Diagnostics.UnmatchedPartitionRegions); n > 0 {
		log.Debugf("%d partition regions matched no layer: %v", n, result.Diagnostics.UnmatchedPartitionRegions)
	}
	return result, nil
}

func (p *producer) sortNodes() {
	p.order = make([]int, len(p.nodes))
	for i := range p.order {
		p.order[i] = i
	}
	key := func(n *node) (bool, float64, float64) {
		return n.layer.CanModify(), n.state.top - n.state.bottom, n.state.region.Area()
	}
	sort.SliceStable(p.order, func(a, b int) bool {
		ma, ta, aa := key(p.nodes[p.order[a]])
		mb, tb, ab := key(p.nodes[p.order[b]])
		if ma != mb {
			return !ma
		}
		if !scalar.EqualWithinAbs(ta, tb, zTolerance) {
			return ta < tb
		}
		if !scalar.EqualWithinAbsOrRel(aa, ab, areaTolerance, areaTolerance) {
			return aa < ab
		}
		return false
	})
}

// buildGraph is the first phase: every modifiable layer gets obligations
// from earlier non-helper layers it overlaps in z, plus its explicit
// subtract keys. An explicit key overrides the automatic obligation in
// the opposite direction.
func (p *producer) buildGraph(byName map[string]int) error {
	position := make([]int, len(p.nodes))
	for pos, i := range p.order {
		position[i] = pos
	}

	explicit := map[[2]int]bool{}
	for pos, i := range p.order {
		obj := p.nodes[i]
		if !obj.layer.CanModify() {
			if len(obj.layer.SubtractKeys) > 0 {
				log.Warnf("layer %s can not be modified, ignoring subtract keys %v", obj.name, obj.layer.SubtractKeys)
			}
			continue
		}
		for _, j := range p.order[:pos] {
			tool := p.nodes[j]
			if tool.layer.IsHelper() || (tool.state.isSheet() && !obj.state.isSheet()) {
				continue
			}
			if zOverlaps(obj.state, tool.state) {
				obj.tools = append(obj.tools, j)
			}
		}
		for _, key := range obj.layer.SubtractKeys {
			j, ok := byName[key]
			if !ok {
				return stack.LayerError(obj.name, "subtract key %q is not a layer", key)
			}
			if j != i {
				explicit[[2]int{i, j}] = true
			}
		}
	}

	for pair := range explicit {
		i, j := pair[0], pair[1]
		if !contains(p.nodes[i].tools, j) {
			p.nodes[i].tools = append(p.nodes[i].tools, j)
		}
		if !explicit[[2]int{j, i}] {
			p.nodes[j].tools = remove(p.nodes[j].tools, i)
		}
	}
	for _, n := range p.nodes {
		tools := n.tools
		sort.SliceStable(tools, func(a, b int) bool {
			return position[tools[a]] < position[tools[b]]
		})
	}
	return nil
}

// harden is the second phase: obligations are resolved depth first so
// every tool has its final geometry before it is used.
func (p *producer) harden(i int) error {
	n := p.nodes[i]
	switch n.status {
	case hardened:
		return nil
	case visiting:
		return stack.LayerError(n.name, "circular subtraction")
	}
	n.status = visiting
	for _, j := range n.tools {
		if err := p.harden(j); err != nil {
			return err
		}
		n.subtract(p.nodes[j])
	}
	n.status = hardened
	return nil
}

// subtract applies one obligation of n towards tool t.
func (n *node) subtract(t *node) {
	obj, tool := n.state, t.state
	if obj.isEmpty() || tool.isEmpty() || separate(obj, tool) {
		return
	}
	coversRegion := func() bool { return tool.region.Covers(obj.region) }
	switch {
	case tool.bottom <= obj.bottom+zTolerance && tool.top >= obj.top-zTolerance:
		n.state.region = obj.region.Difference(tool.region)
	case tool.bottom <= obj.bottom+zTolerance && coversRegion():
		n.state.bottom = tool.top
	case tool.top >= obj.top-zTolerance && coversRegion():
		n.state.top = tool.bottom
	default:
		if !contains(n.soft, t.id) {
			n.soft = append(n.soft, t.id)
		}
		return
	}
	if !obj.isSheet() && n.state.top-n.state.bottom <= zTolerance {
		n.state.region = region.Empty()
	}
}

// partition splits every modifiable layer by the partition regions it
// overlaps, in declaration order of the regions.
func (p *producer) partition(parts []partition.Region) []bool {
	matched := make([]bool, len(parts))
	remaining := make([]region.Region, len(parts))
	for i, part := range parts {
		remaining[i] = part.Region
	}

	for _, i := range p.order {
		n := p.nodes[i]
		if !n.layer.CanModify() || n.state.isEmpty() {
			continue
		}
		for k, part := range parts {
			bottom, top, ok := zIntersection(n.state, part)
			if !ok {
				continue
			}
			area := n.state.region.Intersection(remaining[k])
			if area.IsEmpty() {
				continue
			}
			sub := &node{
				id:        len(p.nodes),
				layer:     n.layer,
				partition: part.Declared,
				state:     solid{region: area, bottom: bottom, top: top},
				status:    hardened,
			}
			for _, t := range n.soft {
				p.resolve(sub, t)
			}
			if sub.state.isEmpty() {
				continue
			}
			sub.name = part.Name
			if matched[k] {
				sub.name = n.name + part.Name
			}
			matched[k] = true
			sub.derived = []int{sub.id}
			p.nodes = append(p.nodes, sub)
			n.derived = append(n.derived, sub.id)
			n.partitioned = true

			coversPart := n.state.bottom <= part.Bottom+zTolerance && n.state.top >= part.Top-zTolerance
			n.subtract(sub)
			if coversPart {
				remaining[k] = remaining[k].Difference(area)
			}
			if n.state.isEmpty() {
				break
			}
		}
		if !n.state.isEmpty() {
			n.derived = append(n.derived, n.id)
		}
	}
	return matched
}

func zIntersection(s solid, part partition.Region) (float64, float64, bool) {
	if s.isSheet() {
		return s.bottom, s.top, part.IsSheetInside(s.bottom)
	}
	bottom := max(s.bottom, part.Bottom)
	top := min(s.top, part.Top)
	return bottom, top, top-bottom > zTolerance
}

// resolve applies an obligation towards a tool which may have been
// partitioned already.
func (p *producer) resolve(n *node, toolID int) {
	t := p.nodes[toolID]
	if !t.partitioned {
		n.subtract(t)
		return
	}
	for _, d := range t.derived {
		n.subtract(p.nodes[d])
	}
}

// expand replaces obligations by the names of emitted entries.
func (p *producer) expand(n *node) []string {
	names := []string{}
	seen := map[string]bool{}
	add := func(t *node) {
		if t.state.isEmpty() || seen[t.name] || separate(n.state, t.state) {
			return
		}
		if t.layer.IsHelper() {
			log.Warnf("layer %s keeps partial overlap with helper layer %s, which is not exported", n.name, t.name)
			return
		}
		seen[t.name] = true
		names = append(names, t.name)
	}
	for _, id := range n.soft {
		t := p.nodes[id]
		if !t.partitioned {
			add(t)
			continue
		}
		for _, d := range t.derived {
			add(p.nodes[d])
		}
	}
	return names
}

func (p *producer) assemble(numbers Numberer) Result {
	result := Result{Cell: map[int]region.Region{}}
	boxRegion := region.FromBox(p.box)

	emit := func(n *node, source string) {
		e := Entry{
			Name:         n.name,
			Region:       n.state.region,
			Z:            n.state.bottom,
			Thickness:    n.state.top - n.state.bottom,
			Material:     n.layer.Material,
			EdgeMaterial: n.layer.EdgeMaterial,
			Subtract:     p.expand(n),
			Source:       source,
			Partition:    n.partition,
		}
		if e.IsSheet() {
			e.Thickness = 0
		}
		number := numbers.GetOrCreate(e.Name)
		result.Cell[number] = e.Region
		if !e.Region.Equal(boxRegion) {
			e.Layer = &number
		}
		result.Entries = append(result.Entries, e)
	}

	for _, i := range p.order {
		n := p.nodes[i]
		if n.layer.IsHelper() {
			continue
		}
		if n.state.isEmpty() && len(n.derived) == 0 {
			result.Diagnostics.EmptyLayers = append(result.Diagnostics.EmptyLayers, n.name)
			continue
		}
		if !n.layer.CanModify() {
			emit(n, n.name)
			continue
		}
		for _, d := range n.derived {
			emit(p.nodes[d], n.name)
		}
	}
	assignBackgrounds(result.Entries)
	return result
}

// assignBackgrounds sets background of every sheet to the solid of the
// same material which shares the largest area with the sheet on either
// side of it.
func assignBackgrounds(entries []Entry) {
	for i := range entries {
		sheet := &entries[i]
		if !sheet.IsSheet() || sheet.Material == "" {
			continue
		}
		candidates := []string{}
		overlaps := []float64{}
		for _, e := range entries {
			if e.IsSheet() || e.Material != sheet.Material {
				continue
			}
			if sheet.Z < e.Z-zTolerance || sheet.Z > e.Top()+zTolerance {
				continue
			}
			candidates = append(candidates, e.Name)
			overlaps = append(overlaps, sheet.Region.Intersection(e.Region).Area())
		}
		if len(overlaps) == 0 {
			continue
		}
		if best := floats.MaxIdx(overlaps); overlaps[best] > 0 {
			sheet.Background = candidates[best]
		}
	}
}

func contains(ids []int, id int) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}

func remove(ids []int, id int) []int {
	out := ids[:0]
	for _, i := range ids {
		if i != id {
			out = append(out, i)
		}
	}
	return out
}
