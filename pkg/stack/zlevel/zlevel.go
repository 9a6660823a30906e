// Package zlevel resolves absolute z-coordinates of a face stack.
package zlevel

import (
	"fmt"

	"github.com/yaptide/chipstack/config"
	"github.com/yaptide/chipstack/pkg/stack"
	"github.com/yaptide/chipstack/pkg/stack/setup"
)

var log = config.NamedLogger("zlevel")

// BlockKind ...
type BlockKind int

const (
	// Vacuum block between chips or at stack ends.
	Vacuum BlockKind = iota
	// Substrate block of one chip.
	Substrate
)

// Block is a slab of the stack between two consecutive slots.
type Block struct {
	Kind BlockKind
	// Number is 1-based counter of blocks of the same kind.
	Number int
	Bottom float64
	Top    float64
}

// Thickness ...
func (b Block) Thickness() float64 {
	return b.Top - b.Bottom
}

// FaceLevels are the three levels of one face, ordered outward from the
// substrate. For faces on the bottom of a substrate they decrease.
type FaceLevels struct {
	MetalBottom   float64 `json:"metal_bottom"`
	MetalTop      float64 `json:"metal_top"`
	DielectricTop float64 `json:"dielectric_top"`
	// Substrate is the 1-based number of the substrate carrying the face.
	Substrate int  `json:"substrate"`
	Top       bool `json:"top"`
	// Index of the face in the face stack.
	Index int `json:"index"`
}

// Outward returns +1 for faces on top of a substrate and -1 otherwise.
func (f FaceLevels) Outward() float64 {
	if f.Top {
		return 1
	}
	return -1
}

// Surface is the z of the substrate surface carrying the face.
func (f FaceLevels) Surface() float64 {
	return f.MetalBottom
}

// MetalRange returns metal z-range as [bottom, top].
func (f FaceLevels) MetalRange() (float64, float64) {
	return minMax(f.MetalBottom, f.MetalTop)
}

// DielectricRange returns dielectric z-range as [bottom, top].
func (f FaceLevels) DielectricRange() (float64, float64) {
	return minMax(f.MetalTop, f.DielectricTop)
}

// Window returns z-range from the substrate surface to the dielectric top.
func (f FaceLevels) Window() (float64, float64) {
	return minMax(f.MetalBottom, f.DielectricTop)
}

// Offset returns z at distance d from the surface, positive outward.
func (f FaceLevels) Offset(d float64) float64 {
	return f.MetalBottom + f.Outward()*d
}

func minMax(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}

// Table is the resolved z-level table.
type Table struct {
	// Slots are block interfaces from the bottom of the stack to its top.
	Slots  []float64             `json:"slots"`
	Faces  map[string]FaceLevels `json:"faces"`
	Blocks []Block               `json:"-"`
}

// Bottom of the stack.
func (t Table) Bottom() float64 {
	return t.Slots[0]
}

// Top of the stack.
func (t Table) Top() float64 {
	return t.Slots[len(t.Slots)-1]
}

// Substrates returns substrate blocks bottom to top.
func (t Table) Substrates() []Block {
	return t.blocksOf(Substrate)
}

// Vacuums returns vacuum blocks bottom to top.
func (t Table) Vacuums() []Block {
	return t.blocksOf(Vacuum)
}

func (t Table) blocksOf(kind BlockKind) []Block {
	blocks := []Block{}
	for _, b := range t.Blocks {
		if b.Kind == kind {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// Resolve computes the z-level table. Level 0 is the top surface of the
// lowest substrate.
func Resolve(params setup.Parameters) (Table, error) {
	groups := params.FaceStack
	if len(groups) == 0 {
		return Table{}, stack.ConfigError("face_stack needs at least one face group")
	}
	vacuumAtBottom := 0
	if params.LowerBoxHeight > 0 {
		vacuumAtBottom = 1
	}

	nBlocks := len(groups) + 1

	table := Table{Faces: map[string]FaceLevels{}}
	z := 0.0
	table.Slots = append(table.Slots, z)
	substrates, vacuums := 0, 0
	for i := 0; i < nBlocks; i++ {
		block := Block{Bottom: z}
		if i%2 == vacuumAtBottom {
			block.Kind = Substrate
			block.Number = substrates + 1
			z += params.SubstrateHeight.At(substrates)
			substrates++
		} else {
			block.Kind = Vacuum
			block.Number = vacuums + 1
			// Vacuum at either end of the stack is a box, the rest are gaps
			// between chips.
			switch {
			case i == 0:
				z += params.LowerBoxHeight
			case i == nBlocks-1:
				z += params.UpperBoxHeight
			default:
				chip := vacuums - vacuumAtBottom
				z += params.ChipDistance.At(chip)
			}
			vacuums++
		}
		block.Top = z
		table.Blocks = append(table.Blocks, block)
		table.Slots = append(table.Slots, z)
	}

	zTrans := 0.0
	for _, b := range table.Blocks {
		if b.Kind == Substrate {
			zTrans = b.Top
			break
		}
	}
	table.shift(-zTrans)

	faceIndex := 0
	for i, group := range groups {
		surface := table.Slots[i+1]
		onTop := i%2 == vacuumAtBottom
		substrate := table.Blocks[i]
		if !onTop {
			substrate = table.Blocks[i+1]
		}
		if onTop {
			levels := surface
			for _, face := range group {
				f := FaceLevels{Substrate: substrate.Number, Top: true, Index: faceIndex}
				f.MetalBottom = levels
				levels += params.MetalHeight.At(faceIndex)
				f.MetalTop = levels
				levels += params.DielectricHeight.At(faceIndex)
				f.DielectricTop = levels
				table.Faces[face] = f
				faceIndex++
			}
		} else {
			levels := surface
			for j := len(group) - 1; j >= 0; j-- {
				idx := faceIndex + j
				f := FaceLevels{Substrate: substrate.Number, Top: false, Index: idx}
				f.MetalBottom = levels
				levels -= params.MetalHeight.At(idx)
				f.MetalTop = levels
				levels -= params.DielectricHeight.At(idx)
				f.DielectricTop = levels
				table.Faces[group[j]] = f
			}
			faceIndex += len(group)
		}
	}

	if err := table.check(); err != nil {
		return Table{}, err
	}
	log.Debugf("resolved %d slots, %d faces, stack [%v, %v]",
		len(table.Slots), len(table.Faces), table.Bottom(), table.Top())
	return table, nil
}

func (t *Table) shift(dz float64) {
	for i := range t.Slots {
		t.Slots[i] += dz
	}
	for i := range t.Blocks {
		t.Blocks[i].Bottom += dz
		t.Blocks[i].Top += dz
	}
}

func (t Table) check() error {
	for i := 1; i < len(t.Slots); i++ {
		if t.Slots[i] < t.Slots[i-1] {
			return stack.ConfigError("slot %d at %v is below slot %d at %v", i, t.Slots[i], i-1, t.Slots[i-1])
		}
	}
	for name, f := range t.Faces {
		d := f.Outward()
		if d*(f.MetalTop-f.MetalBottom) < 0 || d*(f.DielectricTop-f.MetalTop) < 0 {
			return stack.FaceError(name, "levels are not ordered outward from the substrate")
		}
		if f.DielectricTop < t.Bottom() || f.DielectricTop > t.Top() {
			log.Warnf("face %s extends outside of the stack [%v, %v]", name, t.Bottom(), t.Top())
		}
	}
	return nil
}

// String ...
func (f FaceLevels) String() string {
	return fmt.Sprintf("[%v, %v, %v]", f.MetalBottom, f.MetalTop, f.DielectricTop)
}
