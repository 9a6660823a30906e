// Package layers turns overlapping raw layers into disjoint finalized
// layer entries.
package layers

import (
	"github.com/yaptide/chipstack/pkg/region"
	"github.com/yaptide/chipstack/pkg/stack/setup"
)

// Layer is a raw layer before finalization. Bottom equals Top for sheets.
type Layer struct {
	Name   string
	Region region.Region
	Bottom float64
	Top    float64
	// Material is empty for helper layers, which only subtract from
	// layers listing them in SubtractKeys.
	Material     string
	EdgeMaterial string
	SubtractKeys []string
}

// IsSheet ...
func (l Layer) IsSheet() bool {
	return l.Bottom == l.Top
}

// IsHelper ...
func (l Layer) IsHelper() bool {
	return l.Material == ""
}

// CanModify reports whether other layers may carve this layer.
func (l Layer) CanModify() bool {
	return l.Material != "" && l.Material != setup.Pec
}

// Entry is a finalized layer.
type Entry struct {
	Name         string
	Region       region.Region
	Z            float64
	Thickness    float64
	Material     string
	EdgeMaterial string
	// Background is the solid of the same material a sheet lies on.
	Background string
	// Subtract lists entries whose volume still has to be removed from
	// this entry.
	Subtract []string
	// Layer is set when the entry does not cover the simulation box.
	Layer *int
	// Source is the raw layer the entry was derived from.
	Source string
	// Partition is the partition region the entry belongs to.
	Partition string
}

// Top ...
func (e Entry) Top() float64 {
	return e.Z + e.Thickness
}

// IsSheet ...
func (e Entry) IsSheet() bool {
	return e.Thickness == 0
}

// Numberer assigns layer numbers to entry names.
type Numberer interface {
	GetOrCreate(name string) int
}

// Diagnostics of silently ignored input.
type Diagnostics struct {
	UnmatchedPartitionRegions []string `json:"unmatched_partition_regions,omitempty"`
	EmptyLayers               []string `json:"empty_layers,omitempty"`
}

// Result of Produce.
type Result struct {
	Entries []Entry
	// Cell maps layer numbers to entry geometry for visualisation.
	Cell        map[int]region.Region
	Diagnostics Diagnostics
}

// Entry returns entry by name.
func (r Result) Entry(name string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}
