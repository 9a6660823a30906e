package layout

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/yaptide/chipstack/pkg/region"
)

// Document is the JSON form of a static layout. Coordinates are in
// micrometers.
type Document struct {
	// Faces maps face id to layer name to list of polygons.
	Faces     map[string]map[string][][][2]float64 `json:"faces"`
	Refpoints map[string][2]float64                `json:"refpoints,omitempty"`
}

// Static is a layout with fixed geometry.
type Static struct {
	regions   map[string]map[string]region.Region
	refpoints map[string]region.Point
}

// NewStatic converts document to the grid.
func NewStatic(doc Document, grid region.Grid) (*Static, error) {
	s := &Static{
		regions:   map[string]map[string]region.Region{},
		refpoints: map[string]region.Point{},
	}
	for face, layers := range doc.Faces {
		s.regions[face] = map[string]region.Region{}
		for layer, polygons := range layers {
			parts := make([]region.Region, 0, len(polygons))
			for i, polygon := range polygons {
				if len(polygon) < 3 {
					return nil, fmt.Errorf("face %s layer %s polygon %d: needs at least 3 points", face, layer, i)
				}
				parts = append(parts, grid.Polygon(polygon))
			}
			s.regions[face][layer] = region.UnionAll(parts...)
		}
	}
	for name, p := range doc.Refpoints {
		s.refpoints[name] = grid.Point(p[0], p[1])
	}
	return s, nil
}

// ParseStatic reads JSON document.
func ParseStatic(data []byte, grid region.Grid) (*Static, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return NewStatic(doc, grid)
}

// RegionFromLayer ...
func (s *Static) RegionFromLayer(face, layer string) region.Region {
	return s.regions[face][layer]
}

// Refpoints ...
func (s *Static) Refpoints() map[string]region.Point {
	return s.refpoints
}

// Set replaces geometry of a layer.
func (s *Static) Set(face, layer string, r region.Region) {
	if _, ok := s.regions[face]; !ok {
		s.regions[face] = map[string]region.Region{}
	}
	s.regions[face][layer] = r
}

// SetRefpoint ...
func (s *Static) SetRefpoint(name string, p region.Point) {
	s.refpoints[name] = p
}

// Faces returns sorted ids of faces with geometry.
func (s *Static) Faces() []string {
	faces := make([]string, 0, len(s.regions))
	for face := range s.regions {
		faces = append(faces, face)
	}
	sort.Strings(faces)
	return faces
}
