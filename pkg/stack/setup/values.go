package setup

import (
	"encoding/json"
	"fmt"
)

// Point is a planar point in micrometers, serialized as [x, y].
type Point [2]float64

// X ...
func (p Point) X() float64 { return p[0] }

// Y ...
func (p Point) Y() float64 { return p[1] }

// Box is the simulation box in micrometers.
type Box struct {
	P1 Point `json:"p1"`
	P2 Point `json:"p2"`
}

// Width ...
func (b Box) Width() float64 { return abs(b.P2[0] - b.P1[0]) }

// Height ...
func (b Box) Height() float64 { return abs(b.P2[1] - b.P1[1]) }

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Floats is a list parameter which also accepts a scalar in JSON.
// Lookups past the end repeat the last value.
type Floats []float64

// At returns value i, extending the list by its last value.
func (f Floats) At(i int) float64 {
	if len(f) == 0 {
		return 0
	}
	if i >= len(f) {
		return f[len(f)-1]
	}
	return f[i]
}

// UnmarshalJSON ...
func (f *Floats) UnmarshalJSON(b []byte) error {
	var scalar float64
	if err := json.Unmarshal(b, &scalar); err == nil {
		*f = Floats{scalar}
		return nil
	}
	var list []float64
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("expected number or list of numbers")
	}
	*f = Floats(list)
	return nil
}

// Strings is a list parameter which also accepts a single string.
type Strings []string

// At returns value i, extending the list by its last value.
func (s Strings) At(i int) string {
	if len(s) == 0 {
		return ""
	}
	if i >= len(s) {
		return s[len(s)-1]
	}
	return s[i]
}

// UnmarshalJSON ...
func (s *Strings) UnmarshalJSON(b []byte) error {
	var scalar string
	if err := json.Unmarshal(b, &scalar); err == nil {
		*s = Strings{scalar}
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("expected string or list of strings")
	}
	*s = Strings(list)
	return nil
}
