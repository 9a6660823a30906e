package setup

import (
	"fmt"
	"sort"

	"github.com/yaptide/chipstack/validate"
)

// Pec is the material name of perfect electric conductors.
const Pec = "pec"

// Material describes dielectric properties of one material.
type Material struct {
	Permittivity float64 `json:"permittivity"`
	LossTangent  float64 `json:"loss_tangent,omitempty"`
	Conductivity float64 `json:"conductivity,omitempty"`
}

// MaterialDict maps material names to their properties.
type MaterialDict map[string]Material

// DefaultMaterialDict ...
func DefaultMaterialDict() MaterialDict {
	return MaterialDict{
		"vacuum":  {Permittivity: 1},
		"silicon": {Permittivity: 11.45},
	}
}

// Has reports whether material is defined. pec is always defined.
func (m MaterialDict) Has(name string) bool {
	if name == Pec {
		return true
	}
	_, ok := m[name]
	return ok
}

// Names returns sorted material names.
func (m MaterialDict) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate ...
func (m MaterialDict) Validate() error {
	result := E{}
	for name, material := range m {
		if name == Pec {
			result[name] = fmt.Errorf("pec is reserved")
			continue
		}
		if !validate.Positive(material.Permittivity) {
			result[name] = fmt.Errorf("permittivity should be positive")
		}
		if !validate.NonNegative(material.LossTangent) || !validate.NonNegative(material.Conductivity) {
			result[name] = fmt.Errorf("loss tangent and conductivity should be non-negative")
		}
	}
	return result.orNil()
}
