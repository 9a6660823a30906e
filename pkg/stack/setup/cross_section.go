package setup

import (
	"fmt"
	"regexp"

	"github.com/yaptide/chipstack/validate"
)

// ProfileEntry overrides how one layer appears in a cross-section.
type ProfileEntry struct {
	// Levels is the vertical interval [bottom, top] in micrometers.
	Levels Floats `json:"levels,omitempty"`
	// Dominant is a regular expression of layer names that shadow this
	// layer where they overlap.
	Dominant string `json:"dominant,omitempty"`
	// ChangeTo merges the layer into another layer.
	ChangeTo  string `json:"change_to,omitempty"`
	Invisible bool   `json:"invisible,omitempty"`
}

// CrossSection describes a cut through the stack.
type CrossSection struct {
	Name string `json:"name,omitempty"`
	P1   Point  `json:"p1"`
	P2   Point  `json:"p2"`
	// MagnificationOrder refines the database unit by 10^order so thin
	// oxide layers survive rounding to the grid.
	MagnificationOrder int `json:"magnification_order,omitempty"`
	// OxideThickness [ma, ms, sa] of synthesized interface layers.
	OxideThickness Floats                  `json:"oxide_thickness,omitempty"`
	Profile        map[string]ProfileEntry `json:"profile,omitempty"`
}

// Validate ...
func (c CrossSection) Validate() error {
	result := E{}
	if c.P1 == c.P2 {
		result["p2"] = fmt.Errorf("cut needs two distinct points")
	}
	if c.MagnificationOrder < 0 || c.MagnificationOrder > 6 {
		result["magnification_order"] = fmt.Errorf("should be between 0 and 6")
	}
	if len(c.OxideThickness) > 3 || !validate.NonNegativeAll(c.OxideThickness) {
		result["oxide_thickness"] = fmt.Errorf("expected up to 3 non-negative values")
	}
	for name, entry := range c.Profile {
		if len(entry.Levels) != 0 && len(entry.Levels) != 2 {
			result["profile."+name+".levels"] = fmt.Errorf("expected [bottom, top]")
		}
		if entry.Dominant != "" {
			if _, err := regexp.Compile(entry.Dominant); err != nil {
				result["profile."+name+".dominant"] = err
			}
		}
	}
	return result.orNil()
}
