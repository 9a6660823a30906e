package setup

import (
	"encoding/json"
	"fmt"

	"github.com/yaptide/chipstack/utils"
	"github.com/yaptide/chipstack/validate"
)

var portType = struct {
	internal string
	edge     string
}{
	internal: "internal",
	edge:     "edge",
}

var portTypeMapping = map[string]func() PortType{
	portType.internal: func() PortType { return &InternalPort{} },
	portType.edge:     func() PortType { return &EdgePort{} },
}

// PortType is implemented by every port kind.
type PortType interface {
	PortNumber() int
	PortFace() string
	Signal() Point
	Termination() Impedance
}

// Port wraps one of the port kinds.
type Port struct {
	PortType
}

// MarshalJSON ...
func (p Port) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.PortType)
}

// UnmarshalJSON ...
func (p *Port) UnmarshalJSON(b []byte) error {
	port, err := utils.TypeBasedUnmarshalJSON(b, portTypeMapping)
	if err != nil {
		return err
	}
	// Ports are held by value.
	switch decoded := port.(type) {
	case *InternalPort:
		p.PortType = *decoded
	case *EdgePort:
		p.PortType = *decoded
	default:
		return fmt.Errorf("unknown port %T", port)
	}
	return nil
}

// Impedance of the port termination.
type Impedance struct {
	Resistance  float64 `json:"resistance"`
	Reactance   float64 `json:"reactance,omitempty"`
	Inductance  float64 `json:"inductance,omitempty"`
	Capacitance float64 `json:"capacitance,omitempty"`
}

// InternalPort is a lumped port between signal and ground locations on
// the same face.
type InternalPort struct {
	Number         int    `json:"number"`
	Face           string `json:"face"`
	SignalLocation Point  `json:"signal_location"`
	GroundLocation Point  `json:"ground_location"`
	// Floating ports do not join the ground location to ground.
	Floating bool `json:"floating,omitempty"`
	// EtchWidth > 0 removes a strip of metal joining both locations.
	EtchWidth float64 `json:"etch_width,omitempty"`
	Impedance
}

// PortNumber ...
func (p InternalPort) PortNumber() int { return p.Number }

// PortFace ...
func (p InternalPort) PortFace() string { return p.Face }

// Signal ...
func (p InternalPort) Signal() Point { return p.SignalLocation }

// Termination ...
func (p InternalPort) Termination() Impedance { return p.Impedance }

// MarshalJSON ...
func (p InternalPort) MarshalJSON() ([]byte, error) {
	type alias InternalPort
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{portType.internal, alias(p)})
}

// EdgePort is a wave port on the simulation box border.
type EdgePort struct {
	Number         int     `json:"number"`
	Face           string  `json:"face"`
	SignalLocation Point   `json:"signal_location"`
	DeembedLength  float64 `json:"deembed_len,omitempty"`
	Impedance
}

// PortNumber ...
func (p EdgePort) PortNumber() int { return p.Number }

// PortFace ...
func (p EdgePort) PortFace() string { return p.Face }

// Signal ...
func (p EdgePort) Signal() Point { return p.SignalLocation }

// Termination ...
func (p EdgePort) Termination() Impedance { return p.Impedance }

// MarshalJSON ...
func (p EdgePort) MarshalJSON() ([]byte, error) {
	type alias EdgePort
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{portType.edge, alias(p)})
}

// Validate ...
func (p Port) Validate(faces FaceStack) error {
	result := E{}
	if p.PortType == nil {
		result["type"] = fmt.Errorf("port type is required")
		return result
	}
	if faces.Index(p.PortFace()) < 0 {
		result["face"] = fmt.Errorf("face %q is not in face_stack", p.PortFace())
	}
	if p.PortNumber() <= 0 {
		result["number"] = fmt.Errorf("should be positive")
	}
	if !validate.NonNegative(p.Termination().Resistance) {
		result["resistance"] = fmt.Errorf("should be non-negative")
	}
	if internal, ok := p.PortType.(InternalPort); ok {
		if !validate.NonNegative(internal.EtchWidth) {
			result["etch_width"] = fmt.Errorf("should be non-negative")
		}
		if internal.SignalLocation == internal.GroundLocation {
			result["ground_location"] = fmt.Errorf("should differ from signal_location")
		}
	}
	return result.orNil()
}
