package setup

import (
	"encoding/json"
	"fmt"
)

// FaceStack lists face groups from the bottom of the stack to the top.
// Faces of one group share a substrate surface. A group may be empty,
// which denotes bare substrate surface.
type FaceStack [][]string

// Faces returns face ids in stack order.
func (fs FaceStack) Faces() []string {
	faces := []string{}
	for _, group := range fs {
		faces = append(faces, group...)
	}
	return faces
}

// Index returns position of face in Faces or -1.
func (fs FaceStack) Index(face string) int {
	for i, f := range fs.Faces() {
		if f == face {
			return i
		}
	}
	return -1
}

// MarshalJSON writes single face groups as plain strings.
func (fs FaceStack) MarshalJSON() ([]byte, error) {
	raw := make([]interface{}, len(fs))
	for i, group := range fs {
		if len(group) == 1 {
			raw[i] = group[0]
		} else {
			raw[i] = append([]string{}, group...)
		}
	}
	return json.Marshal(raw)
}

// UnmarshalJSON accepts every group either as a string or a list.
func (fs *FaceStack) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	stack := make(FaceStack, len(raw))
	for i, entry := range raw {
		var face string
		if err := json.Unmarshal(entry, &face); err == nil {
			stack[i] = []string{face}
			continue
		}
		var group []string
		if err := json.Unmarshal(entry, &group); err != nil {
			return fmt.Errorf("face group %d: expected string or list of strings", i)
		}
		stack[i] = group
	}
	*fs = stack
	return nil
}

// Validate ...
func (fs FaceStack) Validate() error {
	result := E{}
	seen := map[string]bool{}
	for _, face := range fs.Faces() {
		if face == "" {
			result["face_stack"] = fmt.Errorf("face id can not be empty")
			continue
		}
		if seen[face] {
			result[face] = fmt.Errorf("face listed more than once")
		}
		seen[face] = true
	}
	return result.orNil()
}
