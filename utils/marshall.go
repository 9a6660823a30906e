// Package utils contains JSON helpers for polymorphic models.
package utils

import (
	"encoding/json"
	"fmt"
)

// TypeBasedUnmarshalJSON decodes data into the variant selected by its
// "type" field. Constructors return pointers, so fields are decoded in
// place.
func TypeBasedUnmarshalJSON[T any](data []byte, typeMapping map[string]func() T) (T, error) {
	var zero T
	var raw struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return zero, err
	}

	create, knownType := typeMapping[raw.Type]
	if !knownType {
		return zero, fmt.Errorf("unknown type %q", raw.Type)
	}
	value := create()
	if err := json.Unmarshal(data, value); err != nil {
		return zero, err
	}
	return value, nil
}
