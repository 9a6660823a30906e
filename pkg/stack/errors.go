// Package stack holds what the layer stack packages share: formatted
// error constructors tagged with the stage that produced them.
package stack

import (
	"fmt"

	"github.com/yaptide/chipstack/errors"
)

type makeNewGeneralErrorFuncType = func(message string, formatedValues ...interface{}) error
type makeNewIDErrorFuncType = func(
	id interface{}, message string, formatedValues ...interface{},
) error

// ConfigError is returned for malformed simulation configuration.
var ConfigError = makeNewSentinelErrorFunc("config", errors.ErrConfiguration)

// MaterialError is returned when a layer references unknown material.
var MaterialError = makeNewSentinelErrorFunc("material_dict", errors.ErrMaterial)

// GeneralLithoError ...
var GeneralLithoError = makeNewGeneralErrorFunc("litho")

// LayerError ...
var LayerError = makeNewIDErrorFunc("Layer", "layers")

// FaceError ...
var FaceError = makeNewIDErrorFunc("Face", "face_stack")

// PartitionError ...
var PartitionError = makeNewIDErrorFunc("PartitionRegion", "partition_regions")

// PortError ...
var PortError = makeNewIDErrorFunc("Port", "ports")

func makeNewGeneralErrorFunc(stage string) makeNewGeneralErrorFuncType {
	return func(message string, formatedValues ...interface{}) error {
		return fmt.Errorf("[stack] "+stage+": "+message, formatedValues...)
	}
}

func makeNewSentinelErrorFunc(stage string, sentinel error) makeNewGeneralErrorFuncType {
	return func(message string, formatedValues ...interface{}) error {
		return fmt.Errorf("[stack] %s: %w: %s", stage, sentinel, fmt.Sprintf(message, formatedValues...))
	}
}

func makeNewIDErrorFunc(modelName, stage string) makeNewIDErrorFuncType {
	return func(id interface{}, message string, formatedValues ...interface{}) error {
		header := fmt.Sprintf("[stack] %s{Id: %v} -> %s: ", modelName, id, stage)
		return fmt.Errorf(header+message, formatedValues...)
	}
}
