package core

import (
	"strings"

	"arxml-inspect/internal/shared"
	"arxml-inspect/internal/types"
)

var componentTypesByTag = map[string]types.ComponentType{
	"APPLICATION-SW-COMPONENT-TYPE":           types.ComponentTypeApplication,
	"COMPOSITION-SW-COMPONENT-TYPE":           types.ComponentTypeComposition,
	"SERVICE-SW-COMPONENT-TYPE":               types.ComponentTypeService,
	"SENSOR-ACTUATOR-SW-COMPONENT-TYPE":       types.ComponentTypeSensorActuator,
	"COMPLEX-DEVICE-DRIVER-SW-COMPONENT-TYPE": types.ComponentTypeComplexDeviceDriver,
	"ECU-ABSTRACTION-SW-COMPONENT-TYPE":       types.ComponentTypeEcuAbstraction,
	"SERVICE-PROXY-SW-COMPONENT-TYPE":         types.ComponentTypeServiceProxy,
	"PARAMETER-SW-COMPONENT-TYPE":             types.ComponentTypeParameter,
	"NV-BLOCK-SW-COMPONENT-TYPE":              types.ComponentTypeNvBlock,
}

// AllComponentTypes returns the component type enumeration, unknown last.
func AllComponentTypes() []types.ComponentType {
	return []types.ComponentType{
		types.ComponentTypeApplication,
		types.ComponentTypeComposition,
		types.ComponentTypeService,
		types.ComponentTypeSensorActuator,
		types.ComponentTypeComplexDeviceDriver,
		types.ComponentTypeEcuAbstraction,
		types.ComponentTypeServiceProxy,
		types.ComponentTypeParameter,
		types.ComponentTypeNvBlock,
		types.ComponentTypeUnknown,
	}
}

type portKind struct {
	direction     types.PortDirection
	bidirectional bool
}

var portKindsByTag = map[string]portKind{
	"P-PORT-PROTOTYPE":  {direction: types.PortDirectionProvided},
	"R-PORT-PROTOTYPE":  {direction: types.PortDirectionRequired},
	"PR-PORT-PROTOTYPE": {direction: types.PortDirectionProvided, bidirectional: true},
}

var interfaceKindsByTag = map[string]types.InterfaceKind{
	"SENDER-RECEIVER-INTERFACE": types.InterfaceKindSenderReceiver,
	"CLIENT-SERVER-INTERFACE":   types.InterfaceKindClientServer,
	"TRIGGER-INTERFACE":         types.InterfaceKindTrigger,
	"MODE-SWITCH-INTERFACE":     types.InterfaceKindModeSwitch,
	"NV-DATA-INTERFACE":         types.InterfaceKindNvData,
	"PARAMETER-INTERFACE":       types.InterfaceKindParameter,
}

var connectionKindsByTag = map[string]types.ConnectionKind{
	"ASSEMBLY-SW-CONNECTOR":     types.ConnectionKindAssembly,
	"DELEGATION-SW-CONNECTOR":   types.ConnectionKindDelegation,
	"PASS-THROUGH-SW-CONNECTOR": types.ConnectionKindPassThrough,
}

var argumentDirections = map[string]types.ArgumentDirection{
	"IN":    types.ArgumentDirectionIn,
	"OUT":   types.ArgumentDirectionOut,
	"INOUT": types.ArgumentDirectionInOut,
}

// ComponentTypeForTag maps a schema tag to a component type. The second
// value is false for tags outside the table, which map to unknown.
func ComponentTypeForTag(tag string) (types.ComponentType, bool) {
	if kind, ok := componentTypesByTag[shared.NormalizeTag(tag)]; ok {
		return kind, true
	}
	return types.ComponentTypeUnknown, false
}

// PortKindForTag maps a port tag to its direction. Unknown tags fall back
// to required.
func PortKindForTag(tag string) (types.PortDirection, bool, bool) {
	if kind, ok := portKindsByTag[shared.NormalizeTag(tag)]; ok {
		return kind.direction, kind.bidirectional, true
	}
	return types.PortDirectionRequired, false, false
}

func InterfaceKindForTag(tag string) (types.InterfaceKind, bool) {
	if kind, ok := interfaceKindsByTag[shared.NormalizeTag(tag)]; ok {
		return kind, true
	}
	return types.InterfaceKindUnknown, false
}

func ConnectionKindForTag(tag string) (types.ConnectionKind, bool) {
	if kind, ok := connectionKindsByTag[shared.NormalizeTag(tag)]; ok {
		return kind, true
	}
	return types.ConnectionKindUnknown, false
}

func ArgumentDirectionFor(value string) types.ArgumentDirection {
	if dir, ok := argumentDirections[strings.ToUpper(strings.TrimSpace(value))]; ok {
		return dir
	}
	return types.ArgumentDirectionIn
}

// IsComponentTag reports whether an ELEMENTS child should be read as a
// software component. hasPorts covers component kinds whose tag gives no
// hint.
func IsComponentTag(tag string, hasPorts bool) bool {
	if hasPorts {
		return true
	}
	normalized := shared.NormalizeTag(tag)
	if _, ok := componentTypesByTag[normalized]; ok {
		return true
	}
	if strings.HasSuffix(normalized, "-PROTOTYPE") || strings.HasSuffix(normalized, "-IMPLEMENTATION") {
		return false
	}
	for _, token := range tagTokens(normalized) {
		if token == "COMPONENT" || token == "COMP" {
			return true
		}
	}
	return false
}

func IsInterfaceTag(tag string) bool {
	return strings.HasSuffix(shared.NormalizeTag(tag), "-INTERFACE")
}

func tagTokens(tag string) []string {
	return strings.FieldsFunc(tag, func(r rune) bool {
		return r == '-' || r == '_'
	})
}
