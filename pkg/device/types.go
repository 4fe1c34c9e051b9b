package device

import (
	"encoding/json"
)

// Device represents a protocol-agnostic smart home device
type Device struct {
	ID          string          `json:"id"`                     // Backend identifier (SmartThings UUID, Hue light ID)
	Name        string          `json:"name"`                   // User-friendly name
	Type        string          `json:"type"`                   // Device type (light, switch, sensor)
	Protocol    string          `json:"protocol"`               // Backend that owns the device
	Status      string          `json:"status"`                 // on, off or unknown
	Capability  string          `json:"capability"`             // switch when the device can be toggled, status otherwise
	StateSchema json.RawMessage `json:"state_schema,omitempty"` // JSON Schema for control requests
}

// Switchable reports whether the device accepts on/off commands.
func (d Device) Switchable() bool {
	return d.Capability == CapabilitySwitch
}

// Protocol constants
const (
	ProtocolSmartThings = "smartthings"
	ProtocolHue         = "hue"
)

// Device type constants
const (
	DeviceTypeLight  = "light"
	DeviceTypeSwitch = "switch"
	DeviceTypeSensor = "sensor"
)

// Status values
const (
	StatusOn      = "on"
	StatusOff     = "off"
	StatusUnknown = "unknown"
)

// Capability values
const (
	CapabilitySwitch = "switch"
	CapabilityStatus = "status"
)

// SwitchSchema is the control schema shared by every switchable device.
var SwitchSchema = json.RawMessage(`{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"command": {"type": "string", "enum": ["on", "off"]}
	},
	"required": ["command"]
}`)

// StatusFromBool maps a power state to a status value.
func StatusFromBool(on bool) string {
	if on {
		return StatusOn
	}
	return StatusOff
}
