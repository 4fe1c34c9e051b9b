package schema

import (
	_ "embed"
)

// Settings describes the body of POST /api/config.
//
//go:embed schemas/settings.json
var Settings []byte

// AdminSet describes a display update from the admin console.
//
//go:embed schemas/admin_set.json
var AdminSet []byte

// DeviceControl describes a switch command for one device.
//
//go:embed schemas/device_control.json
var DeviceControl []byte
