package device

import "context"

// Controller defines the interface for controlling smart home devices.
// SmartThings and Hue backends implement it; Multi combines several of
// them behind one value.
type Controller interface {
	// ListDevices returns every device the backend can see
	ListDevices(ctx context.Context) ([]Device, error)

	// GetDevice returns a single device by ID
	GetDevice(ctx context.Context, id string) (*Device, error)

	// Switch turns a device on or off
	Switch(ctx context.Context, id string, on bool) error

	// IsConnected returns true if the backend is configured and usable
	IsConnected() bool

	// Close releases backend resources
	Close()
}
