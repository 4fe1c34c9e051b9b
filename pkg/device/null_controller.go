package device

import "context"

// NullController stands in when no backend is configured: HOME commands
// still show on screen, switching reports ErrNotConnected.
type NullController struct{}

// NewNullController returns a controller with no devices.
func NewNullController() *NullController {
	return &NullController{}
}

func (NullController) ListDevices(context.Context) ([]Device, error) { return []Device{}, nil }

func (NullController) GetDevice(context.Context, string) (*Device, error) { return nil, ErrNotFound }

func (NullController) Switch(context.Context, string, bool) error { return ErrNotConnected }

func (NullController) IsConnected() bool { return false }

func (NullController) Close() {}
