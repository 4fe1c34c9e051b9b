package device

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Multi fans requests out over several backends. Devices are addressed by
// backend ID or, failing that, by case-insensitive name, so a voice command
// can say "lamp" instead of a SmartThings UUID.
type Multi struct {
	backends []Controller
}

// NewMulti creates a controller over the given backends. Order matters:
// the first backend that knows a device owns it.
func NewMulti(backends ...Controller) *Multi {
	return &Multi{backends: backends}
}

// ListDevices returns the devices of every connected backend. A failing
// backend is logged and skipped; the call fails only if all of them fail.
func (m *Multi) ListDevices(ctx context.Context) ([]Device, error) {
	devices := []Device{}
	var firstErr error
	failed, connected := 0, 0
	for _, b := range m.backends {
		if !b.IsConnected() {
			continue
		}
		connected++
		list, err := b.ListDevices(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to list devices from backend")
			if firstErr == nil {
				firstErr = err
			}
			failed++
			continue
		}
		devices = append(devices, list...)
	}
	if connected > 0 && failed == connected {
		return nil, firstErr
	}
	return devices, nil
}

// GetDevice resolves ref by ID, then by name.
func (m *Multi) GetDevice(ctx context.Context, ref string) (*Device, error) {
	_, d, err := m.find(ctx, ref)
	return d, err
}

// Switch turns the device named by ref on or off through its owning backend.
func (m *Multi) Switch(ctx context.Context, ref string, on bool) error {
	owner, d, err := m.find(ctx, ref)
	if err != nil {
		return err
	}
	if !d.Switchable() {
		return fmt.Errorf("%w: %s has no switch", ErrUnsupported, d.Name)
	}
	return owner.Switch(ctx, d.ID, on)
}

// IsConnected returns true if any backend is connected.
func (m *Multi) IsConnected() bool {
	for _, b := range m.backends {
		if b.IsConnected() {
			return true
		}
	}
	return false
}

// Close closes every backend.
func (m *Multi) Close() {
	for _, b := range m.backends {
		b.Close()
	}
}

func (m *Multi) find(ctx context.Context, ref string) (Controller, *Device, error) {
	if !m.IsConnected() {
		return nil, nil, ErrNotConnected
	}

	for _, b := range m.backends {
		if !b.IsConnected() {
			continue
		}
		d, err := b.GetDevice(ctx, ref)
		if err == nil {
			return b, d, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, nil, err
		}
	}

	for _, b := range m.backends {
		if !b.IsConnected() {
			continue
		}
		list, err := b.ListDevices(ctx)
		if err != nil {
			continue
		}
		for i := range list {
			if strings.EqualFold(list[i].Name, ref) {
				return b, &list[i], nil
			}
		}
	}

	return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
}
