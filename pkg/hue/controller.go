// Package hue is a device.Controller for a Philips Hue bridge.
package hue

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/amimof/huego"
	"github.com/urmzd/umaai/pkg/device"
)

// idPrefix keeps Hue light numbers apart from other backends' IDs.
const idPrefix = "hue:"

// Credentials returns the bridge address and API user name.
type Credentials func() (host, user string)

// Controller drives the lights of one bridge. Credentials are read per
// call, so a bridge configured at runtime is picked up immediately.
type Controller struct {
	creds Credentials
}

// NewController creates a controller.
func NewController(creds Credentials) *Controller {
	return &Controller{creds: creds}
}

// IsConnected returns true when host and user are configured.
func (c *Controller) IsConnected() bool {
	host, user := c.creds()
	return host != "" && user != ""
}

// ListDevices returns every light known to the bridge, ordered by number.
func (c *Controller) ListDevices(ctx context.Context) ([]device.Device, error) {
	bridge, err := c.bridge()
	if err != nil {
		return nil, err
	}
	lights, err := bridge.GetLightsContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list hue lights: %w", wrap(err))
	}

	sort.Slice(lights, func(i, j int) bool { return lights[i].ID < lights[j].ID })
	devices := make([]device.Device, 0, len(lights))
	for i := range lights {
		devices = append(devices, toDevice(&lights[i]))
	}
	return devices, nil
}

// GetDevice returns one light. IDs have the form "hue:<n>".
func (c *Controller) GetDevice(ctx context.Context, id string) (*device.Device, error) {
	n, ok := parseID(id)
	if !ok {
		return nil, device.ErrNotFound
	}
	bridge, err := c.bridge()
	if err != nil {
		return nil, err
	}
	light, err := bridge.GetLightContext(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", device.ErrNotFound, id, wrap(err))
	}
	light.ID = n
	d := toDevice(light)
	return &d, nil
}

// Switch turns a light on or off.
func (c *Controller) Switch(ctx context.Context, id string, on bool) error {
	n, ok := parseID(id)
	if !ok {
		return device.ErrNotFound
	}
	bridge, err := c.bridge()
	if err != nil {
		return err
	}
	if _, err := bridge.SetLightStateContext(ctx, n, huego.State{On: on}); err != nil {
		return fmt.Errorf("failed to switch %s: %w", id, wrap(err))
	}
	return nil
}

// Close is a no-op.
func (c *Controller) Close() {}

func (c *Controller) bridge() (*huego.Bridge, error) {
	host, user := c.creds()
	if host == "" || user == "" {
		return nil, device.ErrNotConnected
	}
	return huego.New(host, user), nil
}

func toDevice(l *huego.Light) device.Device {
	d := device.Device{
		ID:          idPrefix + strconv.Itoa(l.ID),
		Name:        l.Name,
		Type:        device.DeviceTypeLight,
		Protocol:    device.ProtocolHue,
		Status:      device.StatusUnknown,
		Capability:  device.CapabilitySwitch,
		StateSchema: device.SwitchSchema,
	}
	if l.State != nil && l.State.Reachable {
		d.Status = device.StatusFromBool(l.State.On)
	}
	return d
}

func parseID(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, idPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func wrap(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", device.ErrTimeout, err)
	}
	return err
}
