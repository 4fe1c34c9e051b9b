package effect

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urmzd/umaai/pkg/command"
	"github.com/urmzd/umaai/pkg/device"
	"github.com/urmzd/umaai/pkg/state"
	"github.com/urmzd/umaai/pkg/task"
)

// DefaultDispatchTimeout bounds one device command.
const DefaultDispatchTimeout = 10 * time.Second

// Apply applies directives to snap in order; later directives win on
// overlapping fields. It returns the device switches the caller should
// dispatch. Apply never fails: unknown and invalid directives are skipped.
func Apply(snap *state.Snapshot, directives []Directive) []SwitchDevice {
	var switches []SwitchDevice
	for _, d := range directives {
		switch d := d.(type) {
		case SetTimer:
			snap.Timer = state.Timer{Total: d.Seconds, Left: d.Seconds}
			snap.Mode = state.ModeTimer
		case ShowClock:
			snap.Mode = state.ModeClock
		case ShowWeather:
			snap.Mode = state.ModeWeather
		case SwitchDevice:
			snap.SmartHome = state.SmartHome{Device: d.Device, Status: d.Status}
			snap.Mode = state.ModeSmartHome
			if _, ok := d.OnOff(); ok {
				switches = append(switches, d)
			}
		case PlayMusic:
			snap.Music = state.Music{
				Title:     d.Title,
				Artist:    d.Artist,
				StreamURL: snap.Music.StreamURL,
			}
			snap.Mode = state.ModeMusic
		case ShowVibe:
			snap.Mode = state.ModeVibe
			snap.Vibe = state.Vibe{CurrentImage: 1}
		case GoIdle:
			snap.Mode = state.ModeIdle
		}
	}
	return switches
}

// Engine applies command lists to the store and dispatches device commands
// in the background.
type Engine struct {
	store      *state.Store
	controller device.Controller
	tasks      *task.Supervisor
	timeout    time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithDispatchTimeout overrides the per-command device timeout.
func WithDispatchTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// NewEngine creates an engine.
func NewEngine(store *state.Store, controller device.Controller, tasks *task.Supervisor, opts ...Option) *Engine {
	e := &Engine{
		store:      store,
		controller: controller,
		tasks:      tasks,
		timeout:    DefaultDispatchTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run applies cmds as one merge.
func (e *Engine) Run(cmds []command.Command) state.Snapshot {
	snap, _ := e.RunIf(state.Stamp{}, cmds)
	return snap
}

// RunIf applies cmds only if the stamped fields were not written since the
// stamp was taken. Device commands are dispatched only when the merge ran.
func (e *Engine) RunIf(stamp state.Stamp, cmds []command.Command) (state.Snapshot, bool) {
	directives := ClassifyAll(cmds)
	for _, d := range directives {
		switch d := d.(type) {
		case Unknown:
			log.Debug().Str("command", d.Name).Msg("Ignoring unknown command")
		case Invalid:
			log.Debug().Str("command", d.Name).Str("param", d.Param).Str("reason", d.Reason).Msg("Ignoring invalid command")
		}
	}

	var switches []SwitchDevice
	snap, ok := e.store.UpdateIf(stamp, func(next *state.Snapshot) {
		switches = Apply(next, directives)
	})
	if !ok {
		return snap, false
	}

	for _, sw := range switches {
		e.dispatch(sw)
	}
	return snap, true
}

// dispatch sends one switch command without blocking the caller. A failure
// is logged and not retried.
func (e *Engine) dispatch(sw SwitchDevice) {
	if !e.controller.IsConnected() {
		return
	}
	on, _ := sw.OnOff()
	e.tasks.Go("home-dispatch", func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()

		if err := e.controller.Switch(ctx, sw.Device, on); err != nil {
			log.Warn().Err(err).Str("device", sw.Device).Bool("on", on).Msg("Device command failed")
			return
		}
		log.Info().Str("device", sw.Device).Bool("on", on).Msg("Device switched")

		if _, err := e.SyncDevices(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to refresh devices after switch")
		}
	})
}

// SyncDevices fetches the device list and mirrors it into smartThings.devices
// and smartHome.devices in one update.
func (e *Engine) SyncDevices(ctx context.Context) ([]device.Device, error) {
	devices, err := e.controller.ListDevices(ctx)
	if err != nil {
		return nil, err
	}

	summaries := Summaries(devices)
	e.store.Update(func(next *state.Snapshot) {
		next.SmartThings = state.SmartThings{Devices: summaries}
		next.SmartHome.Devices = summaries
	})
	return devices, nil
}

// Switch drives a device synchronously and refreshes the device list.
func (e *Engine) Switch(ctx context.Context, id string, on bool) error {
	if err := e.controller.Switch(ctx, id, on); err != nil {
		return err
	}
	_, err := e.SyncDevices(ctx)
	return err
}

// Summaries converts devices to their on-screen form.
func Summaries(devices []device.Device) []state.DeviceSummary {
	out := make([]state.DeviceSummary, 0, len(devices))
	for _, d := range devices {
		out = append(out, state.DeviceSummary{
			ID:         d.ID,
			Name:       d.Name,
			Status:     d.Status,
			Capability: d.Capability,
		})
	}
	return out
}
