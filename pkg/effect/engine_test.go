package effect

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urmzd/umaai/pkg/command"
	"github.com/urmzd/umaai/pkg/device"
	"github.com/urmzd/umaai/pkg/state"
	"github.com/urmzd/umaai/pkg/task"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		cmd  command.Command
		want Directive
	}{
		{command.Command{Name: command.Timer, Param: "120"}, SetTimer{Seconds: 120}},
		{command.Command{Name: command.Timer, Param: "90 sec"}, SetTimer{Seconds: 90}},
		{command.Command{Name: command.Home, Param: "lamp on"}, SwitchDevice{Device: "lamp", Status: "on"}},
		{command.Command{Name: command.Music, Param: "Numb | Linkin Park"}, PlayMusic{Title: "Numb", Artist: "Linkin Park"}},
		{command.Command{Name: command.Music, Param: "Numb"}, PlayMusic{Title: "Numb"}},
		{command.Command{Name: command.Music, Param: "a | b | c"}, PlayMusic{Title: "a", Artist: "b"}},
		{command.Command{Name: command.Clock}, ShowClock{}},
		{command.Command{Name: command.Vibe}, ShowVibe{}},
		{command.Command{Name: "FOO", Param: "bar"}, Unknown{Name: "FOO", Param: "bar"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.cmd), "%+v", tt.cmd)
	}

	for _, param := range []string{"0", "-5", "abc", ""} {
		_, ok := Classify(command.Command{Name: command.Timer, Param: param}).(Invalid)
		assert.True(t, ok, "TIMER %q", param)
	}
	_, ok := Classify(command.Command{Name: command.Home, Param: "lamp"}).(Invalid)
	assert.True(t, ok)
}

func TestApply_Timer(t *testing.T) {
	snap := state.Default()
	Apply(&snap, ClassifyAll([]command.Command{{Name: command.Timer, Param: "120"}}))
	assert.Equal(t, state.ModeTimer, snap.Mode)
	assert.Equal(t, state.Timer{Total: 120, Left: 120}, snap.Timer)

	for _, param := range []string{"0", "-5"} {
		snap := state.Default()
		before := snap
		Apply(&snap, ClassifyAll([]command.Command{{Name: command.Timer, Param: param}}))
		assert.Equal(t, before.Mode, snap.Mode)
		assert.Equal(t, before.Timer, snap.Timer)
	}
}

func TestApply_LaterCommandsWin(t *testing.T) {
	snap := state.Default()
	snap.Music.StreamURL = "http://radio"

	switches := Apply(&snap, ClassifyAll([]command.Command{
		{Name: command.Home, Param: "lamp on"},
		{Name: command.Music, Param: "Numb | Linkin Park"},
		{Name: command.Vibe},
	}))

	assert.Equal(t, state.ModeVibe, snap.Mode)
	assert.Equal(t, state.Vibe{CurrentImage: 1}, snap.Vibe)
	assert.Equal(t, state.SmartHome{Device: "lamp", Status: "on"}, snap.SmartHome)
	assert.Equal(t, state.Music{Title: "Numb", Artist: "Linkin Park", StreamURL: "http://radio"}, snap.Music)
	assert.Equal(t, []SwitchDevice{{Device: "lamp", Status: "on"}}, switches)
}

func TestApply_HomeWithOtherStatusIsNotDispatched(t *testing.T) {
	snap := state.Default()
	switches := Apply(&snap, ClassifyAll([]command.Command{{Name: command.Home, Param: "door locked"}}))
	assert.Equal(t, state.ModeSmartHome, snap.Mode)
	assert.Empty(t, switches)
}

func TestEngine_UnknownCommandChangesNothing(t *testing.T) {
	store := state.NewStore(state.Default())
	tasks := task.NewSupervisor(context.Background())
	defer tasks.Shutdown()
	e := NewEngine(store, device.NewNullController(), tasks)

	before := store.Read()
	after := e.Run([]command.Command{{Name: "FOO", Param: "bar"}})

	assert.Equal(t, before.Mode, after.Mode)
	assert.Equal(t, before.AIText, after.AIText)
	assert.Equal(t, before.Version(), after.Version())
}

type recordingController struct {
	mu       sync.Mutex
	switched chan string
	devices  []device.Device
}

func (c *recordingController) ListDevices(ctx context.Context) ([]device.Device, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.devices, nil
}

func (c *recordingController) GetDevice(ctx context.Context, id string) (*device.Device, error) {
	return nil, device.ErrNotFound
}

func (c *recordingController) Switch(ctx context.Context, id string, on bool) error {
	c.mu.Lock()
	c.devices = []device.Device{{ID: id, Name: id, Status: device.StatusFromBool(on), Capability: device.CapabilitySwitch}}
	c.mu.Unlock()
	c.switched <- id
	return nil
}

func (c *recordingController) IsConnected() bool { return true }
func (c *recordingController) Close()            {}

func TestEngine_HomeDispatchesAndRefreshesDevices(t *testing.T) {
	store := state.NewStore(state.Default())
	tasks := task.NewSupervisor(context.Background())
	defer tasks.Shutdown()
	ctrl := &recordingController{switched: make(chan string, 1)}
	e := NewEngine(store, ctrl, tasks)

	snap := e.Run([]command.Command{{Name: command.Home, Param: "lamp on"}})
	assert.Equal(t, state.ModeSmartHome, snap.Mode)

	select {
	case id := <-ctrl.switched:
		assert.Equal(t, "lamp", id)
	case <-time.After(time.Second):
		t.Fatal("device command not dispatched")
	}

	require.Eventually(t, func() bool {
		return len(store.Read().SmartThings.Devices) == 1
	}, time.Second, 5*time.Millisecond)

	got := store.Read()
	assert.Equal(t, "on", got.SmartThings.Devices[0].Status)
	assert.Equal(t, "lamp", got.SmartHome.Device)
	assert.Len(t, got.SmartHome.Devices, 1)
}

func TestEngine_RunIfSkipsOnStaleStamp(t *testing.T) {
	store := state.NewStore(state.Default())
	tasks := task.NewSupervisor(context.Background())
	defer tasks.Shutdown()
	e := NewEngine(store, device.NewNullController(), tasks)

	stamp := store.Merge(state.Patch{Mode: state.Ptr(state.ModeText)}).Stamp(state.FieldMode)
	store.Merge(state.Patch{Mode: state.Ptr(state.ModeClock)})

	_, ok := e.RunIf(stamp, []command.Command{{Name: command.Weather}})
	assert.False(t, ok)
	assert.Equal(t, state.ModeClock, store.Read().Mode)
}
