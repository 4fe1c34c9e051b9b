package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urmzd/umaai/pkg/command"
	"github.com/urmzd/umaai/pkg/device"
	"github.com/urmzd/umaai/pkg/effect"
	"github.com/urmzd/umaai/pkg/gallery"
	"github.com/urmzd/umaai/pkg/override"
	"github.com/urmzd/umaai/pkg/presence"
	"github.com/urmzd/umaai/pkg/state"
	"github.com/urmzd/umaai/pkg/task"
	"github.com/urmzd/umaai/pkg/voice"
)

type silentGenerator struct{}

func (silentGenerator) Generate(ctx context.Context, req voice.Request) (string, error) {
	return "", nil
}

type testEnv struct {
	server    *Server
	store     *state.Store
	tracker   *presence.Tracker
	gallery   *gallery.Gallery
	overrides *override.Scheduler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithRevert(t, 20*time.Millisecond)
}

func newTestEnvWithRevert(t *testing.T, revert time.Duration) *testEnv {
	t.Helper()

	store := state.NewStore(state.Default())
	tasks := task.NewSupervisor(context.Background())
	t.Cleanup(tasks.Shutdown)

	engine := effect.NewEngine(store, device.NewNullController(), tasks)
	env := &testEnv{
		store:     store,
		tracker:   presence.NewTracker(presence.DefaultTimeout),
		gallery:   gallery.New(t.TempDir(), "/photos"),
		overrides: override.NewScheduler(store, tasks, revert),
	}
	env.server = NewServer(Deps{
		Store:    store,
		Voice:    voice.NewPipeline(store, engine, tasks, silentGenerator{}, voice.WithEffectDelay(20*time.Millisecond)),
		Override: env.overrides,
		Tracker:  env.tracker,
		Gallery:  env.gallery,
	}, "test")
	return env
}

func call(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return text.Text
}

func decodeResult[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	require.False(t, res.IsError, resultText(t, res))
	var out T
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	return out
}

func TestGetState(t *testing.T) {
	env := newTestEnv(t)
	env.store.Merge(state.Patch{Mode: state.Ptr(state.ModeClock)})

	res, err := env.server.handleGetState(context.Background(), call(nil))
	require.NoError(t, err)

	snap := decodeResult[state.Snapshot](t, res)
	assert.Equal(t, state.ModeClock, snap.Mode)
}

func TestSetDisplay(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.server.handleSetDisplay(context.Background(), call(map[string]any{"mode": "text", "text": "Привет"}))
	require.NoError(t, err)

	out := decodeResult[SetDisplayOutput](t, res)
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, state.ModeText, out.CurrentState.Mode)

	snap := env.store.Read()
	assert.Equal(t, state.ModeText, snap.Mode)
	assert.Equal(t, "Привет", snap.AIText)
}

func TestSetDisplay_TransientEmotionReverts(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.server.handleSetDisplay(context.Background(), call(map[string]any{"emotion": "dizzy"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, state.EmotionDizzy, env.store.Read().Emotion)

	assert.Eventually(t, func() bool {
		return env.store.Read().Emotion == state.EmotionNormal
	}, time.Second, 5*time.Millisecond)
}

func TestSetDisplay_TextDoesNotScheduleRevert(t *testing.T) {
	env := newTestEnvWithRevert(t, time.Minute)

	res, err := env.server.handleSetDisplay(context.Background(), call(map[string]any{"emotion": "wink"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, 1, env.overrides.Pending())

	res, err = env.server.handleSetDisplay(context.Background(), call(map[string]any{"text": "hi"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Equal(t, 1, env.overrides.Pending())
	assert.Equal(t, state.EmotionWink, env.store.Read().Emotion)
}

func TestSetDisplay_Rejects(t *testing.T) {
	env := newTestEnv(t)
	before := env.store.Read().Version()

	for _, args := range []map[string]any{
		nil,
		{"mode": "party"},
		{"emotion": "angry"},
	} {
		res, err := env.server.handleSetDisplay(context.Background(), call(args))
		require.NoError(t, err)
		assert.True(t, res.IsError, "%v", args)
	}
	assert.Equal(t, before, env.store.Read().Version())
}

func TestSpeak(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.server.handleSpeak(context.Background(), call(map[string]any{"text": "Включаю часы. {CLOCK}"}))
	require.NoError(t, err)

	out := decodeResult[SpeakOutput](t, res)
	assert.Equal(t, "Включаю часы.", out.Text)
	require.Len(t, out.Commands, 1)
	assert.Equal(t, command.Command{Name: "CLOCK"}, out.Commands[0])

	snap := env.store.Read()
	assert.Equal(t, state.ModeText, snap.Mode)
	assert.Equal(t, "Включаю часы.", snap.AIText)

	require.Eventually(t, func() bool {
		return env.store.Read().Mode == state.ModeClock
	}, time.Second, 5*time.Millisecond)
}

func TestSpeak_RequiresText(t *testing.T) {
	env := newTestEnv(t)

	for _, args := range []map[string]any{nil, {"text": ""}, {"text": 42}} {
		res, err := env.server.handleSpeak(context.Background(), call(args))
		require.NoError(t, err)
		assert.True(t, res.IsError, "%v", args)
	}
}

func TestTerminals_ListAndLock(t *testing.T) {
	env := newTestEnv(t)
	env.tracker.Touch("10.0.0.3", false, time.Now())

	res, err := env.server.handleListTerminals(context.Background(), call(nil))
	require.NoError(t, err)
	list := decodeResult[ListTerminalsOutput](t, res)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "10.0.0.3", list.Terminals[0].IP)
	assert.True(t, list.Terminals[0].IsOnline)

	res, err = env.server.handleLockTerminals(context.Background(), call(map[string]any{"locked": true, "ip": "10.0.0.3"}))
	require.NoError(t, err)
	out := decodeResult[LockTerminalsOutput](t, res)
	assert.True(t, out.Locked)

	assert.True(t, env.store.Read().DeviceLocked)
	rec, _ := env.tracker.Get("10.0.0.3")
	assert.True(t, rec.Locked)

	res, err = env.server.handleLockTerminals(context.Background(), call(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestListImages(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.gallery.Upload(2, []byte("jpg"), "a.jpg", "image/jpeg")
	require.NoError(t, err)

	res, err := env.server.handleListImages(context.Background(), call(nil))
	require.NoError(t, err)

	out := decodeResult[ListImagesOutput](t, res)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "/photos/2.jpg", out.Images[0].URL)
}

func TestHandler_ListsTools(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.server.Handler())
	defer srv.Close()

	body := `{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`
	req, err := http.NewRequest(http.MethodPost, srv.URL+EndpointPath, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	names := make([]string, 0, len(out.Result.Tools))
	for _, tool := range out.Result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"get_state", "set_display", "speak", "list_terminals", "lock_terminals", "list_images"}, names)
}
