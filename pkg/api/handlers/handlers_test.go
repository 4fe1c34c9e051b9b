package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/urmzd/umaai/pkg/db"
	"github.com/urmzd/umaai/pkg/device"
	"github.com/urmzd/umaai/pkg/effect"
	"github.com/urmzd/umaai/pkg/gallery"
	"github.com/urmzd/umaai/pkg/override"
	"github.com/urmzd/umaai/pkg/presence"
	"github.com/urmzd/umaai/pkg/schema"
	"github.com/urmzd/umaai/pkg/state"
	"github.com/urmzd/umaai/pkg/task"
	"github.com/urmzd/umaai/pkg/voice"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSettings struct {
	mu  sync.Mutex
	cur db.Settings
	err error
}

func (f *fakeSettings) Settings() db.Settings {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cur
}

func (f *fakeSettings) Apply(ctx context.Context, patch db.Settings) (db.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return db.Settings{}, f.err
	}
	f.cur = f.cur.Merge(patch)
	return f.cur, nil
}

type fakeGenerator struct {
	mu   sync.Mutex
	text string
	err  error
	last voice.Request
}

func (g *fakeGenerator) Generate(ctx context.Context, req voice.Request) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last = req
	return g.text, g.err
}

func (g *fakeGenerator) lastRequest() voice.Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

type fakeModels struct {
	models []string
	err    error
}

func (m *fakeModels) ListModels(ctx context.Context) ([]string, error) {
	return m.models, m.err
}

type fakeController struct {
	mu        sync.Mutex
	devices   []device.Device
	err       error
	connected bool
}

func (c *fakeController) ListDevices(ctx context.Context) ([]device.Device, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return append([]device.Device(nil), c.devices...), nil
}

func (c *fakeController) GetDevice(ctx context.Context, id string) (*device.Device, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.devices {
		if c.devices[i].ID == id {
			d := c.devices[i]
			return &d, nil
		}
	}
	return nil, device.ErrNotFound
}

func (c *fakeController) Switch(ctx context.Context, id string, on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	for i := range c.devices {
		if c.devices[i].ID == id {
			c.devices[i].Status = device.StatusFromBool(on)
			return nil
		}
	}
	return device.ErrNotFound
}

func (c *fakeController) IsConnected() bool { return c.connected }
func (c *fakeController) Close()            {}

type testEnv struct {
	store      *state.Store
	tasks      *task.Supervisor
	tracker    *presence.Tracker
	gallery    *gallery.Gallery
	settings   *fakeSettings
	models     *fakeModels
	gen        *fakeGenerator
	controller *fakeController
	engine     *effect.Engine
	pipeline   *voice.Pipeline
	display    *DisplayHandler
	admin      *AdminHandler
	router     *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:    state.NewStore(state.Default()),
		tasks:    task.NewSupervisor(context.Background()),
		tracker:  presence.NewTracker(presence.DefaultTimeout),
		gallery:  gallery.New(t.TempDir(), "/photos"),
		settings: &fakeSettings{cur: db.DefaultSettings()},
		models:   &fakeModels{},
		gen:      &fakeGenerator{},
		controller: &fakeController{connected: true, devices: []device.Device{
			{ID: "lamp-1", Name: "Лампа Спальня", Status: device.StatusOff, Capability: device.CapabilitySwitch},
		}},
	}
	t.Cleanup(env.tasks.Shutdown)

	overrides := override.NewScheduler(env.store, env.tasks, 20*time.Millisecond)
	env.engine = effect.NewEngine(env.store, env.controller, env.tasks)
	env.pipeline = voice.NewPipeline(env.store, env.engine, env.tasks, env.gen, voice.WithEffectDelay(20*time.Millisecond))
	validator := schema.NewValidator()

	env.display = NewDisplayHandler(env.store, env.tracker, overrides, env.settings, validator)
	env.admin = NewAdminHandler(env.tasks)
	terminals := NewTerminalsHandler(env.store, env.tracker)
	vibe := NewVibeHandler(env.gallery, 0)
	cfg := NewConfigHandler(env.settings, env.models, validator)
	smart := NewSmartHomeHandler(env.engine, validator)

	r := gin.New()
	r.GET("/health", NewHealthHandler(env.controller, env.tracker).Health)
	r.GET("/photos/:name", vibe.Photo)
	r.GET("/api/poll", env.display.Poll)
	r.GET("/api/set", env.display.Set)
	r.POST("/api/set", env.display.Set)
	r.GET("/api/events", env.display.Events)
	r.POST("/api/voice", NewVoiceHandler(env.pipeline, 0).Voice)
	r.GET("/api/devices", terminals.List)
	r.GET("/api/device/battery", terminals.Battery)
	r.GET("/api/device/lock", terminals.Lock)
	r.POST("/api/device/info", terminals.Info)
	r.GET("/api/admin/heartbeat", env.admin.Heartbeat)
	r.GET("/api/admin/status", env.admin.Status)
	r.GET("/api/admin/jobs", env.admin.Jobs)
	r.GET("/api/vibe/list", vibe.List)
	r.POST("/api/vibe/upload", vibe.Upload)
	r.GET("/api/vibe/delete", vibe.Delete)
	r.GET("/api/config", cfg.Get)
	r.POST("/api/config", cfg.Update)
	r.GET("/api/gemini/models", cfg.Models)
	r.GET("/api/smartthings/devices", smart.Devices)
	r.POST("/api/smartthings/device/control", smart.Control)
	env.router = r

	return env
}

func (env *testEnv) do(method, target string, body io.Reader, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) get(target string) *httptest.ResponseRecorder {
	return env.do(http.MethodGet, target, nil, nil)
}

func (env *testEnv) postJSON(target, body string) *httptest.ResponseRecorder {
	return env.do(http.MethodPost, target, bytes.NewBufferString(body), map[string]string{"Content-Type": "application/json"})
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type formFile struct {
	field, filename, contentType string
	data                         []byte
}

// multipartBody encodes text fields and files and returns the body and its
// Content-Type header.
func multipartBody(t *testing.T, fields map[string]string, files ...formFile) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{`form-data; name="` + f.field + `"; filename="` + f.filename + `"`}
		h["Content-Type"] = []string{f.contentType}
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}
