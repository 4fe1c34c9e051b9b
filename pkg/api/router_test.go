package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urmzd/umaai/pkg/db"
	"github.com/urmzd/umaai/pkg/device"
	"github.com/urmzd/umaai/pkg/effect"
	"github.com/urmzd/umaai/pkg/gallery"
	"github.com/urmzd/umaai/pkg/genai"
	"github.com/urmzd/umaai/pkg/mcp"
	"github.com/urmzd/umaai/pkg/override"
	"github.com/urmzd/umaai/pkg/presence"
	"github.com/urmzd/umaai/pkg/schema"
	"github.com/urmzd/umaai/pkg/state"
	"github.com/urmzd/umaai/pkg/task"
	"github.com/urmzd/umaai/pkg/voice"
)

func newTestRouter(t *testing.T) (*Router, *state.Store) {
	t.Helper()
	ctx := context.Background()

	database, err := db.Open(filepath.Join(t.TempDir(), "umaai.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.Migrate(ctx))
	require.NoError(t, database.Bootstrap(ctx))
	cfg, err := database.ActiveConfig(ctx)
	require.NoError(t, err)
	rt := db.NewRuntime(database.Settings(), cfg.Profile.ID, cfg.Settings)

	store := state.NewStore(state.Default())
	tasks := task.NewSupervisor(ctx)
	t.Cleanup(tasks.Shutdown)

	controller := device.NewNullController()
	engine := effect.NewEngine(store, controller, tasks)
	gemini := genai.NewClient(func() (string, string) { return "", "" })
	pipeline := voice.NewPipeline(store, engine, tasks, gemini)
	tracker := presence.NewTracker(presence.DefaultTimeout)
	overrides := override.NewScheduler(store, tasks, 20*time.Millisecond)
	photos := gallery.New(t.TempDir(), "/photos")

	tools := mcp.NewServer(mcp.Deps{
		Store:    store,
		Voice:    pipeline,
		Override: overrides,
		Tracker:  tracker,
		Gallery:  photos,
	}, "test")

	router := NewRouter(Services{
		Store:      store,
		Tasks:      tasks,
		Controller: controller,
		Engine:     engine,
		Voice:      pipeline,
		Presence:   tracker,
		Override:   overrides,
		Gallery:    photos,
		Settings:   rt,
		Models:     gemini,
		Validator:  schema.NewValidator(),
		MCP:        tools.Handler(),
	})
	return router, store
}

func serve(r *Router, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	return w
}

func TestRouter_HealthAndCORS(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://tablet.local")
	w := serve(r, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
}

func TestRouter_SetThenPoll(t *testing.T) {
	r, store := newTestRouter(t)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/set?mode=weather", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, state.ModeWeather, store.Read().Mode)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/poll", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"mode":"weather"`)
}

func TestRouter_ConfigPersists(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/config", strings.NewReader(`{"weatherCity":"Astana"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/config", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"weatherCity":"Astana"`)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/gemini/models", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_DocsRedirect(t *testing.T) {
	r, _ := newTestRouter(t)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/docs", nil))
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/swagger/index.html", w.Header().Get("Location"))
}

func TestRouter_MountsMCP(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, mcp.EndpointPath,
		strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"get_state","arguments":{}}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	w := serve(r, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `\"mode\": \"idle\"`)
}

func TestRequestLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, requestLevel("/api/poll", http.StatusOK))
	assert.Equal(t, zerolog.InfoLevel, requestLevel("/api/set", http.StatusOK))
	assert.Equal(t, zerolog.WarnLevel, requestLevel("/api/poll", http.StatusBadRequest))
	assert.Equal(t, zerolog.ErrorLevel, requestLevel("/api/voice", http.StatusBadGateway))
}
