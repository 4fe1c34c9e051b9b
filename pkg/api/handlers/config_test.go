package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urmzd/umaai/pkg/api/types"
	"github.com/urmzd/umaai/pkg/db"
	"github.com/urmzd/umaai/pkg/device"
	"github.com/urmzd/umaai/pkg/genai"
	"github.com/urmzd/umaai/pkg/state"
)

func TestConfig_GetRedactsSecrets(t *testing.T) {
	env := newTestEnv(t)
	env.settings.cur.GeminiAPIKey = "AIzaSyExampleKey"
	env.settings.cur.SmartThingsToken = "abc"

	got := decode[db.Settings](t, env.get("/api/config"))
	assert.Equal(t, "AIzaSy...", got.GeminiAPIKey)
	assert.Equal(t, "***", got.SmartThingsToken)
	assert.Equal(t, db.DefaultGeminiModel, got.GeminiModel)
}

func TestConfig_UpdateKeepsBlankValues(t *testing.T) {
	env := newTestEnv(t)
	env.settings.cur.GeminiAPIKey = "AIzaSyExampleKey"

	w := env.postJSON("/api/config", `{"geminiApiKey":"","weatherCity":"  Astana ","geminiModel":"gemini-2.5-pro"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[types.ConfigResponse](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "AIzaSy...", resp.Config.GeminiAPIKey)

	cur := env.settings.Settings()
	assert.Equal(t, "AIzaSyExampleKey", cur.GeminiAPIKey)
	assert.Equal(t, "Astana", cur.WeatherCity)
	assert.Equal(t, "gemini-2.5-pro", cur.GeminiModel)
}

func TestConfig_UpdateRejectsInvalidSettings(t *testing.T) {
	env := newTestEnv(t)
	before := env.settings.Settings()

	for _, body := range []string{
		`{"unknownKey":"x"}`,
		`{"musicStreamUrl":"rtmp://radio"}`,
		`{"geminiApiKey":42}`,
	} {
		w := env.postJSON("/api/config", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.Equal(t, before, env.settings.Settings())
}

func TestConfig_UpdateStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	env.settings.err = errors.New("disk full")

	w := env.postJSON("/api/config", `{"weatherCity":"Astana"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestConfig_Models(t *testing.T) {
	env := newTestEnv(t)

	env.models.err = genai.ErrNotConfigured
	w := env.get("/api/gemini/models")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.models.err = errors.New("connection reset")
	w = env.get("/api/gemini/models")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	env.models.err = nil
	env.models.models = []string{"gemini-2.5-flash", "gemini-2.5-pro"}
	w = env.get("/api/gemini/models")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, env.models.models, decode[types.ModelsResponse](t, w).Models)
}

func TestSmartHome_DevicesMirrorIntoState(t *testing.T) {
	env := newTestEnv(t)

	w := env.get("/api/smartthings/devices")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[types.SmartDevicesResponse](t, w)
	require.Len(t, resp.Devices, 1)
	assert.Equal(t, "Лампа Спальня", resp.Devices[0].Name)

	snap := env.store.Read()
	assert.Equal(t, resp.Devices, snap.SmartThings.Devices)
	assert.Equal(t, resp.Devices, snap.SmartHome.Devices)
}

func TestSmartHome_Control(t *testing.T) {
	env := newTestEnv(t)

	w := env.postJSON("/api/smartthings/device/control", `{"deviceId":"lamp-1","command":"on"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	devices := env.store.Read().SmartThings.Devices
	require.Len(t, devices, 1)
	assert.Equal(t, state.DeviceSummary{ID: "lamp-1", Name: "Лампа Спальня", Status: device.StatusOn, Capability: device.CapabilitySwitch}, devices[0])

	w = env.postJSON("/api/smartthings/device/control", `{"deviceId":"lamp-1","command":"toggle"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.postJSON("/api/smartthings/device/control", `{"deviceId":"garage","command":"off"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSmartHome_ControllerErrors(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantErr  string
	}{
		{device.ErrNotConnected, http.StatusServiceUnavailable, "controller_disconnected"},
		{device.ErrTimeout, http.StatusGatewayTimeout, "timeout"},
		{errors.New("HTTP 500"), http.StatusInternalServerError, "controller_error"},
	}

	for _, tt := range tests {
		env := newTestEnv(t)
		env.controller.err = tt.err

		w := env.get("/api/smartthings/devices")
		assert.Equal(t, tt.wantCode, w.Code)
		assert.Equal(t, tt.wantErr, decode[types.ErrorResponse](t, w).Error)
	}
}
