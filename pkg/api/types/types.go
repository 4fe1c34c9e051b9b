package types

import (
	"time"

	"github.com/urmzd/umaai/pkg/db"
	"github.com/urmzd/umaai/pkg/gallery"
	"github.com/urmzd/umaai/pkg/presence"
	"github.com/urmzd/umaai/pkg/state"
	"github.com/urmzd/umaai/pkg/task"
)

// --- Request DTOs ---

// SetRequest is the JSON body for POST /api/set. Absent fields are left
// unchanged.
type SetRequest struct {
	Mode           *string `json:"mode,omitempty"`
	Emotion        *string `json:"emotion,omitempty"`
	Text           *string `json:"text,omitempty"`
	DeviceState    *string `json:"deviceState,omitempty"`
	TimerTotal     *int    `json:"timerTotal,omitempty"`
	TimerStop      *bool   `json:"timerStop,omitempty"`
	MusicTitle     *string `json:"musicTitle,omitempty"`
	MusicArtist    *string `json:"musicArtist,omitempty"`
	MusicProgress  *int    `json:"musicProgress,omitempty"`
	MusicStreamURL *string `json:"musicStreamUrl,omitempty"`
}

// InfoRequest is the body for POST /api/device/info
type InfoRequest struct {
	Battery    *float64 `json:"battery"`
	Charging   *bool    `json:"charging"`
	DeviceName string   `json:"deviceName"`
}

// DeviceControlRequest is the body for POST /api/smartthings/device/control
type DeviceControlRequest struct {
	DeviceID string `json:"deviceId"`
	Command  string `json:"command"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse acknowledges a request without a payload
type SuccessResponse struct {
	Success bool `json:"success"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status     string    `json:"status"`
	Controller string    `json:"controller"`
	Terminals  int       `json:"terminals"`
	Timestamp  time.Time `json:"timestamp"`
}

// SetResponse is returned from /api/set
type SetResponse struct {
	Status       string         `json:"status"`
	CurrentState state.Snapshot `json:"currentState"`
}

// VoiceResponse is returned from POST /api/voice. Text is the raw reply,
// commands included.
type VoiceResponse struct {
	Text string `json:"text"`
}

// TerminalsResponse is returned from GET /api/devices
type TerminalsResponse struct {
	Devices []presence.View `json:"devices"`
}

// BatteryResponse is returned from GET /api/device/battery
type BatteryResponse struct {
	Battery  *float64 `json:"battery"`
	Charging bool     `json:"charging"`
}

// LockResponse is returned from GET /api/device/lock
type LockResponse struct {
	Success bool `json:"success"`
	Locked  bool `json:"locked"`
}

// AdminStatusResponse is returned from GET /api/admin/status
type AdminStatusResponse struct {
	Open          bool  `json:"open"`
	LastHeartbeat int64 `json:"lastHeartbeat"`
}

// JobsResponse is returned from GET /api/admin/jobs
type JobsResponse struct {
	Jobs []task.JobStatus `json:"jobs"`
}

// ImagesResponse is returned from GET /api/vibe/list
type ImagesResponse struct {
	Images []gallery.Image `json:"images"`
	Count  int             `json:"count"`
}

// UploadResponse is returned from POST /api/vibe/upload
type UploadResponse struct {
	Success  bool   `json:"success"`
	Index    int    `json:"index"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// DeleteResponse is returned from GET /api/vibe/delete
type DeleteResponse struct {
	Success bool   `json:"success"`
	Deleted bool   `json:"deleted"`
	Message string `json:"message"`
}

// ConfigResponse is returned from POST /api/config. Config carries the
// settings with secrets redacted.
type ConfigResponse struct {
	Success bool        `json:"success"`
	Config  db.Settings `json:"config"`
}

// ModelsResponse is returned from GET /api/gemini/models
type ModelsResponse struct {
	Models []string `json:"models"`
}

// SmartDevicesResponse is returned from GET /api/smartthings/devices
type SmartDevicesResponse struct {
	Devices []state.DeviceSummary `json:"devices"`
}
