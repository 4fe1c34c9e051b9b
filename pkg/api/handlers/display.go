package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/umaai/pkg/api/types"
	"github.com/urmzd/umaai/pkg/db"
	"github.com/urmzd/umaai/pkg/override"
	"github.com/urmzd/umaai/pkg/presence"
	"github.com/urmzd/umaai/pkg/schema"
	"github.com/urmzd/umaai/pkg/state"
)

// heartbeatInterval keeps idle SSE connections open through proxies.
const heartbeatInterval = 30 * time.Second

// DisplayHandler serves the terminal's poll loop and the admin console's
// direct state edits.
type DisplayHandler struct {
	store     *state.Store
	tracker   *presence.Tracker
	override  *override.Scheduler
	settings  SettingsRuntime
	validator *schema.Validator
	now       func() time.Time
}

// NewDisplayHandler creates a new display handler
func NewDisplayHandler(store *state.Store, tracker *presence.Tracker, overrides *override.Scheduler, settings SettingsRuntime, validator *schema.Validator) *DisplayHandler {
	return &DisplayHandler{
		store:     store,
		tracker:   tracker,
		override:  overrides,
		settings:  settings,
		validator: validator,
		now:       time.Now,
	}
}

// Poll handles GET /api/poll
// @Summary      Poll display state
// @Description  Returns the current display state and marks the calling terminal as seen
// @Tags         display
// @Produce      json
// @Success      200  {object}  state.Snapshot
// @Router       /api/poll [get]
func (h *DisplayHandler) Poll(c *gin.Context) {
	snap := h.store.Read()
	h.tracker.Touch(clientID(c), snap.DeviceLocked, h.now())
	c.JSON(http.StatusOK, snap)
}

// Set handles GET and POST /api/set
// @Summary      Set display fields
// @Description  Merges admin-supplied fields into the display state. GET reads query parameters, POST a JSON body.
// @Tags         display
// @Accept       json
// @Produce      json
// @Param        mode         query     string  false  "Display mode"
// @Param        emotion      query     string  false  "Face emotion"
// @Param        text         query     string  false  "Text shown in text mode"
// @Param        timerTotal   query     int     false  "Timer length in seconds"
// @Param        timerStop    query     string  false  "Stop the timer"
// @Param        request      body      types.SetRequest  false  "Fields to set (POST)"
// @Success      200  {object}  types.SetResponse
// @Failure      400  {object}  types.ErrorResponse  "Invalid field value"
// @Failure      500  {object}  types.ErrorResponse  "Settings could not be saved"
// @Router       /api/set [get]
// @Router       /api/set [post]
func (h *DisplayHandler) Set(c *gin.Context) {
	var req types.SetRequest
	if c.Request.Method == http.MethodPost {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxJSONBody))
		if err != nil {
			bodyError(c, err)
			return
		}
		if err := h.validator.Decode(schema.AdminSet, body, &req); err != nil {
			abort(c, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
	} else {
		req = setRequestFromQuery(c)
	}

	if req.Mode != nil && !state.Mode(*req.Mode).Valid() {
		abort(c, http.StatusBadRequest, "invalid_mode", "Unknown mode "+*req.Mode)
		return
	}
	if req.Emotion != nil && !state.Emotion(*req.Emotion).Valid() {
		abort(c, http.StatusBadRequest, "invalid_emotion", "Unknown emotion "+*req.Emotion)
		return
	}

	musicSet := req.MusicTitle != nil || req.MusicArtist != nil || req.MusicProgress != nil
	if url := strings.TrimSpace(deref(req.MusicStreamURL)); musicSet && url != "" {
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			abort(c, http.StatusBadRequest, "invalid_stream_url", "Stream URL must be http or https")
			return
		}
		if _, err := h.settings.Apply(c.Request.Context(), db.Settings{MusicStreamURL: url}); err != nil {
			abort(c, http.StatusInternalServerError, "settings_error", err.Error())
			return
		}
	}
	streamURL := h.settings.Settings().MusicStreamURL

	snap := h.store.MergeFunc(setPatch(req), func(next *state.Snapshot) {
		if req.DeviceState != nil {
			next.SmartHome.Status = *req.DeviceState
		}
		if !musicSet {
			return
		}
		if req.MusicTitle != nil {
			next.Music.Title = *req.MusicTitle
		}
		if req.MusicArtist != nil {
			next.Music.Artist = *req.MusicArtist
		}
		if req.MusicProgress != nil {
			next.Music.ProgressPercent = *req.MusicProgress
		}
		next.Music.StreamURL = streamURL
	})
	if req.Emotion != nil {
		h.override.Watch(snap)
	}

	c.JSON(http.StatusOK, types.SetResponse{
		Status:       "ok",
		CurrentState: snap,
	})
}

// Events handles GET /api/events (SSE stream)
// @Summary      Subscribe to state changes
// @Description  Server-Sent Events stream carrying the display state after every change
// @Tags         display
// @Produce      text/event-stream
// @Success      200  {string}  string  "SSE event stream"
// @Router       /api/events [get]
func (h *DisplayHandler) Events(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	updates := h.store.Subscribe()
	defer h.store.Unsubscribe(updates)

	sendSSEEvent(c.Writer, "connected", map[string]any{
		"timestamp": h.now(),
		"message":   "Connected to state event stream",
	})
	sendSSEEvent(c.Writer, "state", h.store.Read())
	c.Writer.Flush()

	clientGone := c.Request.Context().Done()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-clientGone:
			return

		case snap, ok := <-updates:
			if !ok {
				return
			}
			sendSSEEvent(c.Writer, "state", snap)
			c.Writer.Flush()

		case <-ticker.C:
			sendSSEEvent(c.Writer, "heartbeat", map[string]any{
				"timestamp": h.now(),
			})
			c.Writer.Flush()
		}
	}
}

// setRequestFromQuery reads /api/set query parameters. Empty values are
// treated as absent except for the timer controls, which act on presence.
func setRequestFromQuery(c *gin.Context) types.SetRequest {
	var req types.SetRequest
	text := func(key string) *string {
		if v := c.Query(key); v != "" {
			return &v
		}
		return nil
	}

	req.Mode = text("mode")
	req.Emotion = text("emotion")
	req.Text = text("text")
	req.DeviceState = text("deviceState")
	req.MusicTitle = text("musicTitle")
	req.MusicArtist = text("musicArtist")
	req.MusicStreamURL = text("musicStreamUrl")

	if v, ok := c.GetQuery("timerTotal"); ok {
		req.TimerTotal = state.Ptr(parseInt(v))
	}
	if _, ok := c.GetQuery("timerStop"); ok {
		req.TimerStop = state.Ptr(true)
	}
	if v := c.Query("musicProgress"); v != "" {
		req.MusicProgress = state.Ptr(parseInt(v))
	}
	return req
}

// setPatch converts the top-level fields of req. Nested fields are edited
// in place by Set.
func setPatch(req types.SetRequest) state.Patch {
	var p state.Patch
	if req.Mode != nil {
		p.Mode = state.Ptr(state.Mode(*req.Mode))
	}
	if req.Emotion != nil {
		p.Emotion = state.Ptr(state.Emotion(*req.Emotion))
	}
	if req.Text != nil {
		p.AIText = req.Text
	}
	if req.TimerTotal != nil {
		p.Timer = &state.Timer{Total: *req.TimerTotal, Left: *req.TimerTotal}
	}
	if req.TimerStop != nil && *req.TimerStop {
		p.Timer = &state.Timer{}
	}
	return p
}

// parseInt reads an optional sign and the leading decimal digits of s.
// Anything unparsable yields 0.
func parseInt(s string) int {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		if n > (1<<31)/10 {
			break
		}
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// sendSSEEvent writes an SSE event to the response
func sendSSEEvent(w io.Writer, eventType string, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Warn().Err(err).Str("event", eventType).Msg("Failed to encode event")
		return
	}
	_, _ = io.WriteString(w, "event: "+eventType+"\n")
	_, _ = io.WriteString(w, "data: "+string(jsonData)+"\n\n")
}
