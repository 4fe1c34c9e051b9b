package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/umaai/pkg/api/types"
	"github.com/urmzd/umaai/pkg/genai"
	"github.com/urmzd/umaai/pkg/multipart"
	"github.com/urmzd/umaai/pkg/voice"
)

// VoiceHandler accepts recorded speech from a terminal.
type VoiceHandler struct {
	pipeline *voice.Pipeline
	maxBody  int64
}

// NewVoiceHandler creates a new voice handler. maxBody <= 0 selects
// DefaultMaxBody.
func NewVoiceHandler(pipeline *voice.Pipeline, maxBody int64) *VoiceHandler {
	if maxBody <= 0 {
		maxBody = DefaultMaxBody
	}
	return &VoiceHandler{pipeline: pipeline, maxBody: maxBody}
}

// Voice handles POST /api/voice
// @Summary      Send a voice request
// @Description  Uploads recorded audio (multipart part named "audio", file or plain field). The reply is shown at once; commands in it run shortly after.
// @Tags         voice
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio  formData  file  true  "Recorded audio"
// @Success      200  {object}  types.VoiceResponse
// @Failure      400  {object}  types.ErrorResponse  "Missing boundary or audio"
// @Failure      413  {object}  types.ErrorResponse  "Body too large"
// @Failure      502  {object}  types.ErrorResponse  "Generation failed"
// @Failure      503  {object}  types.ErrorResponse  "Generator not configured"
// @Router       /api/voice [post]
func (h *VoiceHandler) Voice(c *gin.Context) {
	boundary, err := multipart.Boundary(c.GetHeader("Content-Type"))
	if err != nil {
		abort(c, http.StatusBadRequest, "no_boundary", "No boundary found")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody))
	if err != nil {
		bodyError(c, err)
		return
	}

	// Any part named audio is accepted, with or without a filename.
	audio, ok := multipart.Decode(body, boundary)["audio"]
	if !ok || len(audio.Data) == 0 {
		abort(c, http.StatusBadRequest, "missing_audio", "No audio file found")
		return
	}

	text, err := h.pipeline.HandleAudio(c.Request.Context(), audio.Data, audio.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, genai.ErrNotConfigured):
			abort(c, http.StatusServiceUnavailable, "not_configured", err.Error())
		default:
			abort(c, http.StatusBadGateway, "upstream_error", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, types.VoiceResponse{Text: text})
}
