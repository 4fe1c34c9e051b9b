package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/umaai/pkg/api/types"
	"github.com/urmzd/umaai/pkg/db"
	"github.com/urmzd/umaai/pkg/genai"
	"github.com/urmzd/umaai/pkg/schema"
)

// SettingsRuntime is the live, persisted runtime configuration.
type SettingsRuntime interface {
	Settings() db.Settings
	Apply(ctx context.Context, patch db.Settings) (db.Settings, error)
}

// ModelLister lists the generation models available to the configured key.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// ConfigHandler reads and edits the runtime settings.
type ConfigHandler struct {
	settings  SettingsRuntime
	models    ModelLister
	validator *schema.Validator
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(settings SettingsRuntime, models ModelLister, validator *schema.Validator) *ConfigHandler {
	return &ConfigHandler{
		settings:  settings,
		models:    models,
		validator: validator,
	}
}

// Get handles GET /api/config
// @Summary      Get runtime settings
// @Description  Returns the runtime settings with secrets shortened
// @Tags         config
// @Produce      json
// @Success      200  {object}  db.Settings
// @Router       /api/config [get]
func (h *ConfigHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.Settings().Redacted())
}

// Update handles POST /api/config
// @Summary      Update runtime settings
// @Description  Blank or absent values keep the stored value. Changes apply to the next upstream call.
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        request  body      db.Settings  true  "Settings to change"
// @Success      200      {object}  types.ConfigResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid settings"
// @Failure      500      {object}  types.ErrorResponse  "Settings could not be saved"
// @Router       /api/config [post]
func (h *ConfigHandler) Update(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxJSONBody))
	if err != nil {
		bodyError(c, err)
		return
	}

	var patch db.Settings
	if err := h.validator.Decode(schema.Settings, body, &patch); err != nil {
		abort(c, http.StatusBadRequest, "invalid_config", err.Error())
		return
	}

	next, err := h.settings.Apply(c.Request.Context(), patch)
	if err != nil {
		abort(c, http.StatusInternalServerError, "settings_error", err.Error())
		return
	}

	log.Info().Str("model", next.GeminiModel).Str("city", next.WeatherCity).Msg("Runtime settings updated")

	c.JSON(http.StatusOK, types.ConfigResponse{Success: true, Config: next.Redacted()})
}

// Models handles GET /api/gemini/models
// @Summary      List Gemini models
// @Tags         config
// @Produce      json
// @Success      200  {object}  types.ModelsResponse
// @Failure      400  {object}  types.ErrorResponse  "API key is empty"
// @Failure      502  {object}  types.ErrorResponse  "Upstream error"
// @Router       /api/gemini/models [get]
func (h *ConfigHandler) Models(c *gin.Context) {
	models, err := h.models.ListModels(c.Request.Context())
	if err != nil {
		if errors.Is(err, genai.ErrNotConfigured) {
			abort(c, http.StatusBadRequest, "not_configured", "Gemini API key is empty")
			return
		}
		abort(c, http.StatusBadGateway, "upstream_error", err.Error())
		return
	}
	c.JSON(http.StatusOK, types.ModelsResponse{Models: models})
}
