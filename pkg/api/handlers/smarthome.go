package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/umaai/pkg/api/types"
	"github.com/urmzd/umaai/pkg/effect"
	"github.com/urmzd/umaai/pkg/schema"
)

// SmartHomeHandler lists and switches smart-home devices.
type SmartHomeHandler struct {
	engine    *effect.Engine
	validator *schema.Validator
}

// NewSmartHomeHandler creates a new smart-home handler
func NewSmartHomeHandler(engine *effect.Engine, validator *schema.Validator) *SmartHomeHandler {
	return &SmartHomeHandler{engine: engine, validator: validator}
}

// Devices handles GET /api/smartthings/devices
// @Summary      List smart-home devices
// @Description  Fetches the device list and mirrors it into the display state
// @Tags         smarthome
// @Produce      json
// @Success      200  {object}  types.SmartDevicesResponse
// @Failure      503  {object}  types.ErrorResponse  "Controller not configured"
// @Failure      504  {object}  types.ErrorResponse  "Request timed out"
// @Failure      500  {object}  types.ErrorResponse  "Controller error"
// @Router       /api/smartthings/devices [get]
func (h *SmartHomeHandler) Devices(c *gin.Context) {
	devices, err := h.engine.SyncDevices(c.Request.Context())
	if err != nil {
		deviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.SmartDevicesResponse{Devices: effect.Summaries(devices)})
}

// Control handles POST /api/smartthings/device/control
// @Summary      Switch a device
// @Description  Switches a device on or off and refreshes the device list
// @Tags         smarthome
// @Accept       json
// @Produce      json
// @Param        request  body      types.DeviceControlRequest  true  "Device and command"
// @Success      200      {object}  types.SuccessResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Device not found"
// @Failure      503      {object}  types.ErrorResponse  "Controller not configured"
// @Failure      504      {object}  types.ErrorResponse  "Request timed out"
// @Failure      500      {object}  types.ErrorResponse  "Controller error"
// @Router       /api/smartthings/device/control [post]
func (h *SmartHomeHandler) Control(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxJSONBody))
	if err != nil {
		bodyError(c, err)
		return
	}

	var req types.DeviceControlRequest
	if err := h.validator.Decode(schema.DeviceControl, body, &req); err != nil {
		abort(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.engine.Switch(c.Request.Context(), req.DeviceID, req.Command == "on"); err != nil {
		deviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.SuccessResponse{Success: true})
}
