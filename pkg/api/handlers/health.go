package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/umaai/pkg/api/types"
	"github.com/urmzd/umaai/pkg/device"
	"github.com/urmzd/umaai/pkg/presence"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	controller device.Controller
	tracker    *presence.Tracker
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(controller device.Controller, tracker *presence.Tracker) *HealthHandler {
	return &HealthHandler{controller: controller, tracker: tracker}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Returns the health of the server. A missing smart-home backend degrades but does not fail it.
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	controllerStatus := "disconnected"
	status := "degraded"
	if h.controller.IsConnected() {
		controllerStatus = "connected"
		status = "healthy"
	}

	now := time.Now()
	online := 0
	for _, v := range h.tracker.List(now) {
		if v.IsOnline {
			online++
		}
	}

	c.JSON(http.StatusOK, types.HealthResponse{
		Status:     status,
		Controller: controllerStatus,
		Terminals:  online,
		Timestamp:  now,
	})
}
