package handlers

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/umaai/pkg/api/types"
	"github.com/urmzd/umaai/pkg/presence"
	"github.com/urmzd/umaai/pkg/state"
	"github.com/urmzd/umaai/pkg/task"
)

// adminWindow is how long the admin console counts as open after its last
// heartbeat.
const adminWindow = 5 * time.Second

// TerminalsHandler reports and controls the terminals that poll the server.
type TerminalsHandler struct {
	store   *state.Store
	tracker *presence.Tracker
	now     func() time.Time
}

// NewTerminalsHandler creates a new terminals handler
func NewTerminalsHandler(store *state.Store, tracker *presence.Tracker) *TerminalsHandler {
	return &TerminalsHandler{store: store, tracker: tracker, now: time.Now}
}

// List handles GET /api/devices
// @Summary      List terminals
// @Description  Returns every terminal seen within the presence timeout
// @Tags         terminals
// @Produce      json
// @Success      200  {object}  types.TerminalsResponse
// @Router       /api/devices [get]
func (h *TerminalsHandler) List(c *gin.Context) {
	now := h.now()
	h.tracker.Sweep(now)
	c.JSON(http.StatusOK, types.TerminalsResponse{Devices: h.tracker.List(now)})
}

// Battery handles GET /api/device/battery
// @Summary      Terminal battery
// @Tags         terminals
// @Produce      json
// @Param        ip   query     string  true  "Terminal address"
// @Success      200  {object}  types.BatteryResponse
// @Failure      404  {object}  types.ErrorResponse  "Terminal not found"
// @Router       /api/device/battery [get]
func (h *TerminalsHandler) Battery(c *gin.Context) {
	rec, ok := h.tracker.Get(c.Query("ip"))
	if !ok {
		abort(c, http.StatusNotFound, "not_found", "Device not found")
		return
	}
	c.JSON(http.StatusOK, types.BatteryResponse{
		Battery:  rec.Battery,
		Charging: rec.Charging,
	})
}

// Lock handles GET /api/device/lock
// @Summary      Lock or unlock terminals
// @Description  Sets the global lock flag and, when ip names a known terminal, that terminal's flag
// @Tags         terminals
// @Produce      json
// @Param        ip    query     string  false  "Terminal address"
// @Param        lock  query     bool    false  "true to lock"
// @Success      200  {object}  types.LockResponse
// @Router       /api/device/lock [get]
func (h *TerminalsHandler) Lock(c *gin.Context) {
	locked := c.Query("lock") == "true"
	if ip := c.Query("ip"); ip != "" {
		h.tracker.SetLocked(ip, locked)
	}
	h.store.Merge(state.Patch{DeviceLocked: state.Ptr(locked)})

	c.JSON(http.StatusOK, types.LockResponse{Success: true, Locked: locked})
}

// Info handles POST /api/device/info
// @Summary      Report terminal info
// @Description  A terminal reports its battery, charging state and display name
// @Tags         terminals
// @Accept       json
// @Produce      json
// @Param        request  body      types.InfoRequest  true  "Terminal info"
// @Success      200      {object}  types.SuccessResponse
// @Failure      400      {object}  types.ErrorResponse  "Malformed body"
// @Router       /api/device/info [post]
func (h *TerminalsHandler) Info(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxJSONBody)

	var req types.InfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bodyError(c, err)
		return
	}

	h.tracker.Report(clientID(c), presence.Info{
		Battery:     req.Battery,
		Charging:    req.Charging,
		DisplayName: req.DeviceName,
	}, h.now())

	c.JSON(http.StatusOK, types.SuccessResponse{Success: true})
}

// AdminHandler tracks the admin console and exposes background job status.
type AdminHandler struct {
	tasks         *task.Supervisor
	lastHeartbeat atomic.Int64
	now           func() time.Time
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(tasks *task.Supervisor) *AdminHandler {
	return &AdminHandler{tasks: tasks, now: time.Now}
}

// Heartbeat handles GET /api/admin/heartbeat
// @Summary      Admin console heartbeat
// @Tags         admin
// @Produce      json
// @Success      200  {object}  types.SuccessResponse
// @Router       /api/admin/heartbeat [get]
func (h *AdminHandler) Heartbeat(c *gin.Context) {
	h.lastHeartbeat.Store(h.now().UnixMilli())
	c.JSON(http.StatusOK, types.SuccessResponse{Success: true})
}

// Status handles GET /api/admin/status
// @Summary      Admin console status
// @Description  Reports whether an admin console sent a heartbeat recently
// @Tags         admin
// @Produce      json
// @Success      200  {object}  types.AdminStatusResponse
// @Router       /api/admin/status [get]
func (h *AdminHandler) Status(c *gin.Context) {
	last := h.lastHeartbeat.Load()
	open := last > 0 && h.now().UnixMilli()-last < adminWindow.Milliseconds()
	c.JSON(http.StatusOK, types.AdminStatusResponse{Open: open, LastHeartbeat: last})
}

// Jobs handles GET /api/admin/jobs
// @Summary      Background jobs
// @Tags         admin
// @Produce      json
// @Success      200  {object}  types.JobsResponse
// @Router       /api/admin/jobs [get]
func (h *AdminHandler) Jobs(c *gin.Context) {
	c.JSON(http.StatusOK, types.JobsResponse{Jobs: h.tasks.Status()})
}
