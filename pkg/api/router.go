package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/urmzd/umaai/pkg/api/handlers"
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

// Services are the collaborators the handlers are built from.
type Services struct {
	Store      *state.Store
	Tasks      *task.Supervisor
	Controller device.Controller
	Engine     *effect.Engine
	Voice      *voice.Pipeline
	Presence   *presence.Tracker
	Override   *override.Scheduler
	Gallery    *gallery.Gallery
	Settings   handlers.SettingsRuntime
	Models     handlers.ModelLister
	Validator  *schema.Validator

	// MaxBody limits upload and audio bodies. Zero selects the default.
	MaxBody int64

	// MCP is mounted at /mcp when set.
	MCP http.Handler
}

// Router holds the Gin engine and dependencies
type Router struct {
	engine *gin.Engine
	svc    Services
}

// NewRouter creates a new API router
func NewRouter(svc Services) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine: engine,
		svc:    svc,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	svc := r.svc

	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	healthHandler := handlers.NewHealthHandler(svc.Controller, svc.Presence)
	r.engine.GET("/health", healthHandler.Health)

	vibeHandler := handlers.NewVibeHandler(svc.Gallery, svc.MaxBody)
	r.engine.GET("/photos/:name", vibeHandler.Photo)

	if svc.MCP != nil {
		r.engine.Any("/mcp", gin.WrapH(svc.MCP))
	}

	api := r.engine.Group("/api")
	{
		api.GET("/health", healthHandler.Health)

		// Terminal display loop and admin edits
		displayHandler := handlers.NewDisplayHandler(svc.Store, svc.Presence, svc.Override, svc.Settings, svc.Validator)
		api.GET("/poll", displayHandler.Poll)
		api.GET("/set", displayHandler.Set)
		api.POST("/set", displayHandler.Set)
		api.GET("/events", displayHandler.Events)

		voiceHandler := handlers.NewVoiceHandler(svc.Voice, svc.MaxBody)
		api.POST("/voice", voiceHandler.Voice)

		// Terminals
		terminalsHandler := handlers.NewTerminalsHandler(svc.Store, svc.Presence)
		api.GET("/devices", terminalsHandler.List)
		terminal := api.Group("/device")
		{
			terminal.GET("/battery", terminalsHandler.Battery)
			terminal.GET("/lock", terminalsHandler.Lock)
			terminal.POST("/info", terminalsHandler.Info)
		}

		adminHandler := handlers.NewAdminHandler(svc.Tasks)
		admin := api.Group("/admin")
		{
			admin.GET("/heartbeat", adminHandler.Heartbeat)
			admin.GET("/status", adminHandler.Status)
			admin.GET("/jobs", adminHandler.Jobs)
		}

		// Photo frame
		vibe := api.Group("/vibe")
		{
			vibe.GET("/list", vibeHandler.List)
			vibe.POST("/upload", vibeHandler.Upload)
			vibe.GET("/delete", vibeHandler.Delete)
		}

		// Runtime settings
		configHandler := handlers.NewConfigHandler(svc.Settings, svc.Models, svc.Validator)
		api.GET("/config", configHandler.Get)
		api.POST("/config", configHandler.Update)
		api.GET("/gemini/models", configHandler.Models)

		// Smart home
		smartHomeHandler := handlers.NewSmartHomeHandler(svc.Engine, svc.Validator)
		smartthings := api.Group("/smartthings")
		{
			smartthings.GET("/devices", smartHomeHandler.Devices)
			smartthings.POST("/device/control", smartHomeHandler.Control)
		}
	}
}

// Handler returns the router as an http.Handler
func (r *Router) Handler() http.Handler {
	return r.engine
}
