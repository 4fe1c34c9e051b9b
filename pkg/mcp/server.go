package mcp

import (
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/urmzd/umaai/pkg/gallery"
	"github.com/urmzd/umaai/pkg/override"
	"github.com/urmzd/umaai/pkg/presence"
	"github.com/urmzd/umaai/pkg/state"
	"github.com/urmzd/umaai/pkg/voice"
)

// EndpointPath is where the streamable HTTP transport is mounted.
const EndpointPath = "/mcp"

// Server exposes the assistant's display, voice and terminal controls as MCP tools.
type Server struct {
	mcpServer *server.MCPServer
	store     *state.Store
	voice     *voice.Pipeline
	override  *override.Scheduler
	tracker   *presence.Tracker
	gallery   *gallery.Gallery
	now       func() time.Time
}

// Deps groups what the tools act on.
type Deps struct {
	Store    *state.Store
	Voice    *voice.Pipeline
	Override *override.Scheduler
	Tracker  *presence.Tracker
	Gallery  *gallery.Gallery
}

// NewServer creates the MCP server and registers its tools.
func NewServer(deps Deps, version string) *Server {
	s := &Server{
		store:    deps.Store,
		voice:    deps.Voice,
		override: deps.Override,
		tracker:  deps.Tracker,
		gallery:  deps.Gallery,
		now:      time.Now,
	}

	s.mcpServer = server.NewMCPServer(
		"umaai",
		version,
		server.WithToolCapabilities(true),
	)
	s.registerTools()

	return s
}

// Handler returns the stateless streamable HTTP transport for the server.
func (s *Server) Handler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcpServer,
		server.WithEndpointPath(EndpointPath),
		server.WithStateLess(true),
	)
}
