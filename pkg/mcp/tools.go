package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/urmzd/umaai/pkg/state"
)

var (
	modes = []string{
		string(state.ModeIdle), string(state.ModeWeather), string(state.ModeSmartHome), string(state.ModeClock),
		string(state.ModeText), string(state.ModeTimer), string(state.ModeMusic), string(state.ModeVibe),
	}
	emotions = []string{
		string(state.EmotionNormal), string(state.EmotionBlink), string(state.EmotionWink), string(state.EmotionYawn),
		string(state.EmotionDizzy), string(state.EmotionThinking), string(state.EmotionTalking),
	}
)

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("get_state",
			mcp.WithDescription("Get the current display state shown on every terminal"),
		),
		s.handleGetState,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_display",
			mcp.WithDescription("Change what the terminals show. At least one of mode, emotion or text is required"),
			mcp.WithString("mode",
				mcp.Description("Screen to render"),
				mcp.Enum(modes...),
			),
			mcp.WithString("emotion",
				mcp.Description("Face expression; wink, yawn and dizzy revert to normal after a few seconds"),
				mcp.Enum(emotions...),
			),
			mcp.WithString("text",
				mcp.Description("Text shown in text mode"),
			),
		),
		s.handleSetDisplay,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("speak",
			mcp.WithDescription("Show an assistant reply. Embedded commands such as {TIMER: 60} or {WEATHER} run shortly after the text appears"),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("Reply text, optionally with {NAME: param} commands"),
			),
		),
		s.handleSpeak,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_terminals",
			mcp.WithDescription("List the terminals that have polled recently, with battery and lock status"),
		),
		s.handleListTerminals,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("lock_terminals",
			mcp.WithDescription("Lock or unlock the terminals"),
			mcp.WithBoolean("locked",
				mcp.Required(),
				mcp.Description("true to lock, false to unlock"),
			),
			mcp.WithString("ip",
				mcp.Description("Also mark this terminal's record (optional)"),
			),
		),
		s.handleLockTerminals,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_images",
			mcp.WithDescription("List the images in the vibe gallery"),
		),
		s.handleListImages,
	)
}
