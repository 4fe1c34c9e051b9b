package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/urmzd/umaai/pkg/command"
	"github.com/urmzd/umaai/pkg/state"
)

func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatJSON(s.store.Read())), nil
}

func (s *Server) handleSetDisplay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var p state.Patch

	if mode := request.GetString("mode", ""); mode != "" {
		if !state.Mode(mode).Valid() {
			return mcp.NewToolResultError(fmt.Sprintf("unknown mode %q", mode)), nil
		}
		p.Mode = state.Ptr(state.Mode(mode))
	}
	if emotion := request.GetString("emotion", ""); emotion != "" {
		if !state.Emotion(emotion).Valid() {
			return mcp.NewToolResultError(fmt.Sprintf("unknown emotion %q", emotion)), nil
		}
		p.Emotion = state.Ptr(state.Emotion(emotion))
	}
	if text, ok := request.GetArguments()["text"].(string); ok {
		p.AIText = state.Ptr(text)
	}

	if p.Mode == nil && p.Emotion == nil && p.AIText == nil {
		return mcp.NewToolResultError("one of mode, emotion or text is required"), nil
	}

	snap := s.store.Merge(p)
	if p.Emotion != nil {
		s.override.Watch(snap)
	}

	return mcp.NewToolResultText(formatJSON(SetDisplayOutput{Status: "ok", CurrentState: snap})), nil
}

func (s *Server) handleSpeak(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := requiredString(request, "text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	snap := s.voice.Respond(text)
	_, cmds := command.Decode(text)
	if cmds == nil {
		cmds = []command.Command{}
	}

	return mcp.NewToolResultText(formatJSON(SpeakOutput{Text: snap.AIText, Commands: cmds})), nil
}

func (s *Server) handleListTerminals(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := s.now()
	s.tracker.Sweep(now)
	views := s.tracker.List(now)

	return mcp.NewToolResultText(formatJSON(ListTerminalsOutput{Terminals: views, Count: len(views)})), nil
}

func (s *Server) handleLockTerminals(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	locked, err := request.RequireBool("locked")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	msg := "All terminals unlocked"
	if locked {
		msg = "All terminals locked"
	}
	if ip := request.GetString("ip", ""); ip != "" && !s.tracker.SetLocked(ip, locked) {
		msg += fmt.Sprintf("; terminal %s is not known", ip)
	}
	s.store.Merge(state.Patch{DeviceLocked: state.Ptr(locked)})

	return mcp.NewToolResultText(formatJSON(LockTerminalsOutput{Locked: locked, Message: msg})), nil
}

func (s *Server) handleListImages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	images := s.gallery.List()
	return mcp.NewToolResultText(formatJSON(ListImagesOutput{Images: images, Count: len(images)})), nil
}

// --- helpers ---

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	v, err := request.RequireString(key)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return v, nil
}

func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}
