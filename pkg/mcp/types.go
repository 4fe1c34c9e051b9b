package mcp

import (
	"github.com/urmzd/umaai/pkg/command"
	"github.com/urmzd/umaai/pkg/gallery"
	"github.com/urmzd/umaai/pkg/presence"
	"github.com/urmzd/umaai/pkg/state"
)

// --- Display ---

// SetDisplayOutput is the output for the set_display tool
type SetDisplayOutput struct {
	Status       string         `json:"status"`
	CurrentState state.Snapshot `json:"currentState"`
}

// --- Speak ---

// SpeakOutput is the output for the speak tool
type SpeakOutput struct {
	Text     string            `json:"text"`
	Commands []command.Command `json:"commands"`
}

// --- Terminals ---

// ListTerminalsOutput is the output for the list_terminals tool
type ListTerminalsOutput struct {
	Terminals []presence.View `json:"terminals"`
	Count     int             `json:"count"`
}

// LockTerminalsOutput is the output for the lock_terminals tool
type LockTerminalsOutput struct {
	Locked  bool   `json:"locked"`
	Message string `json:"message"`
}

// --- Images ---

// ListImagesOutput is the output for the list_images tool
type ListImagesOutput struct {
	Images []gallery.Image `json:"images"`
	Count  int             `json:"count"`
}
