package pkg

import (
	"testing"

	"github.com/kcmvp/archunit"
)

func TestArchitecture(t *testing.T) {
	core := archunit.Packages("core", []string{
		".../pkg/state",
		".../pkg/command",
		".../pkg/effect",
		".../pkg/voice",
		".../pkg/presence",
		".../pkg/override",
		".../pkg/gallery",
		".../pkg/task",
	})
	surfaces := archunit.Packages("surfaces", []string{".../pkg/api/...", ".../pkg/mcp"})
	backends := archunit.Packages("backends", []string{
		".../pkg/smartthings",
		".../pkg/hue",
		".../pkg/genai",
		".../pkg/weather",
		".../pkg/radio",
		".../pkg/db",
	})

	if err := core.ShouldNotReferLayers(surfaces); err != nil {
		t.Errorf("core packages depend on the API layer: %v", err)
	}
	if err := core.ShouldNotReferLayers(backends); err != nil {
		t.Errorf("core packages depend on a concrete backend: %v", err)
	}
	if err := backends.ShouldNotReferLayers(surfaces); err != nil {
		t.Errorf("backends depend on the API layer: %v", err)
	}
}

func TestStorePackagePresent(t *testing.T) {
	store := archunit.Packages("state", []string{".../pkg/state"})
	if len(store.Packages()) == 0 {
		t.Error("state package not found")
	}
}
