package schema

import (
	"encoding/json"
	"errors"
	"testing"
)

func switchSchema() json.RawMessage {
	return json.RawMessage(`{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "object",
		"properties": {
			"command": {"type": "string", "enum": ["on", "off"]},
			"level": {"type": "integer", "minimum": 0, "maximum": 100}
		},
		"additionalProperties": false
	}`)
}

func TestValidate_ValidPayload(t *testing.T) {
	v := NewValidator()

	err := v.Validate(switchSchema(), map[string]any{
		"command": "on",
		"level":   json.Number("40"),
	})
	if err != nil {
		t.Errorf("expected valid payload, got: %v", err)
	}
}

func TestValidate_InvalidEnum(t *testing.T) {
	v := NewValidator()

	err := v.Validate(switchSchema(), map[string]any{"command": "toggle"})
	if err == nil {
		t.Fatal("expected validation error for invalid enum value")
	}
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got: %v", err)
	}
}

func TestValidate_OutOfRange(t *testing.T) {
	v := NewValidator()

	err := v.Validate(switchSchema(), map[string]any{"level": json.Number("300")})
	if err == nil {
		t.Error("expected validation error for out-of-range level")
	}
}

func TestValidate_UnknownProperty(t *testing.T) {
	v := NewValidator()

	err := v.Validate(switchSchema(), map[string]any{
		"command": "on",
		"unknown": "value",
	})
	if err == nil {
		t.Error("expected validation error for unknown property")
	}
}

func TestValidate_EmptySchema(t *testing.T) {
	v := NewValidator()

	// Empty schema means no validation
	err := v.Validate(json.RawMessage(`{}`), map[string]any{"anything": "goes"})
	if err != nil {
		t.Errorf("empty schema should skip validation, got: %v", err)
	}
}

func TestValidate_NilSchema(t *testing.T) {
	v := NewValidator()

	err := v.Validate(nil, map[string]any{"anything": "goes"})
	if err != nil {
		t.Errorf("nil schema should skip validation, got: %v", err)
	}
}

func TestValidate_CachesSchema(t *testing.T) {
	v := NewValidator()
	schema := switchSchema()

	if err := v.Validate(schema, map[string]any{"command": "on"}); err != nil {
		t.Fatal(err)
	}
	if err := v.Validate(schema, map[string]any{"command": "off"}); err != nil {
		t.Fatal(err)
	}

	v.mu.RLock()
	cacheSize := len(v.cache)
	v.mu.RUnlock()
	if cacheSize != 1 {
		t.Errorf("expected 1 cached schema, got %d", cacheSize)
	}
}

func TestDecode_Settings(t *testing.T) {
	v := NewValidator()

	var out struct {
		GeminiModel    string `json:"geminiModel"`
		MusicStreamURL string `json:"musicStreamUrl"`
	}
	body := []byte(`{"geminiModel":"gemini-2.5-flash","musicStreamUrl":"https://cast.example/radio"}`)
	if err := v.Decode(Settings, body, &out); err != nil {
		t.Fatalf("expected valid settings, got: %v", err)
	}
	if out.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("unexpected model %q", out.GeminiModel)
	}

	if err := v.Decode(Settings, []byte(`{"musicStreamUrl":"ftp://x"}`), &out); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for non-http stream, got: %v", err)
	}
	if err := v.Decode(Settings, []byte(`{"geminiApiKey": 5}`), &out); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for wrong type, got: %v", err)
	}
}

func TestDecode_EmptyBody(t *testing.T) {
	v := NewValidator()

	var out map[string]any
	if err := v.Decode(Settings, nil, &out); err != nil {
		t.Errorf("empty body should decode as an empty object, got: %v", err)
	}
}

func TestDecode_MalformedJSON(t *testing.T) {
	v := NewValidator()

	var out map[string]any
	if err := v.Decode(AdminSet, []byte(`{"mode":`), &out); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for malformed JSON, got: %v", err)
	}
}

func TestDecode_AdminSet(t *testing.T) {
	v := NewValidator()

	var out map[string]any
	if err := v.Decode(AdminSet, []byte(`{"mode":"timer","timerTotal":120,"emotion":"wink"}`), &out); err != nil {
		t.Errorf("expected valid admin set, got: %v", err)
	}
	if err := v.Decode(AdminSet, []byte(`{"mode":"party"}`), &out); err == nil {
		t.Error("expected validation error for unknown mode")
	}
	if err := v.Decode(AdminSet, []byte(`{"timerTotal":1.5}`), &out); err == nil {
		t.Error("expected validation error for fractional timer")
	}
}

func TestDecode_DeviceControl(t *testing.T) {
	v := NewValidator()

	var out map[string]any
	if err := v.Decode(DeviceControl, []byte(`{"deviceId":"lamp-1","command":"off"}`), &out); err != nil {
		t.Errorf("expected valid command, got: %v", err)
	}
	if err := v.Decode(DeviceControl, []byte(`{"command":"off"}`), &out); err == nil {
		t.Error("expected validation error for missing deviceId")
	}
}
