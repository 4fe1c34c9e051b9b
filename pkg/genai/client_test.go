package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gemini "google.golang.org/genai"

	"github.com/urmzd/umaai/pkg/retry"
	"github.com/urmzd/umaai/pkg/voice"
)

func newTestClient(t *testing.T, key string, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(func() (string, string) { return key, "" },
		WithBaseURL(srv.URL),
		WithRetry(retry.Config{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}),
	)
}

// generateBody is the request body the SDK sends to generateContent.
type generateBody struct {
	Contents []*gemini.Content `json:"contents"`
}

func decodeAudio(t *testing.T, r *http.Request) *gemini.Blob {
	t.Helper()
	var body generateBody
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	require.Len(t, body.Contents, 1)
	require.Len(t, body.Contents[0].Parts, 2)
	assert.Equal(t, "prompt", body.Contents[0].Parts[0].Text)
	return body.Contents[0].Parts[1].InlineData
}

func TestGenerate(t *testing.T) {
	c := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/"+DefaultModel+":generateContent", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-goog-api-key"))

		audio := decodeAudio(t, r)
		if assert.NotNil(t, audio) {
			assert.Equal(t, "audio/webm", audio.MIMEType)
			assert.Equal(t, []byte{1, 2, 3}, audio.Data)
		}

		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"Привет. "},{"text":"{CLOCK}\n"}]}}]}`)
	})

	text, err := c.Generate(context.Background(), voice.Request{Prompt: "prompt", Audio: []byte{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, "Привет. {CLOCK}", text)
}

func TestGenerate_AudioType(t *testing.T) {
	tests := []struct {
		name string
		mime string
		want string
	}{
		{"octet stream", "application/octet-stream", "audio/webm"},
		{"empty", "", "audio/webm"},
		{"video container", "video/webm", "audio/webm"},
		{"ogg", "audio/ogg", "audio/ogg"},
		{"codec parameter", "audio/webm;codecs=opus", "audio/webm;codecs=opus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
				if audio := decodeAudio(t, r); assert.NotNil(t, audio) {
					assert.Equal(t, tt.want, audio.MIMEType)
				}
				fmt.Fprint(w, `{"candidates":[]}`)
			})

			_, err := c.Generate(context.Background(), voice.Request{Prompt: "prompt", Audio: []byte{1}, MIMEType: tt.mime})
			require.NoError(t, err)
		})
	}
}

func TestGenerate_NotConfigured(t *testing.T) {
	c := NewClient(func() (string, string) { return " ", "" })
	assert.False(t, c.Configured())

	_, err := c.Generate(context.Background(), voice.Request{Prompt: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = c.ListModels(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerate_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, "bad", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"code":400,"message":"API key not valid"}}`)
	})

	_, err := c.Generate(context.Background(), voice.Request{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerate_ServerErrorIsRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"candidates":[]}`)
	})

	text, err := c.Generate(context.Background(), voice.Request{Prompt: "x"})
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestListModels(t *testing.T) {
	c := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models", r.URL.Path)
		fmt.Fprint(w, `{"models":[
			{"name":"models/gemini-2.5-flash"},
			{"name":"models/text-embedding-004"},
			{"name":"models/gemini-2.5-flash-lite"}
		]}`)
	})

	models, err := c.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gemini-2.5-flash", "gemini-2.5-flash-lite"}, models)
}
