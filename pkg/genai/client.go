// Package genai wraps the Gemini SDK for the two calls the device needs:
// multimodal generation from recorded audio and model listing.
package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gemini "google.golang.org/genai"

	"github.com/urmzd/umaai/pkg/retry"
	"github.com/urmzd/umaai/pkg/voice"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.5-flash-lite"

	// fallbackAudioType is sent when the upload carries no usable audio type.
	fallbackAudioType = "audio/webm"
)

// ErrNotConfigured indicates that no API key is set.
var ErrNotConfigured = errors.New("gemini API key is empty")

// Settings returns the API key and model name.
type Settings func() (apiKey, model string)

// Client calls the Gemini API. Settings are read per request, so a key
// changed at runtime takes effect on the next call.
type Client struct {
	settings   Settings
	baseURL    string
	httpClient *http.Client
	retry      retry.Config
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithRetry overrides the retry policy.
func WithRetry(cfg retry.Config) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// NewClient creates a client.
func NewClient(settings Settings, opts ...Option) *Client {
	c := &Client{
		settings:   settings,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		retry:      retry.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true when an API key is set.
func (c *Client) Configured() bool {
	key, _ := c.settings()
	return strings.TrimSpace(key) != ""
}

// Generate sends the prompt and the audio clip and returns the text of the
// first candidate. An empty answer is not an error.
func (c *Client) Generate(ctx context.Context, req voice.Request) (string, error) {
	key, model := c.credentials()
	if key == "" {
		return "", ErrNotConfigured
	}
	client, err := c.sdk(ctx, key)
	if err != nil {
		return "", err
	}

	parts := []*gemini.Part{gemini.NewPartFromText(req.Prompt)}
	if len(req.Audio) > 0 {
		parts = append(parts, gemini.NewPartFromBytes(req.Audio, AudioType(req.MIMEType)))
	}
	contents := []*gemini.Content{gemini.NewContentFromParts(parts, gemini.RoleUser)}

	var text string
	err = retry.Do(ctx, c.retry, func() error {
		resp, err := client.Models.GenerateContent(ctx, model, contents, nil)
		if err != nil {
			return classify(err)
		}
		text = resp.Text()
		return nil
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ListModels returns the names of the available Gemini models without
// their "models/" prefix.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	key, _ := c.credentials()
	if key == "" {
		return nil, ErrNotConfigured
	}
	client, err := c.sdk(ctx, key)
	if err != nil {
		return nil, err
	}

	var models []string
	err = retry.Do(ctx, c.retry, func() error {
		models = models[:0]
		for m, err := range client.Models.All(ctx) {
			if err != nil {
				return classify(err)
			}
			name := strings.TrimPrefix(m.Name, "models/")
			if strings.Contains(name, "gemini") {
				models = append(models, name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if models == nil {
		models = []string{}
	}
	return models, nil
}

// AudioType returns the MIME type sent with an audio clip. Browsers and
// curl often label uploads application/octet-stream, which Gemini rejects.
func AudioType(mime string) string {
	mime = strings.TrimSpace(mime)
	if strings.HasPrefix(strings.ToLower(mime), "audio/") {
		return mime
	}
	return fallbackAudioType
}

func (c *Client) credentials() (string, string) {
	key, model := c.settings()
	key, model = strings.TrimSpace(key), strings.TrimSpace(model)
	if model == "" {
		model = DefaultModel
	}
	return key, model
}

func (c *Client) sdk(ctx context.Context, key string) (*gemini.Client, error) {
	client, err := gemini.NewClient(ctx, &gemini.ClientConfig{
		APIKey:      key,
		Backend:     gemini.BackendGeminiAPI,
		HTTPClient:  c.httpClient,
		HTTPOptions: gemini.HTTPOptions{BaseURL: c.baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return client, nil
}

// classify marks client errors as permanent so only throttling and server
// failures are retried.
func classify(err error) error {
	var apiErr gemini.APIError
	if errors.As(err, &apiErr) {
		err = fmt.Errorf("gemini API error %d: %s", apiErr.Code, apiErr.Message)
		if retry.IsRetryableHTTPStatus(apiErr.Code) {
			return err
		}
		return retry.Permanent(err)
	}
	return err
}
