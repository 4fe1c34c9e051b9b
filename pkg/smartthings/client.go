// Package smartthings is a device.Controller backed by the SmartThings REST
// API. The access token is read on every call so it can be changed at
// runtime.
package smartthings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/urmzd/umaai/pkg/device"
	"github.com/urmzd/umaai/pkg/retry"
)

// DefaultBaseURL is the public SmartThings API.
const DefaultBaseURL = "https://api.smartthings.com/v1"

// MaxDevices caps how many devices are listed (each costs a status call).
const MaxDevices = 20

// Client talks to the SmartThings API.
type Client struct {
	baseURL    string
	token      func() string
	httpClient *http.Client
	retry      retry.Config
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetry overrides the retry policy.
func WithRetry(cfg retry.Config) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// NewClient creates a client. token is consulted per request; an empty
// token means the backend is not connected.
func NewClient(token func() string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		retry:      retry.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type deviceItem struct {
	DeviceID string `json:"deviceId"`
	Label    string `json:"label"`
	Name     string `json:"name"`
}

func (d deviceItem) displayName() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Name
}

type deviceList struct {
	Items []deviceItem `json:"items"`
}

type deviceStatus struct {
	Components struct {
		Main struct {
			Switch *struct {
				Switch struct {
					Value string `json:"value"`
				} `json:"switch"`
			} `json:"switch"`
		} `json:"main"`
	} `json:"components"`
}

type commandRequest struct {
	Commands []commandItem `json:"commands"`
}

type commandItem struct {
	Component  string `json:"component"`
	Capability string `json:"capability"`
	Command    string `json:"command"`
	Arguments  []any  `json:"arguments"`
}

// APIError is a non-2xx answer from SmartThings.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("smartthings API error %d: %s", e.StatusCode, e.Message)
}

// IsConnected returns true when a token is configured.
func (c *Client) IsConnected() bool {
	return strings.TrimSpace(c.token()) != ""
}

// ListDevices returns up to MaxDevices devices with their switch status.
// A device whose status cannot be read is reported as unknown.
func (c *Client) ListDevices(ctx context.Context) ([]device.Device, error) {
	var list deviceList
	if err := c.do(ctx, http.MethodGet, "/devices", nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	items := list.Items
	if len(items) > MaxDevices {
		items = items[:MaxDevices]
	}

	devices := make([]device.Device, 0, len(items))
	for _, item := range items {
		devices = append(devices, c.withStatus(ctx, item))
	}
	return devices, nil
}

// GetDevice returns one device with its switch status.
func (c *Client) GetDevice(ctx context.Context, id string) (*device.Device, error) {
	var item deviceItem
	if err := c.do(ctx, http.MethodGet, "/devices/"+url.PathEscape(id), nil, &item); err != nil {
		return nil, err
	}
	d := c.withStatus(ctx, item)
	return &d, nil
}

// Switch sends a switch on/off command to the device's main component.
func (c *Client) Switch(ctx context.Context, id string, on bool) error {
	body := commandRequest{Commands: []commandItem{{
		Component:  "main",
		Capability: "switch",
		Command:    device.StatusFromBool(on),
		Arguments:  []any{},
	}}}
	if err := c.do(ctx, http.MethodPost, "/devices/"+url.PathEscape(id)+"/commands", body, nil); err != nil {
		return fmt.Errorf("failed to switch %s: %w", id, err)
	}
	return nil
}

// Close is a no-op; the client holds no connections of its own.
func (c *Client) Close() {}

func (c *Client) withStatus(ctx context.Context, item deviceItem) device.Device {
	d := device.Device{
		ID:         item.DeviceID,
		Name:       item.displayName(),
		Type:       device.DeviceTypeSensor,
		Protocol:   device.ProtocolSmartThings,
		Status:     device.StatusUnknown,
		Capability: device.CapabilityStatus,
	}

	var st deviceStatus
	if err := c.do(ctx, http.MethodGet, "/devices/"+url.PathEscape(item.DeviceID)+"/status", nil, &st); err != nil {
		return d
	}

	d.Status = device.StatusOff
	if sw := st.Components.Main.Switch; sw != nil && sw.Switch.Value != "" {
		d.Type = device.DeviceTypeSwitch
		d.Capability = device.CapabilitySwitch
		d.StateSchema = device.SwitchSchema
		d.Status = device.StatusFromBool(sw.Switch.Value == "on")
	}
	return d
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	token := strings.TrimSpace(c.token())
	if token == "" {
		return device.ErrNotConnected
	}

	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
	}

	err := retry.Do(ctx, c.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return retry.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")
		if in != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
			if resp.StatusCode == http.StatusNotFound {
				return retry.Permanent(fmt.Errorf("%w: %w", device.ErrNotFound, apiErr))
			}
			if retry.IsRetryableHTTPStatus(resp.StatusCode) {
				return apiErr
			}
			return retry.Permanent(apiErr)
		}

		if out == nil || len(respBody) == 0 {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return retry.Permanent(fmt.Errorf("decoding response: %w", err))
		}
		return nil
	})
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", device.ErrTimeout, err)
	}
	return err
}

func errorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil {
		if e.Error.Message != "" {
			return e.Error.Message
		}
		if e.Message != "" {
			return e.Message
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return http.StatusText(http.StatusInternalServerError)
}
