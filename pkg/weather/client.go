// Package weather reads current conditions and a short forecast from
// OpenWeatherMap and publishes them to the display state.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/urmzd/umaai/pkg/retry"
	"github.com/urmzd/umaai/pkg/state"
)

const (
	// DefaultBaseURL is the OpenWeatherMap data API.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

	// ForecastSlots is the number of 3-hour forecast entries requested.
	ForecastSlots = 6
)

// ErrNotConfigured indicates that no API key or city is set.
var ErrNotConfigured = errors.New("weather API key or city is empty")

// Settings returns the API key and city name.
type Settings func() (apiKey, city string)

// Client queries OpenWeatherMap.
type Client struct {
	settings   Settings
	baseURL    string
	loc        *time.Location
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

// WithLocation sets the zone forecast times are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) {
		c.loc = loc
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
		baseURL:    DefaultBaseURL,
		loc:        time.Local,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		retry:      retry.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
}

type current struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []condition `json:"weather"`
}

type forecast struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []condition `json:"weather"`
	} `json:"list"`
}

// Current returns the current weather without a forecast.
func (c *Client) Current(ctx context.Context) (state.Weather, error) {
	key, city, err := c.credentials()
	if err != nil {
		return state.Weather{}, err
	}

	var cur current
	if err := c.get(ctx, "/weather", key, city, nil, &cur); err != nil {
		return state.Weather{}, fmt.Errorf("failed to fetch current weather: %w", err)
	}
	if len(cur.Weather) == 0 {
		return state.Weather{}, errors.New("unexpected weather payload: no conditions")
	}

	return state.Weather{
		Temp:      FormatTemp(cur.Main.Temp),
		Condition: Condition(cur.Weather[0].ID),
		City:      city,
	}, nil
}

// Forecast returns up to ForecastSlots upcoming entries.
func (c *Client) Forecast(ctx context.Context) ([]state.ForecastEntry, error) {
	key, city, err := c.credentials()
	if err != nil {
		return nil, err
	}

	var fc forecast
	extra := url.Values{"cnt": {strconv.Itoa(ForecastSlots)}}
	if err := c.get(ctx, "/forecast", key, city, extra, &fc); err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}

	list := fc.List
	if len(list) > ForecastSlots {
		list = list[:ForecastSlots]
	}
	entries := make([]state.ForecastEntry, 0, len(list))
	for _, item := range list {
		cond := state.ConditionClear
		if len(item.Weather) > 0 {
			cond = Condition(item.Weather[0].ID)
		}
		entries = append(entries, state.ForecastEntry{
			Time:      time.Unix(item.Dt, 0).In(c.loc).Format("15:04"),
			Temp:      FormatTemp(item.Main.Temp),
			Condition: cond,
		})
	}
	return entries, nil
}

// Condition maps an OpenWeatherMap condition id to a display condition.
func Condition(id int) string {
	switch {
	case id >= 200 && id < 300:
		return state.ConditionStorm
	case id >= 300 && id < 600:
		return state.ConditionRain
	case id >= 600 && id < 700:
		return state.ConditionSnow
	case id >= 700 && id < 800:
		return state.ConditionFog
	case id > 800:
		return state.ConditionClouds
	}
	return state.ConditionClear
}

// FormatTemp rounds half up and prefixes positive values with "+".
func FormatTemp(t float64) string {
	n := int(math.Floor(t + 0.5))
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func (c *Client) credentials() (string, string, error) {
	key, city := c.settings()
	key, city = strings.TrimSpace(key), strings.TrimSpace(city)
	if key == "" || city == "" {
		return "", "", ErrNotConfigured
	}
	return key, city, nil
}

func (c *Client) get(ctx context.Context, path, key, city string, extra url.Values, out any) error {
	q := url.Values{
		"q":     {city},
		"appid": {key},
		"units": {"metric"},
		"lang":  {"ru"},
	}
	for k, v := range extra {
		q[k] = v
	}
	endpoint := c.baseURL + path + "?" + q.Encode()

	return retry.Do(ctx, c.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return retry.Permanent(fmt.Errorf("creating request: %w", err))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			var uerr *url.Error
			if errors.As(err, &uerr) {
				err = uerr.Err
			}
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("openweathermap error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
			if retry.IsRetryableHTTPStatus(resp.StatusCode) {
				return err
			}
			return retry.Permanent(err)
		}

		if err := json.Unmarshal(body, out); err != nil {
			return retry.Permanent(fmt.Errorf("decoding response: %w", err))
		}
		return nil
	})
}
