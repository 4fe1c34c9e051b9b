package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Defaults applied on first run and for blank values.
const (
	DefaultGeminiModel = "gemini-2.5-flash-lite"
	DefaultStreamURL   = "https://cast.joystream.nl:80/radio538"
	DefaultStationName = "Internet Radio"
	DefaultWeatherCity = "Kokshetau"
)

// Settings are the runtime options edited from the admin console. JSON
// names match the console's config form.
type Settings struct {
	GeminiAPIKey     string `json:"geminiApiKey" yaml:"gemini_api_key"`
	GeminiModel      string `json:"geminiModel" yaml:"gemini_model"`
	SmartThingsToken string `json:"smartthingsToken" yaml:"smartthings_token"`
	HueHost          string `json:"hueHost" yaml:"hue_host"`
	HueUser          string `json:"hueUser" yaml:"hue_user"`
	MusicStreamURL   string `json:"musicStreamUrl" yaml:"music_stream_url"`
	MusicStationName string `json:"musicStationName" yaml:"music_station_name"`
	WeatherAPIKey    string `json:"weatherApiKey" yaml:"weather_api_key"`
	WeatherCity      string `json:"weatherCity" yaml:"weather_city"`
}

// DefaultSettings returns the settings written on first run.
func DefaultSettings() Settings {
	return Settings{
		GeminiModel:      DefaultGeminiModel,
		MusicStreamURL:   DefaultStreamURL,
		MusicStationName: DefaultStationName,
		WeatherCity:      DefaultWeatherCity,
	}
}

// Merge returns s with every non-blank value of patch applied. Blank values
// keep the current value, so a form that omits a secret does not erase it.
// All values are trimmed and missing defaults are restored.
func (s Settings) Merge(patch Settings) Settings {
	pick := func(cur, next string) string {
		if v := strings.TrimSpace(next); v != "" {
			return v
		}
		return strings.TrimSpace(cur)
	}

	out := Settings{
		GeminiAPIKey:     pick(s.GeminiAPIKey, patch.GeminiAPIKey),
		GeminiModel:      pick(s.GeminiModel, patch.GeminiModel),
		SmartThingsToken: pick(s.SmartThingsToken, patch.SmartThingsToken),
		HueHost:          pick(s.HueHost, patch.HueHost),
		HueUser:          pick(s.HueUser, patch.HueUser),
		MusicStreamURL:   pick(s.MusicStreamURL, patch.MusicStreamURL),
		MusicStationName: pick(s.MusicStationName, patch.MusicStationName),
		WeatherAPIKey:    pick(s.WeatherAPIKey, patch.WeatherAPIKey),
		WeatherCity:      pick(s.WeatherCity, patch.WeatherCity),
	}
	if out.GeminiModel == "" {
		out.GeminiModel = DefaultGeminiModel
	}
	if out.MusicStationName == "" {
		out.MusicStationName = DefaultStationName
	}
	return out
}

// Redacted returns s with secrets shortened to a recognizable prefix.
func (s Settings) Redacted() Settings {
	s.GeminiAPIKey = redact(s.GeminiAPIKey)
	s.SmartThingsToken = redact(s.SmartThingsToken)
	s.HueUser = redact(s.HueUser)
	s.WeatherAPIKey = redact(s.WeatherAPIKey)
	return s
}

func redact(secret string) string {
	if len(secret) <= 6 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:6] + "..."
}

var ErrSettingsNotFound = errors.New("settings not found")

// SettingsStore reads and writes the runtime settings of a profile.
type SettingsStore interface {
	Get(ctx context.Context, profileID int64) (Settings, error)
	Put(ctx context.Context, profileID int64, s Settings) error
}

// Settings returns a SettingsStore for this database.
func (db *DB) Settings() SettingsStore {
	return &settingsStore{db: db}
}

type settingsStore struct {
	db *DB
}

func (st *settingsStore) Get(ctx context.Context, profileID int64) (Settings, error) {
	var s Settings
	err := st.db.QueryRowContext(ctx, `
		SELECT gemini_api_key, gemini_model, smartthings_token, hue_host, hue_user,
		       music_stream_url, music_station_name, weather_api_key, weather_city
		FROM settings WHERE profile_id = ?
	`, profileID).Scan(
		&s.GeminiAPIKey, &s.GeminiModel, &s.SmartThingsToken, &s.HueHost, &s.HueUser,
		&s.MusicStreamURL, &s.MusicStationName, &s.WeatherAPIKey, &s.WeatherCity,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Settings{}, ErrSettingsNotFound
	}
	if err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (st *settingsStore) Put(ctx context.Context, profileID int64, s Settings) error {
	_, err := st.db.ExecContext(ctx, `
		INSERT INTO settings (
			profile_id, gemini_api_key, gemini_model, smartthings_token, hue_host, hue_user,
			music_stream_url, music_station_name, weather_api_key, weather_city
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(profile_id) DO UPDATE SET
			gemini_api_key = excluded.gemini_api_key,
			gemini_model = excluded.gemini_model,
			smartthings_token = excluded.smartthings_token,
			hue_host = excluded.hue_host,
			hue_user = excluded.hue_user,
			music_stream_url = excluded.music_stream_url,
			music_station_name = excluded.music_station_name,
			weather_api_key = excluded.weather_api_key,
			weather_city = excluded.weather_city,
			updated_at = datetime('now')
	`, profileID, s.GeminiAPIKey, s.GeminiModel, s.SmartThingsToken, s.HueHost, s.HueUser,
		s.MusicStreamURL, s.MusicStationName, s.WeatherAPIKey, s.WeatherCity)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
