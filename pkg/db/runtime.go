package db

import (
	"context"
	"sync"
	"sync/atomic"
)

// Runtime holds the live settings of the active profile. Readers get a
// consistent value without locking; Apply persists before publishing.
type Runtime struct {
	store     SettingsStore
	profileID int64

	mu  sync.Mutex // serializes Apply
	cur atomic.Pointer[Settings]
}

// NewRuntime creates a holder for profileID seeded with initial.
func NewRuntime(store SettingsStore, profileID int64, initial Settings) *Runtime {
	r := &Runtime{store: store, profileID: profileID}
	r.cur.Store(&initial)
	return r
}

// Settings returns the current settings.
func (r *Runtime) Settings() Settings {
	return *r.cur.Load()
}

// Apply merges patch into the current settings, stores the result and
// makes it visible to readers.
func (r *Runtime) Apply(ctx context.Context, patch Settings) (Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.cur.Load().Merge(patch)
	if err := r.store.Put(ctx, r.profileID, next); err != nil {
		return Settings{}, err
	}
	r.cur.Store(&next)
	return next, nil
}

// Gemini returns the API key and model.
func (r *Runtime) Gemini() (string, string) {
	s := r.cur.Load()
	return s.GeminiAPIKey, s.GeminiModel
}

// SmartThingsToken returns the SmartThings personal access token.
func (r *Runtime) SmartThingsToken() string {
	return r.cur.Load().SmartThingsToken
}

// Hue returns the bridge host and API user.
func (r *Runtime) Hue() (string, string) {
	s := r.cur.Load()
	return s.HueHost, s.HueUser
}

// Radio returns the stream URL and station name.
func (r *Runtime) Radio() (string, string) {
	s := r.cur.Load()
	return s.MusicStreamURL, s.MusicStationName
}

// Weather returns the OpenWeatherMap key and city.
func (r *Runtime) Weather() (string, string) {
	s := r.cur.Load()
	return s.WeatherAPIKey, s.WeatherCity
}
