package db

import (
	"context"
	"errors"
	"fmt"
	"os"
)

var ErrNoActiveProfile = errors.New("no active profile found")

// Config is the complete configuration of the active profile.
type Config struct {
	Profile   *Profile
	APIServer *APIServer
	Settings  Settings
}

// APIAddress returns the API server listen address.
func (c *Config) APIAddress() string {
	if c.APIServer == nil {
		return DefaultAddress
	}
	return c.APIServer.Address()
}

// ActiveConfig loads the configuration of the active profile. Settings
// missing from the database fall back to the defaults, and the
// GEMINI_API_KEY and SMARTTHINGS_TOKEN environment variables fill keys
// that are still empty.
func (db *DB) ActiveConfig(ctx context.Context) (*Config, error) {
	profile, err := db.Profiles().GetActive(ctx)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrNoActiveProfile
		}
		return nil, fmt.Errorf("failed to get active profile: %w", err)
	}

	config := &Config{Profile: profile}

	apiServer, err := db.APIServers().Get(ctx, profile.ID)
	if err != nil && !errors.Is(err, ErrAPIServerNotFound) {
		return nil, fmt.Errorf("failed to get API server config: %w", err)
	}
	config.APIServer = apiServer

	settings, err := db.storedSettings(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	config.Settings = settings

	if config.Settings.GeminiAPIKey == "" {
		config.Settings.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if config.Settings.SmartThingsToken == "" {
		config.Settings.SmartThingsToken = os.Getenv("SMARTTHINGS_TOKEN")
	}
	return config, nil
}

// storedSettings returns the settings row of profileID, or the defaults if
// the profile predates the settings table.
func (db *DB) storedSettings(ctx context.Context, profileID int64) (Settings, error) {
	settings, err := db.Settings().Get(ctx, profileID)
	switch {
	case errors.Is(err, ErrSettingsNotFound):
		settings = DefaultSettings()
	case err != nil:
		return Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings.Merge(Settings{}), nil
}
