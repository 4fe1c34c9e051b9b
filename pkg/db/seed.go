package db

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed is an optional YAML file applied over the stored configuration at
// startup. ${VAR} references are expanded from the environment.
//
//	home:
//	  name: dacha
//	  timezone: Asia/Almaty
//	server:
//	  address: 0.0.0.0:3000
//	settings:
//	  gemini_api_key: ${GEMINI_API_KEY}
//	  weather_city: Kokshetau
type Seed struct {
	Home struct {
		Name     string `yaml:"name"`
		Timezone string `yaml:"timezone"`
	} `yaml:"home"`
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Settings Settings `yaml:"settings"`
}

// LoadSeed reads and parses a seed file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &seed); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &seed, nil
}

// ApplySeed writes the non-blank values of seed to the active profile. A
// home name selects that profile first, creating it if needed.
func (db *DB) ApplySeed(ctx context.Context, seed *Seed) error {
	profile, err := db.seedProfile(ctx, seed.Home.Name)
	if err != nil {
		return err
	}

	if tz := seed.Home.Timezone; tz != "" && tz != profile.Timezone {
		if err := db.Profiles().SetTimezone(ctx, profile.ID, tz); err != nil {
			return err
		}
	}

	if seed.Server.Address != "" {
		srv, err := ParseAddress(profile.ID, seed.Server.Address)
		if err != nil {
			return err
		}
		if err := db.APIServers().Put(ctx, srv); err != nil {
			return err
		}
	}

	current, err := db.storedSettings(ctx, profile.ID)
	if err != nil {
		return err
	}
	return db.Settings().Put(ctx, profile.ID, current.Merge(seed.Settings))
}

func (db *DB) seedProfile(ctx context.Context, name string) (*Profile, error) {
	profiles := db.Profiles()
	if name == "" {
		p, err := profiles.GetActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get active profile: %w", err)
		}
		return p, nil
	}

	p, err := profiles.GetByName(ctx, name)
	switch {
	case errors.Is(err, ErrProfileNotFound):
		p = &Profile{Name: name, Timezone: detectTimezone(), IsActive: true}
		if err := profiles.Create(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	case err != nil:
		return nil, err
	}
	if !p.IsActive {
		if err := profiles.SetActive(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	return p, nil
}
