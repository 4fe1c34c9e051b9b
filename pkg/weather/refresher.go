package weather

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/urmzd/umaai/pkg/state"
)

// Refresher publishes fresh weather to the store.
type Refresher struct {
	client *Client
	store  *state.Store
}

// NewRefresher creates a refresher.
func NewRefresher(client *Client, store *state.Store) *Refresher {
	return &Refresher{client: client, store: store}
}

// Refresh fetches current weather and the forecast and merges them in one
// update. A missing API key is not an error. If the current weather cannot
// be read the stored weather is left alone; if only the forecast fails the
// previous forecast is kept.
func (r *Refresher) Refresh(ctx context.Context) error {
	w, err := r.client.Current(ctx)
	if errors.Is(err, ErrNotConfigured) {
		log.Debug().Str("provider", "openweathermap").Msg("Weather not configured, skipping refresh")
		return nil
	}
	if err != nil {
		return err
	}

	forecast, err := r.client.Forecast(ctx)
	if err != nil {
		log.Warn().Err(err).Str("provider", "openweathermap").Msg("Keeping previous forecast")
	}

	snap := r.store.Update(func(next *state.Snapshot) {
		if forecast == nil {
			forecast = next.Weather.Forecast
		}
		w.Forecast = forecast
		next.Weather = w
	})

	log.Info().
		Str("temp", snap.Weather.Temp).
		Str("condition", snap.Weather.Condition).
		Str("city", snap.Weather.City).
		Int("forecast", len(snap.Weather.Forecast)).
		Msg("Weather updated")
	return nil
}
