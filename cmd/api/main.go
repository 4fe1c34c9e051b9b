package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/umaai/pkg/api"
	"github.com/urmzd/umaai/pkg/db"
	"github.com/urmzd/umaai/pkg/device"
	"github.com/urmzd/umaai/pkg/effect"
	"github.com/urmzd/umaai/pkg/gallery"
	"github.com/urmzd/umaai/pkg/genai"
	"github.com/urmzd/umaai/pkg/hue"
	"github.com/urmzd/umaai/pkg/mcp"
	"github.com/urmzd/umaai/pkg/override"
	"github.com/urmzd/umaai/pkg/presence"
	"github.com/urmzd/umaai/pkg/radio"
	"github.com/urmzd/umaai/pkg/schema"
	"github.com/urmzd/umaai/pkg/smartthings"
	"github.com/urmzd/umaai/pkg/state"
	"github.com/urmzd/umaai/pkg/task"
	"github.com/urmzd/umaai/pkg/voice"
	"github.com/urmzd/umaai/pkg/weather"

	_ "github.com/urmzd/umaai/docs"
)

// @title           UmaAI API
// @version         1.0
// @description     Display state, voice assistant and terminal management for UmaAI screens

// @host      localhost:3000
// @BasePath  /
// @schemes   http https

const version = "1.0.0"

const (
	timerTickInterval      = time.Second
	weatherRefreshInterval = 30 * time.Minute
	radioRefreshInterval   = 45 * time.Second
	shutdownTimeout        = 5 * time.Second
)

func main() {
	// Configure logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/umaai/umaai.db)")
	seedPath := flag.String("config", "", "Optional YAML seed applied over the stored settings")
	photosDir := flag.String("photos", "photos", "Directory holding vibe gallery images")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	addrFlag := flag.String("addr", "", "Listen address (overrides the stored one)")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", *logLevel).Msg("Invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open database
	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	log.Info().Str("path", database.Path()).Msg("Database opened")

	cfg, err := loadConfig(ctx, database, *seedPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	addr := cfg.APIAddress()
	if *addrFlag != "" {
		addr = *addrFlag
	}

	log.Info().
		Str("profile", cfg.Profile.Name).
		Str("timezone", cfg.Profile.Timezone).
		Str("api_address", addr).
		Msg("Configuration loaded")

	rt := db.NewRuntime(database.Settings(), cfg.Profile.ID, cfg.Settings)

	store := state.NewStore(state.Default())
	tasks := task.NewSupervisor(ctx)

	controller := device.NewMulti(
		smartthings.NewClient(rt.SmartThingsToken),
		hue.NewController(rt.Hue),
	)
	defer controller.Close()

	engine := effect.NewEngine(store, controller, tasks)
	gemini := genai.NewClient(rt.Gemini)
	if !gemini.Configured() {
		log.Warn().Msg("Gemini API key not set, voice requests will fail until configured")
	}

	pipeline := voice.NewPipeline(store, engine, tasks, gemini)
	tracker := presence.NewTracker(presence.DefaultTimeout)
	overrides := override.NewScheduler(store, tasks, override.DefaultDelay)
	photos := gallery.New(*photosDir, "/photos")

	if err := registerJobs(tasks, store, tracker, rt, cfg.Profile.Location()); err != nil {
		log.Fatal().Err(err).Msg("Failed to register background jobs")
	}
	tasks.StartAll()

	tools := mcp.NewServer(mcp.Deps{
		Store:    store,
		Voice:    pipeline,
		Override: overrides,
		Tracker:  tracker,
		Gallery:  photos,
	}, version)

	router := api.NewRouter(api.Services{
		Store:      store,
		Tasks:      tasks,
		Controller: controller,
		Engine:     engine,
		Voice:      pipeline,
		Presence:   tracker,
		Override:   overrides,
		Gallery:    photos,
		Settings:   rt,
		Models:     gemini,
		Validator:  schema.NewValidator(),
		MCP:        tools.Handler(),
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Failed to shut down HTTP server")
		}
	}()

	log.Info().Str("address", addr).Str("photos", photos.Dir()).Msg("Starting API server")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}

	tasks.Shutdown()
	log.Info().Msg("Stopped")
}

// loadConfig migrates the database, bootstraps it on first run and applies
// the optional seed file before reading the active configuration.
func loadConfig(ctx context.Context, database *db.DB, seedPath string) (*db.Config, error) {
	if err := database.Migrate(ctx); err != nil {
		return nil, err
	}

	needsBootstrap, err := database.NeedsBootstrap(ctx)
	if err != nil {
		return nil, err
	}
	if needsBootstrap {
		log.Info().Msg("First run detected, bootstrapping database...")
		if err := database.Bootstrap(ctx); err != nil {
			return nil, err
		}
		log.Info().Msg("Database bootstrapped successfully")
	}

	if seedPath != "" {
		seed, err := db.LoadSeed(seedPath)
		if err != nil {
			return nil, err
		}
		if err := database.ApplySeed(ctx, seed); err != nil {
			return nil, err
		}
		log.Info().Str("path", seedPath).Msg("Seed applied")
	}

	return database.ActiveConfig(ctx)
}

func registerJobs(tasks *task.Supervisor, store *state.Store, tracker *presence.Tracker, rt *db.Runtime, loc *time.Location) error {
	weatherRefresher := weather.NewRefresher(weather.NewClient(rt.Weather, weather.WithLocation(loc)), store)
	radioRefresher := radio.NewRefresher(radio.NewReader(rt.Radio, nil), store)

	jobs := []task.JobConfig{
		{
			Name:     "timer-tick",
			Interval: timerTickInterval,
			Run: func(ctx context.Context) error {
				store.TickTimer()
				return nil
			},
		},
		{
			Name:     "presence-sweep",
			Interval: presence.DefaultSweepInterval,
			Run: func(ctx context.Context) error {
				if n := tracker.Sweep(time.Now()); n > 0 {
					log.Debug().Int("evicted", n).Msg("Swept silent terminals")
				}
				return nil
			},
		},
		{
			Name:      "weather-refresh",
			Interval:  weatherRefreshInterval,
			Immediate: true,
			Run:       weatherRefresher.Refresh,
		},
		{
			Name:      "radio-refresh",
			Interval:  radioRefreshInterval,
			Immediate: true,
			Run:       radioRefresher.Refresh,
		},
	}

	for _, job := range jobs {
		if err := tasks.Register(job); err != nil {
			return err
		}
	}
	return nil
}
