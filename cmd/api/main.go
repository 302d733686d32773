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

	"github.com/rs/zerolog/log"

	"github.com/urmzd/homesim/pkg/api"
	"github.com/urmzd/homesim/pkg/config"
	"github.com/urmzd/homesim/pkg/db"
	"github.com/urmzd/homesim/pkg/home"

	_ "github.com/urmzd/homesim/docs"
)

// @title           Homesim API
// @version         1.0
// @description     REST API for a simulated home-automation controller

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.basic  BasicAuth

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to YAML config file (default: built-in defaults)")
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/homesim/homesim.db)")
	profile := flag.String("profile", "", "Profile to activate, created with defaults if missing")
	serialPort := flag.String("port", "", "Serial port of the sensor board (default: simulated sensors)")
	addr := flag.String("addr", "", "API listen address (host:port), persisted to the profile")
	interval := flag.Duration("automation-interval", -1, "Scheduled automation interval, persisted to the profile; 0 disables")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if *serialPort != "" {
		cfg.Sensor.Port = *serialPort
	}
	if err := config.SetupLogging(cfg.Logging, os.Stderr); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure logging")
	}

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

	if err := database.Init(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}

	if *profile != "" {
		if _, err := database.UseProfile(ctx, *profile); err != nil {
			log.Fatal().Err(err).Str("profile", *profile).Msg("Failed to activate profile")
		}
	}

	// Load profile configuration
	active, err := database.ActiveConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load profile configuration")
	}

	if *addr != "" && *addr != active.APIAddress() {
		active.APIServer, err = database.SetAPIAddress(ctx, active.Profile.ID, *addr)
		if err != nil {
			log.Fatal().Err(err).Str("addr", *addr).Msg("Failed to save API address")
		}
	}

	settings := active.Automation
	if *interval >= 0 && *interval != settings.Interval {
		settings.Interval = *interval
		if err := database.AutomationSettings().Update(ctx, settings); err != nil {
			log.Fatal().Err(err).Msg("Failed to save automation interval")
		}
	}

	log.Info().
		Str("profile", active.Profile.Name).
		Str("api_address", active.APIAddress()).
		Dur("automation_interval", settings.Interval).
		Msg("Configuration loaded")

	h, err := home.New(ctx, home.Options{
		Config:           cfg,
		Thresholds:       settings.Thresholds,
		AlarmProbability: &settings.AlarmProbability,
		ProfileID:        active.Profile.ID,
		Store:            database.AutomationSettings(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start home")
	}
	defer h.Close()

	go h.Engine.Run(ctx, settings.Interval)

	router := api.NewRouter(h, cfg.Auth)
	srv := &http.Server{
		Addr:              active.APIAddress(),
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", srv.Addr).Msg("Starting API server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}
}
