package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/urmzd/homesim/pkg/config"
	"github.com/urmzd/homesim/pkg/db"
	"github.com/urmzd/homesim/pkg/home"
	homesimmcp "github.com/urmzd/homesim/pkg/mcp"
)

const version = "1.0.0"

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to YAML config file (default: built-in defaults)")
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/homesim/homesim.db)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	// Logging must go to stderr; stdout is the MCP transport
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

	if err := database.Init(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}

	active, err := database.ActiveConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load profile configuration")
	}

	h, err := home.New(ctx, home.Options{
		Config:           cfg,
		Thresholds:       active.Automation.Thresholds,
		AlarmProbability: &active.Automation.AlarmProbability,
		ProfileID:        active.Profile.ID,
		Store:            database.AutomationSettings(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start home")
	}
	defer h.Close()

	go h.Engine.Run(ctx, active.Automation.Interval)

	mcpServer := homesimmcp.NewServer(h, version)

	log.Info().Str("profile", active.Profile.Name).Msg("Starting MCP server on stdio")

	if err := mcpServer.ServeStdio(); err != nil {
		log.Error().Err(err).Msg("MCP server failed")
	}
}
