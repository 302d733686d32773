package db

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
)

var ErrNoActiveProfile = errors.New("no active profile found")

// Config is the runtime configuration of the active profile.
type Config struct {
	Profile    *Profile
	APIServer  *APIServer
	Automation *AutomationSettings
}

// APIAddress returns the API server listen address.
func (c *Config) APIAddress() string {
	if c.APIServer == nil {
		return net.JoinHostPort(DefaultAPIHost, strconv.Itoa(DefaultAPIPort))
	}
	return c.APIServer.Address()
}

// ActiveConfig loads every settings row of the active profile. Missing API
// server or automation rows fall back to defaults.
func (db *DB) ActiveConfig(ctx context.Context) (*Config, error) {
	profile, err := db.Profiles().GetActive(ctx)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrNoActiveProfile
		}
		return nil, fmt.Errorf("failed to get active profile: %w", err)
	}

	cfg := &Config{Profile: profile}

	cfg.APIServer, err = db.APIServers().Get(ctx, profile.ID)
	if err != nil && !errors.Is(err, ErrAPIServerNotFound) {
		return nil, fmt.Errorf("failed to get API server config: %w", err)
	}

	cfg.Automation, err = db.AutomationSettings().Get(ctx, profile.ID)
	switch {
	case errors.Is(err, ErrAutomationSettingsNotFound):
		cfg.Automation = DefaultAutomationSettings(profile.ID)
	case err != nil:
		return nil, fmt.Errorf("failed to get automation settings: %w", err)
	}

	return cfg, nil
}
