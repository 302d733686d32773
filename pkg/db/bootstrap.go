package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DefaultProfile is the profile created on first run.
const DefaultProfile = "default"

// Default API listen address of new profiles
const (
	DefaultAPIHost = "0.0.0.0"
	DefaultAPIPort = 8080
)

// Bootstrap creates and activates the default profile when the database has none.
func (db *DB) Bootstrap(ctx context.Context) error {
	needed, err := db.NeedsBootstrap(ctx)
	if err != nil {
		return fmt.Errorf("failed to check profiles: %w", err)
	}
	if !needed {
		return nil
	}

	_, err = db.UseProfile(ctx, DefaultProfile)
	return err
}

// NeedsBootstrap reports whether no profile exists yet.
func (db *DB) NeedsBootstrap(ctx context.Context) (bool, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

// UseProfile activates the named profile, creating it with default settings
// if it does not exist.
func (db *DB) UseProfile(ctx context.Context, name string) (*Profile, error) {
	p, err := db.Profiles().GetByName(ctx, name)
	switch {
	case errors.Is(err, ErrProfileNotFound):
		p, err = db.createProfile(ctx, name)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	if err := db.Profiles().SetActive(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("failed to activate profile %q: %w", name, err)
	}
	p.IsActive = true
	return p, nil
}

// createProfile inserts a profile together with its default API server and
// automation settings in one transaction.
func (db *DB) createProfile(ctx context.Context, name string) (*Profile, error) {
	p := &Profile{Name: name}
	err := db.Tx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `INSERT INTO profiles (name) VALUES (?)`, name)
		if err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		if p.ID, err = result.LastInsertId(); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO api_servers (profile_id, host, port) VALUES (?, ?, ?)
		`, p.ID, DefaultAPIHost, DefaultAPIPort); err != nil {
			return fmt.Errorf("failed to create default API server: %w", err)
		}

		s := DefaultAutomationSettings(p.ID)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO automation_settings
			    (profile_id, ac_on_above, ac_off_below, fan_on_above, fan_off_below, alarm_probability)
			VALUES (?, ?, ?, ?, ?, ?)
		`, p.ID,
			s.Thresholds.ACOnAbove, s.Thresholds.ACOffBelow,
			s.Thresholds.FanOnAbove, s.Thresholds.FanOffBelow,
			s.AlarmProbability); err != nil {
			return fmt.Errorf("failed to create default automation settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
