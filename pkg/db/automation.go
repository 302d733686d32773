package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/urmzd/homesim/pkg/automation"
	"github.com/urmzd/homesim/pkg/sensor"
)

var ErrAutomationSettingsNotFound = errors.New("automation settings not found")

// AutomationSettings are the rule thresholds and scheduling of one profile.
type AutomationSettings struct {
	ProfileID  int64
	Thresholds automation.Thresholds
	// Interval between scheduled evaluations; zero disables the scheduler
	Interval time.Duration
	// AlarmProbability is the chance the simulated hazard detector fires per poll
	AlarmProbability float64
	UpdatedAt        time.Time
}

// DefaultAutomationSettings returns the settings seeded for a new profile.
func DefaultAutomationSettings(profileID int64) *AutomationSettings {
	return &AutomationSettings{
		ProfileID:        profileID,
		Thresholds:       automation.DefaultThresholds(),
		AlarmProbability: sensor.DefaultHazardProbability,
	}
}

// Validate checks the settings before they are written.
func (a *AutomationSettings) Validate() error {
	if err := a.Thresholds.Validate(); err != nil {
		return err
	}
	if a.Interval < 0 {
		return fmt.Errorf("interval must not be negative, got %v", a.Interval)
	}
	if a.AlarmProbability < 0 || a.AlarmProbability > 1 {
		return fmt.Errorf("alarm probability must be within [0, 1], got %v", a.AlarmProbability)
	}
	return nil
}

type AutomationSettingsStore interface {
	Get(ctx context.Context, profileID int64) (*AutomationSettings, error)
	Update(ctx context.Context, a *AutomationSettings) error
	SetThresholds(ctx context.Context, profileID int64, t automation.Thresholds) error
}

// AutomationSettings returns an AutomationSettingsStore for this database.
func (db *DB) AutomationSettings() AutomationSettingsStore {
	return &automationSettingsStore{db: db}
}

type automationSettingsStore struct {
	db *DB
}

func (s *automationSettingsStore) Get(ctx context.Context, profileID int64) (*AutomationSettings, error) {
	a := &AutomationSettings{ProfileID: profileID}
	var (
		intervalSeconds int64
		updatedAt       string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT ac_on_above, ac_off_below, fan_on_above, fan_off_below,
		       interval_seconds, alarm_probability, updated_at
		FROM automation_settings WHERE profile_id = ?
	`, profileID).Scan(
		&a.Thresholds.ACOnAbove, &a.Thresholds.ACOffBelow,
		&a.Thresholds.FanOnAbove, &a.Thresholds.FanOffBelow,
		&intervalSeconds, &a.AlarmProbability, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAutomationSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	a.Interval = time.Duration(intervalSeconds) * time.Second
	a.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return a, nil
}

func (s *automationSettingsStore) Update(ctx context.Context, a *AutomationSettings) error {
	if err := a.Validate(); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE automation_settings
		SET ac_on_above = ?, ac_off_below = ?, fan_on_above = ?, fan_off_below = ?,
		    interval_seconds = ?, alarm_probability = ?, updated_at = datetime('now')
		WHERE profile_id = ?
	`, a.Thresholds.ACOnAbove, a.Thresholds.ACOffBelow,
		a.Thresholds.FanOnAbove, a.Thresholds.FanOffBelow,
		int64(a.Interval/time.Second), a.AlarmProbability, a.ProfileID)
	if err != nil {
		return fmt.Errorf("failed to update automation settings: %w", err)
	}
	return requireRow(result, ErrAutomationSettingsNotFound)
}

// SetThresholds replaces only the thresholds of a profile.
func (s *automationSettingsStore) SetThresholds(ctx context.Context, profileID int64, t automation.Thresholds) error {
	if err := t.Validate(); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE automation_settings
		SET ac_on_above = ?, ac_off_below = ?, fan_on_above = ?, fan_off_below = ?,
		    updated_at = datetime('now')
		WHERE profile_id = ?
	`, t.ACOnAbove, t.ACOffBelow, t.FanOnAbove, t.FanOffBelow, profileID)
	if err != nil {
		return fmt.Errorf("failed to update thresholds: %w", err)
	}
	return requireRow(result, ErrAutomationSettingsNotFound)
}

func requireRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
