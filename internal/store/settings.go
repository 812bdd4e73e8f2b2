package store

import (
	"fmt"

	"github.com/DE4DSHOTplays/habit-tracker/internal/habit"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// Features reads the toggle settings. Missing keys fall back to the
// defaults; a toggle is on only when its value is exactly "on".
func (s *Store) Features() Features {
	f := DefaultFeatures()
	if v, err := s.GetSetting("future_policy"); err == nil && v == "allow" {
		f.FuturePolicy = habit.FutureAllow
	}
	f.Streaks = s.onOff("streaks", f.Streaks)
	f.LongestStreak = s.onOff("longest_streak", f.LongestStreak)
	f.MonthlyChart = s.onOff("monthly_chart", f.MonthlyChart)
	f.PowerChart = s.onOff("power_chart", f.PowerChart)
	if v, err := s.GetSetting("export_dir"); err == nil {
		f.ExportDir = v
	}
	return f
}

func (s *Store) onOff(key string, fallback bool) bool {
	v, err := s.GetSetting(key)
	if err != nil {
		return fallback
	}
	return v == "on"
}
