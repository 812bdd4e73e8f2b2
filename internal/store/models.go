package store

import "github.com/DE4DSHOTplays/habit-tracker/internal/habit"

type Setting struct {
	Key   string
	Value string
}

// Features are the user-facing toggles kept in the settings table. They
// control the future-date save policy and which panels the UI shows.
type Features struct {
	FuturePolicy  habit.FuturePolicy
	Streaks       bool
	LongestStreak bool
	MonthlyChart  bool
	PowerChart    bool
	ExportDir     string // empty means the user's home directory
}

// DefaultFeatures mirrors the values seeded by the first migration.
func DefaultFeatures() Features {
	return Features{
		FuturePolicy:  habit.FutureSkip,
		Streaks:       true,
		LongestStreak: true,
		MonthlyChart:  true,
		PowerChart:    true,
	}
}
