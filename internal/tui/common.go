package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/DE4DSHOTplays/habit-tracker/internal/habit"
)

// viewState represents the currently active view.
type viewState int

const (
	viewWeek viewState = iota
	viewStats
	viewStreaks
	viewCharts
	viewSettings
)

var viewNames = []string{"Week", "Stats", "Streaks", "Charts", "Settings"}

// --- Messages ---

type weekSavedMsg struct {
	result habit.SaveResult
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// checkbox renders a habit flag as a single glyph.
func checkbox(done bool) string {
	if done {
		return successStyle.Render("✓")
	}
	return mutedStyle.Render("·")
}

// formatQty renders a quantity without trailing zeros ("1.5", "2", "0.25").
func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// scoreStyle picks the color band for a victory score.
func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return successStyle
	case score >= 50:
		return warningStyle
	case score > 0:
		return accentStyle
	default:
		return mutedStyle
	}
}

// offsetLabel describes a week offset relative to the current week.
func offsetLabel(offset int) string {
	switch {
	case offset == 0:
		return "this week"
	case offset == -1:
		return "last week"
	case offset < 0:
		return strconv.Itoa(-offset) + " weeks ago"
	case offset == 1:
		return "next week"
	default:
		return strconv.Itoa(offset) + " weeks ahead"
	}
}
