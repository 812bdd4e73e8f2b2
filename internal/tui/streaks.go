package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/DE4DSHOTplays/habit-tracker/internal/habit"
	"github.com/DE4DSHOTplays/habit-tracker/internal/store"
)

// streaksModel shows the current and best run for each tracked habit.
type streaksModel struct {
	tracker *habit.Tracker
	store   *store.Store
	width   int
	height  int

	history  []habit.Record
	features store.Features
	loaded   bool
}

func newStreaksModel(s *store.Store, tr *habit.Tracker) streaksModel {
	return streaksModel{store: s, tracker: tr}
}

func (m *streaksModel) setSize(width, height int) {
	m.width = width
	m.height = height
}

type streaksDataMsg struct {
	history  []habit.Record
	features store.Features
}

func (m streaksModel) refresh() tea.Cmd {
	tracker := m.tracker
	st := m.store
	return func() tea.Msg {
		return streaksDataMsg{
			history:  tracker.History(),
			features: st.Features(),
		}
	}
}

func (m streaksModel) update(msg tea.Msg) (streaksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case streaksDataMsg:
		m.history = msg.history
		m.features = msg.features
		m.loaded = true
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Refresh) {
			return m, m.refresh()
		}
	}

	return m, nil
}

func (m streaksModel) view() string {
	if !m.loaded {
		return panelStyle.Render("Loading streaks...")
	}
	if !m.features.Streaks {
		return panelStyle.Render(mutedStyle.Render("Streaks are turned off in Settings."))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Streaks"))
	b.WriteString("\n\n")

	if len(m.history) == 0 {
		b.WriteString(mutedStyle.Render("No days logged yet."))
		return panelStyle.Render(b.String())
	}

	header := "  HABIT          CURRENT     "
	if m.features.LongestStreak {
		header += "BEST     "
	}
	header += "LAST DONE"
	b.WriteString(gridHeaderStyle.Render(header))
	b.WriteString("\n")

	today := time.Now()
	for _, h := range []habit.Habit{habit.HabitCoded, habit.HabitNoJunk, habit.HabitWorkout} {
		flags := habit.FlagHistory(m.history, h)
		current := habit.CurrentStreak(flags, today)

		cell := fmt.Sprintf("%-12s", days(current))
		if current > 0 {
			cell = successStyle.Render(cell)
		} else {
			cell = mutedStyle.Render(cell)
		}

		b.WriteString("  ")
		b.WriteString(normalItemStyle.Render(fmt.Sprintf("%-14s", h.String())))
		b.WriteString(" ")
		b.WriteString(cell)
		if m.features.LongestStreak {
			b.WriteString(highlightStyle.Render(fmt.Sprintf("%-8s", days(habit.LongestStreak(flags)))))
			b.WriteString(" ")
		}
		b.WriteString(mutedStyle.Render(lastDone(flags)))
		b.WriteString("\n")
	}

	return panelStyle.Render(b.String())
}

// lastDone reports how long ago a habit was last completed.
func lastDone(flags []habit.DayFlag) string {
	for i := len(flags) - 1; i >= 0; i-- {
		if flags[i].Done {
			return humanize.Time(flags[i].Date)
		}
	}
	return "never"
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
