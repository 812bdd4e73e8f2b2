package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/DE4DSHOTplays/habit-tracker/internal/habit"
)

// statsModel shows aggregate numbers for one week next to the all-time
// totals. It is read only, so navigation serves from the tracker cache.
type statsModel struct {
	tracker *habit.Tracker
	width   int
	height  int

	offset  int
	week    habit.Week
	history []habit.Record
	loaded  bool
}

func newStatsModel(tr *habit.Tracker) statsModel {
	return statsModel{tracker: tr}
}

func (m *statsModel) setSize(width, height int) {
	m.width = width
	m.height = height
}

type statsDataMsg struct {
	week    habit.Week
	history []habit.Record
}

func (m statsModel) refresh() tea.Cmd {
	tracker := m.tracker
	offset := m.offset
	return func() tea.Msg {
		return statsDataMsg{
			week:    tracker.LoadWeek(offset),
			history: tracker.History(),
		}
	}
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.week = msg.week
		m.history = msg.history
		m.loaded = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.offset--
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			m.offset++
			return m, m.refresh()
		case key.Matches(msg, keys.Today):
			m.offset = 0
			return m, m.refresh()
		case key.Matches(msg, keys.Refresh):
			return m, m.refresh()
		}
	}

	return m, nil
}

func (m statsModel) view() string {
	if !m.loaded {
		return panelStyle.Render("Loading stats...")
	}

	week := habit.WeekStats(m.week.Records)

	var wb strings.Builder
	wb.WriteString(titleStyle.Render("Week of " + m.week.Start.Format("02 Jan 2006")))
	wb.WriteString("  ")
	wb.WriteString(subtitleStyle.Render(offsetLabel(m.offset)))
	wb.WriteString("\n\n")

	rate := 0
	if len(m.week.Records) > 0 {
		rate = week.CompletedDays * 100 / len(m.week.Records)
	}
	wb.WriteString(statRow("Total score", strconv.Itoa(week.TotalScore)) + "\n")
	wb.WriteString(statRow("Average", fmt.Sprintf("%.1f", week.AvgScore)) + "\n")
	wb.WriteString(statRow("Days won", fmt.Sprintf("%d/%d (%d%%)", week.CompletedDays, len(m.week.Records), rate)) + "\n")
	wb.WriteString(statRow("Coded", fmt.Sprintf("%d days", week.CodedDays)) + "\n")
	wb.WriteString(statRow("Ate clean", fmt.Sprintf("%d days", week.CleanDays)) + "\n")
	wb.WriteString(statRow("Worked out", fmt.Sprintf("%d days", week.WorkoutDays)) + "\n")
	wb.WriteString(statRow("Pushups", strconv.Itoa(week.TotalPushups)) + "\n")
	wb.WriteString(statRow("Study", formatQty(week.TotalStudy)+"h") + "\n")
	wb.WriteString(statRow("Water", formatQty(week.TotalWater)+"L"))

	var ab strings.Builder
	ab.WriteString(titleStyle.Render("All time"))
	ab.WriteString("\n\n")
	if len(m.history) == 0 {
		ab.WriteString(mutedStyle.Render("No days logged yet."))
	} else {
		all := habit.WeekStats(m.history)
		first := m.history[0].Date
		last := m.history[len(m.history)-1].Date
		ab.WriteString(statRow("Days logged", strconv.Itoa(len(m.history))) + "\n")
		ab.WriteString(statRow("Days won", strconv.Itoa(all.CompletedDays)) + "\n")
		ab.WriteString(statRow("Total score", strconv.Itoa(all.TotalScore)) + "\n")
		ab.WriteString(statRow("Pushups", strconv.Itoa(all.TotalPushups)) + "\n")
		ab.WriteString(statRow("Study", formatQty(all.TotalStudy)+"h") + "\n")
		ab.WriteString(statRow("Water", formatQty(all.TotalWater)+"L") + "\n")
		ab.WriteString(statRow("First entry", first.Format("02 Jan 2006")) + "\n")
		ab.WriteString(statRow("Last entry", humanize.Time(last)))
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		activePanelStyle.Render(wb.String()),
		"  ",
		panelStyle.Render(ab.String()),
	)
}

func statRow(label, value string) string {
	return mutedStyle.Render(fmt.Sprintf("%-14s", label)) + normalItemStyle.Render(value)
}
