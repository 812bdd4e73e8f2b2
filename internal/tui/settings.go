package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/DE4DSHOTplays/habit-tracker/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	futurePolicy  *string
	streaks       *string
	longestStreak *string
	monthlyChart  *string
	powerChart    *string
	exportDir     *string
}

func newSettingsModel(s *store.Store) settingsModel {
	fp, st, ls := "", "", ""
	mc, pc, ed := "", "", ""
	return settingsModel{
		store:         s,
		futurePolicy:  &fp,
		streaks:       &st,
		longestStreak: &ls,
		monthlyChart:  &mc,
		powerChart:    &pc,
		exportDir:     &ed,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Enter) {
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	// Load current values
	*s.futurePolicy = s.getVal("future_policy", "skip")
	*s.streaks = s.getVal("streaks", "on")
	*s.longestStreak = s.getVal("longest_streak", "on")
	*s.monthlyChart = s.getVal("monthly_chart", "on")
	*s.powerChart = s.getVal("power_chart", "on")
	*s.exportDir = s.getVal("export_dir", "")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Future days").
				Options(
					huh.NewOption("Skip on save", "skip"),
					huh.NewOption("Allow", "allow"),
				).Value(s.futurePolicy),
			huh.NewInput().Title("Export directory (blank for home)").Value(s.exportDir),
		).Title("Saving"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Streaks").
				Options(
					huh.NewOption("On", "on"),
					huh.NewOption("Off", "off"),
				).Value(s.streaks),
			huh.NewSelect[string]().Title("Longest streak column").
				Options(
					huh.NewOption("On", "on"),
					huh.NewOption("Off", "off"),
				).Value(s.longestStreak),
			huh.NewSelect[string]().Title("Monthly chart").
				Options(
					huh.NewOption("On", "on"),
					huh.NewOption("Off", "off"),
				).Value(s.monthlyChart),
			huh.NewSelect[string]().Title("Power chart").
				Options(
					huh.NewOption("On", "on"),
					huh.NewOption("Off", "off"),
				).Value(s.powerChart),
		).Title("Panels"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.saveSettings()
		return s, s.refresh()
	}

	return s, cmd
}

func (s settingsModel) saveSettings() {
	s.store.SetSetting("future_policy", *s.futurePolicy)
	s.store.SetSetting("streaks", *s.streaks)
	s.store.SetSetting("longest_streak", *s.longestStreak)
	s.store.SetSetting("monthly_chart", *s.monthlyChart)
	s.store.SetSetting("power_chart", *s.powerChart)
	s.store.SetSetting("export_dir", *s.exportDir)
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	if k == "export_dir" && v == "" {
		return "(home directory)"
	}
	return v
}
