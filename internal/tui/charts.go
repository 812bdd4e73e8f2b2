package tui

import (
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DE4DSHOTplays/habit-tracker/internal/habit"
	"github.com/DE4DSHOTplays/habit-tracker/internal/store"
)

type chartMode int

const (
	chartMonthly chartMode = iota
	chartPower
)

// powerWindow is how many trailing days the power curve covers.
const powerWindow = 60

// chartsModel renders victory scores as a monthly bar chart or as a
// rolling power curve.
type chartsModel struct {
	tracker *habit.Tracker
	store   *store.Store
	width   int
	height  int

	mode        chartMode
	monthOffset int // months relative to the current one; 0 is this month
	history     []habit.Record
	features    store.Features
	loaded      bool

	bar   barchart.Model
	spark sparkline.Model
}

func newChartsModel(s *store.Store, tr *habit.Tracker) chartsModel {
	return chartsModel{
		store:   s,
		tracker: tr,
		bar:     barchart.New(60, 12),
		spark:   sparkline.New(60, 10),
	}
}

func (m *chartsModel) setSize(w, h int) {
	m.width = w
	m.height = h
	if m.loaded {
		m.buildCharts()
	}
}

type chartsDataMsg struct {
	history  []habit.Record
	features store.Features
}

func (m chartsModel) refresh() tea.Cmd {
	tracker := m.tracker
	st := m.store
	return func() tea.Msg {
		return chartsDataMsg{
			history:  tracker.History(),
			features: st.Features(),
		}
	}
}

func (m chartsModel) update(msg tea.Msg) (chartsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chartsDataMsg:
		m.history = msg.history
		m.features = msg.features
		m.loaded = true
		m.buildCharts()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if m.mode == chartMonthly {
				m.monthOffset--
				m.buildCharts()
			}
		case key.Matches(msg, keys.Right):
			if m.mode == chartMonthly {
				m.monthOffset++
				m.buildCharts()
			}
		case key.Matches(msg, keys.Today):
			m.monthOffset = 0
			m.buildCharts()
		case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
			if m.mode == chartMonthly {
				m.mode = chartPower
			} else {
				m.mode = chartMonthly
			}
		case key.Matches(msg, keys.Refresh):
			return m, m.refresh()
		}
	}

	return m, nil
}

// monthStart returns the first day of the displayed month.
func (m chartsModel) monthStart() time.Time {
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, m.monthOffset, 0)
}

func (m *chartsModel) buildCharts() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if m.height > 30 {
		chartHeight = 16
	}

	scores := make(map[time.Time]int, len(m.history))
	for _, r := range m.history {
		scores[r.Date] = r.VictoryScore
	}

	// Monthly bars, one per calendar day.
	first := m.monthStart()
	next := first.AddDate(0, 1, 0)

	m.bar = barchart.New(chartWidth, chartHeight)
	var bars []barchart.BarData
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		score := scores[d]
		values := []barchart.BarValue{{Name: "score", Value: float64(score), Style: barStyle}}
		if score == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: barEmptyStyle}}
		}
		bars = append(bars, barchart.BarData{
			Label:  fmt.Sprintf("%02d", d.Day()),
			Values: values,
		})
	}
	m.bar.PushAll(bars)
	m.bar.Draw()

	// Power curve over the trailing window, oldest first.
	m.spark = sparkline.New(chartWidth, chartHeight-2)
	today := habit.Midnight(time.Now())
	for i := powerWindow - 1; i >= 0; i-- {
		m.spark.Push(float64(scores[today.AddDate(0, 0, -i)]))
	}
	m.spark.Draw()
}

func (m chartsModel) view() string {
	if !m.loaded {
		return panelStyle.Render("Loading charts...")
	}

	monthlyTab := inactiveTabStyle.Render("Monthly")
	powerTab := inactiveTabStyle.Render("Power")
	if m.mode == chartMonthly {
		monthlyTab = activeTabStyle.Render("Monthly")
	} else {
		powerTab = activeTabStyle.Render("Power")
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, monthlyTab, powerTab)

	var label string
	if m.mode == chartMonthly {
		label = m.monthStart().Format("January 2006")
	} else {
		label = fmt.Sprintf("last %d days", powerWindow)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Charts"), "  ", modeTabs, "  ", mutedStyle.Render(label),
	)

	var chartView string
	switch {
	case m.mode == chartMonthly && !m.features.MonthlyChart:
		chartView = mutedStyle.Render("The monthly chart is turned off in Settings.")
	case m.mode == chartPower && !m.features.PowerChart:
		chartView = mutedStyle.Render("The power chart is turned off in Settings.")
	case m.mode == chartMonthly:
		chartView = m.bar.View()
	default:
		chartView = highlightStyle.Render(m.spark.View())
	}

	nav := mutedStyle.Render("  ↑/↓: switch chart  ←/→: month  t: current")

	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", chartView, "", nav),
	)
}
