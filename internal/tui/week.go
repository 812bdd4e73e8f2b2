package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/DE4DSHOTplays/habit-tracker/internal/habit"
	"github.com/DE4DSHOTplays/habit-tracker/internal/store"
)

// weekModel is the editable week grid. Edits are staged in memory and
// only persisted when the whole week is saved.
type weekModel struct {
	store   *store.Store
	tracker *habit.Tracker
	width   int
	height  int

	offset  int
	week    habit.Week
	records []habit.Record // staged working copy of the displayed week
	dirty   [7]bool
	cursor  int
	loaded  bool

	formActive bool
	form       *huh.Form

	// Form values live behind pointers so they survive model copies
	// while the form is open.
	fCoded   *bool
	fJunk    *bool
	fWorkout *bool
	fPushups *string
	fStudy   *string
	fWater   *string
	fNotes   *string
}

func newWeekModel(s *store.Store, tr *habit.Tracker) weekModel {
	return weekModel{store: s, tracker: tr}
}

func (w *weekModel) setSize(width, height int) {
	w.width = width
	w.height = height
}

type weekDataMsg struct {
	week habit.Week
}

// load reloads the displayed week from storage, dropping staged edits.
func (w weekModel) load() tea.Cmd {
	tracker := w.tracker
	offset := w.offset
	return func() tea.Msg {
		tracker.Invalidate()
		return weekDataMsg{week: tracker.LoadWeek(offset)}
	}
}

// save persists the staged week. The tracker clamps, scores and merges
// the rows, so the command only has to report the outcome.
func (w weekModel) save() tea.Cmd {
	tracker := w.tracker
	st := w.store
	records := append([]habit.Record(nil), w.records...)
	return func() tea.Msg {
		res, err := tracker.SaveWeek(records, st.Features().FuturePolicy)
		if err != nil {
			return statusMsg{text: "Save failed: " + err.Error(), isError: true}
		}
		return weekSavedMsg{result: res}
	}
}

func (w weekModel) update(msg tea.Msg) (weekModel, tea.Cmd) {
	if w.formActive && w.form != nil {
		return w.updateForm(msg)
	}

	switch msg := msg.(type) {
	case weekDataMsg:
		w.week = msg.week
		w.records = append([]habit.Record(nil), msg.week.Records...)
		w.dirty = [7]bool{}
		w.loaded = true
		if w.cursor >= len(w.records) {
			w.cursor = 0
		}
		return w, nil

	case weekSavedMsg:
		return w, w.load()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if w.cursor > 0 {
				w.cursor--
			}
		case key.Matches(msg, keys.Down):
			if w.cursor < len(w.records)-1 {
				w.cursor++
			}
		case key.Matches(msg, keys.Left):
			w.offset--
			return w, w.load()
		case key.Matches(msg, keys.Right):
			w.offset++
			return w, w.load()
		case key.Matches(msg, keys.Today):
			w.offset = 0
			return w, w.load()
		case key.Matches(msg, keys.Refresh):
			return w, w.load()
		case key.Matches(msg, keys.Save):
			return w, w.save()
		case key.Matches(msg, keys.Enter):
			if len(w.records) > 0 {
				w.openForm()
				return w, w.form.Init()
			}
		}
	}

	return w, nil
}

// --- Day form ---

func (w *weekModel) openForm() {
	r := w.records[w.cursor]
	coded := r.CodedToday
	junk := r.NoJunkFood
	workout := r.WorkoutDone
	pushups := strconv.Itoa(r.Pushups)
	study := formatQty(r.StudyHours)
	water := formatQty(r.WaterLiters)
	notes := r.Notes

	w.fCoded = &coded
	w.fJunk = &junk
	w.fWorkout = &workout
	w.fPushups = &pushups
	w.fStudy = &study
	w.fWater = &water
	w.fNotes = &notes

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Coded today?").
				Value(w.fCoded),
			huh.NewConfirm().
				Title("No junk food?").
				Value(w.fJunk),
			huh.NewConfirm().
				Title("Workout done?").
				Value(w.fWorkout),
			huh.NewInput().
				Title("Pushups").
				Value(w.fPushups),
			huh.NewInput().
				Title("Study hours").
				Value(w.fStudy),
			huh.NewInput().
				Title("Water (liters)").
				Value(w.fWater),
			huh.NewInput().
				Title("Notes").
				Value(w.fNotes),
		).Title(habit.DayLabel(r.Date)),
	).WithShowHelp(true).WithShowErrors(true)
	w.formActive = true
}

func (w weekModel) updateForm(msg tea.Msg) (weekModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		w.formActive = false
		w.form = nil
		return w, nil
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		w.applyForm()
		w.formActive = false
		w.form = nil
	}

	return w, cmd
}

// applyForm stages the form values on the selected day. Numeric inputs
// are parsed leniently and clamped rather than rejected, and the shown
// score is recomputed so the grid previews what a save would persist.
func (w *weekModel) applyForm() {
	r := &w.records[w.cursor]
	r.CodedToday = *w.fCoded
	r.NoJunkFood = *w.fJunk
	r.WorkoutDone = *w.fWorkout
	r.Pushups = parseIntInput(*w.fPushups)
	r.StudyHours = parseFloatInput(*w.fStudy)
	r.WaterLiters = parseFloatInput(*w.fWater)
	r.Notes = strings.TrimSpace(*w.fNotes)
	r.Clamp()
	r.VictoryScore = habit.Score(*r)
	w.dirty[w.cursor] = true
}

func parseIntInput(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func parseFloatInput(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// --- View ---

func (w weekModel) view() string {
	if w.formActive && w.form != nil {
		return activePanelStyle.Render(w.form.View())
	}
	if !w.loaded {
		return panelStyle.Render("Loading week...")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Week of " + w.week.Start.Format("02 Jan 2006")))
	b.WriteString("  ")
	b.WriteString(subtitleStyle.Render(offsetLabel(w.offset)))
	b.WriteString("\n\n")

	b.WriteString(gridHeaderStyle.Render("  DAY          CODE  FOOD  WORK  PUSHUPS  STUDY  WATER  SCORE  NOTES"))
	b.WriteString("\n")

	today := habit.Midnight(time.Now())
	for i, r := range w.records {
		cursor := "  "
		if i == w.cursor {
			cursor = selectedItemStyle.Render("› ")
		}

		label := habit.DayLabel(r.Date)
		if r.Date.Equal(today) {
			label = todayStyle.Render(label)
		} else {
			label = normalItemStyle.Render(label)
		}

		mark := " "
		if w.dirty[i] {
			mark = dirtyStyle.Render("*")
		}

		b.WriteString(cursor)
		b.WriteString(label)
		b.WriteString(mark)
		b.WriteString(" ")
		b.WriteString(fmt.Sprintf("  %s     %s     %s  ", checkbox(r.CodedToday), checkbox(r.NoJunkFood), checkbox(r.WorkoutDone)))
		b.WriteString(fmt.Sprintf("%7d  ", r.Pushups))
		b.WriteString(fmt.Sprintf("%5s  ", formatQty(r.StudyHours)))
		b.WriteString(fmt.Sprintf("%5s  ", formatQty(r.WaterLiters)))
		b.WriteString(scoreStyle(r.VictoryScore).Render(fmt.Sprintf("%5d", r.VictoryScore)))
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(truncate(r.Notes, 24)))
		b.WriteString("\n")
	}

	stats := habit.WeekStats(w.records)
	summary := fmt.Sprintf("Total %d   Avg %.1f   Won %d/%d days",
		stats.TotalScore, stats.AvgScore, stats.CompletedDays, len(w.records))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(summary))

	if w.hasDirty() {
		b.WriteString("   ")
		b.WriteString(dirtyStyle.Render("unsaved edits, press s to save"))
	}

	return panelStyle.Render(b.String())
}

func (w weekModel) hasDirty() bool {
	for _, d := range w.dirty {
		if d {
			return true
		}
	}
	return false
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return "…"
	}
	return string(runes[:maxLen-1]) + "…"
}
