package habit

import (
	"errors"
	"testing"
	"time"
)

// date builds a UTC midnight date, the canonical form records carry.
func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// doneDay is a test helper that builds a record with one habit flag set.
func doneDay(d time.Time, h Habit) Record {
	r := NewRecord(d)
	switch h {
	case HabitCoded:
		r.CodedToday = true
	case HabitNoJunk:
		r.NoJunkFood = true
	case HabitWorkout:
		r.WorkoutDone = true
	}
	return r
}

// ============================================================
// Week window
// ============================================================

func TestWeekOfStartsOnSunday(t *testing.T) {
	// 2026-01-07 is a Wednesday; its week anchors at Sunday 2026-01-04.
	dates, start := WeekOf(date(2026, time.January, 7), 0)
	if !start.Equal(date(2026, time.January, 4)) {
		t.Fatalf("expected anchor 2026-01-04, got %s", start.Format(time.DateOnly))
	}
	if len(dates) != 7 {
		t.Fatalf("expected 7 dates, got %d", len(dates))
	}
	if start.Weekday() != time.Sunday {
		t.Fatalf("anchor should be a Sunday, got %s", start.Weekday())
	}
}

func TestWeekOfConsecutiveDates(t *testing.T) {
	dates, start := WeekOf(date(2026, time.January, 7), 0)
	if !dates[0].Equal(start) {
		t.Fatal("first date should equal the anchor")
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].Equal(dates[i-1].AddDate(0, 0, 1)) {
			t.Fatalf("dates not consecutive at index %d", i)
		}
	}
}

func TestWeekOfAllWeekdaysSameAnchor(t *testing.T) {
	// Every day of the 2026-01-04 week must map back to the same Sunday.
	want := date(2026, time.January, 4)
	for d := 4; d <= 10; d++ {
		_, start := WeekOf(date(2026, time.January, d), 0)
		if !start.Equal(want) {
			t.Fatalf("day %d: expected anchor %s, got %s",
				d, want.Format(time.DateOnly), start.Format(time.DateOnly))
		}
	}
}

func TestWeekOfSundayAnchorsItself(t *testing.T) {
	_, start := WeekOf(date(2026, time.January, 4), 0)
	if !start.Equal(date(2026, time.January, 4)) {
		t.Fatalf("Sunday should anchor its own week, got %s", start.Format(time.DateOnly))
	}
}

func TestWeekOfOffsetsSevenDaysApart(t *testing.T) {
	today := date(2026, time.January, 7)
	for offset := -3; offset <= 3; offset++ {
		_, prev := WeekOf(today, offset-1)
		_, cur := WeekOf(today, offset)
		if !cur.Equal(prev.AddDate(0, 0, 7)) {
			t.Fatalf("offset %d: windows should be exactly 7 days apart", offset)
		}
	}
}

func TestWeekOfCrossesYearBoundary(t *testing.T) {
	// One week before 2026-01-07 reaches back into 2025.
	_, start := WeekOf(date(2026, time.January, 7), -1)
	if !start.Equal(date(2025, time.December, 28)) {
		t.Fatalf("expected anchor 2025-12-28, got %s", start.Format(time.DateOnly))
	}
}

// ============================================================
// Record defaults and clamping
// ============================================================

func TestNewRecordDefaults(t *testing.T) {
	d := date(2026, time.January, 9)
	r := NewRecord(d)
	if !r.Date.Equal(d) {
		t.Fatal("date should be preserved")
	}
	if r.CodedToday || r.NoJunkFood || r.WorkoutDone {
		t.Fatal("flags should default to false")
	}
	if r.Pushups != 0 || r.StudyHours != 0 || r.WaterLiters != 0 {
		t.Fatal("quantities should default to zero")
	}
	if r.Notes != "" {
		t.Fatal("notes should default to empty")
	}
	if r.VictoryScore != 0 {
		t.Fatal("score should default to zero")
	}
}

func TestClampNegatives(t *testing.T) {
	r := NewRecord(date(2026, time.January, 9))
	r.Pushups = -5
	r.StudyHours = -1
	r.WaterLiters = -2
	r.Clamp()
	if r.Pushups != 0 || r.StudyHours != 0 || r.WaterLiters != 0 {
		t.Fatalf("negatives should clamp to zero: %+v", r)
	}
}

func TestClampUpperBounds(t *testing.T) {
	r := NewRecord(date(2026, time.January, 9))
	r.Pushups = 999
	r.StudyHours = 30
	r.WaterLiters = 25
	r.Clamp()
	if r.Pushups != MaxPushups {
		t.Fatalf("expected pushups %d, got %d", MaxPushups, r.Pushups)
	}
	if r.StudyHours != MaxStudyHours {
		t.Fatalf("expected study %.1f, got %.1f", MaxStudyHours, r.StudyHours)
	}
	if r.WaterLiters != MaxWaterLiters {
		t.Fatalf("expected water %.1f, got %.1f", MaxWaterLiters, r.WaterLiters)
	}
}

func TestClampLeavesValidValues(t *testing.T) {
	r := NewRecord(date(2026, time.January, 9))
	r.Pushups = 50
	r.StudyHours = 2.5
	r.WaterLiters = 3
	r.Clamp()
	if r.Pushups != 50 || r.StudyHours != 2.5 || r.WaterLiters != 3 {
		t.Fatalf("in-range values should be untouched: %+v", r)
	}
}

func TestDateKeyRoundTrip(t *testing.T) {
	r := NewRecord(date(2026, time.January, 9))
	if r.DateKey() != "2026-01-09" {
		t.Fatalf("expected 2026-01-09, got %s", r.DateKey())
	}
	parsed, err := ParseDate("2026-01-09")
	if err != nil {
		t.Fatal(err)
	}
	if !parsed.Equal(r.Date) {
		t.Fatal("ParseDate should invert DateKey")
	}
}

func TestParseDateInvalid(t *testing.T) {
	if _, err := ParseDate("09/01/2026"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestMidnightNormalizesZoneAndClock(t *testing.T) {
	zone := time.FixedZone("UTC-5", -5*3600)
	late := time.Date(2026, time.January, 9, 23, 30, 0, 0, zone)
	got := Midnight(late)
	if !got.Equal(date(2026, time.January, 9)) {
		t.Fatalf("expected 2026-01-09 UTC midnight, got %s", got)
	}
	if got.Location() != time.UTC {
		t.Fatal("midnight should be in UTC")
	}
}

func TestMidnightIdempotent(t *testing.T) {
	d := date(2026, time.January, 9)
	if !Midnight(d).Equal(d) {
		t.Fatal("midnight of a midnight should be itself")
	}
}

func TestDayLabel(t *testing.T) {
	// 2026-01-09 is a Friday.
	got := DayLabel(date(2026, time.January, 9))
	if got != "09 JAN FRI" {
		t.Fatalf("expected %q, got %q", "09 JAN FRI", got)
	}
}

// ============================================================
// Record normalization
// ============================================================

func TestNormalizeFillsMissingDates(t *testing.T) {
	dates, _ := WeekOf(date(2026, time.January, 7), 0)
	records := Normalize(dates, nil)
	if len(records) != 7 {
		t.Fatalf("expected 7 records, got %d", len(records))
	}
	for i, r := range records {
		if !r.Date.Equal(dates[i]) {
			t.Fatalf("record %d has wrong date", i)
		}
		if r.CodedToday || r.Pushups != 0 || r.Notes != "" {
			t.Fatalf("record %d should be all defaults: %+v", i, r)
		}
	}
}

func TestNormalizeUsesStoredValues(t *testing.T) {
	dates, _ := WeekOf(date(2026, time.January, 7), 0)
	stored := NewRecord(date(2026, time.January, 6))
	stored.CodedToday = true
	stored.Pushups = 40
	stored.Notes = "good day"

	records := Normalize(dates, []Record{stored})
	found := false
	for _, r := range records {
		if r.DateKey() == "2026-01-06" {
			found = true
			if !r.CodedToday || r.Pushups != 40 || r.Notes != "good day" {
				t.Fatalf("stored values lost: %+v", r)
			}
		}
	}
	if !found {
		t.Fatal("stored date missing from window")
	}
}

func TestNormalizeDropsOutsideDates(t *testing.T) {
	dates, _ := WeekOf(date(2026, time.January, 7), 0)
	outside := NewRecord(date(2025, time.June, 1))
	outside.CodedToday = true

	records := Normalize(dates, []Record{outside})
	if len(records) != 7 {
		t.Fatalf("expected 7 records, got %d", len(records))
	}
	for _, r := range records {
		if r.CodedToday {
			t.Fatal("record outside the window leaked in")
		}
	}
}

// ============================================================
// Score
// ============================================================

func TestScoreExample(t *testing.T) {
	r := NewRecord(date(2026, time.January, 9))
	r.CodedToday = true
	r.WorkoutDone = true
	r.Pushups = 40
	r.StudyHours = 3
	if got := Score(r); got != 80 {
		t.Fatalf("expected 80, got %d", got)
	}
}

func TestScoreNominalMax(t *testing.T) {
	r := NewRecord(date(2026, time.January, 9))
	r.CodedToday = true
	r.NoJunkFood = true
	r.WorkoutDone = true
	r.Pushups = 30
	r.StudyHours = 2
	if got := Score(r); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestScoreZero(t *testing.T) {
	if got := Score(NewRecord(date(2026, time.January, 9))); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestScoreNeverExceedsMax(t *testing.T) {
	r := NewRecord(date(2026, time.January, 9))
	r.CodedToday = true
	r.NoJunkFood = true
	r.WorkoutDone = true
	r.Pushups = MaxPushups
	r.StudyHours = MaxStudyHours
	if got := Score(r); got != MaxScore {
		t.Fatalf("expected cap at %d, got %d", MaxScore, got)
	}
}

func TestScoreFractionalStudyTruncates(t *testing.T) {
	r := NewRecord(date(2026, time.January, 9))
	r.CodedToday = true
	r.StudyHours = 0.5 // 2.5 points; total 32.5 truncates to 32
	if got := Score(r); got != 32 {
		t.Fatalf("expected 32, got %d", got)
	}
}

func TestScoreMonotonic(t *testing.T) {
	base := NewRecord(date(2026, time.January, 9))
	base.Pushups = 10
	base.StudyHours = 1

	bumps := []func(r *Record){
		func(r *Record) { r.CodedToday = true },
		func(r *Record) { r.NoJunkFood = true },
		func(r *Record) { r.WorkoutDone = true },
		func(r *Record) { r.Pushups++ },
		func(r *Record) { r.StudyHours += 0.5 },
	}
	for i, bump := range bumps {
		r := base
		bump(&r)
		if Score(r) < Score(base) {
			t.Fatalf("bump %d decreased the score", i)
		}
	}
}

// ============================================================
// Streaks
// ============================================================

func TestCurrentStreakBreaksAtGap(t *testing.T) {
	today := date(2026, time.January, 9)
	history := []DayFlag{
		{Date: today.AddDate(0, 0, -3), Done: true},
		{Date: today.AddDate(0, 0, -1), Done: true},
		{Date: today, Done: true},
	}
	if got := CurrentStreak(history, today); got != 2 {
		t.Fatalf("expected 2 (gap breaks the run), got %d", got)
	}
}

func TestStreaksEmptyHistory(t *testing.T) {
	today := date(2026, time.January, 9)
	if got := CurrentStreak(nil, today); got != 0 {
		t.Fatalf("expected current 0, got %d", got)
	}
	if got := LongestStreak(nil); got != 0 {
		t.Fatalf("expected longest 0, got %d", got)
	}
}

func TestCurrentStreakSingleToday(t *testing.T) {
	today := date(2026, time.January, 9)
	history := []DayFlag{{Date: today, Done: true}}
	if got := CurrentStreak(history, today); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestCurrentStreakStaleHistory(t *testing.T) {
	today := date(2026, time.January, 9)
	history := []DayFlag{
		{Date: today.AddDate(0, 0, -3), Done: true},
		{Date: today.AddDate(0, 0, -2), Done: true},
	}
	if got := CurrentStreak(history, today); got != 0 {
		t.Fatalf("expected 0 for stale history, got %d", got)
	}
}

func TestCurrentStreakLastEntryYesterday(t *testing.T) {
	today := date(2026, time.January, 9)
	history := []DayFlag{
		{Date: today.AddDate(0, 0, -2), Done: true},
		{Date: today.AddDate(0, 0, -1), Done: true},
	}
	if got := CurrentStreak(history, today); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestCurrentStreakToleratesFalseToday(t *testing.T) {
	// Today is not over; a false entry for it falls through to yesterday's run.
	today := date(2026, time.January, 9)
	history := []DayFlag{
		{Date: today.AddDate(0, 0, -2), Done: true},
		{Date: today.AddDate(0, 0, -1), Done: true},
		{Date: today, Done: false},
	}
	if got := CurrentStreak(history, today); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestCurrentStreakFalseYesterdayBreaks(t *testing.T) {
	today := date(2026, time.January, 9)
	history := []DayFlag{
		{Date: today.AddDate(0, 0, -2), Done: true},
		{Date: today.AddDate(0, 0, -1), Done: false},
		{Date: today, Done: true},
	}
	if got := CurrentStreak(history, today); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestLongestStreakBasic(t *testing.T) {
	d := date(2026, time.January, 1)
	history := []DayFlag{
		{Date: d, Done: true},
		{Date: d.AddDate(0, 0, 1), Done: true},
		{Date: d.AddDate(0, 0, 2), Done: false},
		{Date: d.AddDate(0, 0, 3), Done: true},
		{Date: d.AddDate(0, 0, 4), Done: true},
		{Date: d.AddDate(0, 0, 5), Done: true},
	}
	if got := LongestStreak(history); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestLongestStreakIgnoresGaps(t *testing.T) {
	// Unlogged days do not break a run for the historical maximum.
	d := date(2026, time.January, 1)
	history := []DayFlag{
		{Date: d, Done: true},
		{Date: d.AddDate(0, 0, 10), Done: true},
	}
	if got := LongestStreak(history); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestLongestStreakIndependentOfToday(t *testing.T) {
	// A long-dead run still counts for the historical maximum even when the
	// current streak has gone stale.
	today := date(2026, time.June, 1)
	d := date(2026, time.January, 1)
	history := []DayFlag{
		{Date: d, Done: true},
		{Date: d.AddDate(0, 0, 1), Done: true},
		{Date: d.AddDate(0, 0, 2), Done: true},
	}
	if got := CurrentStreak(history, today); got != 0 {
		t.Fatalf("expected current 0, got %d", got)
	}
	if got := LongestStreak(history); got != 3 {
		t.Fatalf("expected longest 3, got %d", got)
	}
}

func TestFlagHistoryProjection(t *testing.T) {
	d := date(2026, time.January, 5)
	records := []Record{
		doneDay(d, HabitCoded),
		doneDay(d.AddDate(0, 0, 1), HabitWorkout),
	}
	flags := FlagHistory(records, HabitCoded)
	if len(flags) != 2 {
		t.Fatalf("expected 2 flags, got %d", len(flags))
	}
	if !flags[0].Done || flags[1].Done {
		t.Fatalf("projection wrong: %+v", flags)
	}
}

func TestHabitStrings(t *testing.T) {
	if HabitCoded.String() != "Coded" {
		t.Fatalf("unexpected name %q", HabitCoded.String())
	}
	if HabitNoJunk.String() != "No junk food" {
		t.Fatalf("unexpected name %q", HabitNoJunk.String())
	}
	if HabitWorkout.String() != "Workout" {
		t.Fatalf("unexpected name %q", HabitWorkout.String())
	}
}

// ============================================================
// Aggregation
// ============================================================

func TestWeekStatsAllZero(t *testing.T) {
	dates, _ := WeekOf(date(2026, time.January, 7), 0)
	st := WeekStats(Normalize(dates, nil))
	if st.TotalScore != 0 || st.AvgScore != 0 || st.CompletedDays != 0 {
		t.Fatalf("expected zero stats, got %+v", st)
	}
}

func TestWeekStatsEmpty(t *testing.T) {
	st := WeekStats(nil)
	if st != (Stats{}) {
		t.Fatalf("expected zero value, got %+v", st)
	}
}

func TestWeekStatsAggregates(t *testing.T) {
	d := date(2026, time.January, 5)

	a := NewRecord(d)
	a.CodedToday = true
	a.WorkoutDone = true
	a.Pushups = 40
	a.StudyHours = 1.5
	a.WaterLiters = 2
	a.VictoryScore = Score(a) // 30+10+30+7.5 = 77

	b := NewRecord(d.AddDate(0, 0, 1))
	b.NoJunkFood = true
	b.Pushups = 10
	b.StudyHours = 1
	b.WaterLiters = 1.5
	b.VictoryScore = Score(b) // 20+10+5 = 35

	st := WeekStats([]Record{a, b})
	if st.TotalScore != 112 {
		t.Fatalf("expected total 112, got %d", st.TotalScore)
	}
	if st.AvgScore != 56.0 {
		t.Fatalf("expected avg 56.0, got %v", st.AvgScore)
	}
	if st.CompletedDays != 2 {
		t.Fatalf("expected 2 completed days, got %d", st.CompletedDays)
	}
	if st.CodedDays != 1 || st.CleanDays != 1 || st.WorkoutDays != 1 {
		t.Fatalf("habit counts wrong: %+v", st)
	}
	if st.TotalPushups != 50 {
		t.Fatalf("expected 50 pushups, got %d", st.TotalPushups)
	}
	if st.TotalStudy != 2.5 {
		t.Fatalf("expected 2.5 study hours, got %v", st.TotalStudy)
	}
	if st.TotalWater != 3.5 {
		t.Fatalf("expected 3.5 liters, got %v", st.TotalWater)
	}
}

func TestWeekStatsAverageRounding(t *testing.T) {
	d := date(2026, time.January, 5)
	records := make([]Record, 3)
	for i := range records {
		records[i] = NewRecord(d.AddDate(0, 0, i))
	}
	records[0].VictoryScore = 50
	records[1].VictoryScore = 50
	records[2].VictoryScore = 100
	// 200/3 = 66.666... rounds to 66.7
	st := WeekStats(records)
	if st.AvgScore != 66.7 {
		t.Fatalf("expected 66.7, got %v", st.AvgScore)
	}
}

// ============================================================
// Tracker
// ============================================================

type fakeGateway struct {
	records  []Record
	readErr  error
	writeErr error
	reads    int
	writes   int
}

func (g *fakeGateway) ReadAll() ([]Record, error) {
	g.reads++
	if g.readErr != nil {
		return nil, g.readErr
	}
	return append([]Record(nil), g.records...), nil
}

func (g *fakeGateway) WriteAll(records []Record) error {
	g.writes++
	if g.writeErr != nil {
		return g.writeErr
	}
	g.records = append([]Record(nil), records...)
	return nil
}

func newTestTracker(t *testing.T, gw Gateway, now time.Time) *Tracker {
	t.Helper()
	tr := NewTracker(gw, nil)
	tr.now = func() time.Time { return now }
	return tr
}

func TestLoadWeekEmptyStore(t *testing.T) {
	tr := newTestTracker(t, &fakeGateway{}, date(2026, time.January, 7))
	week := tr.LoadWeek(0)
	if !week.Start.Equal(date(2026, time.January, 4)) {
		t.Fatalf("expected start 2026-01-04, got %s", week.Start.Format(time.DateOnly))
	}
	if len(week.Records) != 7 {
		t.Fatalf("expected 7 records, got %d", len(week.Records))
	}
}

func TestLoadWeekMergesStored(t *testing.T) {
	stored := NewRecord(date(2026, time.January, 6))
	stored.Pushups = 25
	gw := &fakeGateway{records: []Record{stored}}
	tr := newTestTracker(t, gw, date(2026, time.January, 7))

	week := tr.LoadWeek(0)
	var got *Record
	for i := range week.Records {
		if week.Records[i].DateKey() == "2026-01-06" {
			got = &week.Records[i]
		}
	}
	if got == nil || got.Pushups != 25 {
		t.Fatalf("stored record should appear in the window: %+v", got)
	}
}

func TestLoadWeekReadFailureDegrades(t *testing.T) {
	gw := &fakeGateway{readErr: errors.New("boom")}
	tr := newTestTracker(t, gw, date(2026, time.January, 7))
	week := tr.LoadWeek(0)
	if len(week.Records) != 7 {
		t.Fatalf("expected 7 default records despite read failure, got %d", len(week.Records))
	}
}

func TestHistoryReadFailureReturnsEmpty(t *testing.T) {
	gw := &fakeGateway{readErr: errors.New("boom")}
	tr := newTestTracker(t, gw, date(2026, time.January, 7))
	history := tr.History()
	if history == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(history) != 0 {
		t.Fatalf("expected no records, got %d", len(history))
	}
}

func TestSaveWeekScoresAndClamps(t *testing.T) {
	gw := &fakeGateway{}
	tr := newTestTracker(t, gw, date(2026, time.January, 7))

	edit := NewRecord(date(2026, time.January, 6))
	edit.CodedToday = true
	edit.Pushups = 999 // clamps to 200, scores as 30

	res, err := tr.SaveWeek([]Record{edit}, FutureSkip)
	if err != nil {
		t.Fatal(err)
	}
	if res.Saved != 1 {
		t.Fatalf("expected 1 saved, got %d", res.Saved)
	}
	if len(gw.records) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(gw.records))
	}
	got := gw.records[0]
	if got.Pushups != MaxPushups {
		t.Fatalf("expected clamped pushups, got %d", got.Pushups)
	}
	if got.VictoryScore != 60 {
		t.Fatalf("expected score 60, got %d", got.VictoryScore)
	}
}

func TestSaveWeekMergePreservesOtherDates(t *testing.T) {
	old := NewRecord(date(2025, time.December, 1))
	old.Notes = "keep me"
	gw := &fakeGateway{records: []Record{old}}
	tr := newTestTracker(t, gw, date(2026, time.January, 7))

	edit := NewRecord(date(2026, time.January, 6))
	edit.CodedToday = true
	if _, err := tr.SaveWeek([]Record{edit}, FutureSkip); err != nil {
		t.Fatal(err)
	}

	if len(gw.records) != 2 {
		t.Fatalf("expected 2 records after merge, got %d", len(gw.records))
	}
	// Merge output is sorted by date.
	if gw.records[0].Notes != "keep me" {
		t.Fatal("untouched date should be preserved and sorted first")
	}
	if gw.records[1].DateKey() != "2026-01-06" {
		t.Fatalf("edited date missing: %s", gw.records[1].DateKey())
	}
}

func TestSaveWeekReplacesSameDate(t *testing.T) {
	old := NewRecord(date(2026, time.January, 6))
	old.Pushups = 10
	gw := &fakeGateway{records: []Record{old}}
	tr := newTestTracker(t, gw, date(2026, time.January, 7))

	edit := NewRecord(date(2026, time.January, 6))
	edit.Pushups = 99
	tr.SaveWeek([]Record{edit}, FutureSkip)

	if len(gw.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(gw.records))
	}
	if gw.records[0].Pushups != 99 {
		t.Fatalf("expected replacement, got pushups=%d", gw.records[0].Pushups)
	}
}

func TestSaveWeekIdempotent(t *testing.T) {
	gw := &fakeGateway{}
	tr := newTestTracker(t, gw, date(2026, time.January, 7))

	edit := NewRecord(date(2026, time.January, 5))
	edit.WorkoutDone = true
	tr.SaveWeek([]Record{edit}, FutureSkip)
	first := append([]Record(nil), gw.records...)

	tr.SaveWeek([]Record{edit}, FutureSkip)
	if len(gw.records) != len(first) {
		t.Fatalf("second save changed record count: %d vs %d", len(gw.records), len(first))
	}
	for i := range first {
		if gw.records[i] != first[i] {
			t.Fatalf("second save changed record %d", i)
		}
	}
}

func TestSaveWeekSkipsFuture(t *testing.T) {
	gw := &fakeGateway{}
	tr := newTestTracker(t, gw, date(2026, time.January, 7))

	past := NewRecord(date(2026, time.January, 6))
	future := NewRecord(date(2026, time.January, 8))
	res, err := tr.SaveWeek([]Record{past, future}, FutureSkip)
	if err != nil {
		t.Fatal(err)
	}
	if res.Saved != 1 || res.SkippedFuture != 1 {
		t.Fatalf("expected 1 saved and 1 skipped, got %+v", res)
	}
	if len(gw.records) != 1 || gw.records[0].DateKey() != "2026-01-06" {
		t.Fatal("future row should not be persisted")
	}
}

func TestSaveWeekAllowsFutureWithPolicy(t *testing.T) {
	gw := &fakeGateway{}
	tr := newTestTracker(t, gw, date(2026, time.January, 7))

	future := NewRecord(date(2026, time.January, 8))
	res, err := tr.SaveWeek([]Record{future}, FutureAllow)
	if err != nil {
		t.Fatal(err)
	}
	if res.Saved != 1 || res.SkippedFuture != 0 {
		t.Fatalf("expected future row saved, got %+v", res)
	}
	if len(gw.records) != 1 {
		t.Fatal("future row should be persisted under FutureAllow")
	}
}

func TestSaveWeekTodayIsNotFuture(t *testing.T) {
	gw := &fakeGateway{}
	tr := newTestTracker(t, gw, date(2026, time.January, 7))

	today := NewRecord(date(2026, time.January, 7))
	res, _ := tr.SaveWeek([]Record{today}, FutureSkip)
	if res.Saved != 1 || res.SkippedFuture != 0 {
		t.Fatalf("today should be saveable, got %+v", res)
	}
}

func TestSaveWeekWriteFailure(t *testing.T) {
	gw := &fakeGateway{writeErr: errors.New("disk full")}
	tr := newTestTracker(t, gw, date(2026, time.January, 7))

	edit := NewRecord(date(2026, time.January, 6))
	res, err := tr.SaveWeek([]Record{edit}, FutureSkip)
	if err == nil {
		t.Fatal("expected write error")
	}
	if res.Saved != 0 {
		t.Fatalf("failed save should report 0 saved, got %d", res.Saved)
	}
}

func TestSaveWeekReadFailureAborts(t *testing.T) {
	gw := &fakeGateway{readErr: errors.New("boom")}
	tr := newTestTracker(t, gw, date(2026, time.January, 7))

	edit := NewRecord(date(2026, time.January, 6))
	_, err := tr.SaveWeek([]Record{edit}, FutureSkip)
	if err == nil {
		t.Fatal("expected read error to abort the save")
	}
	// Nothing may be written over history the tracker could not see.
	if gw.writes != 0 {
		t.Fatalf("expected no write after failed read, got %d", gw.writes)
	}
}

func TestTrackerCachesReads(t *testing.T) {
	gw := &fakeGateway{}
	tr := newTestTracker(t, gw, date(2026, time.January, 7))

	tr.History()
	tr.History()
	if gw.reads != 1 {
		t.Fatalf("expected 1 gateway read within TTL, got %d", gw.reads)
	}
}

func TestTrackerCacheExpires(t *testing.T) {
	gw := &fakeGateway{}
	current := date(2026, time.January, 7)
	tr := NewTracker(gw, nil)
	tr.now = func() time.Time { return current }

	tr.History()
	current = current.Add(cacheTTL + time.Second)
	tr.History()
	if gw.reads != 2 {
		t.Fatalf("expected re-read after TTL, got %d reads", gw.reads)
	}
}

func TestInvalidateForcesReread(t *testing.T) {
	gw := &fakeGateway{}
	tr := newTestTracker(t, gw, date(2026, time.January, 7))

	tr.History()
	tr.Invalidate()
	tr.History()
	if gw.reads != 2 {
		t.Fatalf("expected re-read after invalidation, got %d reads", gw.reads)
	}
}

func TestSaveWeekInvalidatesCache(t *testing.T) {
	gw := &fakeGateway{}
	tr := newTestTracker(t, gw, date(2026, time.January, 7))

	tr.History()
	edit := NewRecord(date(2026, time.January, 6))
	edit.Pushups = 15
	tr.SaveWeek([]Record{edit}, FutureSkip)

	history := tr.History()
	if len(history) != 1 || history[0].Pushups != 15 {
		t.Fatal("history after save should reflect the write")
	}
}

func TestHistoryReturnsCopies(t *testing.T) {
	stored := NewRecord(date(2026, time.January, 6))
	gw := &fakeGateway{records: []Record{stored}}
	tr := newTestTracker(t, gw, date(2026, time.January, 7))

	first := tr.History()
	first[0].Pushups = 77
	second := tr.History()
	if second[0].Pushups == 77 {
		t.Fatal("mutating a returned history should not poison the cache")
	}
}

func TestMergeByDateSorts(t *testing.T) {
	h1 := NewRecord(date(2026, time.January, 10))
	h2 := NewRecord(date(2026, time.January, 2))
	b1 := NewRecord(date(2026, time.January, 5))

	merged := MergeByDate([]Record{h1, h2}, []Record{b1})
	if len(merged) != 3 {
		t.Fatalf("expected 3 records, got %d", len(merged))
	}
	for i := 1; i < len(merged); i++ {
		if merged[i].Date.Before(merged[i-1].Date) {
			t.Fatal("merge output should be sorted by date")
		}
	}
}
