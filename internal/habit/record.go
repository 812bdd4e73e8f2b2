// Package habit holds the day-log domain: the daily record and its derived
// victory score, week windowing, streak analysis, and the tracker that runs
// the read-compute-write cycle against a storage gateway.
package habit

import (
	"strings"
	"time"
)

// Numeric field domains. Out-of-range input is clamped to the nearest
// boundary, never rejected.
const (
	MaxPushups     = 200
	MaxStudyHours  = 24.0
	MaxWaterLiters = 20.0
)

// Record is one day's habit log. Date is the unique key; VictoryScore is
// derived from the other fields on save and is never edited directly.
type Record struct {
	Date         time.Time
	CodedToday   bool
	NoJunkFood   bool
	WorkoutDone  bool
	Pushups      int
	StudyHours   float64
	WaterLiters  float64
	Notes        string
	VictoryScore int
}

// NewRecord returns the fully-defaulted record for a date. Every path that
// materializes a record (the normalizer, the sqlite scan, the sheet parse)
// starts here, so default policy lives in one place.
func NewRecord(date time.Time) Record {
	return Record{Date: Midnight(date)}
}

// Clamp forces the numeric fields into their valid domains.
func (r *Record) Clamp() {
	r.Pushups = min(max(r.Pushups, 0), MaxPushups)
	r.StudyHours = min(max(r.StudyHours, 0), MaxStudyHours)
	r.WaterLiters = min(max(r.WaterLiters, 0), MaxWaterLiters)
}

// DateKey returns the canonical YYYY-MM-DD key used for merging and storage.
func (r Record) DateKey() string {
	return r.Date.Format(time.DateOnly)
}

// ParseDate parses a YYYY-MM-DD key into a calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

// Midnight truncates a timestamp to its calendar date. The civil date is
// taken in the timestamp's own location and pinned to UTC so that date
// arithmetic stays DST-free.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayLabel renders a date the way the grid and the export show it,
// e.g. "09 JAN FRI".
func DayLabel(date time.Time) string {
	return strings.ToUpper(date.Format("02 Jan Mon"))
}
