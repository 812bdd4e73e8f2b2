package habit

import "time"

// WeekOf returns the seven dates (Sunday through Saturday) of the week
// containing today shifted by offsetWeeks, plus the anchor Sunday. Positive
// offsets move into the future, negative into the past, zero is this week.
func WeekOf(today time.Time, offsetWeeks int) ([]time.Time, time.Time) {
	shifted := Midnight(today).AddDate(0, 0, 7*offsetWeeks)
	sunday := shifted.AddDate(0, 0, -int(shifted.Weekday()))

	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = sunday.AddDate(0, 0, i)
	}
	return dates, sunday
}

// Normalize produces exactly one fully-populated record per target date, in
// target order. Stored records are matched by exact date key; a missing day
// is synthesized with defaults, and stored dates outside the target window
// are dropped.
func Normalize(dates []time.Time, stored []Record) []Record {
	byDate := make(map[string]Record, len(stored))
	for _, r := range stored {
		byDate[r.DateKey()] = r
	}

	out := make([]Record, 0, len(dates))
	for _, d := range dates {
		d = Midnight(d)
		if r, ok := byDate[d.Format(time.DateOnly)]; ok {
			r.Date = d
			out = append(out, r)
			continue
		}
		out = append(out, NewRecord(d))
	}
	return out
}
