package habit

import "time"

// Habit identifies one of the boolean habits tracked per day.
type Habit int

const (
	HabitCoded Habit = iota
	HabitNoJunk
	HabitWorkout
)

func (h Habit) String() string {
	switch h {
	case HabitCoded:
		return "Coded"
	case HabitNoJunk:
		return "No junk food"
	case HabitWorkout:
		return "Workout"
	default:
		return "Unknown"
	}
}

// Done reports whether the habit was completed on the given day.
func (h Habit) Done(r Record) bool {
	switch h {
	case HabitCoded:
		return r.CodedToday
	case HabitNoJunk:
		return r.NoJunkFood
	case HabitWorkout:
		return r.WorkoutDone
	default:
		return false
	}
}

// DayFlag is one day's outcome for a single habit.
type DayFlag struct {
	Date time.Time
	Done bool
}

// FlagHistory projects records onto a single habit. The input order is
// preserved; callers pass records already sorted by date.
func FlagHistory(records []Record, h Habit) []DayFlag {
	flags := make([]DayFlag, 0, len(records))
	for _, r := range records {
		flags = append(flags, DayFlag{Date: r.Date, Done: h.Done(r)})
	}
	return flags
}

// CurrentStreak counts consecutive completed days ending at the most recent
// entry, walking backward from it. A calendar gap of more than one day
// between consecutive entries breaks the run, and a history whose last entry
// is more than one day before today is stale and scores zero. A false entry
// on today itself is tolerated: the day is not over yet, so the count falls
// through to the run ending yesterday.
func CurrentStreak(history []DayFlag, today time.Time) int {
	if len(history) == 0 {
		return 0
	}
	today = Midnight(today)
	last := history[len(history)-1]
	if daysBetween(last.Date, today) > 1 {
		return 0
	}
	streak := 0
	for i := len(history) - 1; i >= 0; i-- {
		f := history[i]
		if i < len(history)-1 && daysBetween(f.Date, history[i+1].Date) > 1 {
			break
		}
		if f.Done {
			streak++
			continue
		}
		if f.Date.Equal(today) && streak == 0 {
			continue
		}
		break
	}
	return streak
}

// LongestStreak is the longest run of consecutive completed entries anywhere
// in the history. Unlike CurrentStreak it ignores calendar gaps between
// entries: unlogged days neither extend nor break a run.
func LongestStreak(history []DayFlag) int {
	longest, run := 0, 0
	for _, f := range history {
		if f.Done {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}

// daysBetween returns the whole calendar days from earlier to later. Both
// arguments must be midnight-normalized.
func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier) / (24 * time.Hour))
}
