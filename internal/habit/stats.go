package habit

import "math"

// Stats aggregates a set of daily records, typically one week.
type Stats struct {
	TotalScore    int
	AvgScore      float64
	CompletedDays int // days scoring above zero
	CodedDays     int
	CleanDays     int
	WorkoutDays   int
	TotalPushups  int
	TotalStudy    float64
	TotalWater    float64
}

// WeekStats computes aggregate statistics over the given records. Averages
// and hour/liter totals are rounded to one decimal place. An empty input
// yields the zero value.
func WeekStats(records []Record) Stats {
	var st Stats
	if len(records) == 0 {
		return st
	}
	for _, r := range records {
		st.TotalScore += r.VictoryScore
		if r.VictoryScore > 0 {
			st.CompletedDays++
		}
		if r.CodedToday {
			st.CodedDays++
		}
		if r.NoJunkFood {
			st.CleanDays++
		}
		if r.WorkoutDone {
			st.WorkoutDays++
		}
		st.TotalPushups += r.Pushups
		st.TotalStudy += r.StudyHours
		st.TotalWater += r.WaterLiters
	}
	st.AvgScore = round1(float64(st.TotalScore) / float64(len(records)))
	st.TotalStudy = round1(st.TotalStudy)
	st.TotalWater = round1(st.TotalWater)
	return st
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
