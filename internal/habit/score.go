package habit

// MaxScore is the ceiling of the victory score.
const MaxScore = 100

// Score weights: flat bonuses for the three flags, 1 point per pushup up to
// 30, 5 points per study hour up to 10. The terms sum to at most 100.
const (
	codedPoints      = 30
	noJunkPoints     = 20
	workoutPoints    = 10
	pushupPointsMax  = 30
	studyPointsPerHr = 5
	studyPointsMax   = 10
)

// Score computes the victory score for one day's inputs. Numeric fields must
// already be clamped to their domains; the result is always in [0, MaxScore].
// The study term can be fractional, so the total truncates toward zero.
func Score(r Record) int {
	s := 0.0
	if r.CodedToday {
		s += codedPoints
	}
	if r.NoJunkFood {
		s += noJunkPoints
	}
	if r.WorkoutDone {
		s += workoutPoints
	}
	s += min(float64(r.Pushups), pushupPointsMax)
	s += min(r.StudyHours*studyPointsPerHr, studyPointsMax)
	return int(min(s, MaxScore))
}
