package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/DE4DSHOTplays/habit-tracker/internal/habit"
)

// Header is the exported column layout: the human-readable day label
// followed by the record fields.
var Header = []string{
	"day", "log_date", "coded_today", "no_junk_food", "workout_done",
	"pushups", "study_hours", "water_liters", "victory_score", "notes",
}

func ToCSV(records []habit.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(Header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			habit.DayLabel(r.Date),
			r.DateKey(),
			strconv.FormatBool(r.CodedToday),
			strconv.FormatBool(r.NoJunkFood),
			strconv.FormatBool(r.WorkoutDone),
			strconv.Itoa(r.Pushups),
			formatQty(r.StudyHours),
			formatQty(r.WaterLiters),
			strconv.Itoa(r.VictoryScore),
			r.Notes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatQty(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
