package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/DE4DSHOTplays/habit-tracker/internal/habit"
)

type jsonExport struct {
	ExportedAt string    `json:"exported_at"`
	Count      int       `json:"count"`
	Days       []jsonDay `json:"days"`
}

type jsonDay struct {
	Day          string  `json:"day"`
	LogDate      string  `json:"log_date"`
	CodedToday   bool    `json:"coded_today"`
	NoJunkFood   bool    `json:"no_junk_food"`
	WorkoutDone  bool    `json:"workout_done"`
	Pushups      int     `json:"pushups"`
	StudyHours   float64 `json:"study_hours"`
	WaterLiters  float64 `json:"water_liters"`
	VictoryScore int     `json:"victory_score"`
	Notes        string  `json:"notes,omitempty"`
}

func ToJSON(records []habit.Record, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(records),
	}

	for _, r := range records {
		export.Days = append(export.Days, jsonDay{
			Day:          habit.DayLabel(r.Date),
			LogDate:      r.DateKey(),
			CodedToday:   r.CodedToday,
			NoJunkFood:   r.NoJunkFood,
			WorkoutDone:  r.WorkoutDone,
			Pushups:      r.Pushups,
			StudyHours:   r.StudyHours,
			WaterLiters:  r.WaterLiters,
			VictoryScore: r.VictoryScore,
			Notes:        r.Notes,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
