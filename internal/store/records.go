package store

import (
	"database/sql"
	"fmt"

	"github.com/DE4DSHOTplays/habit-tracker/internal/habit"
)

// ReadAll returns every logged day ordered by date. Rows whose date cannot
// be parsed are skipped; any other missing cell falls back to the record
// defaults.
func (s *Store) ReadAll() ([]habit.Record, error) {
	rows, err := s.db.Query(`
		SELECT log_date, coded_today, no_junk_food, workout_done,
		       pushups, study_hours, water_liters, notes, victory_score
		FROM habit_log ORDER BY log_date`)
	if err != nil {
		return nil, fmt.Errorf("read habit log: %w", err)
	}
	defer rows.Close()

	var records []habit.Record
	for rows.Next() {
		var dateStr string
		var coded, junk, workout, pushups, score sql.NullInt64
		var study, water sql.NullFloat64
		var notes sql.NullString
		if err := rows.Scan(&dateStr, &coded, &junk, &workout,
			&pushups, &study, &water, &notes, &score); err != nil {
			return nil, err
		}
		date, err := habit.ParseDate(dateStr)
		if err != nil {
			continue
		}
		r := habit.NewRecord(date)
		r.CodedToday = coded.Int64 != 0
		r.NoJunkFood = junk.Int64 != 0
		r.WorkoutDone = workout.Int64 != 0
		r.Pushups = int(pushups.Int64)
		r.StudyHours = study.Float64
		r.WaterLiters = water.Float64
		r.Notes = notes.String
		r.VictoryScore = int(score.Int64)
		records = append(records, r)
	}
	return records, rows.Err()
}

// WriteAll replaces the whole log with the given records in one transaction.
// Merge-by-date happens in the caller; this is a plain full-table swap.
func (s *Store) WriteAll(records []habit.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin write: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM habit_log`); err != nil {
		return fmt.Errorf("clear habit log: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO habit_log (log_date, coded_today, no_junk_food, workout_done,
		                       pushups, study_hours, water_liters, notes, victory_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(
			r.DateKey(), boolToInt(r.CodedToday), boolToInt(r.NoJunkFood),
			boolToInt(r.WorkoutDone), r.Pushups, r.StudyHours, r.WaterLiters,
			r.Notes, r.VictoryScore,
		); err != nil {
			return fmt.Errorf("insert %s: %w", r.DateKey(), err)
		}
	}
	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
