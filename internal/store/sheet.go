package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/DE4DSHOTplays/habit-tracker/internal/habit"
)

// sheetHeader is the column layout of the flat-file sheet, one row per day.
var sheetHeader = []string{
	"log_date", "coded_today", "no_junk_food", "workout_done",
	"pushups", "study_hours", "water_liters", "notes", "victory_score",
}

const sheetBackups = 3

// SheetStore keeps the habit log in a single CSV file, read and written
// whole, with rotated local backups. It serves the spreadsheet-style
// backend: same row shape and whole-sheet update semantics.
type SheetStore struct {
	path string
}

func NewSheet(path string) (*SheetStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sheet directory: %w", err)
	}
	return &SheetStore{path: path}, nil
}

// ReadAll parses the whole sheet. A missing file means no records yet;
// malformed cells fall back to the record defaults instead of failing
// the read.
func (s *SheetStore) ReadAll() ([]habit.Record, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse sheet: %w", err)
	}

	var records []habit.Record
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue // header
		}
		date, err := habit.ParseDate(cell(row, 0))
		if err != nil {
			continue
		}
		r := habit.NewRecord(date)
		r.CodedToday = cellBool(row, 1)
		r.NoJunkFood = cellBool(row, 2)
		r.WorkoutDone = cellBool(row, 3)
		r.Pushups = cellInt(row, 4)
		r.StudyHours = cellFloat(row, 5)
		r.WaterLiters = cellFloat(row, 6)
		r.Notes = cell(row, 7)
		r.VictoryScore = cellInt(row, 8)
		records = append(records, r)
	}
	return records, nil
}

// WriteAll replaces the sheet: the new content lands in a temp file, the
// old sheet rotates into .bak.1..3, then the temp file takes its place.
func (s *SheetStore) WriteAll(records []habit.Record) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".sheet-*.csv")
	if err != nil {
		return fmt.Errorf("create temp sheet: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(sheetHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.DateKey(),
			strconv.FormatBool(r.CodedToday),
			strconv.FormatBool(r.NoJunkFood),
			strconv.FormatBool(r.WorkoutDone),
			strconv.Itoa(r.Pushups),
			strconv.FormatFloat(r.StudyHours, 'f', -1, 64),
			strconv.FormatFloat(r.WaterLiters, 'f', -1, 64),
			r.Notes,
			strconv.Itoa(r.VictoryScore),
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("write row %s: %w", r.DateKey(), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush sheet: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp sheet: %w", err)
	}

	s.rotateBackups()
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace sheet: %w", err)
	}
	return nil
}

// rotateBackups shifts the sheet into .bak.1 -> .bak.2 -> .bak.3. Best
// effort: a missing generation just leaves a hole.
func (s *SheetStore) rotateBackups() {
	for i := sheetBackups; i > 1; i-- {
		os.Rename(s.backupPath(i-1), s.backupPath(i))
	}
	os.Rename(s.path, s.backupPath(1))
}

func (s *SheetStore) backupPath(n int) string {
	return fmt.Sprintf("%s.bak.%d", s.path, n)
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func cellBool(row []string, i int) bool {
	b, err := strconv.ParseBool(cell(row, i))
	if err != nil {
		return false
	}
	return b
}

func cellInt(row []string, i int) int {
	n, err := strconv.Atoi(cell(row, i))
	if err != nil {
		return 0
	}
	return n
}

func cellFloat(row []string, i int) float64 {
	f, err := strconv.ParseFloat(cell(row, i), 64)
	if err != nil {
		return 0
	}
	return f
}

// DefaultSheetPath returns ~/.config/habit-tracker/habits.csv
func DefaultSheetPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "habit-tracker", "habits.csv"), nil
}
