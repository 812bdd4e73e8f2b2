package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DE4DSHOTplays/habit-tracker/internal/config"
	"github.com/DE4DSHOTplays/habit-tracker/internal/habit"
	"github.com/DE4DSHOTplays/habit-tracker/internal/logging"
	"github.com/DE4DSHOTplays/habit-tracker/internal/store"
	"github.com/DE4DSHOTplays/habit-tracker/internal/tui"
)

func main() {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Debug.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	dbPath := cfg.Storage.DBPath
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	// Settings always live in the database; the sheet backend only
	// swaps where day records are kept.
	var gw habit.Gateway = s
	if cfg.Storage.Backend == config.BackendSheet {
		sheetPath := cfg.Storage.SheetPath
		if sheetPath == "" {
			sheetPath, err = store.DefaultSheetPath()
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
		}
		sheet, err := store.NewSheet(sheetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error opening sheet: %v\n", err)
			os.Exit(1)
		}
		gw = sheet
	}

	tracker := habit.NewTracker(gw, log)

	app := tui.NewApp(s, tracker)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
