package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/clanwatch/clanwatch/internal/app"
	"github.com/clanwatch/clanwatch/internal/model"
	"github.com/clanwatch/clanwatch/internal/store"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal UI",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("failed to open local database: %w", err)
	}
	defer db.Close()

	r := buildRepo(cfg, openSession(cfg))
	pollInterval := time.Duration(cfg.Display.PollIntervalSec) * time.Second

	p := tea.NewProgram(
		app.New(r, db, pollInterval),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui error: %w", err)
	}
	return nil
}
