package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/clanwatch/clanwatch/internal/model"
	"github.com/clanwatch/clanwatch/internal/store"
	"github.com/clanwatch/clanwatch/internal/widget"
)

var widgetCmd = &cobra.Command{
	Use:   "widget",
	Short: "Widget snapshot commands",
	Long: `Commands for the home-screen style widget surface. The refresh daemon
keeps a local snapshot of the attack summary up to date; show prints it
without touching the network.`,
}

var widgetRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the background widget refresh daemon",
	RunE:  runWidgetDaemon,
}

var widgetShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current widget snapshot",
	RunE:  runWidgetShow,
}

func init() {
	widgetCmd.AddCommand(widgetRunCmd)
	widgetCmd.AddCommand(widgetShowCmd)
	rootCmd.AddCommand(widgetCmd)
}

func runWidgetDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := setupLogger()
	logger.Info().
		Str("version", version).
		Str("config", configPath).
		Msg("Starting widget refresh daemon")

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("failed to open local database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close local database")
		}
	}()

	sess := openSession(cfg)
	r := buildRepo(cfg, sess)

	worker := widget.NewWorker(sess, r, db.Widget(), logger)
	scheduler := widget.NewScheduler(
		worker,
		time.Duration(cfg.Widget.RefreshIntervalMin)*time.Minute,
		time.Duration(cfg.Widget.MinIntervalMin)*time.Minute,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runWidgetShow(cmd *cobra.Command, args []string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("failed to open local database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p, err := db.Widget().Projection(ctx)
	if err != nil {
		return fmt.Errorf("failed to read widget snapshot: %w", err)
	}

	fmt.Println(widget.Render(p))
	return nil
}
