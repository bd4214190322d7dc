package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/clanwatch/clanwatch/internal/model"
	"github.com/clanwatch/clanwatch/internal/notify"
	"github.com/clanwatch/clanwatch/internal/store"
)

var (
	notifyTitle string
	notifyBody  string
	notifyEvent string
)

// notifyCmd feeds one message through the push delivery boundary, the
// same path a platform push bridge would use.
var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Deliver a push message into the local inbox",
	RunE:  runNotify,
}

var tokenCmd = &cobra.Command{
	Use:   "token <push-token>",
	Short: "Forward a new push token to the backend",
	Args:  cobra.ExactArgs(1),
	RunE:  runToken,
}

func init() {
	notifyCmd.Flags().StringVar(&notifyTitle, "title", "", "Notification title")
	notifyCmd.Flags().StringVar(&notifyBody, "body", "", "Notification body")
	notifyCmd.Flags().StringVar(&notifyEvent, "event", string(model.EventClanWar), "Event type (clan_war, clan_war_league, raid_weekend)")
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runNotify(cmd *cobra.Command, args []string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := setupLogger()

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("failed to open local database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	receiver := notify.NewReceiver(db.Notifications(), logger)
	return receiver.Handle(ctx, notify.Message{
		Title:     notifyTitle,
		Body:      notifyBody,
		EventType: model.EventType(notifyEvent),
	})
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := setupLogger()
	r := buildRepo(cfg, openSession(cfg))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	handler := notify.NewTokenHandler(r, logger)
	handler.TokenChanged(ctx, args[0])
	return nil
}
