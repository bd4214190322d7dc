package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clanwatch/clanwatch/internal/api"
	"github.com/clanwatch/clanwatch/internal/model"
	"github.com/clanwatch/clanwatch/internal/repo"
	"github.com/clanwatch/clanwatch/internal/session"
)

var (
	version    = "dev"
	configPath string
	useKeyring bool
	logLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clanwatch",
	Short: "Clanwatch - attack reminder client for Clash of Clans events",
	Long: `Clanwatch is a terminal client for the clan attack reminder backend.
It tracks your accounts and clans, shows which attacks are still unused in
wars, CWL and raid weekends, and manages per-event reminder schedules.`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to the interactive UI when no subcommand is provided
		return runTUI(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", model.DefaultConfigPath(), "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&useKeyring, "keyring", false, "Store the session in the OS keyring instead of the prefs file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogger configures a console logger for the non-TUI commands.
func setupLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// openSession returns the configured session store implementation.
func openSession(cfg *model.AppConfig) session.Store {
	if useKeyring {
		return session.NewKeyringStore(cfg.DataDir)
	}
	return session.NewPrefsStore(cfg.PrefsPath())
}

// buildRepo wires a gateway client and the given session store into a
// repository. Each command builds its own instance; nothing is shared
// across processes except the config file and the local database.
func buildRepo(cfg *model.AppConfig, sess session.Store) *repo.Repository {
	client := api.NewClient(cfg.Server.BaseURL, time.Duration(cfg.Server.TimeoutSec)*time.Second)
	return repo.New(client, sess)
}
