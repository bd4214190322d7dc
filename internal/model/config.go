package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ServerConfig holds the backend connection settings.
type ServerConfig struct {
	// BaseURL is the root URL of the reminder backend.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec is the per-request timeout in seconds.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// DisplayConfig holds foreground UI preferences.
type DisplayConfig struct {
	// PollIntervalSec is how often (in seconds) the status view
	// auto-refreshes while the app is in the foreground.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`
}

// WidgetConfig holds settings for the background widget refresh daemon.
type WidgetConfig struct {
	// RefreshIntervalMin is how often (in minutes) the daemon fetches the
	// status summary. Values below MinIntervalMin are clamped.
	RefreshIntervalMin int `mapstructure:"refresh_interval_min" yaml:"refresh_interval_min"`

	// MinIntervalMin is the cadence floor for background refreshes.
	MinIntervalMin int `mapstructure:"min_interval_min" yaml:"min_interval_min"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Widget  WidgetConfig  `mapstructure:"widget" yaml:"widget"`

	// DataDir is where the local database and preferences live.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
}

// DBPath returns the path of the local sqlite database.
func (c *AppConfig) DBPath() string {
	return filepath.Join(c.DataDir, "clanwatch.db")
}

// PrefsPath returns the path of the preferences file holding the session.
func (c *AppConfig) PrefsPath() string {
	return filepath.Join(c.DataDir, "prefs.yaml")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/clanwatch/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "clanwatch", "config.yaml")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "data")
	}
	return filepath.Join(home, ".local", "share", "clanwatch")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			BaseURL:    "http://localhost:8000",
			TimeoutSec: 30,
		},
		Display: DisplayConfig{
			PollIntervalSec: 60,
		},
		Widget: WidgetConfig{
			RefreshIntervalMin: 15,
			MinIntervalMin:     15,
		},
		DataDir: defaultDataDir(),
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("server.base_url", "http://localhost:8000")
	v.SetDefault("server.timeout_sec", 30)
	v.SetDefault("display.poll_interval_sec", 60)
	v.SetDefault("widget.refresh_interval_min", 15)
	v.SetDefault("widget.min_interval_min", 15)
	v.SetDefault("data_dir", defaultDataDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("server", cfg.Server)
	v.Set("display", cfg.Display)
	v.Set("widget", cfg.Widget)
	v.Set("data_dir", cfg.DataDir)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
