package model

import (
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSec != 30 {
		t.Errorf("TimeoutSec = %d", cfg.Server.TimeoutSec)
	}
	if cfg.Display.PollIntervalSec != 60 {
		t.Errorf("PollIntervalSec = %d", cfg.Display.PollIntervalSec)
	}
	if cfg.Widget.RefreshIntervalMin != 15 || cfg.Widget.MinIntervalMin != 15 {
		t.Errorf("Widget = %+v", cfg.Widget)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir empty")
	}
}

func TestConfigRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := &AppConfig{
		Server:  ServerConfig{BaseURL: "https://reminders.example.com", TimeoutSec: 10},
		Display: DisplayConfig{PollIntervalSec: 30},
		Widget:  WidgetConfig{RefreshIntervalMin: 20, MinIntervalMin: 15},
		DataDir: "/tmp/clanwatch-test",
	}
	if err := SaveConfig(path, want); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Server.BaseURL != want.Server.BaseURL {
		t.Errorf("BaseURL = %q", got.Server.BaseURL)
	}
	if got.Server.TimeoutSec != want.Server.TimeoutSec {
		t.Errorf("TimeoutSec = %d", got.Server.TimeoutSec)
	}
	if got.Display.PollIntervalSec != want.Display.PollIntervalSec {
		t.Errorf("PollIntervalSec = %d", got.Display.PollIntervalSec)
	}
	if got.Widget != want.Widget {
		t.Errorf("Widget = %+v", got.Widget)
	}
	if got.DataDir != want.DataDir {
		t.Errorf("DataDir = %q", got.DataDir)
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := &AppConfig{DataDir: "/data/clanwatch"}

	if got := cfg.DBPath(); got != filepath.Join("/data/clanwatch", "clanwatch.db") {
		t.Errorf("DBPath = %q", got)
	}
	if got := cfg.PrefsPath(); got != filepath.Join("/data/clanwatch", "prefs.yaml") {
		t.Errorf("PrefsPath = %q", got)
	}
}

func TestEventTypeLabels(t *testing.T) {
	cases := map[EventType]string{
		EventClanWar:       "Clan War",
		EventClanWarLeague: "Clan War League",
		EventRaidWeekend:   "Raid Weekend",
		EventType("other"): "other",
	}
	for et, want := range cases {
		if got := et.Label(); got != want {
			t.Errorf("Label(%s) = %q, want %q", et, got, want)
		}
	}
}
