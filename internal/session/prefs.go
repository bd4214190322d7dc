package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

const keyUserID = "user_id"

// PrefsStore persists the session in a small YAML preferences file.
type PrefsStore struct {
	path string

	mu     sync.Mutex
	cached string
	loaded bool
}

// NewPrefsStore creates a store backed by the preferences file at path.
// The file is created lazily on first save.
func NewPrefsStore(path string) *PrefsStore {
	return &PrefsStore{path: path}
}

// UserID returns the persisted user id, or false if none is saved.
func (s *PrefsStore) UserID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A saved id never changes, so it is cached after the first
	// successful read. An empty result is re-read every time so a
	// session created by another process becomes visible.
	if !s.loaded {
		s.cached = s.read()
		s.loaded = s.cached != ""
	}
	if s.cached == "" {
		return "", false
	}
	return s.cached, true
}

// SaveUserID writes the user id to the preferences file.
func (s *PrefsStore) SaveUserID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating prefs directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("yaml")
	v.Set(keyUserID, id)

	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing prefs to %s: %w", s.path, err)
	}

	s.cached = id
	s.loaded = true
	return nil
}

// IsLoggedIn reports whether a user id has been saved.
func (s *PrefsStore) IsLoggedIn() bool {
	_, ok := s.UserID()
	return ok
}

// read loads the user id from disk, returning "" when the file does not
// exist or holds no id.
func (s *PrefsStore) read() string {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return ""
	}
	return v.GetString(keyUserID)
}
