package session

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "clanwatch"

// KeyringStore persists the session in the system keyring, falling back
// to an encrypted file backend where no keychain service is available.
type KeyringStore struct {
	fileDir string
}

// NewKeyringStore creates a keyring-backed session store. fileDir is
// used by the file fallback backend.
func NewKeyringStore(fileDir string) *KeyringStore {
	return &KeyringStore{fileDir: fileDir}
}

func (s *KeyringStore) open() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  s.fileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt("clanwatch-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// UserID returns the persisted user id, or false if none is saved.
func (s *KeyringStore) UserID() (string, bool) {
	ring, err := s.open()
	if err != nil {
		return "", false
	}

	item, err := ring.Get(keyUserID)
	if err != nil {
		return "", false
	}
	if len(item.Data) == 0 {
		return "", false
	}
	return string(item.Data), true
}

// SaveUserID stores the user id in the system keyring.
func (s *KeyringStore) SaveUserID(id string) error {
	ring, err := s.open()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  keyUserID,
		Data: []byte(id),
	})
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// IsLoggedIn reports whether a user id has been saved.
func (s *KeyringStore) IsLoggedIn() bool {
	_, ok := s.UserID()
	return ok
}
