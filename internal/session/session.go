// Package session persists and exposes the single logged-in identity.
// The store is an explicitly injected dependency: nothing in the
// application reaches for it through a global.
package session

// Store holds the persisted user id. Writes happen once, at
// registration; reads are idempotent.
type Store interface {
	// UserID returns the persisted user id, or false if none is saved.
	UserID() (string, bool)

	// SaveUserID persists the user id durably. Subsequent reads within
	// the same process and across restarts observe it.
	SaveUserID(id string) error

	// IsLoggedIn reports whether a user id has been saved.
	IsLoggedIn() bool
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	id string
}

// NewMemStore returns a MemStore pre-seeded with id. An empty id means
// no session.
func NewMemStore(id string) *MemStore {
	return &MemStore{id: id}
}

func (m *MemStore) UserID() (string, bool) {
	if m.id == "" {
		return "", false
	}
	return m.id, true
}

func (m *MemStore) SaveUserID(id string) error {
	m.id = id
	return nil
}

func (m *MemStore) IsLoggedIn() bool {
	_, ok := m.UserID()
	return ok
}
