// Package session owns the bearer-token lifecycle: set once at
// login/signup, read before every authenticated call, cleared once at
// logout. The token is opaque and never parsed client-side.
package session

import (
	"errors"
	"fmt"

	"crosspost/internal/store"
)

// ErrNotLoggedIn is returned when an authenticated operation runs
// without a stored session.
var ErrNotLoggedIn = errors.New("not logged in: run 'crosspost login' or 'crosspost signup' first")

// Manager is the single authoritative read/write point for the session
// token. When a passphrase is configured the token is sealed at rest.
type Manager struct {
	store      *store.SessionStore
	passphrase string
}

func NewManager(ss *store.SessionStore, passphrase string) *Manager {
	return &Manager{store: ss, passphrase: passphrase}
}

// SetToken stores the token, sealing it when a passphrase is set.
func (m *Manager) SetToken(token string) error {
	if token == "" {
		return fmt.Errorf("refusing to store empty token")
	}

	data := []byte(token)
	sealed := false
	if m.passphrase != "" {
		var err error
		data, err = seal(data, m.passphrase)
		if err != nil {
			return fmt.Errorf("seal token: %w", err)
		}
		sealed = true
	}
	return m.store.Save(data, sealed)
}

// Token returns the bearer token for API calls. Satisfies
// api.TokenSource.
func (m *Manager) Token() (string, error) {
	data, sealed, ok, err := m.store.Get()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNotLoggedIn
	}

	if sealed {
		if m.passphrase == "" {
			return "", fmt.Errorf("stored token is sealed but no passphrase is configured")
		}
		data, err = open(data, m.passphrase)
		if err != nil {
			return "", fmt.Errorf("unseal token: %w", err)
		}
	}
	return string(data), nil
}

// LoggedIn reports whether a session exists without decrypting it.
func (m *Manager) LoggedIn() (bool, error) {
	_, _, ok, err := m.store.Get()
	return ok, err
}

// Clear removes the stored session.
func (m *Manager) Clear() error {
	return m.store.Clear()
}
