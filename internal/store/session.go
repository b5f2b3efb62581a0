package store

import (
	"database/sql"
	"fmt"
	"time"
)

// SessionStore persists the single bearer token between CLI runs. Token
// bytes may be sealed (encrypted at rest); the sealed flag tells the
// session layer whether to decrypt on read.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Save replaces the stored session. Login and signup are the only
// callers; there is at most one session at a time.
func (s *SessionStore) Save(token []byte, sealed bool) error {
	_, err := s.db.Exec(
		`INSERT INTO session (id, token, sealed, created_at) VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET token = excluded.token, sealed = excluded.sealed, created_at = excluded.created_at`,
		token, sealed, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get returns the stored token bytes. ok is false when no session
// exists.
func (s *SessionStore) Get() (token []byte, sealed bool, ok bool, err error) {
	err = s.db.QueryRow(`SELECT token, sealed FROM session WHERE id = 1`).Scan(&token, &sealed)
	if err == sql.ErrNoRows {
		return nil, false, false, nil
	}
	if err != nil {
		return nil, false, false, fmt.Errorf("get session: %w", err)
	}
	return token, sealed, true, nil
}

// Clear removes the stored session. Logout is the only caller.
func (s *SessionStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
