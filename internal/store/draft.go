package store

import (
	"database/sql"
	"fmt"
	"time"
)

// DraftStore persists the working post text between CLI runs.
type DraftStore struct {
	db *sql.DB
}

func NewDraftStore(db *sql.DB) *DraftStore {
	return &DraftStore{db: db}
}

func (s *DraftStore) Save(text string) error {
	_, err := s.db.Exec(
		`INSERT INTO draft (id, text, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET text = excluded.text, updated_at = excluded.updated_at`,
		text, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Get returns the draft text, or "" when none exists.
func (s *DraftStore) Get() (string, error) {
	var text string
	err := s.db.QueryRow(`SELECT text FROM draft WHERE id = 1`).Scan(&text)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get draft: %w", err)
	}
	return text, nil
}

func (s *DraftStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM draft WHERE id = 1`); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
