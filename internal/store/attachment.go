package store

import (
	"database/sql"
	"fmt"
	"time"
)

// AttachmentStore persists the single optional image bound to the
// current draft. File bytes and preview reference live in one row so
// they can only be set and cleared together.
type AttachmentStore struct {
	db *sql.DB
}

func NewAttachmentStore(db *sql.DB) *AttachmentStore {
	return &AttachmentStore{db: db}
}

func (s *AttachmentStore) Save(name string, data []byte, previewRef string) error {
	_, err := s.db.Exec(
		`INSERT INTO attachment (id, name, data, preview_ref, created_at) VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, data = excluded.data, preview_ref = excluded.preview_ref, created_at = excluded.created_at`,
		name, data, previewRef, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save attachment: %w", err)
	}
	return nil
}

// Get returns the stored attachment. ok is false when none exists.
func (s *AttachmentStore) Get() (name string, data []byte, previewRef string, ok bool, err error) {
	err = s.db.QueryRow(`SELECT name, data, preview_ref FROM attachment WHERE id = 1`).Scan(&name, &data, &previewRef)
	if err == sql.ErrNoRows {
		return "", nil, "", false, nil
	}
	if err != nil {
		return "", nil, "", false, fmt.Errorf("get attachment: %w", err)
	}
	return name, data, previewRef, true, nil
}

func (s *AttachmentStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM attachment WHERE id = 1`); err != nil {
		return fmt.Errorf("clear attachment: %w", err)
	}
	return nil
}
