package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// HistoryEntry records one publish attempt against one platform.
type HistoryEntry struct {
	ID       string
	Platform string
	OK       bool
	Message  string
	Chars    int
	HadImage bool
	PostedAt time.Time
}

type HistoryStore struct {
	db *sql.DB
}

func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Append records one publish attempt and returns it with its assigned ID.
func (s *HistoryStore) Append(platform string, ok bool, message string, chars int, hadImage bool) (*HistoryEntry, error) {
	entry := &HistoryEntry{
		ID:       uuid.NewString(),
		Platform: platform,
		OK:       ok,
		Message:  message,
		Chars:    chars,
		HadImage: hadImage,
		PostedAt: time.Now().UTC(),
	}

	_, err := s.db.Exec(
		`INSERT INTO publish_history (id, platform, ok, message, chars, had_image, posted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Platform, entry.OK, entry.Message, entry.Chars, entry.HadImage, entry.PostedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("append history: %w", err)
	}
	return entry, nil
}

// List returns the most recent publish attempts, newest first.
func (s *HistoryStore) List(limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, platform, ok, message, chars, had_image, posted_at
		 FROM publish_history ORDER BY posted_at DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Platform, &e.OK, &e.Message, &e.Chars, &e.HadImage, &e.PostedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
