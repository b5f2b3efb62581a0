package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Connection is the cached connection state for one platform. The cache
// is a best-effort snapshot; status polls overwrite it and poll
// failures leave it untouched.
type Connection struct {
	Platform   string
	Connected  bool
	ScreenName string
	CheckedAt  time.Time
}

type ConnectionStore struct {
	db *sql.DB
}

func NewConnectionStore(db *sql.DB) *ConnectionStore {
	return &ConnectionStore{db: db}
}

func (s *ConnectionStore) Upsert(platform string, connected bool, screenName string) error {
	_, err := s.db.Exec(
		`INSERT INTO connections (platform, connected, screen_name, checked_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(platform) DO UPDATE SET connected = excluded.connected, screen_name = excluded.screen_name, checked_at = excluded.checked_at`,
		platform, connected, screenName, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert connection %q: %w", platform, err)
	}
	return nil
}

// Get returns the cached state for one platform. A platform never seen
// before reads as disconnected.
func (s *ConnectionStore) Get(platform string) (Connection, error) {
	conn := Connection{Platform: platform}
	var checkedAt sql.NullTime
	err := s.db.QueryRow(
		`SELECT connected, screen_name, checked_at FROM connections WHERE platform = ?`, platform,
	).Scan(&conn.Connected, &conn.ScreenName, &checkedAt)
	if err == sql.ErrNoRows {
		return conn, nil
	}
	if err != nil {
		return Connection{}, fmt.Errorf("get connection %q: %w", platform, err)
	}
	if checkedAt.Valid {
		conn.CheckedAt = checkedAt.Time
	}
	return conn, nil
}

// Disconnect clears the connected flag and handle for a platform.
func (s *ConnectionStore) Disconnect(platform string) error {
	_, err := s.db.Exec(
		`INSERT INTO connections (platform, connected, screen_name, checked_at) VALUES (?, 0, '', ?)
		 ON CONFLICT(platform) DO UPDATE SET connected = 0, screen_name = '', checked_at = excluded.checked_at`,
		platform, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("disconnect %q: %w", platform, err)
	}
	return nil
}
