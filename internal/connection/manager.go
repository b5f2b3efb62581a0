// Package connection tracks which platforms are linked to the account.
// Passive status polls and active user commands are separate paths with
// different failure contracts: polls swallow errors and keep the prior
// cached state, commands always surface theirs.
package connection

import (
	"context"
	"fmt"
	"log/slog"

	"crosspost/internal/api"
	"crosspost/internal/compose"
	"crosspost/internal/store"
)

// API is the slice of the backend client this package needs.
type API interface {
	Status(ctx context.Context, p api.Platform) (api.PlatformStatus, error)
	BeginLogin(ctx context.Context, p api.Platform) (string, error)
	Disconnect(ctx context.Context, p api.Platform) error
}

type Manager struct {
	client API
	cache  *store.ConnectionStore
	logger *slog.Logger
}

func NewManager(client API, cache *store.ConnectionStore, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{client: client, cache: cache, logger: logger}
}

// Refresh polls every platform's status and updates the cache. Poll
// failures are best-effort freshness checks: they are logged and the
// prior cached state is left unchanged.
func (m *Manager) Refresh(ctx context.Context) {
	for _, p := range api.Platforms {
		st, err := m.client.Status(ctx, p)
		if err != nil {
			m.logger.Debug("status poll failed", "platform", p, "error", err)
			continue
		}
		if err := m.cache.Upsert(string(p), st.Connected, st.ScreenName); err != nil {
			m.logger.Warn("cache connection status", "platform", p, "error", err)
		}
	}
}

// BeginConnect asks the backend for the platform's OAuth authorization
// URL. The caller sends the user there; the terminal state comes back
// through the redirect callback.
func (m *Manager) BeginConnect(ctx context.Context, p api.Platform) (string, error) {
	authURL, err := m.client.BeginLogin(ctx, p)
	if err != nil {
		return "", fmt.Errorf("begin %s connect: %w", p, err)
	}
	return authURL, nil
}

// Disconnect removes the platform account server-side and clears the
// cached state. On failure the cache is left unchanged. Interactive
// confirmation is the caller's job.
func (m *Manager) Disconnect(ctx context.Context, p api.Platform) error {
	if err := m.client.Disconnect(ctx, p); err != nil {
		return err
	}
	if err := m.cache.Disconnect(string(p)); err != nil {
		return fmt.Errorf("clear cached connection: %w", err)
	}
	return nil
}

// States returns the cached connection snapshot for every platform.
func (m *Manager) States() (compose.Connections, error) {
	conns := make(compose.Connections, len(api.Platforms))
	for _, p := range api.Platforms {
		cached, err := m.cache.Get(string(p))
		if err != nil {
			return nil, err
		}
		conns[p] = compose.ConnectionState{
			Connected:  cached.Connected,
			ScreenName: cached.ScreenName,
		}
	}
	return conns, nil
}
