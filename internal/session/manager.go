// Package session makes authenticated calls to the clubinho backend and
// recovers transparently from expired access tokens.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/waabox/clubinho/internal/domain"
	"github.com/waabox/clubinho/internal/metrics"
)

// Refresher exchanges a refresh token for a new credential pair.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (domain.Credentials, error)
}

// Store persists credentials between runs.
type Store interface {
	Load() (domain.Credentials, error)
	Save(domain.Credentials) error
	Clear() error
}

var errIncompleteRefresh = errors.New("refresh response is missing a token")

// Manager owns the session's credential pair and coordinates refreshes so
// that at most one exchange is in flight at any time.
type Manager struct {
	mu        sync.RWMutex
	creds     domain.Credentials
	store     Store
	refresher Refresher
	group     singleflight.Group
	logger    *slog.Logger
}

// NewManager creates a Manager seeded from store.
func NewManager(refresher Refresher, store Store, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	creds, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}
	return &Manager{
		creds:     creds,
		store:     store,
		refresher: refresher,
		logger:    logger,
	}, nil
}

// Credentials returns a copy of the current pair.
func (m *Manager) Credentials() domain.Credentials {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds
}

// AccessToken returns the current access token, empty when logged out.
func (m *Manager) AccessToken() string {
	return m.Credentials().AccessToken
}

// SetCredentials replaces the pair (after a login) and persists it.
func (m *Manager) SetCredentials(c domain.Credentials) error {
	m.mu.Lock()
	m.creds = c
	m.mu.Unlock()
	if err := m.store.Save(c); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	return nil
}

// Invalidate drops the credentials from memory and from the store.
func (m *Manager) Invalidate() error {
	m.mu.Lock()
	m.creds = domain.Credentials{}
	m.mu.Unlock()
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}

// Refresh returns an access token newer than stale. If another caller has
// already rotated the token it is returned directly; otherwise callers share a
// single exchange. A failed exchange invalidates the session and every waiter
// receives the failure.
//
// The exchange itself is detached from ctx so one caller giving up does not
// fail the others; ctx only bounds how long this caller waits.
func (m *Manager) Refresh(ctx context.Context, stale string) (string, error) {
	if token, ok := m.rotatedSince(stale); ok {
		return token, nil
	}
	exchange := context.WithoutCancel(ctx)
	ch := m.group.DoChan("refresh", func() (any, error) {
		if token, ok := m.rotatedSince(stale); ok {
			return token, nil
		}
		return m.exchange(exchange)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			m.logger.Debug("joined in-flight refresh")
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (m *Manager) rotatedSince(stale string) (string, bool) {
	current := m.AccessToken()
	return current, current != "" && current != stale
}

func (m *Manager) exchange(ctx context.Context) (string, error) {
	refreshToken := m.Credentials().RefreshToken
	if refreshToken == "" {
		m.invalidate()
		return "", domain.ErrNoRefreshToken
	}

	creds, err := m.refresher.Refresh(ctx, refreshToken)
	if err == nil && (creds.AccessToken == "" || creds.RefreshToken == "") {
		err = errIncompleteRefresh
	}
	if err != nil {
		metrics.RefreshesTotal.WithLabelValues("failure").Inc()
		m.logger.Warn("refresh failed, invalidating session", "error", err)
		m.invalidate()
		return "", fmt.Errorf("refreshing session: %w", err)
	}

	metrics.RefreshesTotal.WithLabelValues("success").Inc()
	m.mu.Lock()
	m.creds = creds
	m.mu.Unlock()
	if saveErr := m.store.Save(creds); saveErr != nil {
		// Tokens are usable for this run even if they could not be persisted.
		m.logger.Warn("refreshed credentials not saved", "error", saveErr)
	}
	m.logger.Debug("session refreshed")
	return creds.AccessToken, nil
}

func (m *Manager) invalidate() {
	if err := m.Invalidate(); err != nil {
		m.logger.Warn("could not clear stored credentials", "error", err)
	}
}
