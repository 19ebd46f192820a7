package auth

import (
	"fmt"
	"sync"

	"github.com/waabox/clubinho/internal/config"
	"github.com/waabox/clubinho/internal/domain"
)

// CredentialStore persists the session's credential pair.
type CredentialStore interface {
	Load() (domain.Credentials, error)
	Save(domain.Credentials) error
	Clear() error
	Close() error
}

var (
	_ CredentialStore = (*MemoryStore)(nil)
	_ CredentialStore = (*ConfigStore)(nil)
	_ CredentialStore = (*SQLiteStore)(nil)
)

// NewStore builds the store selected by cfg.Session.Store.
func NewStore(cfg *config.Config, configPath string) (CredentialStore, error) {
	switch kind := cfg.StoreOrDefault(); kind {
	case config.StoreConfig:
		return NewConfigStore(cfg, configPath), nil
	case config.StoreSQLite:
		if cfg.Session.SQLitePath == "" {
			return nil, fmt.Errorf("session.sqlite_path is required for the sqlite store")
		}
		return NewSQLiteStore(cfg.Session.SQLitePath)
	case config.StoreMemory:
		return NewMemoryStore(domain.Credentials{
			AccessToken:  cfg.Session.AccessToken,
			RefreshToken: cfg.Session.RefreshToken,
		}), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", kind)
	}
}

// MemoryStore keeps credentials for the lifetime of the process.
type MemoryStore struct {
	mu    sync.Mutex
	creds domain.Credentials
}

// NewMemoryStore creates a MemoryStore seeded with initial.
func NewMemoryStore(initial domain.Credentials) *MemoryStore {
	return &MemoryStore{creds: initial}
}

func (s *MemoryStore) Load() (domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds, nil
}

func (s *MemoryStore) Save(c domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = c
	return nil
}

func (s *MemoryStore) Clear() error {
	return s.Save(domain.Credentials{})
}

func (s *MemoryStore) Close() error {
	return nil
}
