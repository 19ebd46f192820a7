package auth

import (
	"fmt"
	"sync"

	"github.com/waabox/clubinho/internal/config"
	"github.com/waabox/clubinho/internal/domain"
)

// ConfigStore keeps the credential pair in the [session] section of the
// config file, rewriting the file on every change.
type ConfigStore struct {
	cfg        *config.Config
	configPath string
	mu         sync.Mutex
}

// NewConfigStore creates a ConfigStore.
// configPath may be empty, in which case changes stay in memory.
func NewConfigStore(cfg *config.Config, configPath string) *ConfigStore {
	return &ConfigStore{
		cfg:        cfg,
		configPath: configPath,
	}
}

// Load returns the tokens currently held in the config.
func (s *ConfigStore) Load() (domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Credentials{
		AccessToken:  s.cfg.Session.AccessToken,
		RefreshToken: s.cfg.Session.RefreshToken,
	}, nil
}

// Save updates the config in memory and persists it to disk.
func (s *ConfigStore) Save(c domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Session.AccessToken = c.AccessToken
	s.cfg.Session.RefreshToken = c.RefreshToken
	return s.persist()
}

// Clear removes both tokens from the config.
func (s *ConfigStore) Clear() error {
	return s.Save(domain.Credentials{})
}

// Close is a no-op.
func (s *ConfigStore) Close() error {
	return nil
}

// Config returns the current config pointer.
func (s *ConfigStore) Config() *config.Config {
	return s.cfg
}

func (s *ConfigStore) persist() error {
	if s.configPath == "" {
		return nil
	}
	if err := config.Save(s.configPath, *s.cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}
