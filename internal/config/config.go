package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// APIConfig points the client at the clubinho backend.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// RoutesConfig names the locations the session client may force navigation to.
type RoutesConfig struct {
	Login        string   `toml:"login"`
	AccessDenied string   `toml:"access_denied"`
	Public       []string `toml:"public"`
}

// ToastConfig controls notification lifetimes, in milliseconds.
type ToastConfig struct {
	DefaultMs                 int `toml:"default_ms"`
	ErrorMs                   int `toml:"error_ms"`
	WarningMs                 int `toml:"warning_ms"`
	InfoMs                    int `toml:"info_ms"`
	SuccessMs                 int `toml:"success_ms"`
	PermissionRedirectDelayMs int `toml:"permission_redirect_delay_ms"`
}

// SessionConfig selects where credentials are kept between runs.
// Store is one of "config" (this file), "sqlite" or "memory".
type SessionConfig struct {
	Store        string `toml:"store"`
	SQLitePath   string `toml:"sqlite_path"`
	AccessToken  string `toml:"access_token"`
	RefreshToken string `toml:"refresh_token"`
}

// MetricsConfig enables the Prometheus listener when Addr is set.
type MetricsConfig struct {
	Addr string `toml:"addr"`
}

// Config holds all clubinho configuration.
type Config struct {
	LogLevel string        `toml:"log_level"`
	API      APIConfig     `toml:"api"`
	Routes   RoutesConfig  `toml:"routes"`
	Toast    ToastConfig   `toml:"toast"`
	Session  SessionConfig `toml:"session"`
	Metrics  MetricsConfig `toml:"metrics"`
}

const (
	defaultBaseURL                 = "http://localhost:3000"
	defaultTimeout                 = 15 * time.Second
	defaultToastDuration           = 5 * time.Second
	defaultPermissionRedirectDelay = 1500 * time.Millisecond
)

// Session store kinds.
const (
	StoreConfig = "config"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// BaseURLOrDefault returns API.BaseURL if set, otherwise the local backend.
func (c Config) BaseURLOrDefault() string {
	if c.API.BaseURL != "" {
		return c.API.BaseURL
	}
	return defaultBaseURL
}

// TimeoutOrDefault returns the HTTP timeout.
func (c Config) TimeoutOrDefault() time.Duration {
	if c.API.TimeoutSeconds > 0 {
		return time.Duration(c.API.TimeoutSeconds) * time.Second
	}
	return defaultTimeout
}

// StoreOrDefault returns the credential store kind.
func (c Config) StoreOrDefault() string {
	if c.Session.Store != "" {
		return c.Session.Store
	}
	return StoreConfig
}

// PermissionRedirectDelay is how long a permission toast stays visible before
// the forced navigation to the access-denied route.
func (c Config) PermissionRedirectDelay() time.Duration {
	if c.Toast.PermissionRedirectDelayMs > 0 {
		return time.Duration(c.Toast.PermissionRedirectDelayMs) * time.Millisecond
	}
	return defaultPermissionRedirectDelay
}

// ToastDurations returns the auto-hide duration per variant name.
func (c Config) ToastDurations() map[string]time.Duration {
	pick := func(ms int, fallback time.Duration) time.Duration {
		if ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
		return fallback
	}
	base := pick(c.Toast.DefaultMs, defaultToastDuration)
	return map[string]time.Duration{
		"default": base,
		"error":   pick(c.Toast.ErrorMs, 6*time.Second),
		"warning": pick(c.Toast.WarningMs, base),
		"info":    pick(c.Toast.InfoMs, 4*time.Second),
		"success": pick(c.Toast.SuccessMs, 3*time.Second),
	}
}

// LoadFrom reads configuration from the given TOML file path.
// If the file does not exist, it returns an empty config without error.
// Environment variables always take precedence over file values:
//   - CLUBINHO_API_URL       overrides api.base_url
//   - CLUBINHO_ACCESS_TOKEN  overrides session.access_token
//   - CLUBINHO_REFRESH_TOKEN overrides session.refresh_token
//   - CLUBINHO_LOG_LEVEL     overrides log_level
func LoadFrom(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// DefaultConfigPath returns the default path for the clubinho config file.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return home + "/.config/clubinho/config.toml"
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CLUBINHO_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("CLUBINHO_ACCESS_TOKEN"); v != "" {
		cfg.Session.AccessToken = v
	}
	if v := os.Getenv("CLUBINHO_REFRESH_TOKEN"); v != "" {
		cfg.Session.RefreshToken = v
	}
	if v := os.Getenv("CLUBINHO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// Save writes cfg to the given TOML file path, creating parent directories as needed.
// Existing file contents are overwritten. Permissions on the written file are 0600.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	if encErr := toml.NewEncoder(f).Encode(cfg); encErr != nil {
		f.Close()
		return encErr
	}
	return f.Close()
}
