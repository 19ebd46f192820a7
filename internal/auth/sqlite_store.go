package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/waabox/clubinho/internal/domain"
)

// SQLiteStore keeps the credential pair in a single-row SQLite table.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (and creates if needed) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open credential db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS session_credentials (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create credential table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load returns the stored pair, or zero credentials when none is stored.
func (s *SQLiteStore) Load() (domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var c domain.Credentials
	err := s.db.QueryRow("SELECT access_token, refresh_token FROM session_credentials WHERE id = 1").
		Scan(&c.AccessToken, &c.RefreshToken)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Credentials{}, nil
	}
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("load credentials: %w", err)
	}
	return c, nil
}

// Save replaces the stored pair.
func (s *SQLiteStore) Save(c domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO session_credentials (id, access_token, refresh_token, updated_at) VALUES (1, ?, ?, ?)",
		c.AccessToken, c.RefreshToken, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// Clear deletes the stored pair.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM session_credentials"); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
