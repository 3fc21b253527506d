// Package settings persists per-user editor settings in a small SQLite
// database: the display name stamped into the signature, the preferred
// installable, and the admin flag gating installable control.
package settings

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dshills/splitflap/internal/signature"
)

// Well-known setting keys.
const (
	keyDisplayName      = "display_name"
	keyPreferredInstall = "preferred_installable"
	keyAdmin            = "admin"
)

// ErrNotSet reports a setting that has never been written.
var ErrNotSet = errors.New("setting not set")

// Store reads and writes settings. A single connection is enough: the
// event loop is the only writer.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the settings database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty settings db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotSet
	}
	if err != nil {
		return "", fmt.Errorf("reading setting %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing setting %s: %w", key, err)
	}
	return nil
}

// DisplayName returns the stored display name, or ErrNotSet.
func (s *Store) DisplayName() (string, error) {
	return s.get(keyDisplayName)
}

// SetDisplayName validates and stores the display name.
func (s *Store) SetDisplayName(name string) error {
	clean := strings.TrimSpace(name)
	if err := signature.Validate(clean); err != nil {
		return err
	}
	return s.set(keyDisplayName, clean)
}

// PreferredInstallable returns the stored installable preference, or
// ErrNotSet.
func (s *Store) PreferredInstallable() (string, error) {
	return s.get(keyPreferredInstall)
}

// SetPreferredInstallable stores the installable preference.
func (s *Store) SetPreferredInstallable(name string) error {
	return s.set(keyPreferredInstall, name)
}

// Admin reports whether this user may control installables. Unset means
// false.
func (s *Store) Admin() (bool, error) {
	v, err := s.get(keyAdmin)
	if errors.Is(err, ErrNotSet) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	admin, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("corrupt admin flag %q: %w", v, err)
	}
	return admin, nil
}

// SetAdmin stores the admin flag.
func (s *Store) SetAdmin(admin bool) error {
	return s.set(keyAdmin, strconv.FormatBool(admin))
}
