// Package buildcache persists the last successful slug enumeration per
// collection, so a site build running against an unavailable CMS can
// reuse the previous path list instead of pre-rendering nothing. It is
// only touched by the build-time paths command; the runtime request
// cache stays in memory.
package buildcache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a small sqlite-backed key/value store of slug manifests.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the store at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open build cache: %w", err)
	}

	// Builds can run the enumeration concurrently per collection.
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure build cache: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure build cache: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS slug_manifests (
			collection TEXT PRIMARY KEY,
			slugs TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize build cache schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// SaveSlugs replaces the stored manifest for collection.
func (s *Store) SaveSlugs(collection string, slugs []string) error {
	encoded, err := json.Marshal(slugs)
	if err != nil {
		return fmt.Errorf("failed to encode slugs for %s: %w", collection, err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO slug_manifests (collection, slugs, updated_at)
		VALUES (?, ?, ?)
	`, collection, string(encoded), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save slugs for %s: %w", collection, err)
	}
	return nil
}

// LoadSlugs returns the stored manifest for collection, with found
// reporting whether one exists.
func (s *Store) LoadSlugs(collection string) (slugs []string, found bool, err error) {
	var encoded string
	err = s.db.QueryRow(`
		SELECT slugs FROM slug_manifests WHERE collection = ?
	`, collection).Scan(&encoded)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load slugs for %s: %w", collection, err)
	}

	if err := json.Unmarshal([]byte(encoded), &slugs); err != nil {
		return nil, false, fmt.Errorf("failed to decode slugs for %s: %w", collection, err)
	}
	return slugs, true, nil
}

// Path returns the store's file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
