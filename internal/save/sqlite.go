package save

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS saves (
	slot INTEGER PRIMARY KEY CHECK (slot = 1),
	body BLOB NOT NULL,
	updated_at TEXT NOT NULL
);`

// SQLiteStore keeps the save in a single-row SQLite table. Same encode and
// checksum path as the file store, so a tampered row still loads as a fresh
// save.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the save database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create save dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create save schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load reads the save row. An empty table is a fresh player.
func (s *SQLiteStore) Load() (*Data, error) {
	var body []byte
	err := s.db.QueryRow(`SELECT body FROM saves WHERE slot = 1`).Scan(&body)
	if err == sql.ErrNoRows {
		return NewData(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load save: %w", err)
	}
	return Decode(body), nil
}

// Save writes the encoded snapshot into the single slot.
func (s *SQLiteStore) Save(d *Data) error {
	raw, err := Encode(d)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO saves (slot, body, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		raw, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

// Clear removes the save row.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM saves WHERE slot = 1`); err != nil {
		return fmt.Errorf("clear save: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
