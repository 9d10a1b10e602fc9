// Package transcript persists freeform chat transcripts locally.
// Freeform sessions have no server-side identity, so their message
// history lives in a SQLite key-value table keyed by chat name.
package transcript

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// keyPrefix namespaces freeform transcripts within the table so other
// record kinds can share the database later without key collisions.
const keyPrefix = "freeform:"

// Store provides SQLite-backed persistence for transcripts.
type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database at dbPath and creates tables if they don't exist.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS transcripts (
		name TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	return err
}

// Save stores the transcript payload under the given chat name,
// replacing any previous payload. Callers treat failures as
// best-effort; there is no partial write to recover from.
func (s *Store) Save(name string, payload []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO transcripts (name, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		keyPrefix+name, string(payload), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}

	return nil
}

// Load retrieves the transcript payload for the given chat name.
// Returns (nil, nil) when no transcript exists under that name.
func (s *Store) Load(name string) ([]byte, error) {
	row := s.db.QueryRow(
		`SELECT payload FROM transcripts WHERE name = ?`,
		keyPrefix+name,
	)

	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan transcript: %w", err)
	}

	return []byte(payload), nil
}

// Names returns all saved chat names, most recently updated first.
func (s *Store) Names() ([]string, error) {
	rows, err := s.db.Query(
		`SELECT name FROM transcripts
		 WHERE name LIKE ?
		 ORDER BY updated_at DESC`,
		keyPrefix+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("query transcripts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		names = append(names, name[len(keyPrefix):])
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return names, nil
}

// Delete removes the transcript saved under the given chat name.
// Deleting a name with no transcript is not an error.
func (s *Store) Delete(name string) error {
	_, err := s.db.Exec(`DELETE FROM transcripts WHERE name = ?`, keyPrefix+name)
	if err != nil {
		return fmt.Errorf("delete transcript: %w", err)
	}

	return nil
}
