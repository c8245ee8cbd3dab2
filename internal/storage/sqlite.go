// Package storage persists high scores and key bindings in SQLite.
// It uses the pure-Go modernc.org/sqlite driver so builds need no CGO.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where the database lives unless overridden.
const DefaultPath = "~/.blockfall/scores.db"

// Store wraps the SQLite connection.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at dbPath, creating parent
// directories and running migrations. A leading ~ expands to the home
// directory.
func Open(dbPath string) (*Store, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SSH sessions share one store.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func (s *Store) migrate() error {
	const schema = `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			lines INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			session_id TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return s.migrateKeyBindings()
}

// migrateKeyBindings creates the per-owner bindings table. Databases from
// before owners existed keep their rows under the local owner "".
func (s *Store) migrateKeyBindings() error {
	legacy, err := s.keyBindingsLacksOwner()
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if legacy {
		if _, err := tx.Exec(`ALTER TABLE key_bindings RENAME TO key_bindings_legacy`); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS key_bindings (
			owner TEXT NOT NULL DEFAULT '',
			control TEXT NOT NULL,
			key_name TEXT NOT NULL,
			PRIMARY KEY (owner, control)
		)`); err != nil {
		return err
	}
	if legacy {
		if _, err := tx.Exec(`
			INSERT INTO key_bindings (owner, control, key_name)
			SELECT '', control, key_name FROM key_bindings_legacy`); err != nil {
			return err
		}
		if _, err := tx.Exec(`DROP TABLE key_bindings_legacy`); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// keyBindingsLacksOwner reports whether an existing key_bindings table has
// no owner column.
func (s *Store) keyBindingsLacksOwner() (bool, error) {
	rows, err := s.db.Query(`SELECT name FROM pragma_table_info('key_bindings')`)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	columns := 0
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, err
		}
		if name == "owner" {
			return false, nil
		}
		columns++
	}
	return columns > 0, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTimestamp converts a DATETIME column as returned by the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.DateTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
