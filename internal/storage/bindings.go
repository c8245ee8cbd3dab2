package storage

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/engine"
)

// LocalOwner owns the key bindings of local, non-SSH play.
const LocalOwner = ""

// SaveKeyBindings replaces owner's stored key bindings with settings. Other
// owners' bindings are untouched.
func (s *Store) SaveKeyBindings(owner string, settings engine.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO key_bindings (owner, control, key_name) VALUES (?, ?, ?)
		 ON CONFLICT(owner, control) DO UPDATE SET key_name = excluded.key_name`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare key binding insert: %w", err)
	}
	defer stmt.Close()

	for control, key := range bindingColumns(settings) {
		if _, err := stmt.Exec(owner, control, key); err != nil {
			return fmt.Errorf("storage: cannot save key binding %s: %w", control, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit key bindings: %w", err)
	}
	return nil
}

// LoadKeyBindings returns owner's stored key bindings. The boolean is false
// when owner has saved nothing yet, in which case the defaults are returned.
// Controls missing from the table keep their default key.
func (s *Store) LoadKeyBindings(owner string) (engine.Settings, bool, error) {
	settings := engine.DefaultSettings()

	rows, err := s.db.Query(
		"SELECT control, key_name FROM key_bindings WHERE owner = ?", owner,
	)
	if err != nil {
		return settings, false, fmt.Errorf("storage: cannot query key bindings: %w", err)
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var control, key string
		if err := rows.Scan(&control, &key); err != nil {
			return settings, false, fmt.Errorf("storage: cannot scan key binding: %w", err)
		}
		if field := bindingField(&settings, control); field != nil {
			*field = key
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		return settings, false, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return settings, found, nil
}

func bindingColumns(s engine.Settings) map[string]string {
	return map[string]string{
		"move_down":    s.MoveDown,
		"move_left":    s.MoveLeft,
		"move_right":   s.MoveRight,
		"rotate_left":  s.RotateLeft,
		"rotate_right": s.RotateRight,
		"hard_drop":    s.HardDrop,
		"hold_piece":   s.HoldPiece,
	}
}

func bindingField(s *engine.Settings, control string) *string {
	switch control {
	case "move_down":
		return &s.MoveDown
	case "move_left":
		return &s.MoveLeft
	case "move_right":
		return &s.MoveRight
	case "rotate_left":
		return &s.RotateLeft
	case "rotate_right":
		return &s.RotateRight
	case "hard_drop":
		return &s.HardDrop
	case "hold_piece":
		return &s.HoldPiece
	}
	return nil
}
