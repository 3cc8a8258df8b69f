// Package store persists the full application state to a local SQLite
// database. Every applied action writes the whole serialized state through,
// and a bounded snapshot history backs undo.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/cartling/cartling/internal/list"
)

const stateKey = "state"

// maxSnapshots bounds the undo history kept in the database.
const maxSnapshots = 50

// Store is a write-through state store backed by SQLite.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens (or creates) the database at path and runs migrations.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL mode for better concurrent access (pipe mode can run while the
	// TUI is open).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		logger.Warn("failed to enable WAL mode", zap.Error(err))
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating settings table: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		state TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating snapshots table: %w", err)
	}

	return &Store{db: db, log: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes the full state through to the database. The previous state is
// pushed onto the snapshot history when it differs in anything beyond the
// search box text, so per-keystroke saves never eat into the undo depth.
func (s *Store) Save(st list.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	prev, err := s.rawState()
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if prev != "" && stripSearch(prev) != stripSearch(string(data)) {
		if _, err := tx.Exec("INSERT INTO snapshots (state) VALUES (?)", stripSearch(prev)); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
		if _, err := tx.Exec(
			"DELETE FROM snapshots WHERE id NOT IN (SELECT id FROM snapshots ORDER BY id DESC LIMIT ?)",
			maxSnapshots,
		); err != nil {
			return fmt.Errorf("pruning snapshots: %w", err)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		stateKey, string(data),
	); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}

	return tx.Commit()
}

// Load reads the persisted state. A missing, malformed, or invalid state
// falls back to the empty state rather than failing; the app always starts.
func (s *Store) Load() (list.State, error) {
	raw, err := s.rawState()
	if err != nil {
		return list.Empty(), err
	}
	if raw == "" {
		return list.Empty(), nil
	}

	var st list.State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		s.log.Warn("stored state is malformed, starting empty", zap.Error(err))
		return list.Empty(), nil
	}
	if err := list.ValidateState(st); err != nil {
		s.log.Warn("stored state failed validation, starting empty", zap.Error(err))
		return list.Empty(), nil
	}

	return st, nil
}

// Undo restores the most recent snapshot, writing it through as the current
// state. The second return value is false when there is nothing to undo.
func (s *Store) Undo() (list.State, bool, error) {
	var id int64
	var raw string
	err := s.db.QueryRow("SELECT id, state FROM snapshots ORDER BY id DESC LIMIT 1").Scan(&id, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return list.Empty(), false, nil
	}
	if err != nil {
		return list.Empty(), false, fmt.Errorf("reading snapshot: %w", err)
	}

	var st list.State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return list.Empty(), false, fmt.Errorf("decoding snapshot: %w", err)
	}
	if err := list.ValidateState(st); err != nil {
		return list.Empty(), false, fmt.Errorf("snapshot failed validation: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return list.Empty(), false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		stateKey, raw,
	); err != nil {
		return list.Empty(), false, fmt.Errorf("restoring state: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM snapshots WHERE id = ?", id); err != nil {
		return list.Empty(), false, fmt.Errorf("popping snapshot: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return list.Empty(), false, err
	}

	return st, true, nil
}

// SnapshotCount returns the current undo depth.
func (s *Store) SnapshotCount() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting snapshots: %w", err)
	}
	return n, nil
}

// stripSearch returns the state JSON with the search box text cleared.
// Snapshots are compared and stored in this form: undoing a list change
// should not replay old search keystrokes.
func stripSearch(raw string) string {
	var st list.State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return raw
	}
	st.SearchInput = ""
	data, err := json.Marshal(st)
	if err != nil {
		return raw
	}
	return string(data)
}

func (s *Store) rawState() (string, error) {
	var raw string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", stateKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading state: %w", err)
	}
	return raw, nil
}
