package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/rs/zerolog/log"
)

// Persisted record keys. Each key maps to one opaque JSON blob; there is no
// schema versioning, so a structurally stale value falls back to the caller's
// default at load time.
const (
	KeyUser         = "lingochat_user"
	KeyHistory      = "lingochat_history"
	KeyBotOverrides = "lingochat_bot_overrides"
	KeyBasePersonas = "lingochat_base_personas"
	KeyTheme        = "lingochat_theme"
	KeySettings     = "lingochat_settings"
)

// RecordStore is a key-namespaced JSON record store backed by SQLite. Writes
// are synchronous total overwrites per key; reads never surface errors to
// callers, a missing or corrupt record silently yields the default.
type RecordStore struct {
	db *sql.DB
}

func NewRecordStore(dataSourceName string) (*RecordStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &RecordStore{db: db}
	if err = s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *RecordStore) Close() error {
	return s.db.Close()
}

func (s *RecordStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS records (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL,
        updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

// Save serializes v and overwrites the record at key.
func (s *RecordStore) Save(key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal record %q: %w", key, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO records (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to save record %q: %w", key, err)
	}
	return nil
}

// Load deserializes the record at key into out and reports whether out was
// populated. Absent or corrupt records leave out untouched so the caller's
// default survives.
func (s *RecordStore) Load(key string, out any) bool {
	var raw string
	err := s.db.QueryRow("SELECT value FROM records WHERE key = ?", key).Scan(&raw)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Warn().Err(err).Str("key", key).Msg("record load failed, using default")
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("record is corrupt, using default")
		return false
	}
	return true
}

// Delete removes the record at key. Deleting an absent key is not an error.
func (s *RecordStore) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM records WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete record %q: %w", key, err)
	}
	return nil
}
