package session

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

const schema = `
CREATE TABLE IF NOT EXISTS identity (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

const (
	keyName   = "name"
	keyUserID = "user_id"
)

// Store is a Context persisted in a local SQLite file, the closest thing a
// terminal client has to browser local storage. Reads are served from
// memory; writes go through to the file so the identity survives restarts.
type Store struct {
	db     *sql.DB
	log    *zerolog.Logger
	name   string
	userID string
}

// Open loads (or creates) the identity store at path. ":memory:" works for
// tests.
func Open(path string, logger *zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open identity db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init identity schema: %w", err)
	}

	s := &Store{db: db, log: logger}
	s.name = s.load(keyName)
	s.userID = s.load(keyUserID)
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Name() string   { return s.name }
func (s *Store) UserID() string { return s.userID }

// SetName overwrites the persisted display name.
func (s *Store) SetName(name string) {
	s.name = name
	s.save(keyName, name)
}

// SetUserID overwrites the persisted member id.
func (s *Store) SetUserID(id string) {
	s.userID = id
	s.save(keyUserID, id)
}

func (s *Store) load(key string) string {
	var value string
	err := s.db.QueryRowContext(background, `SELECT value FROM identity WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return ""
	}
	return value
}

func (s *Store) save(key, value string) {
	_, err := s.db.ExecContext(background, `
		INSERT INTO identity (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil && s.log != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("persist identity")
	}
}

var _ Context = (*Store)(nil)
