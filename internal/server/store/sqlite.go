package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS rooms (
	code       TEXT PRIMARY KEY,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS members (
	id        TEXT PRIMARY KEY,
	room_code TEXT NOT NULL REFERENCES rooms(code),
	name      TEXT NOT NULL,
	joined_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS messages (
	id          TEXT PRIMARY KEY,
	room_code   TEXT NOT NULL REFERENCES rooms(code),
	sender_name TEXT NOT NULL,
	sender_id   TEXT NOT NULL,
	body        TEXT NOT NULL,
	created_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_room ON messages(room_code, created_at);
`

// SQLiteStore implements Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and applies the schema.
// Rooms are transient, so stale rows from a previous process are dropped
// on startup.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	// A room only exists while members are in it; after a restart nobody
	// is connected, so everything persisted is stale.
	for _, stmt := range []string{`DELETE FROM messages`, `DELETE FROM members`, `DELETE FROM rooms`} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("reset tables: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateRoom inserts a room with the given code.
func (s *SQLiteStore) CreateRoom(ctx context.Context, code string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO rooms (code) VALUES (?)`, code)
	if err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	return nil
}

// RoomExists reports whether a room with the code exists.
func (s *SQLiteStore) RoomExists(ctx context.Context, code string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM rooms WHERE code = ?`, code).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("room exists: %w", err)
	}
	return true, nil
}

// DeleteRoom removes the room row.
func (s *SQLiteStore) DeleteRoom(ctx context.Context, code string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE code = ?`, code)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	return nil
}

// AddMember records a member as present in a room.
func (s *SQLiteStore) AddMember(ctx context.Context, m *Member) error {
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO members (id, room_code, name, joined_at) VALUES (?, ?, ?, ?)
	`, m.ID, m.RoomCode, m.Name, m.JoinedAt)
	if err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

// RemoveMember deletes a member row by id.
func (s *SQLiteStore) RemoveMember(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	return nil
}

// MemberCount returns how many members are present in a room.
func (s *SQLiteStore) MemberCount(ctx context.Context, code string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM members WHERE room_code = ?`, code).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("member count: %w", err)
	}
	return n, nil
}

// MemberNameTaken reports whether a display name is already present in the room.
func (s *SQLiteStore) MemberNameTaken(ctx context.Context, code, name string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM members WHERE room_code = ? AND name = ? LIMIT 1
	`, code, name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("member name taken: %w", err)
	}
	return true, nil
}

// SaveMessage persists one message.
func (s *SQLiteStore) SaveMessage(ctx context.Context, msg *Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, room_code, sender_name, sender_id, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, msg.ID, msg.RoomCode, msg.SenderName, msg.SenderID, msg.Body, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

// ListMessages returns a room's messages in creation order.
func (s *SQLiteStore) ListMessages(ctx context.Context, code string) ([]*Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, room_code, sender_name, sender_id, body, created_at
		FROM messages WHERE room_code = ? ORDER BY created_at, id
	`, code)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.RoomCode, &m.SenderName, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return messages, nil
}

// DeleteMessages removes all of a room's messages.
func (s *SQLiteStore) DeleteMessages(ctx context.Context, code string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE room_code = ?`, code)
	if err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}
	return nil
}

var _ Store = (*SQLiteStore)(nil)
