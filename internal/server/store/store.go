// Package store persists rooms, members and messages for the room server.
// Data only needs to live while a room is occupied: the last member
// leaving tears the room and its messages down.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrRoomNotFound is returned for lookups against a missing room code.
var ErrRoomNotFound = errors.New("room not found")

// Room is a chat room, identified by its short join code.
type Room struct {
	Code      string
	CreatedAt time.Time
}

// Member is a present room member.
type Member struct {
	ID       string // server-issued uuid
	RoomCode string
	Name     string
	JoinedAt time.Time
}

// Message is a persisted chat message.
type Message struct {
	ID         string // uuid
	RoomCode   string
	SenderName string
	SenderID   string
	Body       string
	CreatedAt  time.Time
}

// Store aggregates room server persistence.
type Store interface {
	// CreateRoom inserts a room with the given code.
	CreateRoom(ctx context.Context, code string) error

	// RoomExists reports whether a room with the code exists.
	RoomExists(ctx context.Context, code string) (bool, error)

	// DeleteRoom removes the room row. Messages are deleted separately.
	DeleteRoom(ctx context.Context, code string) error

	// AddMember records a member as present in a room.
	AddMember(ctx context.Context, m *Member) error

	// RemoveMember deletes a member row by id.
	RemoveMember(ctx context.Context, id string) error

	// MemberCount returns how many members are present in a room.
	MemberCount(ctx context.Context, code string) (int, error)

	// MemberNameTaken reports whether a display name is already present
	// in the room. Join-time uniqueness is what keeps first-match roster
	// removal unambiguous on the client.
	MemberNameTaken(ctx context.Context, code, name string) (bool, error)

	// SaveMessage persists one message.
	SaveMessage(ctx context.Context, msg *Message) error

	// ListMessages returns a room's messages in creation order.
	ListMessages(ctx context.Context, code string) ([]*Message, error)

	// DeleteMessages removes all of a room's messages.
	DeleteMessages(ctx context.Context, code string) error

	// Close closes the underlying database connection.
	Close() error
}
