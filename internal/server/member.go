package server

import "github.com/talkroom/talkroom/internal/proto"

// Member is one live room connection as seen by the hub. Events is
// consumed by the connection's write loop; the hub closes it when the
// member is unregistered.
type Member struct {
	ID     string // server-issued, persisted client-side as LocalIdentity
	Name   string
	Room   string
	Events chan proto.Event
}

// NewMember constructs a member with an initialized event channel.
func NewMember(id, name, room string) *Member {
	return &Member{
		ID:     id,
		Name:   name,
		Room:   room,
		Events: make(chan proto.Event, 16),
	}
}
