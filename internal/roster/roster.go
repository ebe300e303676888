// Package roster tracks which members are currently present in the room.
package roster

// Member is one visual entry in the member list.
type Member struct {
	Name string
	ID   string
}

// Surface is the member-list rendering target. Implementations must treat
// names as plain text, never as markup.
type Surface interface {
	AddMember(name string)
	RemoveMember(name string)
}

// Identity receives the server-issued id of the viewer's own connection.
// Every userConnected carries an id and the channel propagates them
// at-least-once, so the last one observed is persisted unconditionally.
type Identity interface {
	SetUserID(id string)
}

// Store holds the ordered set of present members, keyed by display name.
// Names are not guaranteed unique; removal is first-match, which leaves
// two members with the same display name ambiguous on disconnect (the
// server's join-time uniqueness check is what prevents that in practice).
// Mutations are only ever made from the single event
// dispatch goroutine, so there is no locking.
type Store struct {
	members  []Member
	surface  Surface
	identity Identity
}

// New builds a Store rendering into surface and persisting ids into
// identity. Either may be nil in tests.
func New(surface Surface, identity Identity) *Store {
	return &Store{surface: surface, identity: identity}
}

// Add records a member as present and persists id as the local identity.
// A name that is already present gains no second entry; the id is
// persisted regardless, tolerating duplicate connect notifications.
func (s *Store) Add(name, id string) {
	if s.identity != nil {
		s.identity.SetUserID(id)
	}

	if s.indexOf(name) >= 0 {
		return
	}

	s.members = append(s.members, Member{Name: name, ID: id})
	if s.surface != nil {
		s.surface.AddMember(name)
	}
}

// Remove deletes the first entry whose name matches. A miss is a no-op,
// not an error: duplicate or late disconnect events are expected.
func (s *Store) Remove(name string) {
	i := s.indexOf(name)
	if i < 0 {
		return
	}

	s.members = append(s.members[:i], s.members[i+1:]...)
	if s.surface != nil {
		s.surface.RemoveMember(name)
	}
}

// Contains reports whether any entry for name is present.
func (s *Store) Contains(name string) bool {
	return s.indexOf(name) >= 0
}

// Names returns the present member names in insertion order.
func (s *Store) Names() []string {
	names := make([]string, len(s.members))
	for i, m := range s.members {
		names[i] = m.Name
	}
	return names
}

// Len returns the number of visual entries.
func (s *Store) Len() int {
	return len(s.members)
}

func (s *Store) indexOf(name string) int {
	for i, m := range s.members {
		if m.Name == name {
			return i
		}
	}
	return -1
}
