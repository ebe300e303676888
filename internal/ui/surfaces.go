package ui

import "github.com/talkroom/talkroom/internal/timeline"

// timelineBuffer is the TimelineSurface: an append-only entry list the
// viewport renders from. The append marks the buffer dirty; the update
// loop refreshes the viewport and snaps it to the bottom edge so the
// newest entry is always visible.
type timelineBuffer struct {
	entries []timeline.Entry
	dirty   bool
}

func (b *timelineBuffer) Append(e timeline.Entry) {
	b.entries = append(b.entries, e)
	b.dirty = true
}

// rosterBuffer is the RosterSurface: the member panel's name list. Names
// are rendered as plain text, so a hostile display name cannot inject
// styling or layout.
type rosterBuffer struct {
	names []string
	dirty bool
}

func (b *rosterBuffer) AddMember(name string) {
	b.names = append(b.names, name)
	b.dirty = true
}

func (b *rosterBuffer) RemoveMember(name string) {
	for i, n := range b.names {
		if n == name {
			b.names = append(b.names[:i], b.names[i+1:]...)
			b.dirty = true
			return
		}
	}
}
