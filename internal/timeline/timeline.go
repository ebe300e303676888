// Package timeline turns room events into ordered display entries.
package timeline

import "github.com/talkroom/talkroom/internal/timefmt"

// Origin classifies a timeline entry. It decides label presence and the
// entry's visual treatment, and never changes after creation.
type Origin string

const (
	OriginIncoming         Origin = "incoming"
	OriginOutgoing         Origin = "outgoing"
	OriginUserConnected    Origin = "user-connected"
	OriginUserDisconnected Origin = "user-disconnected"
)

// Entry is one rendered timeline item. Body is assumed pre-sanitized for
// user-authored text; system notices (connect/disconnect) are trusted
// verbatim.
type Entry struct {
	Label  string // "author: " or empty for outgoing
	Body   string
	Time   string // local display form
	Origin Origin
}

// Surface is the scrollable rendering target. Append must leave the most
// recent entry visible without user action.
type Surface interface {
	Append(Entry)
}

// Renderer appends entries to a Surface, normalizing instants to local
// display form on the way. Entries are append-only and ordered by call
// sequence: out-of-order delivery from the channel produces out-of-order
// display, which is a documented limitation, not something to fix here.
type Renderer struct {
	surface Surface
	clock   timefmt.Normalizer
}

// New builds a Renderer writing to surface.
func New(surface Surface, clock timefmt.Normalizer) *Renderer {
	return &Renderer{surface: surface, clock: clock}
}

// Render appends one entry. The author label is dropped for outgoing
// entries; the viewer knows who they are. Callers own sanitization of
// author and body.
func (r *Renderer) Render(author, body, instant string, origin Origin) {
	label := ""
	if origin != OriginOutgoing {
		label = author + ": "
	}

	r.surface.Append(Entry{
		Label:  label,
		Body:   body,
		Time:   r.clock.ToLocalDisplay(instant),
		Origin: origin,
	})
}
