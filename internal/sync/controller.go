// Package sync binds inbound room events and local user intent to the
// client's two local models: the message timeline and the member roster.
package sync

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/talkroom/talkroom/internal/proto"
	"github.com/talkroom/talkroom/internal/roster"
	"github.com/talkroom/talkroom/internal/sanitize"
	"github.com/talkroom/talkroom/internal/session"
	"github.com/talkroom/talkroom/internal/timefmt"
	"github.com/talkroom/talkroom/internal/timeline"
)

// Emitter sends an outbound messageSent to the channel. Fire-and-forget:
// delivery is best-effort and never awaited, so there is nothing to
// return. A dead channel is the transport's problem, not this layer's.
type Emitter interface {
	EmitMessageSent(message string)
}

// Controller is the orchestrator. Handle and Submit are only ever called
// from the single event dispatch goroutine; handlers run to completion
// without preemption, so no locking is needed.
type Controller struct {
	session  session.Context
	roster   *roster.Store
	timeline *timeline.Renderer
	emitter  Emitter
	log      *zerolog.Logger
	nowWire  func() string
}

// Option tweaks controller construction.
type Option func(*Controller)

// WithClock overrides the wire-instant source for the optimistic echo.
func WithClock(now func() string) Option {
	return func(c *Controller) { c.nowWire = now }
}

// New wires the controller. The roster store must share its Identity with
// sess so observed ids end up persisted.
func New(sess session.Context, ros *roster.Store, tl *timeline.Renderer, em Emitter, logger *zerolog.Logger, opts ...Option) *Controller {
	c := &Controller{
		session:  sess,
		roster:   ros,
		timeline: tl,
		emitter:  em,
		log:      logger,
		nowWire:  timefmt.NowWire,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Handle applies one inbound event to the local models. Unknown kinds are
// logged and dropped; silence is the recovery policy for this layer.
func (c *Controller) Handle(ev proto.Event) {
	switch ev.Kind {
	case proto.EventUserConnected:
		c.timeline.Render(ev.Name, ev.Message, ev.Timestamp, timeline.OriginUserConnected)
		c.roster.Add(ev.Name, ev.ID)
	case proto.EventUserDisconnected:
		c.timeline.Render(ev.Name, ev.Message, ev.Timestamp, timeline.OriginUserDisconnected)
		c.roster.Remove(ev.Name)
	case proto.EventMessageReceived:
		c.timeline.Render(ev.Name, ev.Message, ev.Timestamp, timeline.OriginIncoming)
	default:
		if c.log != nil {
			c.log.Warn().Str("kind", ev.Kind.String()).Msg("dropping unknown event")
		}
	}
}

// Submit sanitizes and sends the user's input. Whitespace-only input is
// silently discarded. On send the message is echoed into the timeline
// immediately with a locally computed UTC instant rather than waiting for
// server confirmation; the server broadcasts it to the other members
// only, so no deduplication happens here. Returns whether the input
// affordance should be cleared.
func (c *Controller) Submit(text string) bool {
	message := strings.TrimSpace(sanitize.Text(text))
	if message == "" {
		return false
	}

	c.emitter.EmitMessageSent(message)
	c.timeline.Render(c.session.Name(), message, c.nowWire(), timeline.OriginOutgoing)
	return true
}
