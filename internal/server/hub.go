// Package server coordinates room membership and message fan-out for the
// talkroom server.
package server

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/talkroom/talkroom/internal/proto"
	"github.com/talkroom/talkroom/internal/server/store"
	"github.com/talkroom/talkroom/internal/timefmt"
)

// MaxMessageLength caps a single chat message, in runes.
const MaxMessageLength = 4000

const (
	enterNotice = "has entered the room"
	leaveNotice = "has left the room"
)

type inboundMessage struct {
	sender *Member
	text   string
}

// Hub owns all room state. All mutations happen on the Run goroutine, so
// room maps need no locking; connections talk to the hub through channels.
type Hub struct {
	store store.Store
	log   *zerolog.Logger

	register   chan *Member
	unregister chan *Member
	messages   chan inboundMessage

	rooms map[string]map[*Member]struct{}
}

// NewHub builds a hub persisting into st.
func NewHub(st store.Store, logger *zerolog.Logger) *Hub {
	return &Hub{
		store:      st,
		log:        logger,
		register:   make(chan *Member),
		unregister: make(chan *Member),
		messages:   make(chan inboundMessage, 64),
		rooms:      make(map[string]map[*Member]struct{}),
	}
}

// Run processes hub traffic until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case m := <-h.register:
			h.handleRegister(ctx, m)
		case m := <-h.unregister:
			h.handleUnregister(ctx, m)
		case im := <-h.messages:
			h.handleMessage(ctx, im)
		}
	}
}

// Register announces a new member to the hub.
func (h *Hub) Register(m *Member) {
	h.register <- m
}

// Unregister removes a member. Safe to call for members that never
// completed registration.
func (h *Hub) Unregister(m *Member) {
	h.unregister <- m
}

// SendMessage delivers a chat message from m to its room.
func (h *Hub) SendMessage(m *Member, text string) {
	h.messages <- inboundMessage{sender: m, text: text}
}

func (h *Hub) handleRegister(ctx context.Context, m *Member) {
	members, ok := h.rooms[m.Room]
	if !ok {
		members = make(map[*Member]struct{})
		h.rooms[m.Room] = members
	}
	members[m] = struct{}{}

	if err := h.store.AddMember(ctx, &store.Member{ID: m.ID, RoomCode: m.Room, Name: m.Name}); err != nil {
		h.log.Error().Err(err).Str("room", m.Room).Str("name", m.Name).Msg("persist member")
	}

	// Replay the room's history to the newcomer before any live traffic.
	h.replayHistory(ctx, m)

	// Everyone in the room learns about the newcomer, the newcomer
	// included: the userConnected carrying its id is how a client learns
	// who it is.
	h.broadcast(m.Room, nil, proto.Event{
		Kind:      proto.EventUserConnected,
		Name:      m.Name,
		Message:   enterNotice,
		Timestamp: timefmt.NowWire(),
		ID:        m.ID,
	})

	h.log.Info().Str("room", m.Room).Str("name", m.Name).Str("id", m.ID).Msg("member joined")
}

func (h *Hub) handleUnregister(ctx context.Context, m *Member) {
	members, ok := h.rooms[m.Room]
	if !ok {
		return
	}
	if _, present := members[m]; !present {
		return
	}

	delete(members, m)
	close(m.Events)

	if err := h.store.RemoveMember(ctx, m.ID); err != nil {
		h.log.Error().Err(err).Str("id", m.ID).Msg("remove member")
	}

	h.broadcast(m.Room, nil, proto.Event{
		Kind:      proto.EventUserDisconnected,
		Name:      m.Name,
		Message:   leaveNotice,
		Timestamp: timefmt.NowWire(),
	})

	h.log.Info().Str("room", m.Room).Str("name", m.Name).Msg("member left")

	if len(members) == 0 {
		h.teardownRoom(ctx, m.Room)
	}
}

func (h *Hub) handleMessage(ctx context.Context, im inboundMessage) {
	text := strings.TrimSpace(im.text)
	if text == "" {
		return
	}
	if runes := []rune(text); len(runes) > MaxMessageLength {
		text = string(runes[:MaxMessageLength])
	}

	msg := &store.Message{
		ID:         uuid.NewString(),
		RoomCode:   im.sender.Room,
		SenderName: im.sender.Name,
		SenderID:   im.sender.ID,
		Body:       text,
	}
	if err := h.store.SaveMessage(ctx, msg); err != nil {
		h.log.Error().Err(err).Str("room", im.sender.Room).Msg("persist message")
	}

	// The sender already rendered its own message optimistically, so the
	// broadcast excludes it; echoing it back would double-render.
	h.broadcast(im.sender.Room, im.sender, proto.Event{
		Kind:      proto.EventMessageReceived,
		Name:      im.sender.Name,
		Message:   text,
		Timestamp: timefmt.NowWire(),
	})
}

func (h *Hub) replayHistory(ctx context.Context, m *Member) {
	messages, err := h.store.ListMessages(ctx, m.Room)
	if err != nil {
		h.log.Error().Err(err).Str("room", m.Room).Msg("load history")
		return
	}
	for _, msg := range messages {
		h.deliver(m, proto.Event{
			Kind:      proto.EventMessageReceived,
			Name:      msg.SenderName,
			Message:   msg.Body,
			Timestamp: msg.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
}

// broadcast sends ev to every member of room except skip (nil to include
// everyone).
func (h *Hub) broadcast(room string, skip *Member, ev proto.Event) {
	for m := range h.rooms[room] {
		if m == skip {
			continue
		}
		h.deliver(m, ev)
	}
}

func (h *Hub) deliver(m *Member, ev proto.Event) {
	select {
	case m.Events <- ev:
	default:
		// Drop if slow consumer.
		h.log.Warn().Str("name", m.Name).Str("room", m.Room).Msg("dropping event for slow consumer")
	}
}

func (h *Hub) teardownRoom(ctx context.Context, room string) {
	delete(h.rooms, room)

	if err := h.store.DeleteMessages(ctx, room); err != nil {
		h.log.Error().Err(err).Str("room", room).Msg("delete messages")
	}
	if err := h.store.DeleteRoom(ctx, room); err != nil {
		h.log.Error().Err(err).Str("room", room).Msg("delete room")
	}

	h.log.Info().Str("room", room).Msg("room torn down")
}
