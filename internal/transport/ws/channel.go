// Package ws implements the realtime event channel over a websocket
// connection. The rest of the client only sees named inbound events and
// fire-and-forget outbound emissions.
package ws

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/talkroom/talkroom/internal/proto"
)

// Channel is a live connection to the room server.
type Channel struct {
	conn   *websocket.Conn
	log    *zerolog.Logger
	events chan proto.Event
	ctx    context.Context
	cancel context.CancelFunc
}

// Dial connects to url and starts the read loop. The returned Channel's
// Events stream closes when the connection dies; reconnecting is the
// caller's decision.
func Dial(ctx context.Context, url string, logger *zerolog.Logger) (*Channel, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	ch := &Channel{
		conn:   conn,
		log:    logger,
		events: make(chan proto.Event, 16),
		ctx:    ctx,
		cancel: cancel,
	}
	go ch.readLoop()
	return ch, nil
}

// Events exposes the inbound event stream. The channel is closed once the
// connection is gone.
func (c *Channel) Events() <-chan proto.Event {
	return c.events
}

// EmitMessageSent sends a messageSent emission. Best-effort: a write
// failure is logged and otherwise swallowed, matching the channel's
// fire-and-forget contract. The message must already be sanitized.
func (c *Channel) EmitMessageSent(message string) {
	data, err := json.Marshal(proto.MessageSentData{Message: message})
	if err != nil {
		c.log.Error().Err(err).Msg("marshal messageSent")
		return
	}

	env := proto.Inbound{Type: proto.InboundTypeMessageSent, Data: data}
	if err := wsjson.Write(c.ctx, c.conn, env); err != nil {
		c.log.Warn().Err(err).Msg("emit messageSent")
	}
}

// Close tears the connection down.
func (c *Channel) Close() {
	c.cancel()
	_ = c.conn.Close(websocket.StatusNormalClosure, "bye")
}

func (c *Channel) readLoop() {
	defer close(c.events)
	defer c.cancel()

	for {
		var out proto.Outbound
		if err := wsjson.Read(c.ctx, c.conn, &out); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			c.log.Warn().Err(err).Msg("channel read")
			return
		}

		switch out.Type {
		case proto.OutboundTypeEvent:
			ev, err := proto.DecodeEvent(out)
			if err != nil {
				c.log.Warn().Err(err).Msg("dropping undecodable event")
				continue
			}
			select {
			case c.events <- ev:
			case <-c.ctx.Done():
				return
			}
		case proto.OutboundTypeError:
			if out.Error != nil {
				c.log.Warn().Str("code", out.Error.Code).Str("msg", out.Error.Msg).Msg("server error")
			}
		default:
			c.log.Debug().Str("type", out.Type).Msg("ignoring unknown envelope")
		}
	}
}
