package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/talkroom/talkroom/internal/proto"
	"github.com/talkroom/talkroom/internal/server"
	"github.com/talkroom/talkroom/internal/server/store"
	"github.com/talkroom/talkroom/internal/server/ticket"
)

// WSHandler upgrades HTTP connections and bridges them to hub members.
type WSHandler struct {
	hub       *server.Hub
	store     store.Store
	ticketCfg *ticket.Config
	log       *zerolog.Logger
}

// NewWSHandler builds the websocket handler.
func NewWSHandler(hub *server.Hub, st store.Store, ticketCfg *ticket.Config, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{hub: hub, store: st, ticketCfg: ticketCfg, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	claims, err := ticket.Validate(h.ticketCfg, r.URL.Query().Get("ticket"))
	if err != nil {
		h.log.Warn().Err(err).Msg("ws ticket rejected")
		stdhttp.Error(w, "invalid ticket", stdhttp.StatusUnauthorized)
		return
	}

	exists, err := h.store.RoomExists(r.Context(), claims.Room)
	if err != nil || !exists {
		stdhttp.Error(w, "room does not exist", stdhttp.StatusNotFound)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	member := server.NewMember(uuid.NewString(), claims.Name, claims.Room)
	h.hub.Register(member)
	defer h.hub.Unregister(member)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, member)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, member)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != -1 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Str("name", member.Name).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, member *server.Member) error {
	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, conn, &inbound); err != nil {
			return err
		}

		switch inbound.Type {
		case proto.InboundTypeMessageSent:
			var data proto.MessageSentData
			if err := json.Unmarshal(inbound.Data, &data); err != nil {
				if writeErr := wsjson.Write(ctx, conn, proto.Outbound{
					Type:  proto.OutboundTypeError,
					Error: &proto.Error{Code: "bad_request", Msg: "malformed messageSent payload"},
				}); writeErr != nil {
					return writeErr
				}
				continue
			}
			h.hub.SendMessage(member, data.Message)
		default:
			if writeErr := wsjson.Write(ctx, conn, proto.Outbound{
				Type:  proto.OutboundTypeError,
				Error: &proto.Error{Code: "bad_request", Msg: "unknown inbound type"},
			}); writeErr != nil {
				return writeErr
			}
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, member *server.Member) error {
	for {
		select {
		case ev, ok := <-member.Events:
			if !ok {
				return nil
			}
			out, err := proto.EncodeEvent(ev)
			if err != nil {
				h.log.Error().Err(err).Msg("encode event")
				continue
			}
			if err := wsjson.Write(ctx, conn, out); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
