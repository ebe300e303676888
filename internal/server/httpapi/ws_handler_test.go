package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/talkroom/talkroom/internal/config"
	"github.com/talkroom/talkroom/internal/log"
	"github.com/talkroom/talkroom/internal/proto"
	"github.com/talkroom/talkroom/internal/server"
	"github.com/talkroom/talkroom/internal/server/store"
	"github.com/talkroom/talkroom/internal/server/ticket"
)

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	logger := log.New("error")
	hub := server.NewHub(st, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	ticketCfg := &ticket.Config{
		Secret: []byte("test-secret-change-me"),
		Issuer: "talkroom-test",
		TTL:    time.Hour,
	}

	srv := NewServer(hub, st, ticketCfg, config.ServerConfig{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}, logger)

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) (*http.Response, RoomResponse) {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var room RoomResponse
	_ = json.NewDecoder(resp.Body).Decode(&room)
	return resp, room
}

func dialWS(t *testing.T, ts *httptest.Server, tk string) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws?ticket=" + tk
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial ws: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "bye") })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn, name string) proto.Event {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	for {
		var out proto.Outbound
		if err := wsjson.Read(ctx, conn, &out); err != nil {
			t.Fatalf("read waiting for %s: %v", name, err)
		}
		if out.Type != proto.OutboundTypeEvent || out.Event != name {
			continue
		}
		ev, err := proto.DecodeEvent(out)
		if err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		return ev
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := startTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestCreateJoinAndChat(t *testing.T) {
	ts := startTestServer(t)

	resp, created := postJSON(t, ts.URL+"/api/rooms", CreateRoomRequest{Name: "alice"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create room status = %d", resp.StatusCode)
	}
	if len(created.Code) != server.RoomCodeLength || created.Ticket == "" {
		t.Fatalf("unexpected create response: %+v", created)
	}

	aliceConn := dialWS(t, ts, created.Ticket)
	aliceJoined := readEvent(t, aliceConn, proto.EventNameUserConnected)
	if aliceJoined.Name != "ALICE" || aliceJoined.ID == "" {
		t.Fatalf("unexpected self join event: %+v", aliceJoined)
	}

	resp, joined := postJSON(t, ts.URL+"/api/rooms/join", JoinRoomRequest{Name: "bob", Code: created.Code})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("join room status = %d", resp.StatusCode)
	}

	bobConn := dialWS(t, ts, joined.Ticket)
	bobJoined := readEvent(t, bobConn, proto.EventNameUserConnected)
	if bobJoined.Name != "BOB" {
		t.Fatalf("unexpected bob join event: %+v", bobJoined)
	}

	// Alice sends; only Bob receives it back.
	payload, _ := json.Marshal(proto.MessageSentData{Message: "hello &lt;world&gt;"})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := wsjson.Write(ctx, aliceConn, proto.Inbound{Type: proto.InboundTypeMessageSent, Data: payload}); err != nil {
		t.Fatalf("send message: %v", err)
	}

	got := readEvent(t, bobConn, proto.EventNameMessageReceived)
	if got.Name != "ALICE" || got.Message != "hello &lt;world&gt;" {
		t.Fatalf("unexpected message event: %+v", got)
	}
}

func TestJoinValidation(t *testing.T) {
	ts := startTestServer(t)

	resp, _ := postJSON(t, ts.URL+"/api/rooms/join", JoinRoomRequest{Name: "alice", Code: "ZZZZ"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing room status = %d, want 404", resp.StatusCode)
	}

	resp, created := postJSON(t, ts.URL+"/api/rooms", CreateRoomRequest{Name: "alice"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create room status = %d", resp.StatusCode)
	}

	// Connect alice so her name is registered in the room.
	aliceConn := dialWS(t, ts, created.Ticket)
	readEvent(t, aliceConn, proto.EventNameUserConnected)

	resp, _ = postJSON(t, ts.URL+"/api/rooms/join", JoinRoomRequest{Name: "ALICE", Code: created.Code})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate name status = %d, want 409", resp.StatusCode)
	}
}

func TestWSRejectsBadTicket(t *testing.T) {
	ts := startTestServer(t)

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws?ticket=garbage"
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, resp, err := websocket.Dial(ctx, wsURL, nil)
	if err == nil {
		t.Fatal("expected dial to fail with bad ticket")
	}
	if resp != nil && resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}
