// Package api is the thin HTTP client for the room server's join
// endpoints. It runs once, before the realtime channel is opened.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RoomTicket is what a successful create or join returns.
type RoomTicket struct {
	Code   string `json:"code"`
	Ticket string `json:"ticket"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client talks to one room server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a Client for baseURL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateRoom creates a fresh room and returns its code and admission
// ticket.
func (c *Client) CreateRoom(ctx context.Context, name string) (*RoomTicket, error) {
	return c.post(ctx, "/api/rooms", map[string]string{"name": name})
}

// JoinRoom requests admission to an existing room.
func (c *Client) JoinRoom(ctx context.Context, name, code string) (*RoomTicket, error) {
	return c.post(ctx, "/api/rooms/join", map[string]string{"name": name, "code": code})
}

// WSURL converts the base URL into the websocket endpoint for ticket.
func (c *Client) WSURL(ticket string) string {
	wsBase := c.baseURL
	switch {
	case strings.HasPrefix(wsBase, "https://"):
		wsBase = "wss://" + strings.TrimPrefix(wsBase, "https://")
	case strings.HasPrefix(wsBase, "http://"):
		wsBase = "ws://" + strings.TrimPrefix(wsBase, "http://")
	}
	return wsBase + "/ws?ticket=" + ticket
}

func (c *Client) post(ctx context.Context, path string, body any) (*RoomTicket, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("%s: %s", path, apiErr.Error)
		}
		return nil, fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}

	var ticket RoomTicket
	if err := json.NewDecoder(resp.Body).Decode(&ticket); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &ticket, nil
}
