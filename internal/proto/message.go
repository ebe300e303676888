package proto

import "encoding/json"

// Inbound is the envelope for messages coming from a client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	ProtocolVersion = 1

	// Client -> server.
	InboundTypeMessageSent = "messageSent"

	// Server -> client envelope types.
	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	// Server -> client event names.
	EventNameUserConnected    = "userConnected"
	EventNameUserDisconnected = "userDisconnected"
	EventNameMessageReceived  = "messageReceived"
)

// MessageSentData carries a chat message from the client. The body must be
// sanitized by the client before it is sent; the server does not escape it
// again.
type MessageSentData struct {
	Message string `json:"message"`
}

// Outbound is the envelope for messages sent to a client.
type Outbound struct {
	Type  string          `json:"type"`
	Event string          `json:"event,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error *Error          `json:"error,omitempty"`
}

// UserConnectedData announces a member entering the room. ID is the
// server-issued member id; every client persists the last one it sees as
// its own identity.
type UserConnectedData struct {
	Name      string `json:"name"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	ID        string `json:"id"`
}

// UserDisconnectedData announces a member leaving the room.
type UserDisconnectedData struct {
	Name      string `json:"name"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// MessageReceivedData carries another member's chat message. The sender
// never receives its own message back; it already rendered it locally.
type MessageReceivedData struct {
	Name      string `json:"name"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
