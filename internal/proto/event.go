package proto

import (
	"encoding/json"
	"fmt"
)

// EventKind enumerates the inbound room events a client reacts to.
type EventKind int

const (
	// EventUserConnected notifies that a member entered the room.
	EventUserConnected EventKind = iota
	// EventUserDisconnected notifies that a member left the room.
	EventUserDisconnected
	// EventMessageReceived delivers another member's chat message.
	EventMessageReceived
)

func (k EventKind) String() string {
	switch k {
	case EventUserConnected:
		return EventNameUserConnected
	case EventUserDisconnected:
		return EventNameUserDisconnected
	case EventMessageReceived:
		return EventNameMessageReceived
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is the decoded form of an inbound room event. Timestamp stays the
// raw wire string; converting it to local display form is the renderer's
// job.
type Event struct {
	Kind      EventKind
	Name      string
	Message   string
	Timestamp string
	ID        string // only set for EventUserConnected
}

// DecodeEvent maps an Outbound event envelope onto a typed Event.
// Unknown event names are an error the caller may choose to ignore.
func DecodeEvent(out Outbound) (Event, error) {
	switch out.Event {
	case EventNameUserConnected:
		var d UserConnectedData
		if err := json.Unmarshal(out.Data, &d); err != nil {
			return Event{}, fmt.Errorf("decode %s: %w", out.Event, err)
		}
		return Event{Kind: EventUserConnected, Name: d.Name, Message: d.Message, Timestamp: d.Timestamp, ID: d.ID}, nil
	case EventNameUserDisconnected:
		var d UserDisconnectedData
		if err := json.Unmarshal(out.Data, &d); err != nil {
			return Event{}, fmt.Errorf("decode %s: %w", out.Event, err)
		}
		return Event{Kind: EventUserDisconnected, Name: d.Name, Message: d.Message, Timestamp: d.Timestamp}, nil
	case EventNameMessageReceived:
		var d MessageReceivedData
		if err := json.Unmarshal(out.Data, &d); err != nil {
			return Event{}, fmt.Errorf("decode %s: %w", out.Event, err)
		}
		return Event{Kind: EventMessageReceived, Name: d.Name, Message: d.Message, Timestamp: d.Timestamp}, nil
	default:
		return Event{}, fmt.Errorf("unknown event %q", out.Event)
	}
}

// EncodeEvent builds the Outbound envelope the server broadcasts for ev.
func EncodeEvent(ev Event) (Outbound, error) {
	var payload any
	switch ev.Kind {
	case EventUserConnected:
		payload = UserConnectedData{Name: ev.Name, Message: ev.Message, Timestamp: ev.Timestamp, ID: ev.ID}
	case EventUserDisconnected:
		payload = UserDisconnectedData{Name: ev.Name, Message: ev.Message, Timestamp: ev.Timestamp}
	case EventMessageReceived:
		payload = MessageReceivedData{Name: ev.Name, Message: ev.Message, Timestamp: ev.Timestamp}
	default:
		return Outbound{}, fmt.Errorf("unknown event kind %d", ev.Kind)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return Outbound{}, fmt.Errorf("encode %s: %w", ev.Kind, err)
	}
	return Outbound{Type: OutboundTypeEvent, Event: ev.Kind.String(), Data: data}, nil
}
