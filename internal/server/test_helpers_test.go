package server

import (
	"testing"
	"time"

	"github.com/talkroom/talkroom/internal/proto"
)

func mustEvent(t *testing.T, ch <-chan proto.Event, kind proto.EventKind) proto.Event {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				t.Fatalf("event channel closed while waiting for %v", kind)
			}
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("expected event kind %v not received", kind)
		}
	}
}

func mustNoEvent(t *testing.T, ch <-chan proto.Event, kind proto.EventKind) {
	t.Helper()

	timeout := time.After(150 * time.Millisecond)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if ev.Kind == kind {
				t.Fatalf("unexpected event received: %+v", ev)
			}
		case <-timeout:
			return
		}
	}
}
