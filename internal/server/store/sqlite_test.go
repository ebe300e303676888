package store

import (
	"context"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	st, err := New(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestRoomLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	exists, err := st.RoomExists(ctx, "ABCD")
	if err != nil {
		t.Fatalf("room exists: %v", err)
	}
	if exists {
		t.Fatal("room should not exist yet")
	}

	if err := st.CreateRoom(ctx, "ABCD"); err != nil {
		t.Fatalf("create room: %v", err)
	}
	if exists, _ = st.RoomExists(ctx, "ABCD"); !exists {
		t.Fatal("room missing after create")
	}

	if err := st.DeleteRoom(ctx, "ABCD"); err != nil {
		t.Fatalf("delete room: %v", err)
	}
	if exists, _ = st.RoomExists(ctx, "ABCD"); exists {
		t.Fatal("room still exists after delete")
	}
}

func TestMembersAndNameUniqueness(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if err := st.CreateRoom(ctx, "ABCD"); err != nil {
		t.Fatalf("create room: %v", err)
	}

	if err := st.AddMember(ctx, &Member{ID: "m1", RoomCode: "ABCD", Name: "ALICE"}); err != nil {
		t.Fatalf("add member: %v", err)
	}

	taken, err := st.MemberNameTaken(ctx, "ABCD", "ALICE")
	if err != nil {
		t.Fatalf("name taken: %v", err)
	}
	if !taken {
		t.Fatal("expected ALICE to be taken")
	}
	if taken, _ = st.MemberNameTaken(ctx, "ABCD", "BOB"); taken {
		t.Fatal("BOB should be free")
	}
	if taken, _ = st.MemberNameTaken(ctx, "WXYZ", "ALICE"); taken {
		t.Fatal("same name in another room should be free")
	}

	n, err := st.MemberCount(ctx, "ABCD")
	if err != nil {
		t.Fatalf("member count: %v", err)
	}
	if n != 1 {
		t.Fatalf("member count = %d, want 1", n)
	}

	if err := st.RemoveMember(ctx, "m1"); err != nil {
		t.Fatalf("remove member: %v", err)
	}
	if n, _ = st.MemberCount(ctx, "ABCD"); n != 0 {
		t.Fatalf("member count after remove = %d, want 0", n)
	}
}

func TestMessagesOrderAndTeardown(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	if err := st.CreateRoom(ctx, "ABCD"); err != nil {
		t.Fatalf("create room: %v", err)
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, body := range []string{"one", "two", "three"} {
		msg := &Message{
			ID:         string(rune('a' + i)),
			RoomCode:   "ABCD",
			SenderName: "ALICE",
			SenderID:   "m1",
			Body:       body,
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		}
		if err := st.SaveMessage(ctx, msg); err != nil {
			t.Fatalf("save message %q: %v", body, err)
		}
	}

	messages, err := st.ListMessages(ctx, "ABCD")
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(messages))
	}
	for i, want := range []string{"one", "two", "three"} {
		if messages[i].Body != want {
			t.Fatalf("message %d = %q, want %q", i, messages[i].Body, want)
		}
	}

	if err := st.DeleteMessages(ctx, "ABCD"); err != nil {
		t.Fatalf("delete messages: %v", err)
	}
	if messages, _ = st.ListMessages(ctx, "ABCD"); len(messages) != 0 {
		t.Fatalf("messages remain after teardown: %d", len(messages))
	}
}
