package session

import (
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	st, err := Open(":memory:", nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	if st.Name() != "" || st.UserID() != "" {
		t.Fatalf("fresh store not empty: name=%q id=%q", st.Name(), st.UserID())
	}

	st.SetName("ALICE")
	st.SetUserID("u1")
	st.SetUserID("u2") // every connect overwrites

	if st.Name() != "ALICE" || st.UserID() != "u2" {
		t.Fatalf("unexpected identity: name=%q id=%q", st.Name(), st.UserID())
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.db")

	st, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	st.SetName("BOB")
	st.SetUserID("u9")
	if err := st.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	if reopened.Name() != "BOB" || reopened.UserID() != "u9" {
		t.Fatalf("identity lost across reopen: name=%q id=%q", reopened.Name(), reopened.UserID())
	}
}
