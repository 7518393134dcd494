package user

import (
	"context"
	"testing"
	"time"
)

func TestStoreSweepEvictsIdleSessions(t *testing.T) {
	st := NewStore(time.Minute)
	s := st.Create("alice", "0")

	if removed := st.Sweep(time.Now()); removed != 0 {
		t.Fatalf("Fresh session swept, removed %d", removed)
	}

	if removed := st.Sweep(time.Now().Add(2 * time.Minute)); removed != 1 {
		t.Fatalf("Expected 1 idle session removed, got %d", removed)
	}
	if st.Get(s.ID) != nil || st.Len() != 0 {
		t.Error("Idle session still stored")
	}
}

func TestStoreKeepsPinnedSessions(t *testing.T) {
	st := NewStore(time.Minute)
	s := st.Create("alice", "0")

	st.Pin(s)
	if removed := st.Sweep(time.Now().Add(time.Hour)); removed != 0 {
		t.Fatalf("Pinned session swept")
	}

	st.Unpin(s)
	st.Unpin(s)
	if removed := st.Sweep(time.Now().Add(time.Hour)); removed != 1 {
		t.Errorf("Expected unpinned session to be swept, removed %d", removed)
	}
}

func TestStorePinPutsEvictedSessionBack(t *testing.T) {
	st := NewStore(time.Minute)
	s := st.Create("alice", "0")
	st.Sweep(time.Now().Add(time.Hour))

	st.Pin(s)
	if got := st.Get(s.ID); got != s {
		t.Errorf("Expected pinned session back in the store, got %v", got)
	}
}

func TestStoreRestoreAfterEviction(t *testing.T) {
	st := NewStore(time.Minute)
	s := st.Create("alice", "lobby")
	s.SetNickname("carol")
	snap := s.Snapshot()

	st.Sweep(time.Now().Add(time.Hour))

	restored := st.Restore(snap)
	if restored.ID != snap.ID || restored.Nickname() != "carol" || restored.RoomID() != "lobby" {
		t.Errorf("Unexpected restored session %+v", restored.Snapshot())
	}
	if again := st.Restore(snap); again != restored {
		t.Error("Restore of a stored session returned a new object")
	}
}

func TestStoreRunSweeperStopsWithContext(t *testing.T) {
	st := NewStore(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		st.RunSweeper(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunSweeper did not stop")
	}
}
