package chat

import (
	"testing"

	"chatroom/internal/app/user"
)

func TestRegistryJoinLeave(t *testing.T) {
	r := NewRegistry()
	s := user.NewSession("s1", "alice", "0")
	c1, c2 := newFakeConn("c1"), newFakeConn("c2")

	if !r.Join(s, c1) {
		t.Error("First join should report first")
	}
	if r.Join(s, c2) {
		t.Error("Second join should not report first")
	}
	if r.Join(s, c2) {
		t.Error("Duplicate join should be a no-op")
	}

	if members, conns := r.Counts(); members != 1 || conns != 2 {
		t.Fatalf("Expected 1 member and 2 connections, got %d and %d", members, conns)
	}

	if last, _ := r.Leave(s, c1); last {
		t.Error("Leaving with a connection left should not report last")
	}
	last, name := r.Leave(s, c2)
	if !last || name != "alice" {
		t.Errorf("Expected last leave with name alice, got %v %q", last, name)
	}

	if members, conns := r.Counts(); members != 0 || conns != 0 {
		t.Errorf("Expected empty registry, got %d members and %d connections", members, conns)
	}
}

func TestRegistryLeaveUnknownIsNoop(t *testing.T) {
	r := NewRegistry()
	s := user.NewSession("s1", "alice", "0")
	c := newFakeConn("c1")

	if last, _ := r.Leave(s, c); last {
		t.Error("Leave of unknown session should be a no-op")
	}

	r.Join(s, c)
	if last, _ := r.Leave(s, newFakeConn("other")); last {
		t.Error("Leave of unknown connection should be a no-op")
	}
	if _, conns := r.Counts(); conns != 1 {
		t.Errorf("Expected 1 connection, got %d", conns)
	}
}

func TestRegistryRename(t *testing.T) {
	r := NewRegistry()
	s := user.NewSession("s1", "alice", "0")

	if old := r.Rename(s, "bob"); old != "alice" {
		t.Errorf("Rename without entry should return nickname, got %q", old)
	}
	if got := r.DisplayName(s); got != "alice" {
		t.Errorf("Rename without entry should store nothing, got %q", got)
	}

	r.Join(s, newFakeConn("c1"))
	if old := r.Rename(s, "bob"); old != "alice" {
		t.Errorf("Expected old name alice, got %q", old)
	}
	if got := r.DisplayName(s); got != "bob" {
		t.Errorf("Expected display name bob, got %q", got)
	}
	if got := s.Nickname(); got != "alice" {
		t.Errorf("Rename must not touch the session nickname, got %q", got)
	}
}

func TestRegistryConnectionsInRoom(t *testing.T) {
	r := NewRegistry()
	s1 := user.NewSession("s1", "alice", "1")
	s2 := user.NewSession("s2", "bob", "2")
	c1, c2 := newFakeConn("c1"), newFakeConn("c2")
	r.Join(s1, c1)
	r.Join(s2, c2)

	if got := r.ConnectionsInRoom("1"); len(got) != 1 || got[0] != Conn(c1) {
		t.Errorf("Expected only c1 in room 1, got %v", got)
	}

	s2.SetRoomID("1")
	if got := r.ConnectionsInRoom("1"); len(got) != 2 {
		t.Errorf("Expected 2 connections after room change, got %d", len(got))
	}
	if got := r.ConnectionsInRoom("2"); len(got) != 0 {
		t.Errorf("Expected room 2 to be empty, got %d", len(got))
	}
	if got := r.All(); len(got) != 2 {
		t.Errorf("Expected 2 connections overall, got %d", len(got))
	}
	if got := r.ConnectionsFor(s1); len(got) != 1 {
		t.Errorf("Expected 1 connection for s1, got %d", len(got))
	}
}
