/*
Package user holds the identity of chat participants.

A Session is created once per browser session by the HTTP layer and reused by every
connection that browser opens. The chat engine only reads it; nickname and room are
changed by the session endpoints.
*/
package user

import "sync"

// Session is one logical chat participant.
type Session struct {
	// ID is assigned at creation and never changes.
	ID string

	mu       sync.RWMutex
	nickname string
	roomID   string
}

// NewSession returns a session with the given identity and initial state.
func NewSession(id, nickname, roomID string) *Session {
	return &Session{
		ID:       id,
		nickname: nickname,
		roomID:   roomID,
	}
}

// Nickname returns the session's current nickname.
func (s *Session) Nickname() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nickname
}

// SetNickname replaces the session's nickname. Display names already captured by the
// chat engine are not affected.
func (s *Session) SetNickname(nickname string) {
	s.mu.Lock()
	s.nickname = nickname
	s.mu.Unlock()
}

// RoomID returns the room the session currently belongs to.
func (s *Session) RoomID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roomID
}

// SetRoomID moves the session to another room. Live connections follow immediately.
func (s *Session) SetRoomID(roomID string) {
	s.mu.Lock()
	s.roomID = roomID
	s.mu.Unlock()
}

// Snapshot is a plain copy of a session, suitable for JSON and for token claims.
type Snapshot struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	RoomID   string `json:"roomId"`
}

// Snapshot copies the session state under one lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{ID: s.ID, Nickname: s.nickname, RoomID: s.roomID}
}
