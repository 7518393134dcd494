package chat

import (
	"sync"

	"chatroom/internal/app/user"
)

// member is the registry entry of one session.
type member struct {
	// session is the latest session object seen on join; its room is read at broadcast time.
	session *user.Session

	// name is the display name captured when the entry was created. Only Rename changes it.
	name string

	conns map[Conn]struct{}
}

// Registry maps sessions to their live connections.
//
// An entry exists from the first join of a session until its last connection leaves.
// All methods are safe for concurrent use; the listing methods return snapshots.
type Registry struct {
	mu      sync.RWMutex
	members map[string]*member
	conns   int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{members: make(map[string]*member)}
}

// Join adds c to the session's entry, creating the entry with the session's current
// nickname as display name. It reports whether c is now the session's only connection.
// Joining the same Conn twice is a no-op returning false.
func (r *Registry) Join(s *user.Session, c Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[s.ID]
	if !ok {
		m = &member{
			session: s,
			name:    s.Nickname(),
			conns:   make(map[Conn]struct{}),
		}
		r.members[s.ID] = m
	}
	m.session = s

	if _, dup := m.conns[c]; dup {
		return false
	}

	m.conns[c] = struct{}{}
	r.conns++

	return len(m.conns) == 1
}

// Leave removes c from the session's entry. When that empties the entry, the entry is
// deleted and Leave reports true with the display name to announce. Unknown sessions or
// connections are ignored.
func (r *Registry) Leave(s *user.Session, c Conn) (bool, string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[s.ID]
	if !ok {
		return false, ""
	}

	if _, ok := m.conns[c]; !ok {
		return false, ""
	}

	delete(m.conns, c)
	r.conns--

	if len(m.conns) > 0 {
		return false, m.name
	}

	delete(r.members, s.ID)
	return true, m.name
}

// Rename sets the session's display name and returns the previous one. Without an
// entry nothing is stored and the session's nickname is returned as the old name.
func (r *Registry) Rename(s *user.Session, newName string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[s.ID]
	if !ok {
		return s.Nickname()
	}

	old := m.name
	m.name = newName
	return old
}

// DisplayName returns the stored display name, falling back to the session's nickname.
func (r *Registry) DisplayName(s *user.Session) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if m, ok := r.members[s.ID]; ok {
		return m.name
	}
	return s.Nickname()
}

// ConnectionsInRoom returns the connections of every session currently in roomID.
func (r *Registry) ConnectionsInRoom(roomID string) []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Conn
	for _, m := range r.members {
		if m.session.RoomID() != roomID {
			continue
		}
		for c := range m.conns {
			out = append(out, c)
		}
	}
	return out
}

// ConnectionsFor returns the connections of one session.
func (r *Registry) ConnectionsFor(s *user.Session) []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[s.ID]
	if !ok {
		return nil
	}

	out := make([]Conn, 0, len(m.conns))
	for c := range m.conns {
		out = append(out, c)
	}
	return out
}

// All returns every registered connection.
func (r *Registry) All() []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Conn, 0, r.conns)
	for _, m := range r.members {
		for c := range m.conns {
			out = append(out, c)
		}
	}
	return out
}

// Counts returns the number of members and connections.
func (r *Registry) Counts() (members, conns int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members), r.conns
}
