package user

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"chatroom/internal/pkg/logx"
	"chatroom/internal/pkg/randx"
)

// DefaultIdleTTL is how long an unpinned session stays in memory after its last use.
// Evicted sessions come back from their cookie claims on the next request.
const DefaultIdleTTL = time.Hour

type entry struct {
	session *Session

	// lastSeen is a unix nano timestamp, refreshed on every lookup.
	lastSeen atomic.Int64

	// pins counts live connections; pinned entries are never swept. Guarded by Store.mu.
	pins int
}

func (e *entry) touch(now time.Time) {
	e.lastSeen.Store(now.UnixNano())
}

// Store keeps the sessions in use by this process, keyed by id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	idleTTL  time.Duration
}

// NewStore returns an empty store evicting sessions idle for longer than idleTTL.
// A non-positive idleTTL selects DefaultIdleTTL.
func NewStore(idleTTL time.Duration) *Store {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}

	return &Store{
		sessions: make(map[string]*entry),
		idleTTL:  idleTTL,
	}
}

// Create registers a new session with a fresh id.
func (st *Store) Create(nickname, roomID string) *Session {
	s := NewSession(randx.SessionID(), nickname, roomID)

	e := &entry{session: s}
	e.touch(time.Now())

	st.mu.Lock()
	st.sessions[s.ID] = e
	st.mu.Unlock()

	return s
}

// Get returns the session with the given id, or nil.
func (st *Store) Get(id string) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()

	e, ok := st.sessions[id]
	if !ok {
		return nil
	}
	e.touch(time.Now())
	return e.session
}

// Restore returns the live session for snap.ID, recreating it from snap when this
// process does not hold it (after a restart or an eviction, the cookie outlives the store).
func (st *Store) Restore(snap Snapshot) *Session {
	if s := st.Get(snap.ID); s != nil {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if e, ok := st.sessions[snap.ID]; ok {
		e.touch(time.Now())
		return e.session
	}

	e := &entry{session: NewSession(snap.ID, snap.Nickname, snap.RoomID)}
	e.touch(time.Now())
	st.sessions[snap.ID] = e
	return e.session
}

// Pin keeps s in the store while a connection uses it. Every Pin needs a matching Unpin.
// A session that was evicted in the meantime is put back.
func (st *Store) Pin(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[s.ID]
	if !ok || e.session != s {
		e = &entry{session: s}
		st.sessions[s.ID] = e
	}
	e.pins++
	e.touch(time.Now())
}

// Unpin releases one Pin. The idle clock restarts from now.
func (st *Store) Unpin(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[s.ID]
	if !ok || e.session != s || e.pins == 0 {
		return
	}
	e.pins--
	e.touch(time.Now())
}

// Sweep drops unpinned sessions idle since before now minus the idle TTL and returns
// how many were removed.
func (st *Store) Sweep(now time.Time) int {
	cutoff := now.Add(-st.idleTTL).UnixNano()

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, e := range st.sessions {
		if e.pins == 0 && e.lastSeen.Load() < cutoff {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (st *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed := st.Sweep(now)
			logx.Debug("Session store sweep finished",
				"removed", removed,
				"remaining", st.Len(),
			)
		}
	}
}

// Len returns the number of stored sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
