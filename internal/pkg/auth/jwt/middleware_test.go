package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"chatroom/internal/app/user"
)

func TestSessionManagerRoundTrip(t *testing.T) {
	store := user.NewStore(user.DefaultIdleTTL)
	m := NewSessionManager(store, "secret", false, "0")

	rec := httptest.NewRecorder()
	s, err := m.Create(rec, "alice", m.DefaultRoom())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	if got := m.Resolve(req); got != s {
		t.Errorf("Expected the live session back, got %v", got)
	}
}

func TestSessionManagerRestoresUnknownSession(t *testing.T) {
	issuer := NewSessionManager(user.NewStore(user.DefaultIdleTTL), "secret", false, "0")
	rec := httptest.NewRecorder()
	if _, err := issuer.Create(rec, "alice", "lobby"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A fresh store stands in for a restarted process.
	restarted := NewSessionManager(user.NewStore(user.DefaultIdleTTL), "secret", false, "0")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	s := restarted.Resolve(req)
	if s == nil {
		t.Fatal("Expected session to be restored")
	}
	if s.Nickname() != "alice" || s.RoomID() != "lobby" {
		t.Errorf("Unexpected restored session %+v", s.Snapshot())
	}
}

func TestSessionMiddleware(t *testing.T) {
	m := NewSessionManager(user.NewStore(user.DefaultIdleTTL), "secret", false, "0")

	var got *user.Session
	handler := m.SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetSessionFromContext(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != nil {
		t.Errorf("Expected no session for an invalid cookie, got %v", got.Snapshot())
	}
}
