package jwt

import (
	"context"
	"net/http"

	"chatroom/internal/app/user"
	"chatroom/internal/pkg/logx"
)

// CookieName is the name of the session cookie.
const CookieName = "chatroom_session"

type contextKey string

// ContextSessionKey stores the resolved *user.Session in the request context.
const ContextSessionKey contextKey = "session"

// SessionManager issues session cookies and resolves them back to live sessions.
type SessionManager struct {
	store       *user.Store
	secretKey   string
	secure      bool
	defaultRoom string
}

// NewSessionManager returns a manager backed by store. secure marks cookies Secure
// (HTTPS only); defaultRoom is the room assigned to new sessions.
func NewSessionManager(store *user.Store, secretKey string, secure bool, defaultRoom string) *SessionManager {
	return &SessionManager{
		store:       store,
		secretKey:   secretKey,
		secure:      secure,
		defaultRoom: defaultRoom,
	}
}

// DefaultRoom returns the room assigned to newly created sessions.
func (m *SessionManager) DefaultRoom() string {
	return m.defaultRoom
}

// Resolve returns the session named by the request's cookie, or nil when the cookie is
// absent or does not verify.
func (m *SessionManager) Resolve(r *http.Request) *user.Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	payload, err := ParseToken(cookie.Value, m.secretKey)
	if err != nil {
		logx.Debug("Invalid or expired session cookie, treating as anonymous", "error", err.Error())
		return nil
	}

	return m.store.Restore(user.Snapshot{
		ID:       payload.ID,
		Nickname: payload.Nickname,
		RoomID:   payload.RoomID,
	})
}

// Issue writes a cookie carrying the session's current state.
func (m *SessionManager) Issue(w http.ResponseWriter, s *user.Session) error {
	snap := s.Snapshot()

	token, err := GenerateToken(&Payload{
		ID:       snap.ID,
		Nickname: snap.Nickname,
		RoomID:   snap.RoomID,
	}, m.secretKey, SessionExpiration)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionExpiration.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Create makes a new session with nickname in roomID and issues its cookie.
func (m *SessionManager) Create(w http.ResponseWriter, nickname, roomID string) (*user.Session, error) {
	s := m.store.Create(nickname, roomID)
	if err := m.Issue(w, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Pin keeps s resident while a connection uses it.
func (m *SessionManager) Pin(s *user.Session) {
	m.store.Pin(s)
}

// Unpin releases a Pin taken for a connection that has ended.
func (m *SessionManager) Unpin(s *user.Session) {
	m.store.Unpin(s)
}

// SessionMiddleware resolves the session cookie and stores the session in the context.
// Requests without a valid cookie pass through anonymously.
func (m *SessionManager) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.Resolve(r)
		if s == nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *user.Session) context.Context {
	return context.WithValue(ctx, ContextSessionKey, s)
}

// GetSessionFromContext returns the session stored by SessionMiddleware, or nil.
func GetSessionFromContext(r *http.Request) *user.Session {
	s, ok := r.Context().Value(ContextSessionKey).(*user.Session)
	if !ok {
		return nil
	}
	return s
}
