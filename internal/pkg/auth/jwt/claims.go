package jwt

import "github.com/golang-jwt/jwt"

// Payload is the claim set of the session cookie.
// The server keeps live sessions in memory; the claims let it rebuild a session
// the process has not seen, so a restart does not log every browser out.
type Payload struct {
	jwt.StandardClaims `json:"standard_claims"`

	// ID is the session identifier.
	ID string `json:"id"`

	// Nickname is the session's nickname at the time the cookie was issued.
	Nickname string `json:"nickname"`

	// RoomID is the session's room at the time the cookie was issued.
	RoomID string `json:"room_id"`
}
