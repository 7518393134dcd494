package jwt

import (
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(&Payload{ID: "s1", Nickname: "alice", RoomID: "lobby"}, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	payload, err := ParseToken(token, "secret")
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if payload.ID != "s1" || payload.Nickname != "alice" || payload.RoomID != "lobby" {
		t.Errorf("Unexpected payload %+v", payload)
	}
	if payload.Issuer != TokenIssuer {
		t.Errorf("Expected issuer %q, got %q", TokenIssuer, payload.Issuer)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(&Payload{ID: "s1"}, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken(token, "other"); err == nil {
		t.Error("Expected signature error")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken(&Payload{ID: "s1"}, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken(token, "secret"); err == nil {
		t.Error("Expected expired token to be rejected")
	}
}

func TestParseTokenRequiresSessionID(t *testing.T) {
	token, err := GenerateToken(&Payload{Nickname: "alice"}, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken(token, "secret"); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}
