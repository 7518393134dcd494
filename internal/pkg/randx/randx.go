/*
Package randx generates identifiers and placeholder names.

Session and connection ids are UUID v4 strings; placeholder nicknames use a
Base62 suffix drawn from crypto/rand.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the size of Base62Chars.
	Base62Len = int64(len(Base62Chars))

	// NicknamePrefix starts every generated placeholder nickname.
	NicknamePrefix = "User_"

	// MaxRoomIDLength bounds room ids accepted from clients.
	MaxRoomIDLength = 32

	// FallbackNickname is used when the random source fails.
	FallbackNickname = "tmpNickname"

	nicknameRandomLength = 6
	roomIDExtraChars     = "-_"
)

// SessionID returns a new UUID v4 identifying a browser session.
func SessionID() string {
	return uuid.New().String()
}

// ConnectionID returns a new UUID v4 identifying one live socket.
func ConnectionID() string {
	return uuid.New().String()
}

// UserNickname generates "User_" followed by 6 random Base62 characters.
func UserNickname() (string, error) {
	result := make([]byte, nicknameRandomLength)

	for i := 0; i < nicknameRandomLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for nickname: %w", err)
		}
		result[i] = Base62Chars[num.Int64()]
	}

	return NicknamePrefix + string(result), nil
}

// PlaceholderNickname is UserNickname with FallbackNickname on failure.
func PlaceholderNickname() string {
	nickname, err := UserNickname()
	if err != nil {
		return FallbackNickname
	}
	return nickname
}

// IsValidRoomID reports whether id is 1..MaxRoomIDLength characters of Base62, '-' or '_'.
func IsValidRoomID(id string) bool {
	if id == "" || len(id) > MaxRoomIDLength {
		return false
	}

	for _, char := range id {
		if !strings.ContainsRune(Base62Chars, char) && !strings.ContainsRune(roomIDExtraChars, char) {
			return false
		}
	}

	return true
}
