package randx

import (
	"strings"
	"testing"
)

func TestUserNickname(t *testing.T) {
	name, err := UserNickname()
	if err != nil {
		t.Fatalf("UserNickname failed: %v", err)
	}

	suffix, ok := strings.CutPrefix(name, NicknamePrefix)
	if !ok || len(suffix) != nicknameRandomLength {
		t.Fatalf("Unexpected nickname %q", name)
	}
	for _, char := range suffix {
		if !strings.ContainsRune(Base62Chars, char) {
			t.Errorf("Non Base62 character %q in %q", char, name)
		}
	}
}

func TestIDsAreUnique(t *testing.T) {
	if SessionID() == SessionID() {
		t.Error("Expected distinct session ids")
	}
	if ConnectionID() == ConnectionID() {
		t.Error("Expected distinct connection ids")
	}
}

func TestIsValidRoomID(t *testing.T) {
	valid := []string{"0", "lobby", "team-42_b", strings.Repeat("a", MaxRoomIDLength)}
	invalid := []string{"", "with space", "emoji😀", "dot.ted", strings.Repeat("a", MaxRoomIDLength+1)}

	for _, id := range valid {
		if !IsValidRoomID(id) {
			t.Errorf("Expected %q to be valid", id)
		}
	}
	for _, id := range invalid {
		if IsValidRoomID(id) {
			t.Errorf("Expected %q to be invalid", id)
		}
	}
}
