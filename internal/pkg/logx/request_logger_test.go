package logx

import "testing"

func TestAnonymizeIP(t *testing.T) {
	tests := map[string]string{
		"203.0.113.42:5555":         "203.0.113.0",
		"203.0.113.42":              "203.0.113.0",
		"127.0.0.1:80":              "127.0.0.1",
		"[2001:db8:1:2:3:4:5:6]:80": "2001:db8:1:2::",
		"not-an-ip":                 "unknown_ip",
	}

	for in, want := range tests {
		if got := AnonymizeIP(in); got != want {
			t.Errorf("AnonymizeIP(%q) = %q, want %q", in, got, want)
		}
	}
}
