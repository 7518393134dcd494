package limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

func TestMiddlewareRejectsAfterBurst(t *testing.T) {
	l := NewIPRateLimiter("test", rate.Limit(0.001), 2)
	handler := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "198.51.100.7:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes[i] = rec.Code
	}

	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent || codes[2] != http.StatusTooManyRequests {
		t.Errorf("Unexpected status sequence %v", codes)
	}

	// Other clients keep their own bucket.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.8:1234"
	if !l.Allow(req) {
		t.Error("Expected a different IP to be allowed")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "192.0.2.1:4000"
	if got := ClientIP(req); got != "192.0.2.1" {
		t.Errorf("Expected 192.0.2.1, got %q", got)
	}

	req.RemoteAddr = ""
	if got := ClientIP(req); got != "unknown_ip" {
		t.Errorf("Expected unknown_ip, got %q", got)
	}
}
