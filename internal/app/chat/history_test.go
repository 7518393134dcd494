package chat

import (
	"sync"
	"testing"
)

func TestHistoryKeepsLastEntries(t *testing.T) {
	h := NewHistory(DefaultHistorySize)

	for i := 0; i < 105; i++ {
		h.Append("msg " + itoa(i))
	}

	got := h.Snapshot()
	if len(got) != 100 {
		t.Fatalf("Expected 100 entries, got %d", len(got))
	}
	for i, msg := range got {
		if want := "msg " + itoa(i+5); msg != want {
			t.Fatalf("Entry %d: expected %q, got %q", i, want, msg)
		}
	}
}

func TestHistoryDefaultCapacity(t *testing.T) {
	if got := NewHistory(0).Capacity(); got != DefaultHistorySize {
		t.Errorf("Expected capacity %d, got %d", DefaultHistorySize, got)
	}
	if got := NewHistory(-3).Capacity(); got != DefaultHistorySize {
		t.Errorf("Expected capacity %d, got %d", DefaultHistorySize, got)
	}
}

func TestHistorySnapshotIsIndependent(t *testing.T) {
	h := NewHistory(2)
	h.Append("a")
	h.Append("b")

	snap := h.Snapshot()
	h.Append("c")
	snap[0] = "changed"

	if snap[1] != "b" {
		t.Errorf("Snapshot changed after Append: %v", snap)
	}
	if got := h.Snapshot(); got[0] != "b" || got[1] != "c" {
		t.Errorf("Expected [b c], got %v", got)
	}
}

func TestHistoryConcurrentAppend(t *testing.T) {
	h := NewHistory(10)

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h.Append(itoa(i))
			_ = h.Snapshot()
		}(i)
	}
	wg.Wait()

	if h.Len() != 10 {
		t.Errorf("Expected 10 entries, got %d", h.Len())
	}
}
