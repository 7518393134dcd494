package chat

import (
	"sync"

	"github.com/eapache/queue"
)

// DefaultHistorySize is the number of chat messages replayed to joining connections.
const DefaultHistorySize = 100

// History is a bounded FIFO of formatted chat messages.
type History struct {
	mu       sync.Mutex
	capacity int
	entries  *queue.Queue
}

// NewHistory returns an empty history holding at most capacity messages.
// A non-positive capacity selects DefaultHistorySize.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}

	return &History{
		capacity: capacity,
		entries:  queue.New(),
	}
}

// Append adds msg at the tail, evicting the oldest entry once capacity is exceeded.
func (h *History) Append(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries.Add(msg)
	for h.entries.Length() > h.capacity {
		h.entries.Remove()
	}
}

// Snapshot returns a copy of the buffered messages, oldest first.
func (h *History) Snapshot() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, h.entries.Length())
	for i := range out {
		out[i] = h.entries.Get(i).(string)
	}
	return out
}

// Len returns the number of buffered messages.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries.Length()
}

// Capacity returns the maximum number of buffered messages.
func (h *History) Capacity() int {
	return h.capacity
}
