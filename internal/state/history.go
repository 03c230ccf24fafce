package state

import (
	"sync"

	"PollockBoard/internal/paint"
)

// DefaultHistory is how many invocations a History keeps by default.
const DefaultHistory = 512

// History is a bounded log of painted invocations, oldest first. An
// invocation is recorded at most once, keyed by its sequence number.
type History struct {
	limit int
	total int
	seen  map[uint64]struct{}
	items []Invocation
	mu    sync.RWMutex
}

// NewHistory returns a log keeping the last limit invocations.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistory
	}
	return &History{
		limit: limit,
		seen:  make(map[uint64]struct{}),
	}
}

// Add records inv and reports whether it was new.
func (h *History) Add(inv Invocation) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, dup := h.seen[inv.Seq]; dup {
		return false
	}
	h.seen[inv.Seq] = struct{}{}
	h.items = append(h.items, inv)
	h.total++

	if over := len(h.items) - h.limit; over > 0 {
		for _, old := range h.items[:over] {
			delete(h.seen, old.Seq)
		}
		h.items = append(h.items[:0:0], h.items[over:]...)
	}
	return true
}

// Len returns the number of invocations kept.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.items)
}

// Total returns how many invocations were added since the last Reset,
// including those no longer kept.
func (h *History) Total() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.total
}

// Recent returns up to n of the newest invocations, oldest first.
func (h *History) Recent(n int) []Invocation {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if n > len(h.items) {
		n = len(h.items)
	}
	if n <= 0 {
		return nil
	}
	out := make([]Invocation, n)
	copy(out, h.items[len(h.items)-n:])
	return out
}

// Counts returns how often each effect appears among the kept invocations.
func (h *History) Counts() map[paint.Effect]int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	counts := make(map[paint.Effect]int)
	for _, inv := range h.items {
		counts[inv.Effect]++
	}
	return counts
}

// Reset forgets everything.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.total = 0
	h.items = nil
	h.seen = make(map[uint64]struct{})
}
