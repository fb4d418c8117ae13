// Package state provides the append-only history store used to track
// scoring results across runs in one process.
package state

import "sync"

// History is an append-only store of values with access to the most
// recent entry and the full history. The zero value is ready to use.
type History[T any] struct {
	mu      sync.Mutex
	entries []T
}

// NewHistory creates an empty History.
func NewHistory[T any]() *History[T] {
	return &History[T]{}
}

// Set appends a new value to the history.
func (h *History[T]) Set(value T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, value)
}

// Latest returns the most recent value, or false if none has been set.
func (h *History[T]) Latest() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == 0 {
		var zero T
		return zero, false
	}

	return h.entries[len(h.entries)-1], true
}

// All returns a copy of the history in insertion order.
func (h *History[T]) All() []T {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]T, len(h.entries))
	copy(out, h.entries)

	return out
}

// Len returns the number of stored entries.
func (h *History[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.entries)
}

// Clear drops all stored entries.
func (h *History[T]) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil
}
