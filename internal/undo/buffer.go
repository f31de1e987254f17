// ABOUTME: Single-slot delayed-commit buffer with cancellation (undo window).
// ABOUTME: A newer change discards the pending one; Undo returns its snapshot.
package undo

import (
	"sync"
	"time"
)

// DefaultWindow is the grace period before a pending change commits.
const DefaultWindow = 5 * time.Second

type pending[S any] struct {
	key      string
	snapshot S
	timer    Timer
	seq      uint64
}

// Buffer holds at most one pending change. It owns the timer of that change, so
// Close cancels it regardless of what the caller is doing.
type Buffer[S any] struct {
	mu      sync.Mutex
	clock   Clock
	window  time.Duration
	pending *pending[S]
	seq     uint64
	closed  bool
}

// NewBuffer creates a buffer. A nil clock uses the wall clock; a non-positive
// window uses DefaultWindow.
func NewBuffer[S any](clock Clock, window time.Duration) *Buffer[S] {
	if clock == nil {
		clock = RealClock{}
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Buffer[S]{clock: clock, window: window}
}

// Window returns the grace period.
func (b *Buffer[S]) Window() time.Duration {
	return b.window
}

// Schedule records a pending change for key with the state to restore on undo.
// Any earlier pending change is cancelled without committing. When the window
// elapses without an Undo, commit runs with the key, outside the buffer's lock.
// It reports false once the buffer is closed.
func (b *Buffer[S]) Schedule(key string, snapshot S, commit func(key string)) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return false
	}
	b.cancelLocked()

	b.seq++
	seq := b.seq
	p := &pending[S]{key: key, snapshot: snapshot, seq: seq}
	p.timer = b.clock.AfterFunc(b.window, func() {
		if b.fire(seq) {
			commit(key)
		}
	})
	b.pending = p
	return true
}

// fire clears the pending slot if it still belongs to seq. A timer that lost a
// race with a cancel sees a different seq and does nothing.
func (b *Buffer[S]) fire(seq uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || b.pending == nil || b.pending.seq != seq {
		return false
	}
	b.pending = nil
	return true
}

// Undo cancels the pending change for key and returns its snapshot. A key that
// is not pending is a no-op.
func (b *Buffer[S]) Undo(key string) (S, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var zero S
	if b.pending == nil || b.pending.key != key {
		return zero, false
	}
	snapshot := b.pending.snapshot
	b.cancelLocked()
	return snapshot, true
}

// Pending returns the key of the pending change, if any.
func (b *Buffer[S]) Pending() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == nil {
		return "", false
	}
	return b.pending.key, true
}

// Close cancels any pending change and rejects later schedules. Safe to call
// more than once.
func (b *Buffer[S]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cancelLocked()
	b.closed = true
}

func (b *Buffer[S]) cancelLocked() {
	if b.pending == nil {
		return
	}
	b.pending.timer.Stop()
	b.pending = nil
}
