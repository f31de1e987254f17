// ABOUTME: Tests for the single-slot undo buffer.
// ABOUTME: Uses ManualClock to drive commit, undo, replacement and teardown.
package undo

import (
	"sync"
	"testing"
	"time"
)

var start = time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)

type commits struct {
	mu   sync.Mutex
	keys []string
}

func (c *commits) record(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = append(c.keys, key)
}

func (c *commits) list() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.keys...)
}

func TestBufferCommitsAfterWindow(t *testing.T) {
	clock := NewManualClock(start)
	b := NewBuffer[int](clock, DefaultWindow)
	var c commits

	b.Schedule("t1", 1, c.record)

	clock.Advance(4 * time.Second)
	if len(c.list()) != 0 {
		t.Fatal("committed before the window elapsed")
	}
	if key, ok := b.Pending(); !ok || key != "t1" {
		t.Errorf("Pending() = %q, %v", key, ok)
	}

	clock.Advance(time.Second)
	if got := c.list(); len(got) != 1 || got[0] != "t1" {
		t.Fatalf("commits = %v, want [t1]", got)
	}
	if _, ok := b.Pending(); ok {
		t.Error("expected no pending change after commit")
	}
}

func TestBufferUndoWithinWindow(t *testing.T) {
	clock := NewManualClock(start)
	b := NewBuffer[string](clock, DefaultWindow)
	var c commits

	b.Schedule("t1", "before", c.record)
	clock.Advance(2 * time.Second)

	snapshot, ok := b.Undo("t1")
	if !ok || snapshot != "before" {
		t.Fatalf("Undo = %q, %v", snapshot, ok)
	}

	clock.Advance(10 * time.Second)
	if len(c.list()) != 0 {
		t.Error("undone change committed anyway")
	}
	if clock.Pending() != 0 {
		t.Error("timer still registered after undo")
	}
}

func TestBufferUndoAfterCommitIsNoop(t *testing.T) {
	clock := NewManualClock(start)
	b := NewBuffer[int](clock, DefaultWindow)
	var c commits

	b.Schedule("t1", 0, c.record)
	clock.Advance(DefaultWindow)

	if _, ok := b.Undo("t1"); ok {
		t.Error("Undo after commit should be a no-op")
	}
	if len(c.list()) != 1 {
		t.Error("expected exactly one commit")
	}
}

func TestBufferUndoWrongKeyIsNoop(t *testing.T) {
	clock := NewManualClock(start)
	b := NewBuffer[int](clock, DefaultWindow)
	var c commits

	b.Schedule("t1", 0, c.record)
	if _, ok := b.Undo("t2"); ok {
		t.Error("Undo for a different key should be a no-op")
	}

	clock.Advance(DefaultWindow)
	if got := c.list(); len(got) != 1 || got[0] != "t1" {
		t.Errorf("commits = %v, want [t1]", got)
	}
}

func TestBufferLastScheduleWins(t *testing.T) {
	clock := NewManualClock(start)
	b := NewBuffer[int](clock, DefaultWindow)
	var c commits

	b.Schedule("a", 0, c.record)
	clock.Advance(3 * time.Second)
	b.Schedule("b", 0, c.record)

	// a's original deadline passes
	clock.Advance(3 * time.Second)
	if len(c.list()) != 0 {
		t.Fatalf("replaced change committed: %v", c.list())
	}

	clock.Advance(2 * time.Second)
	if got := c.list(); len(got) != 1 || got[0] != "b" {
		t.Errorf("commits = %v, want [b]", got)
	}
}

func TestBufferCloseCancelsPending(t *testing.T) {
	clock := NewManualClock(start)
	b := NewBuffer[int](clock, DefaultWindow)
	var c commits

	b.Schedule("t1", 0, c.record)
	b.Close()
	b.Close()

	clock.Advance(time.Minute)
	if len(c.list()) != 0 {
		t.Error("commit ran after Close")
	}
	if b.Schedule("t2", 0, c.record) {
		t.Error("Schedule should fail after Close")
	}
}

func TestStaleTimerDoesNotCommit(t *testing.T) {
	b := NewBuffer[int](NewManualClock(start), DefaultWindow)
	b.Schedule("t1", 0, func(string) {})

	b.mu.Lock()
	staleSeq := b.pending.seq
	b.mu.Unlock()

	b.Schedule("t2", 0, func(string) {})
	if b.fire(staleSeq) {
		t.Error("stale timer fired a newer pending change")
	}
	if key, ok := b.Pending(); !ok || key != "t2" {
		t.Errorf("Pending() = %q, %v; want t2", key, ok)
	}
}

func TestManualTimerStopIsIdempotent(t *testing.T) {
	clock := NewManualClock(start)
	fired := false
	timer := clock.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Error("first Stop should report true")
	}
	if timer.Stop() {
		t.Error("second Stop should report false")
	}
	clock.Advance(time.Minute)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestRealClockCommits(t *testing.T) {
	b := NewBuffer[int](RealClock{}, 10*time.Millisecond)
	done := make(chan string, 1)

	b.Schedule("t1", 0, func(key string) { done <- key })

	select {
	case key := <-done:
		if key != "t1" {
			t.Errorf("committed %q, want t1", key)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("real clock commit never ran")
	}
}

func TestNewBufferDefaults(t *testing.T) {
	b := NewBuffer[int](nil, 0)
	if b.Window() != DefaultWindow {
		t.Errorf("Window() = %v, want %v", b.Window(), DefaultWindow)
	}
	b.Close()
}
