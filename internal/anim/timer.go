package anim

import (
	"sort"
	"sync"
	"time"
)

// Timer runs f once after d.
type Timer interface {
	AfterFunc(d time.Duration, f func())
}

// RealTimer uses time.AfterFunc. When Post is set, f runs through it so
// that it lands on the UI goroutine.
type RealTimer struct {
	Post func(func())
}

func (t RealTimer) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, func() {
		if t.Post != nil {
			t.Post(f)
			return
		}
		f()
	})
}

// ManualTimer is a Timer driven by Advance, for tests and headless replay.
type ManualTimer struct {
	mu    sync.Mutex
	now   time.Duration
	next  int
	queue []timed
}

type timed struct {
	at  time.Duration
	seq int
	f   func()
}

func (m *ManualTimer) AfterFunc(d time.Duration, f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, timed{at: m.now + d, seq: m.next, f: f})
	m.next++
}

// Pending returns the delays, relative to now, of every queued callback in
// firing order.
func (m *ManualTimer) Pending() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sortLocked()
	out := make([]time.Duration, len(m.queue))
	for i, t := range m.queue {
		out[i] = t.at - m.now
	}
	return out
}

// Advance moves time forward by d and runs every callback that falls due,
// in order. It returns how many ran.
func (m *ManualTimer) Advance(d time.Duration) int {
	m.mu.Lock()
	m.now += d
	m.sortLocked()
	var due []timed
	for len(m.queue) > 0 && m.queue[0].at <= m.now {
		due = append(due, m.queue[0])
		m.queue = m.queue[1:]
	}
	m.mu.Unlock()

	for _, t := range due {
		t.f()
	}
	return len(due)
}

func (m *ManualTimer) sortLocked() {
	sort.SliceStable(m.queue, func(i, j int) bool {
		if m.queue[i].at != m.queue[j].at {
			return m.queue[i].at < m.queue[j].at
		}
		return m.queue[i].seq < m.queue[j].seq
	})
}
