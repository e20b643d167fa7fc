// Package clock provides engine.Scheduler implementations: Interval drives a
// game from a real ticker, Manual fires only when told to and is what tests
// and single-threaded front ends use.
package clock

import (
	"sync"
	"time"
)

// Interval calls the scheduled func once per period from a background
// goroutine. Every call runs while holding guard, so callers that take the
// same lock around their own engine calls never see a tick mid-move.
type Interval struct {
	period time.Duration
	guard  sync.Locker
}

// NewInterval creates a real-time scheduler. A nil guard gets a private mutex.
func NewInterval(period time.Duration, guard sync.Locker) *Interval {
	if guard == nil {
		guard = &sync.Mutex{}
	}
	return &Interval{period: period, guard: guard}
}

// Schedule starts a ticker for fn. The returned cancel never blocks, may be
// called with guard held and may be called more than once.
func (s *Interval) Schedule(fn func()) (cancel func()) {
	ticker := time.NewTicker(s.period)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.guard.Lock()
				// cancelled while waiting for the lock
				select {
				case <-done:
					s.guard.Unlock()
					return
				default:
				}
				fn()
				s.guard.Unlock()
			}
		}
	}()

	return func() {
		once.Do(func() { close(done) })
	}
}

// Manual is a synchronous scheduler. Fire runs the scheduled func on the
// caller's goroutine.
type Manual struct {
	fn   func()
	gen  int
	live bool

	// Scheduled and Cancelled count registrations and effective cancellations
	Scheduled int
	Cancelled int
}

// NewManual creates a scheduler that never fires by itself
func NewManual() *Manual {
	return &Manual{}
}

// Schedule registers fn, replacing any previous registration
func (m *Manual) Schedule(fn func()) (cancel func()) {
	m.gen++
	gen := m.gen
	m.fn = fn
	m.live = true
	m.Scheduled++

	return func() {
		if m.gen != gen || !m.live {
			return
		}
		m.live = false
		m.fn = nil
		m.Cancelled++
	}
}

// Fire runs the registered func once. It returns false if nothing is
// scheduled.
func (m *Manual) Fire() bool {
	if !m.live {
		return false
	}
	m.fn()
	return true
}

// Active reports whether a registration is live
func (m *Manual) Active() bool {
	return m.live
}
