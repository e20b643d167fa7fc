package clock

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManual(t *testing.T) {
	t.Run("fire without a registration does nothing", func(t *testing.T) {
		m := NewManual()
		require.False(t, m.Fire())
		require.False(t, m.Active())
	})

	t.Run("fire runs the registered func", func(t *testing.T) {
		m := NewManual()
		calls := 0
		m.Schedule(func() { calls++ })

		require.True(t, m.Fire())
		require.True(t, m.Fire())
		require.Equal(t, 2, calls)
	})

	t.Run("cancel is idempotent and counted once", func(t *testing.T) {
		m := NewManual()
		calls := 0
		cancel := m.Schedule(func() { calls++ })

		cancel()
		cancel()

		require.False(t, m.Fire())
		require.Equal(t, 0, calls)
		require.Equal(t, 1, m.Cancelled)
	})

	t.Run("stale cancel does not touch a newer registration", func(t *testing.T) {
		m := NewManual()
		oldCancel := m.Schedule(func() {})
		calls := 0
		m.Schedule(func() { calls++ })

		oldCancel()

		require.True(t, m.Active(), "Newer registration should survive a stale cancel")
		require.True(t, m.Fire())
		require.Equal(t, 1, calls)
		require.Equal(t, 2, m.Scheduled)
		require.Equal(t, 0, m.Cancelled)
	})

	t.Run("func may cancel itself while firing", func(t *testing.T) {
		m := NewManual()
		var cancel func()
		cancel = m.Schedule(func() { cancel() })

		require.True(t, m.Fire())
		require.False(t, m.Active())
		require.Equal(t, 1, m.Cancelled)
	})
}

func TestInterval(t *testing.T) {
	t.Run("fires periodically until cancelled", func(t *testing.T) {
		var calls atomic.Int64
		s := NewInterval(2*time.Millisecond, nil)
		cancel := s.Schedule(func() { calls.Add(1) })

		require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)

		cancel()
		cancel()
		// one tick may already hold the lock when cancel lands
		time.Sleep(10 * time.Millisecond)
		settled := calls.Load()
		time.Sleep(20 * time.Millisecond)
		require.Equal(t, settled, calls.Load(), "No ticks should run after cancel")
	})

	t.Run("callbacks run under the guard", func(t *testing.T) {
		var mu sync.Mutex
		var calls atomic.Int64
		s := NewInterval(time.Millisecond, &mu)

		mu.Lock()
		cancel := s.Schedule(func() { calls.Add(1) })
		time.Sleep(10 * time.Millisecond)
		require.Equal(t, int64(0), calls.Load(), "Tick must wait for the guard")
		mu.Unlock()

		require.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, time.Millisecond)
		cancel()
	})

	t.Run("tick waiting on the guard is dropped after cancel", func(t *testing.T) {
		var mu sync.Mutex
		var calls atomic.Int64
		s := NewInterval(time.Millisecond, &mu)

		mu.Lock()
		cancel := s.Schedule(func() { calls.Add(1) })
		time.Sleep(10 * time.Millisecond)
		cancel()
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)
		require.Equal(t, int64(0), calls.Load())
	})
}
