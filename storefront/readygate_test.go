package storefront

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadyGate(t *testing.T) {
	t.Run("await returns once resolved", func(t *testing.T) {
		gate := NewReadyGate()

		done := make(chan error, 1)
		go func() {
			done <- gate.AwaitReady(context.Background())
		}()

		assert.False(t, gate.Ready())
		gate.Resolve()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("AwaitReady did not return after Resolve")
		}
		assert.True(t, gate.Ready())
	})

	t.Run("resolve is idempotent", func(t *testing.T) {
		gate := NewReadyGate()

		gate.Resolve()
		gate.Resolve()

		require.NoError(t, gate.AwaitReady(context.Background()))
	})

	t.Run("await respects context cancellation", func(t *testing.T) {
		gate := NewReadyGate()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, gate.AwaitReady(ctx), context.Canceled)
	})
}

func TestReasserter(t *testing.T) {
	t.Run("a burst of changes collapses into one re-assert", func(t *testing.T) {
		calls := make(chan struct{}, 10)
		reasserter := NewReasserter(50*time.Millisecond, func() {
			calls <- struct{}{}
		})
		defer reasserter.Stop()

		for range 5 {
			reasserter.NotifyChange()
		}

		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatal("re-assert never ran")
		}

		select {
		case <-calls:
			t.Fatal("burst should run the re-assert once")
		case <-time.After(150 * time.Millisecond):
		}
	})

	t.Run("changes caused by the re-assert itself are ignored", func(t *testing.T) {
		var reasserter *Reasserter
		calls := make(chan struct{}, 10)
		reasserter = NewReasserter(10*time.Millisecond, func() {
			// Re-asserting mutates the layout, which echoes back as a
			// change notification.
			reasserter.NotifyChange()
			calls <- struct{}{}
		})
		defer reasserter.Stop()

		reasserter.NotifyChange()

		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatal("re-assert never ran")
		}

		select {
		case <-calls:
			t.Fatal("echoed change notification should not re-trigger")
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("stop cancels a pending re-assert", func(t *testing.T) {
		calls := make(chan struct{}, 1)
		reasserter := NewReasserter(50*time.Millisecond, func() {
			calls <- struct{}{}
		})

		reasserter.NotifyChange()
		reasserter.Stop()

		select {
		case <-calls:
			t.Fatal("stopped re-assert still ran")
		case <-time.After(150 * time.Millisecond):
		}
	})
}

func TestNotices(t *testing.T) {
	t.Run("notices expire after their display duration", func(t *testing.T) {
		notices := NewNotices()
		now := time.Now()
		notices.now = func() time.Time { return now }

		notices.Put("Submission failed", NOTICE_ERROR, time.Minute)
		notices.Put("Awaiting approval", NOTICE_INFO, 5*time.Minute)

		active := notices.Active()
		require.Len(t, active, 2)

		now = now.Add(2 * time.Minute)
		active = notices.Active()
		require.Len(t, active, 1)
		assert.Equal(t, "Awaiting approval", active[0].Message)

		now = now.Add(10 * time.Minute)
		assert.Empty(t, notices.Active())
	})
}
