package storefront

import (
	"context"
	"sync"
)

// ReadyGate is a once-resolved "platform is ready" future. The storefront
// script used to poll for the host API in per-feature timer loops; here an
// initialization routine resolves the gate exactly once and every dependent
// awaits it.
type ReadyGate struct {
	once  sync.Once
	ready chan struct{}
}

func NewReadyGate() *ReadyGate {
	return &ReadyGate{
		ready: make(chan struct{}),
	}
}

// Resolve marks the platform as ready. Safe to call more than once; only
// the first call has any effect.
func (g *ReadyGate) Resolve() {
	g.once.Do(func() {
		close(g.ready)
	})
}

// AwaitReady blocks until the gate is resolved or the context ends.
func (g *ReadyGate) AwaitReady(ctx context.Context) error {
	select {
	case <-g.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *ReadyGate) Ready() bool {
	select {
	case <-g.ready:
		return true
	default:
		return false
	}
}
