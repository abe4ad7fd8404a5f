package main

import (
	"context"
	"math/rand"
	"time"
)

// Pacer spaces out consecutive remote calls. It is a deliberate fixed-pace
// policy (interval plus optional jitter, one call in flight at a time), not
// an adaptive backoff; the orchestrator decides where the pauses go.
type Pacer struct {
	interval time.Duration
	jitter   time.Duration
}

// NewPacer creates a pacer. A non-positive interval disables pacing and
// Wait becomes a no-op.
func NewPacer(interval, jitter time.Duration) *Pacer {
	if interval <= 0 {
		return nil
	}
	if jitter < 0 {
		jitter = 0
	}
	return &Pacer{interval: interval, jitter: jitter}
}

// Wait blocks for interval plus a random share of jitter, or until the
// context is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	d := p.interval
	if p.jitter > 0 {
		d += time.Duration(rand.Int63n(int64(p.jitter)))
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
