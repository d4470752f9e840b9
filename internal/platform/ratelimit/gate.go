package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Gate enforces a minimum spacing between consecutive outbound calls plus a
// fixed settle delay before each call. It is a courtesy toward upstream rate
// limits, not a correctness mechanism: callers reserve the earliest allowed
// start time and sleep until then.
type Gate struct {
	mu      sync.Mutex
	nextAt  time.Time
	spacing time.Duration
	settle  time.Duration
	now     func() time.Time
}

func NewGate(spacing, settle time.Duration) *Gate {
	if spacing < 0 {
		spacing = 0
	}
	if settle < 0 {
		settle = 0
	}
	return &Gate{
		spacing: spacing,
		settle:  settle,
		now:     time.Now,
	}
}

// Wait blocks until the reserved slot for this call arrives or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	if g == nil {
		return nil
	}

	g.mu.Lock()
	now := g.now()
	start := g.nextAt
	if start.Before(now) {
		start = now
	}
	start = start.Add(g.settle)
	g.nextAt = start.Add(g.spacing)
	wait := start.Sub(now)
	g.mu.Unlock()

	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
