package pacer

import (
	"context"
	"time"
)

// Pacer spaces out calls to the external trade source. The orchestrator waits
// after every call, including the last one.
type Pacer interface {
	Wait(ctx context.Context) error
}

// FixedDelay blocks for a constant interval per call. This is the production
// throttle protecting the open-data API from rate limiting.
type FixedDelay struct {
	delay time.Duration
}

func NewFixedDelay(delay time.Duration) *FixedDelay {
	if delay < 0 {
		delay = 0
	}
	return &FixedDelay{delay: delay}
}

func (p *FixedDelay) Wait(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Nop waits for nothing; used in tests.
type Nop struct{}

func (Nop) Wait(ctx context.Context) error { return ctx.Err() }
