package engine

import (
	"context"
	"time"
)

type RealClock struct{}

func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
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

// NopClock never waits. Used to dump frames without real-time pacing.
type NopClock struct{}

func (NopClock) Sleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}
