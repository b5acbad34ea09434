package sim

import (
	"context"
	"sync"
	"time"
)

// Clock is the scheduling primitive shared by the executor and the frame
// loop: wall-clock reads, timed suspension, and frame-synchronized
// suspension. Both suspensions abort early when the context is cancelled,
// which is how an external reset interrupts a running command sequence.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
	WaitFrame(ctx context.Context) error
}

// WallClock is the real-time clock used by the CLI and the dashboard.
type WallClock struct {
	frame time.Duration
}

// NewWallClock creates a wall clock with a frame interval derived from the
// tick rate.
func NewWallClock(tickRate int) *WallClock {
	if tickRate <= 0 {
		tickRate = DefaultParams().TickRate
	}
	return &WallClock{frame: time.Second / time.Duration(tickRate)}
}

func (c *WallClock) Now() time.Time {
	return time.Now()
}

func (c *WallClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *WallClock) WaitFrame(ctx context.Context) error {
	return c.Sleep(ctx, c.frame)
}

// ManualClock is a deterministic clock for tests: suspensions advance
// virtual time immediately instead of sleeping.
type ManualClock struct {
	mu    sync.Mutex
	now   time.Time
	frame time.Duration

	// OnAdvance, when set, runs after every virtual time advance with the
	// new time and the elapsed delta. Tests use it to drive the frame loop
	// in lockstep with executor suspensions.
	OnAdvance func(now time.Time, dt time.Duration)
}

// NewManualClock creates a manual clock starting at the given instant.
func NewManualClock(start time.Time, tickRate int) *ManualClock {
	if tickRate <= 0 {
		tickRate = DefaultParams().TickRate
	}
	return &ManualClock{now: start, frame: time.Second / time.Duration(tickRate)}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves virtual time forward.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	cb := c.OnAdvance
	c.mu.Unlock()

	if cb != nil {
		cb(now, d)
	}
}

func (c *ManualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.Advance(d)
	return nil
}

func (c *ManualClock) WaitFrame(ctx context.Context) error {
	return c.Sleep(ctx, c.frame)
}
