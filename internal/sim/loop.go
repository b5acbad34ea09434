package sim

import (
	"context"
	"time"

	"github.com/msorokin/robolab/internal/rover"
)

// senseInterval rate-gates the sensing update (distance sample, 360° scan,
// grid fusion) independently of the frame rate.
const senseInterval = 100 * time.Millisecond

// Loop drives the per-tick simulation work: physics first, then the
// rate-gated sensing update. It runs regardless of executor activity and
// interleaves with executor suspensions only through the shared state.
type Loop struct {
	state  *State
	sensor *rover.Sensor
	params Params

	lastTick  time.Time
	ticked    bool
	lastSense time.Time
	sensed    bool
}

// NewLoop creates a frame loop over the given state and sensor.
func NewLoop(state *State, sensor *rover.Sensor, params Params) *Loop {
	return &Loop{state: state, sensor: sensor, params: params}
}

// Tick performs one frame of simulation work at the given instant. The
// first call establishes the time base and performs no integration.
func (l *Loop) Tick(now time.Time) {
	var dt float64
	if l.ticked {
		dt = now.Sub(l.lastTick).Seconds()
	}
	l.lastTick = now
	l.ticked = true
	if dt < 0 {
		return
	}

	l.state.PhysicsTick(now, dt)

	if !l.sensed || now.Sub(l.lastSense) >= senseInterval {
		l.lastSense = now
		l.sensed = true
		l.state.SenseTick(l.sensor, now, l.params.MapSize, l.params.Resolution)
	}
}

// Run ticks the loop on the clock's frame interval until the context is
// cancelled. Used by the headless CLI; the dashboard drives Tick from its
// own frame messages instead.
func (l *Loop) Run(ctx context.Context, clock Clock) {
	for {
		l.Tick(clock.Now())
		if err := clock.WaitFrame(ctx); err != nil {
			return
		}
	}
}
