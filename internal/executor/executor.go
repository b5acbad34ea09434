// Package executor drains a parsed command sequence against the active
// robot, one command at a time, with the suspension contract each command
// kind requires.
package executor

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/msorokin/robolab/internal/core"
	"github.com/msorokin/robolab/internal/kinematics"
	"github.com/msorokin/robolab/internal/script"
	"github.com/msorokin/robolab/internal/sim"
)

// Settle delays are pacing devices for observable state changes, not
// physical requirements.
const (
	resetSettle    = 500 * time.Millisecond
	gripperSettle  = 300 * time.Millisecond
	velocitySettle = 50 * time.Millisecond
	sensorSettle   = 100 * time.Millisecond
	lightSettle    = 100 * time.Millisecond
	// trajectoryLinger keeps the planned-motion display up briefly after a
	// pose move completes.
	trajectoryLinger = 200 * time.Millisecond
)

// Executor runs command sequences strictly sequentially. It shares the
// simulation state with the frame loop but never calls into it; suspension
// happens on the injected clock, and cancelling the context (an external
// reset) interrupts the sequence at its next suspension point.
type Executor struct {
	state  *sim.State
	clock  sim.Clock
	steps  int
	logger *log.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger enables command tracing on the given logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// WithTrajectorySteps overrides the interpolation segment count for
// animated arm motion.
func WithTrajectorySteps(steps int) Option {
	return func(e *Executor) {
		if steps > 0 {
			e.steps = steps
		}
	}
}

// New creates an executor over the shared state and clock.
func New(state *sim.State, clock sim.Clock, opts ...Option) *Executor {
	e := &Executor{
		state: state,
		clock: clock,
		steps: kinematics.DefaultTrajectorySteps,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the command sequence against the active robot.
//
// The active robot is reset to its initial configuration first, followed by
// a settle period; an empty sequence is then a no-op. Commands tagged for
// the inactive robot are skipped. Returns the context error when the
// sequence is interrupted.
func (e *Executor) Run(ctx context.Context, cmds []script.Command) error {
	active := e.state.ActiveRobot()

	e.state.ResetActive()
	e.state.StartRun(len(cmds))
	defer e.state.FinishRun()

	if err := e.clock.Sleep(ctx, resetSettle); err != nil {
		return err
	}

	for i, cmd := range cmds {
		if cmd.Robot() != active {
			e.infof("skip", "cmd", cmd.String(), "wants", cmd.Robot().String())
			continue
		}
		e.state.SetCurrentCommand(i, cmd.String())
		e.infof("exec", "cmd", cmd.String())
		if err := e.apply(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}

// apply performs one command and its suspension. The command set is closed;
// every kind is handled here.
func (e *Executor) apply(ctx context.Context, cmd script.Command) error {
	switch c := cmd.(type) {
	case script.MoveJoint:
		target := e.state.Joints()
		target[c.Joint] = kinematics.ClampAngle(c.Joint, c.Angle)
		return e.animate(ctx, target)

	case script.OpenGripper:
		e.state.SetGripper(true, 0)
		return e.clock.Sleep(ctx, gripperSettle)

	case script.CloseGripper:
		e.state.SetGripper(false, c.MaxEffort)
		return e.clock.Sleep(ctx, gripperSettle)

	case script.MoveToPose:
		current := e.state.Joints()
		solution := kinematics.Inverse(core.V3(c.X, c.Y, c.Z), current)
		waypoints := kinematics.Trajectory(current, solution, e.steps)
		e.state.SetTrajectory(waypoints)
		if err := e.follow(ctx, waypoints); err != nil {
			return err
		}
		if err := e.clock.Sleep(ctx, trajectoryLinger); err != nil {
			return err
		}
		e.state.ClearTrajectory()
		return nil

	case script.SetVelocity:
		e.state.CommandVelocity(c.Linear, c.Angular, e.clock.Now())
		return e.clock.Sleep(ctx, velocitySettle)

	case script.ReadDistance:
		e.infof("distance", "meters", e.state.Distance())
		return e.clock.Sleep(ctx, sensorSettle)

	case script.SetLight:
		e.state.SetLED(c.Color)
		return e.clock.Sleep(ctx, lightSettle)
	}
	return nil
}

// animate interpolates from the current configuration to the target,
// applying one waypoint per frame.
func (e *Executor) animate(ctx context.Context, target kinematics.JointConfig) error {
	return e.follow(ctx, kinematics.Trajectory(e.state.Joints(), target, e.steps))
}

// follow applies waypoints frame by frame, suspending until the full
// motion completes.
func (e *Executor) follow(ctx context.Context, waypoints []kinematics.JointConfig) error {
	for _, wp := range waypoints {
		e.state.SetJoints(wp)
		if err := e.clock.WaitFrame(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) infof(msg string, kv ...any) {
	if e.logger != nil {
		e.logger.Info(msg, kv...)
	}
}
