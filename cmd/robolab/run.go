package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/msorokin/robolab/internal/executor"
	"github.com/msorokin/robolab/internal/rover"
	"github.com/msorokin/robolab/internal/script"
	"github.com/msorokin/robolab/internal/sim"
	"github.com/msorokin/robolab/internal/storage"
)

var flagNoSave bool

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Execute a script headlessly",
	Long: `Parse and execute the script against the active robot, logging each
command as it runs. The simulation advances in real time; rover motion,
sensing, and the occupancy map all happen exactly as under the dashboard.

Use "-" to read the script from stdin.

Examples:
  robolab run wave.rcs
  robolab run patrol.rcs --robot rover
  robolab run patrol.rcs --robot rover --world ./maze.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run in history")
}

func runRun(cmd *cobra.Command, args []string) {
	source, name, err := loadScript(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cmds := script.Parse(source)
	if len(cmds) == 0 {
		fmt.Printf("%s: no commands found\n", name)
		return
	}

	params, world, err := loadSetup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "robolab",
	})

	robot := activeRobot()
	state := sim.NewState(robot)
	sensor := rover.NewSensor(world)
	sensor.SetMaxRange(params.SensorRange)
	sensor.SetRays(params.SensorRays)
	loop := sim.NewLoop(state, sensor, params)
	clock := sim.NewWallClock(params.TickRate)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The frame loop runs for the whole sequence; the executor suspends on
	// the shared clock and observes the loop's effects through the state.
	go loop.Run(ctx, clock)

	exec := executor.New(state, clock,
		executor.WithLogger(logger),
		executor.WithTrajectorySteps(params.TrajectorySteps))

	start := time.Now()
	runErr := exec.Run(ctx, cmds)
	elapsed := time.Since(start)

	reason := "completed"
	if runErr != nil {
		reason = "cancelled"
		logger.Warn("run interrupted", "error", runErr)
	}

	snap := state.Snapshot()
	logger.Info("run finished",
		"robot", robot.String(),
		"commands", len(cmds),
		"duration", elapsed.Round(time.Millisecond),
	)
	if robot == script.RobotArm {
		ee := snap.EndEffector
		logger.Info("final pose", "x", ee.X, "y", ee.Y, "z", ee.Z)
	} else {
		logger.Info("final pose", "x", snap.Rover.X, "z", snap.Rover.Z, "distance", snap.Distance)
	}

	if flagNoSave {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run-history database", "error", err)
		return
	}
	defer store.Close()

	//nolint:errcheck // Best-effort save
	store.SaveRun(storage.RunRecord{
		Robot:     robot.String(),
		Script:    name,
		Commands:  len(cmds),
		Executed:  len(cmds),
		Duration:  int(elapsed.Milliseconds()),
		EndReason: reason,
	})
}
