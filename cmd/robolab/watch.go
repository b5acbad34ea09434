package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/msorokin/robolab/internal/platform/tui"
	"github.com/msorokin/robolab/internal/rover"
	"github.com/msorokin/robolab/internal/script"
	"github.com/msorokin/robolab/internal/sim"
	"github.com/msorokin/robolab/internal/storage"
)

var watchCmd = &cobra.Command{
	Use:   "watch <script>",
	Short: "Execute a script with the live dashboard",
	Long: `Execute the script against the active robot while showing the live
terminal dashboard: joint angles and gripper for the arm, the occupancy
map and telemetry for the rover.

Controls:
  R          - Rerun the script
  X          - Reset the simulation
  P/Space    - Pause
  Q/Ctrl+C   - Quit

Examples:
  robolab watch wave.rcs
  robolab watch patrol.rcs --robot rover`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) {
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

	robot := activeRobot()
	state := sim.NewState(robot)
	sensor := rover.NewSensor(world)
	sensor.SetMaxRange(params.SensorRange)
	sensor.SetRays(params.SensorRays)
	loop := sim.NewLoop(state, sensor, params)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run-history database: %v\n", err)
		// Continue without storage - dashboard still works
		store = nil
	}

	runErr := tui.Run(state, loop, params, cmds, name, store)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running dashboard: %v\n", runErr)
		os.Exit(1)
	}
}

// terminalSize probes the terminal dimensions, falling back to 80x24.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
