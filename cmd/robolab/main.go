// robolab is a robot command interpreter and simulator for the terminal.
//
// Usage:
//
//	robolab check <script>   - Parse a script and print the command sequence
//	robolab run <script>     - Execute a script headlessly
//	robolab watch <script>   - Execute a script with the live dashboard
//	robolab serve            - Start SSH server for remote dashboards
//	robolab history          - Browse past runs
//
// Global flags:
//
//	--robot <kind>   - Active robot: arm or rover (default: arm)
//	--config <path>  - Custom simulation config YAML
//	--world <path>   - Custom world geometry YAML
//	--db <path>      - Run-history database path (default: ~/.robolab/runs.db)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/msorokin/robolab/internal/config"
	"github.com/msorokin/robolab/internal/script"
	"github.com/msorokin/robolab/internal/sim"
)

var (
	// Global flags
	flagRobot  string
	flagConfig string
	flagWorld  string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "robolab",
	Short: "Robolab - Script a robot arm and rover in your terminal",
	Long: `Robolab interprets robot command scripts and executes them against a
simulated 5-joint arm or a ground rover.

Available commands:
  check    - Parse a script and show the recognized commands
  run      - Execute a script headlessly, logging each command
  watch    - Execute a script with the live terminal dashboard
  serve    - Start SSH server for remote dashboards
  history  - Browse past runs

Examples:
  robolab check wave.rcs
  robolab run wave.rcs --robot arm
  robolab watch patrol.rcs --robot rover
  robolab serve --ssh :2222
  robolab history`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagRobot, "robot", "arm", "Active robot: arm or rover")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
	rootCmd.PersistentFlags().StringVar(&flagWorld, "world", "", "Path to custom world geometry YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.robolab/runs.db", "Path to run-history database")

	// Add subcommands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

// activeRobot resolves the --robot flag, exiting on an unknown kind.
func activeRobot() script.RobotKind {
	kind, err := script.ParseRobotKind(flagRobot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown robot %q (expected arm or rover)\n", flagRobot)
		os.Exit(1)
	}
	return kind
}

// loadScript reads a script from a file path, or from stdin when the path
// is "-". Returns the source and a display name.
func loadScript(path string) (string, string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("cannot read stdin: %w", err)
		}
		return string(data), "-", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("cannot read script: %w", err)
	}
	return string(data), filepath.Base(path), nil
}

// loadSetup resolves simulation parameters and world geometry from the
// config search paths and the --config/--world overrides.
func loadSetup() (sim.Params, *sim.ObstacleWorld, error) {
	simCfg, err := config.LoadSim(flagConfig)
	if err != nil {
		return sim.Params{}, nil, err
	}
	worldCfg, err := config.LoadWorld(flagWorld)
	if err != nil {
		return sim.Params{}, nil, err
	}
	return simCfg.Params(), worldCfg.World(), nil
}
