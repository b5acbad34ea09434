package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msorokin/robolab/internal/script"
)

var checkCmd = &cobra.Command{
	Use:   "check <script>",
	Short: "Parse a script and show the recognized commands",
	Long: `Parse the script without executing anything and print the command
sequence that would run. Lines the parser does not recognize are dropped
silently, so this is the way to verify a script before running it.

Use "-" to read the script from stdin.

Examples:
  robolab check wave.rcs
  cat wave.rcs | robolab check -`,
	Args: cobra.ExactArgs(1),
	Run:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) {
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

	fmt.Printf("%s: %d commands\n", name, len(cmds))
	fmt.Println()
	for i, c := range cmds {
		fmt.Printf("  %3d  %-6s  %s\n", i+1, c.Robot(), c)
	}
}
