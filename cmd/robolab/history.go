package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msorokin/robolab/internal/platform/tui"
	"github.com/msorokin/robolab/internal/storage"
)

var flagHistoryPlain bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past runs",
	Long: `Open the interactive run-history browser, or print recent runs as a
plain table with --plain.

Examples:
  robolab history
  robolab history --plain`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print runs as plain text instead of the browser")
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run-history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryPlain {
		printHistory(store)
		return
	}

	width, height := terminalSize()
	if err := tui.RunHistory(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error running history browser: %v\n", err)
		os.Exit(1)
	}
}

func printHistory(store *storage.Store) {
	runs, err := store.RecentRuns(20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'robolab run <script>' to create history.")
		return
	}

	fmt.Printf("  %-5s  %-6s  %-20s  %-7s  %-9s  %-10s  %s\n",
		"ID", "Robot", "Script", "Cmds", "Duration", "Result", "Date")
	fmt.Printf("  %-5s  %-6s  %-20s  %-7s  %-9s  %-10s  %s\n",
		"--", "-----", "------", "----", "--------", "------", "----")

	for _, r := range runs {
		fmt.Printf("  %-5d  %-6s  %-20s  %d/%-5d  %-9s  %-10s  %s\n",
			r.ID, r.Robot, r.Script, r.Executed, r.Commands,
			fmt.Sprintf("%.1fs", float64(r.Duration)/1000),
			r.EndReason,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
