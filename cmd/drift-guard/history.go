package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/matthewcove-stack/drift-guard-mcp/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [directory]",
	Short: "Show recent verification runs",
	Long: `Display recent verification runs recorded in the project's history
store (.driftguard/history.db).

History is an audit journal only: it never influences check results.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	dbPath := history.ProjectDBPath(root)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No verification runs recorded yet. Run 'drift-guard verify' first.")
		return nil
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(historyLimit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No verification runs recorded yet. Run 'drift-guard verify' first.")
		return nil
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	for _, run := range runs {
		if run.OK {
			green.Print("✓ ")
		} else {
			red.Print("✗ ")
		}
		fmt.Printf("%s  profile=%s  commands=%d  duration=%s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Profile,
			run.Commands,
			run.FinishedAt.Sub(run.StartedAt).Round(10*time.Millisecond),
		)
		if run.Message != "" {
			fmt.Printf("    %s\n", run.Message)
		}
	}
	return nil
}
