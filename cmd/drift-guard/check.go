package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/matthewcove-stack/drift-guard-mcp/internal/drift"
)

var checkOutput string

var checkCmd = &cobra.Command{
	Use:   "check [directory]",
	Short: "Run the drift rules against the working tree",
	Long: `Run the deterministic drift rules against the repository.

Drift is a state where code-like files changed without the corresponding
update to the authoritative state document. The check queries git for
staged and unstaged changes, validates the file contract, and evaluates
the fixed rule set. A directory that is not a git repository reports an
empty change set rather than failing.

The directory argument is optional and defaults to the current directory.

Exits non-zero when drift is detected, so the command works as a commit
or CI gate.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "text", "Output format: text, json, or yaml")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	report, err := newChecker(cfg).Check(cmd.Context(), root)
	if err != nil {
		return err
	}

	if checkOutput != "text" {
		if err := renderStructured(report, checkOutput); err != nil {
			return err
		}
	} else {
		printDriftReport(report)
	}

	if !report.OK {
		return fmt.Errorf("drift detected (%d failure(s))", len(report.Failures))
	}
	return nil
}

func printDriftReport(report *drift.Report) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	fmt.Printf("Repository: %s\n", report.RepoRoot)
	fmt.Printf("Changed files: %d\n", len(report.ChangedFiles))
	for _, f := range report.ChangedFiles {
		fmt.Printf("  %s\n", f)
	}
	fmt.Println()

	if report.OK {
		green.Println("✓ No drift detected")
		return
	}

	red.Printf("✗ Drift detected: %d failure(s)\n\n", len(report.Failures))
	for _, failure := range report.Failures {
		yellow.Printf("[%s]\n", failure.Rule)
		fmt.Printf("  %s\n", failure.Message)
		if count, ok := failure.Evidence["count"]; ok {
			fmt.Printf("  code-like files changed: %v\n", count)
		}
		if missing, ok := failure.Evidence["missing"]; ok {
			fmt.Printf("  missing: %v\n", missing)
		}
	}
}
