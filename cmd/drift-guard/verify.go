package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/matthewcove-stack/drift-guard-mcp/internal/history"
	"github.com/matthewcove-stack/drift-guard-mcp/internal/verify"
)

var (
	verifyProfile string
	verifyOutput  string
	verifyNoSave  bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify [directory]",
	Short: "Run the repository's declared verification commands",
	Long: `Run the verification commands the repository declares in AGENTS.md
under a '## Verification Commands' heading.

Commands run in declaration order, each through a shell with its own
timeout. A failing command never stops the rest from running; overall
success requires every command to exit zero. A repository that declares
no commands fails the run, since the absence of a verification contract
is itself a reportable condition.

Each run is journaled to .driftguard/history.db (see 'drift-guard history').

The directory argument is optional and defaults to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyProfile, "profile", "default", "Label echoed in the result (pass-through tag)")
	verifyCmd.Flags().StringVarP(&verifyOutput, "output", "o", "text", "Output format: text, json, or yaml")
	verifyCmd.Flags().BoolVar(&verifyNoSave, "no-save", false, "Skip journaling the run to the history store")
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	started := time.Now()
	report := newVerifier(cfg).Run(cmd.Context(), root, verifyProfile)
	finished := time.Now()

	if !verifyNoSave {
		saveRun(report, started, finished)
	}

	if verifyOutput != "text" {
		if err := renderStructured(report, verifyOutput); err != nil {
			return err
		}
	} else {
		printVerifyReport(report)
	}

	if !report.OK {
		return fmt.Errorf("verification failed")
	}
	return nil
}

// saveRun journals the run. Best-effort: history problems are reported but
// never change the verification outcome.
func saveRun(report *verify.Report, started, finished time.Time) {
	store, err := history.OpenProject(report.RepoRoot)
	if err != nil {
		fmt.Fprintf(color.Error, "warning: history store unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.RecordRun(report, started, finished); err != nil {
		fmt.Fprintf(color.Error, "warning: could not record run: %v\n", err)
	}
}

func printVerifyReport(report *verify.Report) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	if report.Message != "" {
		red.Printf("✗ %s\n", report.Message)
		return
	}

	fmt.Printf("Running %d verification command(s) [profile: %s]\n\n", len(report.Commands), report.Profile)

	for _, res := range report.Results {
		switch {
		case res.ExitCode == nil:
			red.Printf("✗ %s\n", res.Command)
			fmt.Printf("  %s\n", res.Stderr)
		case *res.ExitCode == 0:
			green.Printf("✓ %s\n", res.Command)
		default:
			red.Printf("✗ %s (exit %d)\n", res.Command, *res.ExitCode)
			if res.Stderr != "" {
				fmt.Printf("  %s\n", res.Stderr)
			}
		}
	}

	fmt.Println()
	if report.OK {
		green.Println("All verification commands passed")
	} else {
		red.Println("Verification failed")
	}
}
