package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "drift-guard",
	Short: "Repository hygiene guard for AI-assisted projects",
	Long: `Drift Guard verifies that a repository satisfies its declared file
contract and detects drift: code changes made without updating the
corresponding process documentation. It also runs the verification
commands the repository declares in its control document.

With no arguments, drift-guard serves the Model Context Protocol over
stdio, which is what editors expect when launching a local server.

Core capabilities:
- Validates the required-file contract (docs/v2_contract.json or built-in default)
- Detects drift between code changes and the authoritative state document
- Extracts and runs '## Verification Commands' from AGENTS.md
- Watches the working tree and re-checks on change`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
