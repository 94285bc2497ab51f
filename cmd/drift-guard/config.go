package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthewcove-stack/drift-guard-mcp/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Display the effective drift-guard configuration and where it comes from.

Precedence (highest to lowest):
  1. Environment variables (DRIFTGUARD_*)
  2. Project config (.driftguard.yaml in current directory or parent)
  3. User config (~/.config/driftguard/config.yaml)
  4. Built-in defaults`,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println("Sources:")
	fmt.Printf("  user config:    %s\n", config.GetUserConfigPath())
	if project := config.GetProjectConfigPath(); project != "" {
		fmt.Printf("  project config: %s\n", project)
	} else {
		fmt.Printf("  project config: (none)\n")
	}
	fmt.Println()

	fmt.Println("Effective settings:")
	fmt.Printf("  timeouts.git:          %s\n", cfg.Timeouts.Git)
	fmt.Printf("  timeouts.command:      %s\n", cfg.Timeouts.Command)
	fmt.Printf("  limits.output_tail:    %d\n", cfg.Limits.OutputTail)
	fmt.Printf("  limits.evidence_files: %d\n", cfg.Limits.EvidenceFiles)
	fmt.Printf("  paths.contract:        %s\n", cfg.Paths.Contract)
	fmt.Printf("  paths.control_doc:     %s\n", cfg.Paths.ControlDoc)
	return nil
}
