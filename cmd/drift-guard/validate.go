package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/matthewcove-stack/drift-guard-mcp/internal/contract"
)

var validateOutput string

var validateCmd = &cobra.Command{
	Use:   "validate [directory]",
	Short: "Validate the repository file contract",
	Long: `Validate that the repository contains every file its contract requires.

The contract is read from docs/v2_contract.json when present; otherwise
the built-in default applies (AGENTS.md plus the four docs/ process
files, authoritative = docs/current_state.md). A project manifest
replaces the default wholesale; there is no merging.

The directory argument is optional and defaults to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "text", "Output format: text, json, or yaml")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	c, err := contract.LoadFrom(root, cfg.Paths.Contract)
	if err != nil {
		return err
	}
	result := contract.Validate(root, c)

	if validateOutput != "text" {
		if err := renderStructured(result, validateOutput); err != nil {
			return err
		}
	} else {
		printValidation(result)
	}

	if !result.OK {
		return fmt.Errorf("contract not satisfied (%d missing)", len(result.Missing))
	}
	return nil
}

func printValidation(result *contract.ValidationResult) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Printf("Repository: %s\n", result.RepoRoot)
	fmt.Printf("Authoritative document: %s\n\n", result.Authoritative)

	missing := make(map[string]bool, len(result.Missing))
	for _, m := range result.Missing {
		missing[m] = true
	}

	for _, required := range result.RequiredFiles {
		if missing[required] {
			red.Printf("✗ %s (missing)\n", required)
		} else {
			green.Printf("✓ %s\n", required)
		}
	}
}
