package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/matthewcove-stack/drift-guard-mcp/internal/config"
	"github.com/matthewcove-stack/drift-guard-mcp/internal/drift"
	"github.com/matthewcove-stack/drift-guard-mcp/internal/exec"
	"github.com/matthewcove-stack/drift-guard-mcp/internal/git"
	"github.com/matthewcove-stack/drift-guard-mcp/internal/verify"
)

// loadConfig loads the effective configuration for CLI commands.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveRoot returns the absolute repository root the command operates on:
// the given directory argument, or the current working directory.
func resolveRoot(args []string) (string, error) {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	root, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	if _, err := os.Stat(root); err != nil {
		return "", fmt.Errorf("repository root %s: %w", root, err)
	}
	return root, nil
}

// newChecker builds a drift checker from configuration.
func newChecker(cfg *config.Config) *drift.Checker {
	runner := exec.NewRunner()
	lister := git.NewProvider(runner, cfg.Timeouts.Git)
	engine := drift.NewEngine(cfg.Limits.EvidenceFiles)
	return drift.NewChecker(lister, engine, cfg.Paths.Contract)
}

// newVerifier builds a verification service from configuration.
func newVerifier(cfg *config.Config) *verify.Service {
	runner := exec.NewRunner()
	return verify.NewService(runner, cfg.Paths.ControlDoc, cfg.Timeouts.Command, cfg.Limits.OutputTail)
}

// renderStructured prints a report in the requested machine format.
func renderStructured(v interface{}, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		fmt.Print(string(data))
	default:
		return fmt.Errorf("unknown output format %q (want text, json, or yaml)", format)
	}
	return nil
}
