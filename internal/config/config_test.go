package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Timeouts.Git != 10*time.Second {
		t.Errorf("expected git timeout 10s, got %v", cfg.Timeouts.Git)
	}

	if cfg.Timeouts.Command != 600*time.Second {
		t.Errorf("expected command timeout 600s, got %v", cfg.Timeouts.Command)
	}

	if cfg.Limits.OutputTail != 8000 {
		t.Errorf("expected output tail 8000, got %d", cfg.Limits.OutputTail)
	}

	if cfg.Limits.EvidenceFiles != 50 {
		t.Errorf("expected evidence file cap 50, got %d", cfg.Limits.EvidenceFiles)
	}

	if cfg.Paths.Contract != "docs/v2_contract.json" {
		t.Errorf("expected contract path docs/v2_contract.json, got %q", cfg.Paths.Contract)
	}

	if cfg.Paths.ControlDoc != "AGENTS.md" {
		t.Errorf("expected control doc AGENTS.md, got %q", cfg.Paths.ControlDoc)
	}
}

func TestLoadFromPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
timeouts:
  git: 5s
  command: 2m
limits:
  output_tail: 4000
  evidence_files: 25
paths:
  contract: .contract.json
  control_doc: CONTRIBUTING.md
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	if cfg.Timeouts.Git != 5*time.Second {
		t.Errorf("expected git timeout 5s, got %v", cfg.Timeouts.Git)
	}
	if cfg.Timeouts.Command != 2*time.Minute {
		t.Errorf("expected command timeout 2m, got %v", cfg.Timeouts.Command)
	}
	if cfg.Limits.OutputTail != 4000 {
		t.Errorf("expected output tail 4000, got %d", cfg.Limits.OutputTail)
	}
	if cfg.Limits.EvidenceFiles != 25 {
		t.Errorf("expected evidence file cap 25, got %d", cfg.Limits.EvidenceFiles)
	}
	if cfg.Paths.Contract != ".contract.json" {
		t.Errorf("expected contract path .contract.json, got %q", cfg.Paths.Contract)
	}
	if cfg.Paths.ControlDoc != "CONTRIBUTING.md" {
		t.Errorf("expected control doc CONTRIBUTING.md, got %q", cfg.Paths.ControlDoc)
	}
}

func TestLoadFromPathPartialOverride(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
limits:
  output_tail: 1000
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	if cfg.Limits.OutputTail != 1000 {
		t.Errorf("expected output tail 1000, got %d", cfg.Limits.OutputTail)
	}
	// Untouched settings keep their defaults.
	if cfg.Timeouts.Command != 600*time.Second {
		t.Errorf("expected command timeout default 600s, got %v", cfg.Timeouts.Command)
	}
}
