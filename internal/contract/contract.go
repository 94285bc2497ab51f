// Package contract loads and validates the repository file contract.
// The contract is the declared manifest of files a repository must contain
// to be considered process-compliant.
package contract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPath is the project-relative location of a contract override.
const DefaultPath = "docs/v2_contract.json"

// DefaultAuthoritative is the canonical record of current project state.
const DefaultAuthoritative = "docs/current_state.md"

// Contract describes the required files for a repository.
type Contract struct {
	// RequiredFiles lists paths, relative to the repo root, that must exist.
	RequiredFiles []string `json:"required_files"`
	// Authoritative is the single file designated as the canonical record
	// of current project state.
	Authoritative string `json:"authoritative"`
}

// Default returns the built-in contract used when no override file exists.
func Default() *Contract {
	return &Contract{
		RequiredFiles: []string{
			"AGENTS.md",
			"docs/intent.md",
			DefaultAuthoritative,
			"docs/phases.md",
			"docs/phase_execution_prompt.md",
		},
		Authoritative: DefaultAuthoritative,
	}
}

// Load reads the contract for the repository at root.
//
// A JSON document at DefaultPath replaces the built-in default wholesale;
// there is no merging. A missing override file is the normal state and
// yields the default. Malformed JSON is the one hard failure in this
// package: the caller sees the parse error.
func Load(root string) (*Contract, error) {
	return LoadFrom(root, DefaultPath)
}

// LoadFrom reads the contract from the given project-relative path,
// falling back to the built-in default when the file does not exist.
func LoadFrom(root, relPath string) (*Contract, error) {
	path := filepath.Join(root, relPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read contract %s: %w", path, err)
	}

	c := &Contract{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse contract %s: %w", path, err)
	}
	if c.Authoritative == "" {
		c.Authoritative = DefaultAuthoritative
	}
	return c, nil
}
