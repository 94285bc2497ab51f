package contract

import (
	"os"
	"path/filepath"
)

// ValidationResult reports whether a repository satisfies its contract.
type ValidationResult struct {
	// OK is true when no required files are missing.
	OK bool `json:"ok" yaml:"ok"`
	// RepoRoot is the repository the contract was checked against.
	RepoRoot string `json:"repo_root" yaml:"repo_root"`
	// Missing lists the required paths that do not exist on disk.
	Missing []string `json:"missing" yaml:"missing"`
	// RequiredFiles echoes the contract's required paths.
	RequiredFiles []string `json:"required_files" yaml:"required_files"`
	// Authoritative echoes the contract's authoritative document.
	Authoritative string `json:"authoritative" yaml:"authoritative"`
}

// Validate checks each required path for existence relative to root.
// It is a pure function of the contract and the filesystem: no caching,
// no side effects.
func Validate(root string, c *Contract) *ValidationResult {
	missing := []string{}
	for _, rel := range c.RequiredFiles {
		if _, err := os.Stat(filepath.Join(root, rel)); err != nil {
			missing = append(missing, rel)
		}
	}

	required := c.RequiredFiles
	if required == nil {
		required = []string{}
	}

	return &ValidationResult{
		OK:            len(missing) == 0,
		RepoRoot:      root,
		Missing:       missing,
		RequiredFiles: required,
		Authoritative: c.Authoritative,
	}
}
