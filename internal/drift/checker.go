package drift

import (
	"context"

	"github.com/matthewcove-stack/drift-guard-mcp/internal/contract"
	"github.com/matthewcove-stack/drift-guard-mcp/internal/git"
)

// Report is the outcome of a full drift check.
//
// The change set and repo root are always populated so the caller can
// diagnose results, whether or not any rule fired.
type Report struct {
	OK           bool      `json:"ok" yaml:"ok"`
	RepoRoot     string    `json:"repo_root" yaml:"repo_root"`
	ChangedFiles []string  `json:"changed_files" yaml:"changed_files"`
	Failures     []Failure `json:"failures" yaml:"failures"`
}

// Checker runs drift checks: change-set discovery, contract validation,
// and rule evaluation. Every check is a fresh, stateless evaluation of the
// current working tree; nothing is memoized between calls.
type Checker struct {
	lister       git.ChangeLister
	engine       *Engine
	contractPath string
}

// NewChecker creates a drift checker. An empty contractPath uses the
// default contract location.
func NewChecker(lister git.ChangeLister, engine *Engine, contractPath string) *Checker {
	if contractPath == "" {
		contractPath = contract.DefaultPath
	}
	return &Checker{
		lister:       lister,
		engine:       engine,
		contractPath: contractPath,
	}
}

// Check evaluates all drift rules for the repository at root.
// The only error it can return is a malformed contract override; an
// unavailable git oracle degrades to an empty change set.
func (c *Checker) Check(ctx context.Context, root string) (*Report, error) {
	k, err := contract.LoadFrom(root, c.contractPath)
	if err != nil {
		return nil, err
	}
	vr := contract.Validate(root, k)

	changed := c.lister.ChangedFiles(ctx, root)
	if changed == nil {
		changed = []string{}
	}

	failures := c.engine.Evaluate(changed, vr)

	return &Report{
		OK:           len(failures) == 0,
		RepoRoot:     root,
		ChangedFiles: changed,
		Failures:     failures,
	}, nil
}
