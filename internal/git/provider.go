package git

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/matthewcove-stack/drift-guard-mcp/internal/exec"
)

// DefaultQueryTimeout bounds a single git invocation. Status queries are
// cheap; anything slower than this means the oracle is wedged and we fall
// back to "no changes reported".
const DefaultQueryTimeout = 10 * time.Second

// Provider implements ChangeLister by shelling out to the git CLI.
type Provider struct {
	runner  exec.CommandRunner
	timeout time.Duration
}

// NewProvider creates a change-set provider using the given runner.
// A zero timeout falls back to DefaultQueryTimeout.
func NewProvider(runner exec.CommandRunner, timeout time.Duration) *Provider {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return &Provider{runner: runner, timeout: timeout}
}

// ChangedFiles returns staged and unstaged paths differing from HEAD,
// unioned, deduplicated, and sorted.
func (p *Provider) ChangedFiles(ctx context.Context, root string) []string {
	if !isRepo(root) {
		return nil
	}

	unstaged := p.diffNames(ctx, root)
	staged := p.diffNames(ctx, root, "--staged")

	seen := make(map[string]struct{}, len(unstaged)+len(staged))
	var files []string
	for _, path := range append(unstaged, staged...) {
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

// diffNames runs `git diff --name-only` with optional extra arguments and
// parses the path-per-line output. Failures contribute nothing.
func (p *Provider) diffNames(ctx context.Context, root string, extra ...string) []string {
	queryCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	args := append([]string{"diff", "--name-only"}, extra...)
	res, err := p.runner.Run(queryCtx, root, "git", args...)
	if err != nil || res.ExitCode != 0 {
		return nil
	}

	var paths []string
	for _, line := range strings.Split(res.Stdout, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}

// isRepo reports whether root has a .git entry. A gitfile (worktree or
// submodule checkout) counts, so this is a plain existence check.
func isRepo(root string) bool {
	_, err := os.Stat(filepath.Join(root, ".git"))
	return err == nil
}

// Verify Provider implements ChangeLister at compile time.
var _ ChangeLister = (*Provider)(nil)
