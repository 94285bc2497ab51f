// Package git provides change-set discovery over a git working tree.
package git

import "context"

// ChangeLister defines the interface for listing files that differ from HEAD.
type ChangeLister interface {
	// ChangedFiles returns the paths of all files with staged or unstaged
	// changes in the repository at root, deduplicated and sorted.
	//
	// Discovery is best-effort: a directory that is not a git repository,
	// or a git invocation that fails, yields an empty list rather than an
	// error. Drift checking must keep working when the oracle does not.
	ChangedFiles(ctx context.Context, root string) []string
}
