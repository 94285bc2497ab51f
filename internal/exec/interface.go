// Package exec provides an interface for command execution.
package exec

import (
	"context"
)

// Result holds the outcome of a command that ran to completion.
// A non-zero ExitCode is not an error: callers that care about pass/fail
// inspect the code themselves.
type Result struct {
	// ExitCode is the process exit status.
	ExitCode int
	// Stdout is the captured standard output.
	Stdout string
	// Stderr is the captured standard error.
	Stderr string
}

// CommandRunner defines the interface for running external commands.
// This abstraction allows mocking command execution in tests.
//
// Implementations return a non-nil error only when the command could not
// be launched or was cut short abnormally (for example a context timeout).
// A command that starts, runs, and exits non-zero yields a Result and a
// nil error.
type CommandRunner interface {
	// Run executes a command with separate stdout/stderr capture.
	// The working directory is set to workDir if non-empty.
	Run(ctx context.Context, workDir string, name string, args ...string) (*Result, error)

	// RunShell executes a shell command through "sh -c".
	// This supports compound and piped commands.
	RunShell(ctx context.Context, workDir string, command string) (*Result, error)
}
