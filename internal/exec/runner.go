package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ShellRunner implements CommandRunner using os/exec.
type ShellRunner struct{}

// NewRunner creates a new ShellRunner.
func NewRunner() *ShellRunner {
	return &ShellRunner{}
}

// Run executes a command with separate stdout/stderr capture.
func (r *ShellRunner) Run(ctx context.Context, workDir string, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if workDir != "" {
		cmd.Dir = workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if err == nil {
		return res, nil
	}

	// A context timeout or cancellation is an abnormal termination, not a
	// command failure: report it as an error so callers can distinguish
	// "ran and failed" from "never finished".
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, fmt.Errorf("command timed out: %s", name)
		}
		return nil, fmt.Errorf("command canceled: %s", name)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	// Launch fault (binary not found, permission denied, ...).
	return nil, err
}

// RunShell executes a shell command through "sh -c".
func (r *ShellRunner) RunShell(ctx context.Context, workDir string, command string) (*Result, error) {
	return r.Run(ctx, workDir, "sh", "-c", command)
}

// Verify ShellRunner implements CommandRunner at compile time.
var _ CommandRunner = (*ShellRunner)(nil)
