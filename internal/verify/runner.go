package verify

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/matthewcove-stack/drift-guard-mcp/internal/exec"
)

// DefaultCommandTimeout bounds a single verification command.
const DefaultCommandTimeout = 600 * time.Second

// DefaultOutputTail is how many trailing bytes of stdout/stderr are kept.
// Failure diagnostics usually land at the end of output, so the head is
// the part we can afford to drop.
const DefaultOutputTail = 8000

// CommandResult is the outcome of one verification command.
type CommandResult struct {
	// Command is the shell command that was executed.
	Command string `json:"command" yaml:"command"`
	// ExitCode is the process exit status. It is nil only when the
	// command never ran to completion (launch fault or timeout), which
	// always counts as failure.
	ExitCode *int `json:"exit_code" yaml:"exit_code"`
	// Stdout is the trailing portion of standard output.
	Stdout string `json:"stdout" yaml:"stdout"`
	// Stderr is the trailing portion of standard error, or a synthesized
	// diagnostic when execution itself faulted.
	Stderr string `json:"stderr" yaml:"stderr"`
}

// Report is the aggregate outcome of a verification run.
type Report struct {
	OK       bool            `json:"ok" yaml:"ok"`
	RepoRoot string          `json:"repo_root" yaml:"repo_root"`
	Profile  string          `json:"profile" yaml:"profile"`
	Commands []string        `json:"commands" yaml:"commands"`
	Results  []CommandResult `json:"results" yaml:"results"`
	// Message explains an empty run; absence of a verification contract
	// is itself a reportable condition.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Service extracts verification commands from the control document and
// executes them against the repository root.
type Service struct {
	runner     exec.CommandRunner
	controlDoc string
	timeout    time.Duration
	tailBytes  int
}

// NewService creates a verification service. Zero values fall back to
// DefaultControlDoc, DefaultCommandTimeout, and DefaultOutputTail.
func NewService(runner exec.CommandRunner, controlDoc string, timeout time.Duration, tailBytes int) *Service {
	if controlDoc == "" {
		controlDoc = DefaultControlDoc
	}
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	if tailBytes <= 0 {
		tailBytes = DefaultOutputTail
	}
	return &Service{
		runner:     runner,
		controlDoc: controlDoc,
		timeout:    timeout,
		tailBytes:  tailBytes,
	}
}

// Commands returns the verification commands declared by the repository
// at root, in extraction order.
func (s *Service) Commands(root string) []string {
	return ReadCommands(filepath.Join(root, s.controlDoc))
}

// Run extracts and executes the repository's verification commands.
//
// Commands run in order, each with its own timeout; a failing or stuck
// command never prevents the remaining commands from running. Overall OK
// requires every command to exit zero. The profile is a pass-through tag
// echoed in the report.
func (s *Service) Run(ctx context.Context, root, profile string) *Report {
	cmds := s.Commands(root)

	report := &Report{
		OK:       true,
		RepoRoot: root,
		Profile:  profile,
		Commands: cmds,
		Results:  []CommandResult{},
	}

	if len(cmds) == 0 {
		report.OK = false
		report.Message = fmt.Sprintf(
			"No verification commands found in %s under '## Verification Commands'.", s.controlDoc)
		return report
	}

	for _, cmd := range cmds {
		report.Results = append(report.Results, s.runOne(ctx, root, cmd))
	}

	for _, res := range report.Results {
		if res.ExitCode == nil || *res.ExitCode != 0 {
			report.OK = false
			break
		}
	}
	return report
}

// runOne executes a single command with output tails captured.
func (s *Service) runOne(ctx context.Context, root, cmd string) CommandResult {
	cmdCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.runner.RunShell(cmdCtx, root, cmd)
	if err != nil {
		// Execution fault: no exit code, diagnostic carried in stderr.
		return CommandResult{
			Command:  cmd,
			ExitCode: nil,
			Stdout:   "",
			Stderr:   fmt.Sprintf("%T: %v", err, err),
		}
	}

	code := res.ExitCode
	return CommandResult{
		Command:  cmd,
		ExitCode: &code,
		Stdout:   tail(res.Stdout, s.tailBytes),
		Stderr:   tail(res.Stderr, s.tailBytes),
	}
}

// tail keeps the last n bytes of s. Truncation is by characters, not
// lines, so the semantics stay exact regardless of output shape.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
