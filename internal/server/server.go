// Package server wires the drift-guard MCP components and creates the
// server instance.
//
// This is the composition root: it builds concrete implementations and
// injects them into the tools that depend on abstractions. No decision
// logic lives here, only wiring.
package server

import (
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/matthewcove-stack/drift-guard-mcp/internal/config"
	"github.com/matthewcove-stack/drift-guard-mcp/internal/drift"
	"github.com/matthewcove-stack/drift-guard-mcp/internal/exec"
	"github.com/matthewcove-stack/drift-guard-mcp/internal/git"
	"github.com/matthewcove-stack/drift-guard-mcp/internal/logging"
	"github.com/matthewcove-stack/drift-guard-mcp/internal/verify"
	"github.com/matthewcove-stack/drift-guard-mcp/internal/version"
)

// New creates and configures the MCP server with the drift-guard tools
// registered.
//
// The returned cleanup function closes the operational log and must be
// called on shutdown (typically via defer). It is always non-nil.
func New(cfg *config.Config) (*server.MCPServer, func(), error) {
	runner := exec.NewRunner()
	lister := git.NewProvider(runner, cfg.Timeouts.Git)
	engine := drift.NewEngine(cfg.Limits.EvidenceFiles)
	checker := drift.NewChecker(lister, engine, cfg.Paths.Contract)
	verifier := verify.NewService(runner, cfg.Paths.ControlDoc, cfg.Timeouts.Command, cfg.Limits.OutputTail)

	log := logging.NewForRepo(mustWorkingDir())

	s := server.NewMCPServer(
		"drift-guard",
		version.Get(),
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	contractTool := NewContractTool(cfg.Paths.Contract, log)
	s.AddTool(contractTool.Definition(), contractTool.Handle)

	driftTool := NewDriftTool(checker, log)
	s.AddTool(driftTool.Definition(), driftTool.Handle)

	verifyTool := NewVerifyTool(verifier, log)
	s.AddTool(verifyTool.Definition(), verifyTool.Handle)

	cleanup := func() {
		log.Close()
	}
	return s, cleanup, nil
}

// ServeStdio runs the server over stdio until the client disconnects.
// stdio is what editors expect for locally launched servers.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// repoRoot resolves the working directory the tools operate on. The host
// launches the server with cwd set to the workspace, so the working
// directory is the repository under check.
func repoRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Abs(cwd)
}

// mustWorkingDir is repoRoot for contexts where a failure should degrade
// to "." rather than abort wiring.
func mustWorkingDir() string {
	root, err := repoRoot()
	if err != nil {
		return "."
	}
	return root
}

// serverInstructions tells the calling agent when to reach for each tool.
func serverInstructions() string {
	return `Drift Guard verifies repository process hygiene.

Use repo_contract_validate to check that the required control files exist.
Use drift_check after making code changes to confirm the authoritative
state document was kept up to date. Use verify_run to execute the
verification commands the repository declares in its control document.

All tools answer with a JSON object carrying an explicit "ok" flag;
failures are reported as data, not errors.`
}
