package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/matthewcove-stack/drift-guard-mcp/internal/contract"
	"github.com/matthewcove-stack/drift-guard-mcp/internal/drift"
	"github.com/matthewcove-stack/drift-guard-mcp/internal/history"
	"github.com/matthewcove-stack/drift-guard-mcp/internal/logging"
	"github.com/matthewcove-stack/drift-guard-mcp/internal/verify"
)

// ContractTool validates the repository file contract.
type ContractTool struct {
	contractPath string
	log          *logging.Logger
}

// NewContractTool creates the repo_contract_validate tool.
func NewContractTool(contractPath string, log *logging.Logger) *ContractTool {
	return &ContractTool{contractPath: contractPath, log: log}
}

// Definition returns the MCP tool definition.
func (t *ContractTool) Definition() mcp.Tool {
	return mcp.NewTool("repo_contract_validate",
		mcp.WithDescription("Validate that the repository contains every file required by its contract."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle runs contract validation against the working directory.
func (t *ContractTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := repoRoot()
	if err != nil {
		return nil, fmt.Errorf("resolve repo root: %w", err)
	}

	c, err := contract.LoadFrom(root, t.contractPath)
	if err != nil {
		// Malformed manifest JSON is the one condition allowed to fail
		// the whole call.
		return nil, err
	}

	result := contract.Validate(root, c)
	t.log.Printf("repo_contract_validate ok=%t missing=%d", result.OK, len(result.Missing))
	return jsonResult(result)
}

// DriftTool runs the deterministic drift rules.
type DriftTool struct {
	checker *drift.Checker
	log     *logging.Logger
}

// NewDriftTool creates the drift_check tool.
func NewDriftTool(checker *drift.Checker, log *logging.Logger) *DriftTool {
	return &DriftTool{checker: checker, log: log}
}

// Definition returns the MCP tool definition.
func (t *DriftTool) Definition() mcp.Tool {
	return mcp.NewTool("drift_check",
		mcp.WithDescription("Detect drift: code changes without corresponding process-documentation updates."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle evaluates the drift rules against the working directory.
func (t *DriftTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := repoRoot()
	if err != nil {
		return nil, fmt.Errorf("resolve repo root: %w", err)
	}

	report, err := t.checker.Check(ctx, root)
	if err != nil {
		return nil, err
	}

	t.log.Printf("drift_check ok=%t changed=%d failures=%d",
		report.OK, len(report.ChangedFiles), len(report.Failures))
	return jsonResult(report)
}

// VerifyTool executes the repository's declared verification commands.
type VerifyTool struct {
	service *verify.Service
	log     *logging.Logger
}

// NewVerifyTool creates the verify_run tool.
func NewVerifyTool(service *verify.Service, log *logging.Logger) *VerifyTool {
	return &VerifyTool{service: service, log: log}
}

// Definition returns the MCP tool definition.
func (t *VerifyTool) Definition() mcp.Tool {
	return mcp.NewTool("verify_run",
		mcp.WithDescription("Run the verification commands declared in the repository's control document."),
		mcp.WithString("profile",
			mcp.Description("Label echoed back in the response; does not change behavior."),
			mcp.DefaultString("default"),
		),
	)
}

// Handle runs every declared command and aggregates the results.
func (t *VerifyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := repoRoot()
	if err != nil {
		return nil, fmt.Errorf("resolve repo root: %w", err)
	}

	profile := req.GetString("profile", "default")

	started := time.Now()
	report := t.service.Run(ctx, root, profile)
	finished := time.Now()

	t.recordHistory(report, started, finished)
	t.log.Printf("verify_run ok=%t profile=%s commands=%d", report.OK, profile, len(report.Commands))
	return jsonResult(report)
}

// recordHistory journals the run. Best-effort: a failure here must never
// disturb the verification result the caller sees.
func (t *VerifyTool) recordHistory(report *verify.Report, started, finished time.Time) {
	store, err := history.OpenProject(report.RepoRoot)
	if err != nil {
		t.log.Printf("history: open store: %v", err)
		return
	}
	defer store.Close()

	if _, err := store.RecordRun(report, started, finished); err != nil {
		t.log.Printf("history: record run: %v", err)
	}
}

// jsonResult marshals a response object as pretty-printed JSON text.
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
