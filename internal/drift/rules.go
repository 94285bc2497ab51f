package drift

import (
	"fmt"

	"github.com/matthewcove-stack/drift-guard-mcp/internal/contract"
)

// IntentPath is the fixed intent document checked by the alignment rule.
const IntentPath = "docs/intent.md"

// DefaultEvidenceLimit caps how many code-like paths a failure carries.
// The true total is always preserved in the evidence count field.
const DefaultEvidenceLimit = 50

// Rule names, in evaluation order.
const (
	RuleCurrentStateUpdated = "current_state_updated"
	RuleRepoContract        = "repo_contract"
	RuleIntentAlignment     = "intent_requires_current_state_alignment"
)

// Failure is a single drift rule violation.
type Failure struct {
	// Rule identifies which rule fired.
	Rule string `json:"rule" yaml:"rule"`
	// Message is a human-readable description of the violation.
	Message string `json:"message" yaml:"message"`
	// Evidence holds structured detail supporting the failure.
	Evidence map[string]any `json:"evidence" yaml:"evidence"`
}

// Rule is a pure predicate over the change set and contract validation.
// It returns nil when satisfied, or exactly one Failure.
type Rule func(changed []string, vr *contract.ValidationResult, evidenceLimit int) *Failure

// rules returns the fixed, ordered rule set. Each rule is independent:
// one firing never suppresses another.
func rules() []Rule {
	return []Rule{
		currentStateUpdated,
		repoContract,
		intentAlignment,
	}
}

// currentStateUpdated fires when code-like files changed but the
// authoritative state document did not.
func currentStateUpdated(changed []string, vr *contract.ValidationResult, evidenceLimit int) *Failure {
	code := codePaths(changed)
	if len(code) == 0 || contains(changed, vr.Authoritative) {
		return nil
	}

	truncated := code
	if len(truncated) > evidenceLimit {
		truncated = truncated[:evidenceLimit]
	}
	return &Failure{
		Rule:    RuleCurrentStateUpdated,
		Message: fmt.Sprintf("Code changed but %s was not updated (drift).", vr.Authoritative),
		Evidence: map[string]any{
			"code_changed_files": truncated,
			"count":              len(code),
		},
	}
}

// repoContract fires when the repository contract is not satisfied.
func repoContract(changed []string, vr *contract.ValidationResult, evidenceLimit int) *Failure {
	if vr.OK {
		return nil
	}
	return &Failure{
		Rule:    RuleRepoContract,
		Message: "Repo contract is not satisfied (missing required files).",
		Evidence: map[string]any{
			"missing": vr.Missing,
		},
	}
}

// intentAlignment fires when the intent document changed without the
// authoritative state document. This is a soft warning: the message asks
// for verification rather than declaring a contract violation, but it
// still fails the overall check.
func intentAlignment(changed []string, vr *contract.ValidationResult, evidenceLimit int) *Failure {
	if !contains(changed, IntentPath) || contains(changed, vr.Authoritative) {
		return nil
	}
	return &Failure{
		Rule: RuleIntentAlignment,
		Message: fmt.Sprintf("%s changed but %s did not. Verify alignment (potential drift).",
			IntentPath, vr.Authoritative),
		Evidence: map[string]any{},
	}
}

func contains(paths []string, want string) bool {
	for _, p := range paths {
		if p == want {
			return true
		}
	}
	return false
}
