package drift

import (
	"github.com/matthewcove-stack/drift-guard-mcp/internal/contract"
)

// Engine evaluates the fixed rule set over a change set and a contract
// validation result.
type Engine struct {
	evidenceLimit int
	rules         []Rule
}

// NewEngine creates a rule engine. A non-positive evidenceLimit falls back
// to DefaultEvidenceLimit.
func NewEngine(evidenceLimit int) *Engine {
	if evidenceLimit <= 0 {
		evidenceLimit = DefaultEvidenceLimit
	}
	return &Engine{
		evidenceLimit: evidenceLimit,
		rules:         rules(),
	}
}

// Evaluate applies every rule in order and collects the failures.
// Rule order is fixed so that failure ordering is deterministic.
func (e *Engine) Evaluate(changed []string, vr *contract.ValidationResult) []Failure {
	failures := []Failure{}
	for _, rule := range e.rules {
		if f := rule(changed, vr, e.evidenceLimit); f != nil {
			failures = append(failures, *f)
		}
	}
	return failures
}
