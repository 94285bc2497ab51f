package drift

import (
	"fmt"
	"testing"

	"github.com/matthewcove-stack/drift-guard-mcp/internal/contract"
)

func okValidation() *contract.ValidationResult {
	return &contract.ValidationResult{
		OK:            true,
		Missing:       []string{},
		RequiredFiles: contract.Default().RequiredFiles,
		Authoritative: "docs/current_state.md",
	}
}

func TestIsCodePath(t *testing.T) {
	tests := []struct {
		path string
		code bool
	}{
		{"main.go", true},
		{"internal/drift/engine.go", true},
		{"Makefile", true},
		{"scripts/build.sh", true},
		{"docs/current_state.md", false},
		{"docs/anything.go", false},
		{"README.md", false},
		{"notes.txt", false},
		{"manual.rst", false},
		{"src/docs.go", true},
		{"mydocs/file.go", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsCodePath(tt.path); got != tt.code {
				t.Errorf("IsCodePath(%q) = %t, want %t", tt.path, got, tt.code)
			}
		})
	}
}

func TestCurrentStateRuleFiresOnCodeChangeWithoutStateUpdate(t *testing.T) {
	engine := NewEngine(DefaultEvidenceLimit)

	failures := engine.Evaluate([]string{"main.go", "README.md"}, okValidation())

	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d: %v", len(failures), failures)
	}
	if failures[0].Rule != RuleCurrentStateUpdated {
		t.Errorf("rule = %q, want %q", failures[0].Rule, RuleCurrentStateUpdated)
	}
	if count := failures[0].Evidence["count"]; count != 1 {
		t.Errorf("evidence count = %v, want 1", count)
	}
}

func TestCurrentStateRuleQuietWhenStateChanged(t *testing.T) {
	engine := NewEngine(DefaultEvidenceLimit)

	failures := engine.Evaluate([]string{"main.go", "docs/current_state.md"}, okValidation())

	if len(failures) != 0 {
		t.Errorf("expected no failures, got %v", failures)
	}
}

func TestCurrentStateRuleQuietWhenOnlyDocsChanged(t *testing.T) {
	engine := NewEngine(DefaultEvidenceLimit)

	failures := engine.Evaluate([]string{"README.md", "docs/phases.md"}, okValidation())

	if len(failures) != 0 {
		t.Errorf("expected no failures for doc-only change set, got %v", failures)
	}
}

func TestEvidenceTruncation(t *testing.T) {
	engine := NewEngine(DefaultEvidenceLimit)

	changed := make([]string, 75)
	for i := range changed {
		changed[i] = fmt.Sprintf("pkg/file%02d.go", i)
	}

	failures := engine.Evaluate(changed, okValidation())

	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}
	evidence := failures[0].Evidence
	if count := evidence["count"]; count != 75 {
		t.Errorf("count = %v, want 75 (true total preserved)", count)
	}
	files, ok := evidence["code_changed_files"].([]string)
	if !ok {
		t.Fatalf("code_changed_files has unexpected type %T", evidence["code_changed_files"])
	}
	if len(files) != 50 {
		t.Errorf("evidence lists %d files, want 50", len(files))
	}
	if files[0] != changed[0] {
		t.Errorf("evidence should keep the first paths, got %q first", files[0])
	}
}

func TestContractRuleFiresIndependently(t *testing.T) {
	engine := NewEngine(DefaultEvidenceLimit)

	vr := &contract.ValidationResult{
		OK:            false,
		Missing:       []string{"docs/intent.md"},
		RequiredFiles: contract.Default().RequiredFiles,
		Authoritative: "docs/current_state.md",
	}

	// Code change without state update AND broken contract: both rules
	// fire, in fixed order.
	failures := engine.Evaluate([]string{"main.go"}, vr)

	if len(failures) != 2 {
		t.Fatalf("expected 2 failures, got %d: %v", len(failures), failures)
	}
	if failures[0].Rule != RuleCurrentStateUpdated {
		t.Errorf("first rule = %q, want %q", failures[0].Rule, RuleCurrentStateUpdated)
	}
	if failures[1].Rule != RuleRepoContract {
		t.Errorf("second rule = %q, want %q", failures[1].Rule, RuleRepoContract)
	}
}

func TestContractRuleWithEmptyChangeSet(t *testing.T) {
	engine := NewEngine(DefaultEvidenceLimit)

	vr := &contract.ValidationResult{
		OK:            false,
		Missing:       []string{"AGENTS.md"},
		Authoritative: "docs/current_state.md",
	}

	failures := engine.Evaluate([]string{}, vr)

	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}
	if failures[0].Rule != RuleRepoContract {
		t.Errorf("rule = %q, want %q", failures[0].Rule, RuleRepoContract)
	}
}

func TestIntentAlignmentRule(t *testing.T) {
	engine := NewEngine(DefaultEvidenceLimit)

	tests := []struct {
		name    string
		changed []string
		fires   bool
	}{
		{"intent without state", []string{"docs/intent.md"}, true},
		{"intent with state", []string{"docs/intent.md", "docs/current_state.md"}, false},
		{"no intent", []string{"docs/phases.md"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failures := engine.Evaluate(tt.changed, okValidation())

			fired := false
			for _, f := range failures {
				if f.Rule == RuleIntentAlignment {
					fired = true
				}
			}
			if fired != tt.fires {
				t.Errorf("intent rule fired=%t, want %t (failures: %v)", fired, tt.fires, failures)
			}
		})
	}
}

func TestEvaluateEmptyIsClean(t *testing.T) {
	engine := NewEngine(DefaultEvidenceLimit)

	failures := engine.Evaluate([]string{}, okValidation())

	if len(failures) != 0 {
		t.Errorf("expected no failures, got %v", failures)
	}
	if failures == nil {
		t.Error("failures should be an empty slice, not nil")
	}
}
