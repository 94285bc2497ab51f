package contract

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()

	want := []string{
		"AGENTS.md",
		"docs/intent.md",
		"docs/current_state.md",
		"docs/phases.md",
		"docs/phase_execution_prompt.md",
	}
	if !reflect.DeepEqual(c.RequiredFiles, want) {
		t.Errorf("default required files = %v, want %v", c.RequiredFiles, want)
	}

	if c.Authoritative != "docs/current_state.md" {
		t.Errorf("default authoritative = %q, want docs/current_state.md", c.Authoritative)
	}
}

func TestLoadMissingManifestFallsBackToDefault(t *testing.T) {
	root := t.TempDir()

	c, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !reflect.DeepEqual(c, Default()) {
		t.Errorf("expected built-in default contract, got %+v", c)
	}
}

func TestLoadOverrideReplacesWholesale(t *testing.T) {
	root := t.TempDir()
	writeContract(t, root, `{"required_files": ["README.md"], "authoritative": "README.md"}`)

	c, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(c.RequiredFiles) != 1 || c.RequiredFiles[0] != "README.md" {
		t.Errorf("expected override to replace required files, got %v", c.RequiredFiles)
	}
	if c.Authoritative != "README.md" {
		t.Errorf("authoritative = %q, want README.md", c.Authoritative)
	}
}

func TestLoadOverrideWithoutAuthoritativeUsesDefault(t *testing.T) {
	root := t.TempDir()
	writeContract(t, root, `{"required_files": ["README.md"]}`)

	c, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.Authoritative != DefaultAuthoritative {
		t.Errorf("authoritative = %q, want %q", c.Authoritative, DefaultAuthoritative)
	}
}

func TestLoadMalformedManifestIsHardFailure(t *testing.T) {
	root := t.TempDir()
	writeContract(t, root, `{"required_files": [`)

	if _, err := Load(root); err == nil {
		t.Fatal("expected parse error for malformed manifest, got nil")
	}
}

func TestValidate(t *testing.T) {
	root := t.TempDir()

	mustWriteFile(t, filepath.Join(root, "AGENTS.md"), "# agents\n")
	mustWriteFile(t, filepath.Join(root, "docs", "current_state.md"), "# state\n")

	c := &Contract{
		RequiredFiles: []string{"AGENTS.md", "docs/current_state.md", "docs/intent.md"},
		Authoritative: "docs/current_state.md",
	}

	result := Validate(root, c)

	if result.OK {
		t.Error("expected OK=false with a missing file")
	}
	if len(result.Missing) != 1 || result.Missing[0] != "docs/intent.md" {
		t.Errorf("missing = %v, want [docs/intent.md]", result.Missing)
	}
	if result.RepoRoot != root {
		t.Errorf("repo root = %q, want %q", result.RepoRoot, root)
	}
}

func TestValidateAllPresent(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "AGENTS.md"), "x")

	c := &Contract{RequiredFiles: []string{"AGENTS.md"}, Authoritative: "AGENTS.md"}
	result := Validate(root, c)

	if !result.OK {
		t.Errorf("expected OK=true, missing=%v", result.Missing)
	}
	if len(result.Missing) != 0 {
		t.Errorf("missing should be empty, got %v", result.Missing)
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "AGENTS.md"), "x")

	c := Default()
	first := Validate(root, c)
	second := Validate(root, c)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("validation is not pure: first=%+v second=%+v", first, second)
	}
}

func writeContract(t *testing.T, root, content string) {
	t.Helper()
	mustWriteFile(t, filepath.Join(root, DefaultPath), content)
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
