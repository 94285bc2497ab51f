// Package drift detects drift between source changes and process documentation.
//
// Drift is the state where code-like files changed without the corresponding
// update to the authoritative state document. Detection is deliberately
// syntactic: rules look only at changed paths and contract validation, never
// at file contents.
package drift

import "strings"

// docExtensions are treated as documentation regardless of location.
var docExtensions = []string{".md", ".txt", ".rst"}

// IsCodePath classifies a changed path. Anything under docs/ or carrying a
// documentation extension is not code-like; everything else is.
func IsCodePath(path string) bool {
	if strings.HasPrefix(path, "docs/") {
		return false
	}
	for _, ext := range docExtensions {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}
	return true
}

// codePaths filters the change set down to code-like paths, preserving order.
func codePaths(changed []string) []string {
	var code []string
	for _, p := range changed {
		if IsCodePath(p) {
			code = append(code, p)
		}
	}
	return code
}
