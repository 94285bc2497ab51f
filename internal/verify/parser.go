// Package verify extracts and executes a project's self-declared
// verification commands.
//
// Commands live in a conventional "## Verification Commands" section of the
// project's control document (AGENTS.md by default), declared as bullet
// lines or inside fenced code blocks.
package verify

import (
	"os"
	"regexp"
	"strings"
)

// DefaultControlDoc is the project-relative document scanned for commands.
const DefaultControlDoc = "AGENTS.md"

var (
	sectionRe = regexp.MustCompile(`(?m)^##\s+Verification Commands\s*$`)
	// stopRe marks the end of the section at the next level-2 heading.
	// It matches anywhere, including inside fenced code: a known limitation
	// of the line-oriented grammar, kept for reproducibility.
	stopRe  = regexp.MustCompile(`(?m)^##\s`)
	fenceRe = regexp.MustCompile("(?s)```(?:bash|sh)?\n(.*?)\n```")
)

// ExtractCommands parses the verification command list out of a control
// document. It is a narrow line-oriented grammar, not a markdown parser:
//
//   - the section starts at a "## Verification Commands" heading and ends
//     at the next "## " line or end of document;
//   - a first pass collects "- " bullet lines, a second pass collects
//     non-empty, non-comment lines inside bash/sh/untagged fences;
//   - duplicates are dropped, first occurrence wins.
//
// Bullets always precede fenced-block lines in the result because the
// passes run sequentially. Callers depend on that ordering.
func ExtractCommands(text string) []string {
	loc := sectionRe.FindStringIndex(text)
	if loc == nil {
		return []string{}
	}

	section := text[loc[1]:]
	if stop := stopRe.FindStringIndex(section); stop != nil {
		section = section[:stop[0]]
	}

	var cmds []string

	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") {
			cmds = append(cmds, strings.TrimSpace(line[2:]))
		}
	}

	for _, block := range fenceRe.FindAllStringSubmatch(section, -1) {
		for _, line := range strings.Split(block[1], "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "#") {
				cmds = append(cmds, line)
			}
		}
	}

	seen := make(map[string]struct{}, len(cmds))
	out := []string{}
	for _, c := range cmds {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// ReadCommands extracts commands from the document at path.
// A missing or unreadable document yields an empty list: "no commands
// declared" is a normal state, not an error.
func ReadCommands(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{}
	}
	return ExtractCommands(string(data))
}
