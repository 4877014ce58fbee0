// Package condense shrinks an oversized prompt to a representative subset
// that fits a model's input budget. All functions are pure, best-effort
// heuristics over raw prompt text; they classify and extract, they do not
// guarantee.
package condense

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	codeBlockRE  = regexp.MustCompile("```(?:[a-zA-Z0-9]+)?[ \t]*\n?([\\s\\S]*?)```")
	nameLineRE   = regexp.MustCompile(`(?i)name:?\s*([^\n\r]+)`)
	kindHeaderRE = regexp.MustCompile(`(?i)(?:class|function|variable|module)\s*:?\s+([A-Za-z_][\w]*)`)
	classRE      = regexp.MustCompile(`class\s+(\w+)`)
	defRE        = regexp.MustCompile(`def\s+(\w+)`)
	funcRE       = regexp.MustCompile(`func\s+(\w+)`)
)

// ExtractCodeBlocks returns the contents of all fenced code blocks in text,
// trimmed, in order of appearance.
func ExtractCodeBlocks(text string) []string {
	matches := codeBlockRE.FindAllStringSubmatch(text, -1)
	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, strings.TrimSpace(m[1]))
	}
	return blocks
}

// ExtractName scans prompt text for the documented entity's name: an
// explicit "name:" line first, then a "<kind>: <name>" prompt header, then
// class/function definitions, falling back to the classified kind when
// nothing matches.
func ExtractName(text string) string {
	if m := nameLineRE.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := kindHeaderRE.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := classRE.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := defRE.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := funcRE.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ClassifyKind(text)
}

// ClassifyKind infers the entity kind from keyword presence in prompt text.
// Precedence is class > function > variable > module > code; ambiguous
// snippets mentioning several keywords resolve to the first match.
func ClassifyKind(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "class"):
		return "class"
	case strings.Contains(lower, "function") || strings.Contains(lower, "def "):
		return "function"
	case strings.Contains(lower, "variable"):
		return "variable"
	case strings.Contains(lower, "module"):
		return "module"
	default:
		return "code"
	}
}

// Condense re-assembles an oversized prompt into a minimal one: the first
// fenced code block (or the whole prompt when none is found) plus the
// classified kind and extracted name, with a short fixed instruction suffix.
func Condense(prompt string) string {
	kind := ClassifyKind(prompt)
	name := ExtractName(prompt)
	blocks := ExtractCodeBlocks(prompt)

	code := prompt
	if len(blocks) > 0 {
		code = blocks[0]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate documentation for this %s: %s\n\n", kind, name)
	fmt.Fprintf(&b, "Here's the essential part of the code:\n\n```\n%s\n```\n\n", code)
	b.WriteString("Provide a concise explanation.")
	return b.String()
}

// MinimalPrompt builds the smallest possible prompt for the last rung of the
// fallback ladder.
func MinimalPrompt(kind, name string) string {
	return fmt.Sprintf("Briefly describe a %s named %s.", kind, name)
}
