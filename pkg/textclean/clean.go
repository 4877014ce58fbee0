// Package textclean normalizes raw model output before it is cached or
// rendered: instruction-format artifacts are stripped and the text is
// truncated at the first stop sequence or role marker.
package textclean

import "strings"

// roleMarkers are always treated as stop sequences regardless of
// configuration; local chat models routinely hallucinate a next turn.
var roleMarkers = []string{
	"</answer>",
	"Human:",
	"User:",
	"Assistant:",
	"<|user|>",
	"<|system|>",
	"\n\n\n",
}

// artifacts are formatting tokens some models echo back verbatim.
var artifacts = []string{"[INST]", "[/INST]", "<<SYS>>", "<</SYS>>", "<s>", "</s>"}

// Clean strips formatting artifacts from raw generated text and truncates it
// at the earliest occurrence of any stop sequence or built-in role marker.
// Pure and deterministic; cleaning happens exactly once, before a cache write.
func Clean(raw string, stops []string) string {
	text := raw
	for _, a := range artifacts {
		text = strings.ReplaceAll(text, a, "")
	}
	text = strings.TrimSpace(text)

	cut := len(text)
	for _, marker := range append(append([]string{}, stops...), roleMarkers...) {
		if marker == "" {
			continue
		}
		if i := strings.Index(text, marker); i >= 0 && i < cut {
			cut = i
		}
	}
	return strings.TrimSpace(text[:cut])
}
