package extract

import (
	"regexp"
	"strings"

	"github.com/autodoc-ai/autodoc/pkg/models"
)

var (
	classDefRE   = regexp.MustCompile(`^class\s+(\w+)`)
	funcDefRE    = regexp.MustCompile(`^def\s+(\w+)`)
	assignRE     = regexp.MustCompile(`^(\w+)\s*=\s*\S`)
	importRE     = regexp.MustCompile(`^import\s+(.+)`)
	fromImportRE = regexp.MustCompile(`^from\s+([\w.]+)\s+import\s+(.+)`)
)

// Python extracts the module itself, top-level classes and functions, simple
// module-level assignments, and import statements.
type Python struct{}

// Extract scans Python code line by line. Nesting is tracked through
// indentation, so methods and locals never surface as top-level entities.
func (Python) Extract(moduleName, code string) Result {
	res := Result{Entities: []models.CodeEntity{{
		Kind: models.KindModule,
		Name: moduleName,
		Code: code,
	}}}

	lines := strings.Split(code, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if m := fromImportRE.FindStringSubmatch(line); m != nil {
			for _, name := range splitImportNames(m[2]) {
				res.Imports = append(res.Imports, "from "+m[1]+" import "+name)
			}
			continue
		}
		if m := importRE.FindStringSubmatch(line); m != nil {
			for _, name := range splitImportNames(m[1]) {
				res.Imports = append(res.Imports, "import "+name)
			}
			continue
		}

		if m := classDefRE.FindStringSubmatch(line); m != nil {
			end := blockEnd(lines, i)
			res.Entities = append(res.Entities, models.CodeEntity{
				Kind:    models.KindClass,
				Name:    m[1],
				Code:    strings.Join(lines[i:end], "\n"),
				Context: precedingComments(lines, i),
			})
			i = end - 1
			continue
		}

		if m := funcDefRE.FindStringSubmatch(line); m != nil {
			end := blockEnd(lines, i)
			res.Entities = append(res.Entities, models.CodeEntity{
				Kind:    models.KindFunction,
				Name:    m[1],
				Code:    strings.Join(lines[i:end], "\n"),
				Context: precedingComments(lines, i),
			})
			i = end - 1
			continue
		}

		if m := assignRE.FindStringSubmatch(line); m != nil {
			res.Entities = append(res.Entities, models.CodeEntity{
				Kind:    models.KindVariable,
				Name:    m[1],
				Code:    strings.TrimRight(line, " \t"),
				Context: precedingComments(lines, i),
			})
		}
	}
	return res
}

// splitImportNames expands a comma-separated import list, keeping any
// "as alias" suffix with its name.
func splitImportNames(list string) []string {
	var names []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}

// blockEnd returns the exclusive end index of the indented block starting at
// the top-level definition on line start.
func blockEnd(lines []string, start int) int {
	i := start + 1
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			i++
			continue
		}
		// A non-indented, non-blank line ends the block.
		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			break
		}
		i++
	}
	// Trim trailing blank lines back off the block.
	for i > start+1 && strings.TrimSpace(lines[i-1]) == "" {
		i--
	}
	return i
}

// precedingComments collects the contiguous comment lines directly above a
// definition as its enclosing context.
func precedingComments(lines []string, start int) string {
	var comments []string
	for i := start - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, "#") {
			break
		}
		comments = append([]string{trimmed}, comments...)
	}
	return strings.Join(comments, "\n")
}
