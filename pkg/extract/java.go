package extract

import (
	"regexp"
	"strings"

	"github.com/autodoc-ai/autodoc/pkg/models"
)

var (
	javaPackageRE = regexp.MustCompile(`^package\s+([\w.]+)\s*;`)
	javaImportRE  = regexp.MustCompile(`^import\s+(static\s+)?([\w.]+(?:\.\*)?)\s*;`)
	javaClassRE   = regexp.MustCompile(`^(?:(?:public|protected|private|abstract|final|static)\s+)*class\s+(\w+)`)
	javaMethodRE  = regexp.MustCompile(`^(?:(?:public|protected|private|abstract|final|static|synchronized)\s+)+[\w<>\[\], ]+\s+(\w+)\s*\(`)
	javaFieldRE   = regexp.MustCompile(`^(?:(?:public|protected|private|final|static)\s+)+[\w<>\[\],. ]+\s+(\w+)\s*(?:=|;)`)
)

// Java extracts the compilation unit itself, top-level classes, and each
// class's methods and fields. Members carry class-qualified names; a Javadoc
// block or run of line comments directly above a declaration becomes the
// entity's context.
type Java struct{}

// Extract scans Java code line by line, tracking nesting by brace depth.
func (Java) Extract(moduleName, code string) Result {
	module := models.CodeEntity{
		Kind: models.KindModule,
		Name: moduleName,
		Code: code,
	}
	res := Result{}

	lines := strings.Split(code, "\n")
	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])

		if m := javaPackageRE.FindStringSubmatch(trimmed); m != nil {
			module.Context = "package " + m[1]
			continue
		}
		if m := javaImportRE.FindStringSubmatch(trimmed); m != nil {
			stmt := "import "
			if m[1] != "" {
				stmt += "static "
			}
			res.Imports = append(res.Imports, stmt+m[2])
			continue
		}

		if m := javaClassRE.FindStringSubmatch(trimmed); m != nil {
			end := braceBlockEnd(lines, i)
			body := lines[i:end]
			res.Entities = append(res.Entities, models.CodeEntity{
				Kind:    models.KindClass,
				Name:    m[1],
				Code:    strings.Join(body, "\n"),
				Context: precedingJavadoc(lines, i),
			})
			res.Entities = append(res.Entities, classMembers(m[1], body)...)
			i = end - 1
		}
	}

	res.Entities = append([]models.CodeEntity{module}, res.Entities...)
	return res
}

// classMembers extracts the methods and fields declared directly inside a
// class body. Member names are qualified with the class name.
func classMembers(className string, body []string) []models.CodeEntity {
	var members []models.CodeEntity
	depth := 0
	for i := 0; i < len(body); i++ {
		trimmed := strings.TrimSpace(body[i])

		if depth == 1 && !isJavaComment(trimmed) {
			if m := javaMethodRE.FindStringSubmatch(trimmed); m != nil {
				end := i + 1
				if !strings.HasSuffix(trimmed, ";") {
					end = braceBlockEnd(body, i)
				}
				members = append(members, models.CodeEntity{
					Kind:    models.KindFunction,
					Name:    className + "." + m[1],
					Code:    strings.Join(body[i:end], "\n"),
					Context: precedingJavadoc(body, i),
				})
				i = end - 1
				continue
			}
			if m := javaFieldRE.FindStringSubmatch(trimmed); m != nil {
				members = append(members, models.CodeEntity{
					Kind:    models.KindVariable,
					Name:    className + "." + m[1],
					Code:    trimmed,
					Context: precedingJavadoc(body, i),
				})
			}
		}

		depth += strings.Count(body[i], "{") - strings.Count(body[i], "}")
	}
	return members
}

func isJavaComment(trimmed string) bool {
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*")
}

// braceBlockEnd returns the exclusive end index of the brace-delimited block
// whose opening brace sits on or after line start. Braces inside strings or
// comments are not recognized; the scan is structural, like the rest of the
// package.
func braceBlockEnd(lines []string, start int) int {
	depth := 0
	opened := false
	for i := start; i < len(lines); i++ {
		depth += strings.Count(lines[i], "{") - strings.Count(lines[i], "}")
		if strings.Contains(lines[i], "{") {
			opened = true
		}
		if opened && depth <= 0 {
			return i + 1
		}
	}
	return len(lines)
}

// precedingJavadoc collects the Javadoc block, or failing that the
// contiguous line comments, directly above a declaration. Annotation lines
// between the comment and the declaration are skipped.
func precedingJavadoc(lines []string, start int) string {
	i := start - 1
	for i >= 0 && strings.HasPrefix(strings.TrimSpace(lines[i]), "@") {
		i--
	}
	if i < 0 {
		return ""
	}

	if strings.HasSuffix(strings.TrimSpace(lines[i]), "*/") {
		var block []string
		for ; i >= 0; i-- {
			t := strings.TrimSpace(lines[i])
			block = append([]string{t}, block...)
			if strings.HasPrefix(t, "/*") {
				break
			}
		}
		var parts []string
		for _, t := range block {
			t = strings.TrimPrefix(t, "/**")
			t = strings.TrimPrefix(t, "/*")
			t = strings.TrimSuffix(t, "*/")
			t = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "*"))
			if t != "" {
				parts = append(parts, t)
			}
		}
		return strings.Join(parts, "\n")
	}

	var comments []string
	for ; i >= 0; i-- {
		t := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(t, "//") {
			break
		}
		comments = append([]string{t}, comments...)
	}
	return strings.Join(comments, "\n")
}
