package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Markdown renders one .md file per documented source file plus an index.
type Markdown struct {
	outDir string
}

// NewMarkdown creates a Markdown renderer writing under outDir.
func NewMarkdown(outDir string) *Markdown {
	return &Markdown{outDir: outDir}
}

// RenderFile writes the documentation for one source file.
func (m *Markdown) RenderFile(doc FileDoc) (string, error) {
	outPath := outputPath(m.outDir, doc.Path, ".md")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	body := m.fileBody(doc)
	if err := os.WriteFile(outPath, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write doc: %w", err)
	}
	return outPath, nil
}

// RenderIndex writes the project index.
func (m *Markdown) RenderIndex(projectName string, files []string) (string, error) {
	outPath := filepath.Join(m.outDir, "index.md")
	if err := os.MkdirAll(m.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", projectName)
	fmt.Fprintf(&b, "Generated on %s.\n\n## Files\n\n", time.Now().Format("2006-01-02"))
	for _, f := range files {
		link := strings.TrimSuffix(f, filepath.Ext(f)) + ".md"
		fmt.Fprintf(&b, "- [%s](%s)\n", f, filepath.ToSlash(link))
	}

	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write index: %w", err)
	}
	return outPath, nil
}

func (m *Markdown) fileBody(doc FileDoc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Module.Entity.Name)
	fmt.Fprintf(&b, "Source: `%s`\n\n", doc.Path)

	if doc.Module.Doc != "" {
		b.WriteString("## Overview\n\n")
		b.WriteString(doc.Module.Doc)
		b.WriteString("\n\n")
	}

	if len(doc.Imports) > 0 {
		b.WriteString("## Imports\n\n")
		for _, imp := range doc.Imports {
			fmt.Fprintf(&b, "- `%s`\n", imp)
		}
		b.WriteString("\n")
	}

	lang := fenceLang(doc.Path)
	writeSection(&b, "Classes", doc.Classes, lang)
	writeSection(&b, "Functions", doc.Functions, lang)
	writeSection(&b, "Variables", doc.Variables, lang)

	return b.String()
}

func writeSection(b *strings.Builder, title string, docs []EntityDoc, lang string) {
	if len(docs) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, d := range docs {
		fmt.Fprintf(b, "### %s\n\n", d.Entity.Name)
		if d.Doc != "" {
			b.WriteString(d.Doc)
			b.WriteString("\n\n")
		}
		if d.Entity.Code != "" {
			fmt.Fprintf(b, "```%s\n%s\n```\n\n", lang, strings.TrimRight(d.Entity.Code, "\n"))
		}
	}
}

// fenceLang maps a source path's extension to a code-fence language hint.
func fenceLang(srcPath string) string {
	switch strings.ToLower(filepath.Ext(srcPath)) {
	case ".py":
		return "python"
	case ".java":
		return "java"
	default:
		return ""
	}
}

// outputPath mirrors the source path under outDir with a new extension.
func outputPath(outDir, srcPath, ext string) string {
	rel := strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + ext
	return filepath.Join(outDir, rel)
}
