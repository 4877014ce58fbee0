package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
)

// HTML renders the same document structure as Markdown, converted to HTML
// pages with goldmark.
type HTML struct {
	outDir string
	md     *Markdown
}

// NewHTML creates an HTML renderer writing under outDir.
func NewHTML(outDir string) *HTML {
	return &HTML{outDir: outDir, md: NewMarkdown(outDir)}
}

// RenderFile writes the documentation for one source file as an HTML page.
func (h *HTML) RenderFile(doc FileDoc) (string, error) {
	outPath := outputPath(h.outDir, doc.Path, ".html")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	body, err := h.convert(h.md.fileBody(doc))
	if err != nil {
		return "", err
	}
	page := h.page(doc.Module.Entity.Name, body)
	if err := os.WriteFile(outPath, []byte(page), 0o644); err != nil {
		return "", fmt.Errorf("write doc: %w", err)
	}
	return outPath, nil
}

// RenderIndex writes the project index as an HTML page.
func (h *HTML) RenderIndex(projectName string, files []string) (string, error) {
	outPath := filepath.Join(h.outDir, "index.html")
	if err := os.MkdirAll(h.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n## Files\n\n", projectName)
	for _, f := range files {
		link := strings.TrimSuffix(f, filepath.Ext(f)) + ".html"
		fmt.Fprintf(&md, "- [%s](%s)\n", f, filepath.ToSlash(link))
	}

	body, err := h.convert(md.String())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(outPath, []byte(h.page(projectName, body)), 0o644); err != nil {
		return "", fmt.Errorf("write index: %w", err)
	}
	return outPath, nil
}

func (h *HTML) convert(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

func (h *HTML) page(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; }
code { font-family: monospace; }
</style>
</head>
<body>
%s</body>
</html>
`, title, body)
}
