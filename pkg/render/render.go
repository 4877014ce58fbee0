// Package render writes generated documentation to disk as Markdown or HTML.
package render

import (
	"fmt"
	"strings"

	"github.com/autodoc-ai/autodoc/pkg/models"
)

// EntityDoc pairs an extracted entity with its generated description.
type EntityDoc struct {
	Entity models.CodeEntity
	Doc    string
	Source models.Source
}

// FileDoc holds everything generated for one source file.
type FileDoc struct {
	// Path is the source file path relative to the input directory.
	Path      string
	Imports   []string
	Module    EntityDoc
	Classes   []EntityDoc
	Functions []EntityDoc
	Variables []EntityDoc
}

// Renderer writes documentation files for one output format.
type Renderer interface {
	// RenderFile writes the documentation for one source file and returns
	// the output path.
	RenderFile(doc FileDoc) (string, error)
	// RenderIndex writes a project index linking the documented files.
	RenderIndex(projectName string, files []string) (string, error)
}

// New resolves an output format name (case-insensitive) to a Renderer.
func New(format, outDir string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "markdown":
		return NewMarkdown(outDir), nil
	case "html":
		return NewHTML(outDir), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %q", format)
	}
}
