// Package extract pulls documentable entities out of source files with a
// line-oriented scan per language. It is a best-effort structural pass, not
// a parser; anything it misses simply goes undocumented.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/autodoc-ai/autodoc/pkg/models"
)

// ErrUnsupportedLanguage is returned for a file extension no extractor
// handles.
var ErrUnsupportedLanguage = errors.New("unsupported source language")

// Result holds everything extracted from one source file. The module entity
// always comes first in Entities.
type Result struct {
	Entities []models.CodeEntity
	Imports  []string
}

// Extractor scans one language's source code for documentable entities.
type Extractor interface {
	// Extract returns the entities of the given source. moduleName names
	// the module entity; the full source becomes its code snippet.
	Extract(moduleName, code string) Result
}

// ForExtension resolves a file extension (case-insensitive, leading dot) to
// the Extractor for that language.
func ForExtension(ext string) (Extractor, error) {
	switch strings.ToLower(ext) {
	case ".py":
		return Python{}, nil
	case ".java":
		return Java{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, ext)
	}
}

// File reads a source file and extracts it with the extractor matching its
// extension. The module name derives from the file's base name.
func File(path string) (Result, error) {
	ext := filepath.Ext(path)
	ex, err := ForExtension(ext)
	if err != nil {
		return Result{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read source: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), ext)
	return ex.Extract(name, string(data)), nil
}
