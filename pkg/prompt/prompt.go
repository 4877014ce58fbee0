package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/autodoc-ai/autodoc/pkg/models"
)

// ErrNoTemplate is returned when an entity kind has no registered template.
var ErrNoTemplate = errors.New("no template registered for kind")

// allowed placeholder tokens inside a template.
var placeholders = map[string]bool{
	"{name}":    true,
	"{code}":    true,
	"{context}": true,
}

// Store holds one prompt template per entity kind, immutable after creation.
type Store struct {
	templates map[models.Kind]string
}

// NewStore builds a Store from a kind-to-template mapping. Every template may
// only contain the placeholders {name}, {code} and {context}; any other
// braced token is rejected.
func NewStore(templates map[string]string) (*Store, error) {
	s := &Store{templates: make(map[models.Kind]string, len(templates))}
	for kind, tmpl := range templates {
		if err := validate(tmpl); err != nil {
			return nil, fmt.Errorf("template %q: %w", kind, err)
		}
		s.templates[models.Kind(kind)] = tmpl
	}
	return s, nil
}

// LoadStore reads a YAML file mapping kind names to template strings.
func LoadStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	var templates map[string]string
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return NewStore(templates)
}

// Default returns the built-in templates for all four entity kinds.
func Default() *Store {
	s, err := NewStore(map[string]string{
		"module":   "Generate documentation for this module:\n\nCode:\n```python\n{code}\n```\n\nProvide a comprehensive explanation of this module's purpose.",
		"class":    "Generate documentation for this class: {name}\n\nCode:\n```python\n{code}\n```\n\nProvide a comprehensive explanation of this class's purpose.",
		"function": "Generate documentation for this function: {name}\n\nCode:\n```python\n{code}\n```\n\nProvide a comprehensive explanation with parameters and return values.",
		"variable": "Generate documentation for this variable: {name}\n\nCode:\n```python\n{code}\n```\n\nExplain the purpose and usage.",
	})
	if err != nil {
		panic(err) // built-in templates are known valid
	}
	return s
}

// Templates returns the underlying kind-to-template mapping.
func (s *Store) Templates() map[string]string {
	out := make(map[string]string, len(s.templates))
	for k, v := range s.templates {
		out[string(k)] = v
	}
	return out
}

// Build fills the template for the entity's kind with its name, code and
// enclosing context. The returned string is the exact unit hashed by the
// response cache, so substitution is byte-for-byte deterministic.
func (s *Store) Build(e models.CodeEntity) (string, error) {
	tmpl, ok := s.templates[e.Kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoTemplate, e.Kind)
	}
	r := strings.NewReplacer(
		"{name}", e.Name,
		"{code}", e.Code,
		"{context}", e.Context,
	)
	return r.Replace(tmpl), nil
}

// validate rejects braced tokens other than the three known placeholders.
func validate(tmpl string) error {
	rest := tmpl
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			return nil
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return fmt.Errorf("unbalanced brace at %q", rest[open:])
		}
		token := rest[open : open+end+1]
		if !placeholders[token] {
			return fmt.Errorf("unknown placeholder %s", token)
		}
		rest = rest[open+end+1:]
	}
}
