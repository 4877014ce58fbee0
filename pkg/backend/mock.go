package backend

import (
	"context"
	"fmt"

	"github.com/autodoc-ai/autodoc/pkg/condense"
)

// Mock produces deterministic templated descriptions without any model
// artifact, keeping the pipeline exercisable and testable when no real
// backend is available. The entity kind and name are recovered from the
// prompt with the condensation heuristics, and the name is always echoed
// verbatim.
type Mock struct{}

// NewMock builds a Mock backend.
func NewMock() *Mock { return &Mock{} }

// Name returns the backend identifier.
func (m *Mock) Name() string { return "mock" }

// Load always succeeds; there is nothing to acquire.
func (m *Mock) Load() bool { return true }

// Generate returns a templated description derived from the prompt's kind
// and name. Never fails, never random.
func (m *Mock) Generate(_ context.Context, prompt string) (string, error) {
	kind := condense.ClassifyKind(prompt)
	name := condense.ExtractName(prompt)

	switch kind {
	case "class":
		return fmt.Sprintf(`This class provides functionality related to %s.

It encapsulates the state and behavior for one concern of the system and is
a central building block for the workflows that use it.

Key responsibilities include:
- Processing and validation of its input data
- Implementing the business rules for its domain
- Managing the information it owns on behalf of callers`, name), nil
	case "function":
		return fmt.Sprintf(`This function handles %s operations.

It performs calculations or data processing for its callers, validating its
inputs and producing a well-defined result. The implementation encodes one
unit of the system's business logic.

Typical usage:
- Called with domain values prepared by the surrounding code
- Returns a result consumed by the next processing step`, name), nil
	case "variable":
		return fmt.Sprintf(`This variable represents %s.

It stores configuration or state used by the surrounding code, reflecting a
value the rest of the module depends on.

This data point is used for:
- Supporting the module's calculations
- Keeping processing consistent across calls`, name), nil
	default:
		return fmt.Sprintf(`This %s is part of the code base under documentation.

It provides functionality named %s, grouping related definitions behind one
importable unit. The implementation follows the conventions of the
surrounding project.`, kind, name), nil
	}
}

// Close is a no-op.
func (m *Mock) Close() error { return nil }
