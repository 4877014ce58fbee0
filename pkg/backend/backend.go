// Package backend wraps locally-hosted text-generation models behind a
// single interface. A backend owns its model handle: Load acquires it
// lazily and idempotently, Generate blocks for the duration of inference,
// and Close releases it at process teardown.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/autodoc-ai/autodoc/pkg/config"
)

// ErrUnsupportedBackend is returned by New for an unrecognized backend type.
var ErrUnsupportedBackend = errors.New("unsupported backend type")

// GenerationError wraps a backend-internal inference failure, including
// context-overflow signals. The engine recovers from it via the fallback
// ladder.
type GenerationError struct {
	Backend string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation: %v", e.Backend, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Backend is a local text-generation model wrapper.
type Backend interface {
	// Name identifies the backend variant.
	Name() string
	// Load acquires the model resource. Idempotent; repeated calls when
	// already loaded are no-ops returning true. Returns false, never an
	// error, when the model artifact or runtime is unavailable — callers
	// must treat false as "use mock".
	Load() bool
	// Generate runs one synchronous inference over the prompt, applying the
	// backend's chat formatting. Failures are reported as *GenerationError.
	Generate(ctx context.Context, prompt string) (string, error)
	// Close releases the model handle.
	Close() error
}

// defaultTimeout bounds a single HTTP exchange with a local model server.
// Inference on CPU can be slow; this is a hang guard, not an SLO.
const defaultTimeout = 10 * time.Minute

// New resolves the configured backend type (case-insensitive) to a concrete
// Backend. An unrecognized value fails before any generation is attempted.
func New(cfg config.LLMConfig) (Backend, error) {
	switch strings.ToLower(cfg.Backend) {
	case "llama":
		return NewLlama(cfg), nil
	case "mistral":
		return NewMistral(cfg), nil
	case "mock":
		return NewMock(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, cfg.Backend)
	}
}
