// Package engine orchestrates the generation pipeline: prompt construction,
// response cache lookup, context-window budgeting, and the multi-stage
// fallback ladder that keeps oversized or failing prompts from aborting a
// documentation run.
package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/autodoc-ai/autodoc/pkg/backend"
	"github.com/autodoc-ai/autodoc/pkg/cache/fscache"
	"github.com/autodoc-ai/autodoc/pkg/condense"
	"github.com/autodoc-ai/autodoc/pkg/config"
	"github.com/autodoc-ai/autodoc/pkg/models"
	"github.com/autodoc-ai/autodoc/pkg/prompt"
	"github.com/autodoc-ai/autodoc/pkg/textclean"
	"github.com/autodoc-ai/autodoc/pkg/tokens"
)

// Engine owns the backend handle for the life of the process and runs one
// entity at a time through the ladder: cache check, budget check, direct
// generation, condensation fallback, minimal fallback. At most one backend
// call per ladder stage, so the worst case is three calls per entity.
type Engine struct {
	backend backend.Backend
	mock    *backend.Mock
	prompts *prompt.Store
	cache   *fscache.Cache // nil disables caching
	cfg     config.LLMConfig
}

// New creates an Engine. cache may be nil to disable response caching.
func New(b backend.Backend, store *prompt.Store, cache *fscache.Cache, cfg config.LLMConfig) *Engine {
	return &Engine{
		backend: b,
		mock:    backend.NewMock(),
		prompts: store,
		cache:   cache,
		cfg:     cfg,
	}
}

// Generate produces a cleaned description for one entity. Cache reads are
// returned verbatim; everything freshly generated is cleaned exactly once
// and then cached under the original prompt's digest, so a later run with a
// larger context budget can overwrite a condensed answer with a fuller one.
func (e *Engine) Generate(ctx context.Context, entity models.CodeEntity) (models.GenerationResult, error) {
	p, err := e.prompts.Build(entity)
	if err != nil {
		return models.GenerationResult{}, err
	}

	if text, ok := e.cacheGet(p); ok {
		return models.GenerationResult{Text: text, Source: models.SourceCache}, nil
	}

	if !e.backend.Load() {
		log.Printf("engine: backend %s unavailable, using mock for %s %q", e.backend.Name(), entity.Kind, entity.Name)
		raw, err := e.mock.Generate(ctx, p)
		if err != nil {
			return models.GenerationResult{}, err
		}
		text := textclean.Clean(raw, e.cfg.StopSequences)
		e.cachePut(p, text)
		return models.GenerationResult{Text: text, Source: models.SourceMock}, nil
	}

	// Reserve half the context window as headroom for the response; the
	// word-count estimate is deliberately crude since exact tokenization is
	// backend-specific.
	budget := e.cfg.ContextLength / 2
	var lastErr error

	if tokens.Estimate(p) <= budget {
		raw, err := e.backend.Generate(ctx, p)
		if err == nil {
			text := textclean.Clean(raw, e.cfg.StopSequences)
			e.cachePut(p, text)
			return models.GenerationResult{Text: text, Source: e.directSource()}, nil
		}
		lastErr = err
		log.Printf("engine: direct generation failed for %s %q: %v", entity.Kind, entity.Name, err)
	} else {
		log.Printf("engine: prompt for %s %q over budget (%d words > %d), condensing", entity.Kind, entity.Name, tokens.Estimate(p), budget)
	}

	condensed := condense.Condense(p)
	raw, err := e.backend.Generate(ctx, condensed)
	if err == nil {
		text := textclean.Clean(raw, e.cfg.StopSequences)
		// Keyed by the original prompt so future lookups of the same
		// entity hit cache.
		e.cachePut(p, text)
		return models.GenerationResult{Text: text, Source: models.SourceCondensed}, nil
	}
	lastErr = err
	log.Printf("engine: condensed generation failed for %s %q: %v", entity.Kind, entity.Name, err)

	minimal := condense.MinimalPrompt(condense.ClassifyKind(p), condense.ExtractName(p))
	raw, err = e.backend.Generate(ctx, minimal)
	if err == nil {
		text := textclean.Clean(raw, e.cfg.StopSequences)
		e.cachePut(p, text)
		return models.GenerationResult{Text: text, Source: models.SourceFallback}, nil
	}
	lastErr = err

	return models.GenerationResult{}, fmt.Errorf("generate %s %q: %w", entity.Kind, entity.Name, lastErr)
}

// Prompt exposes the built prompt for an entity, mainly for token accounting
// by callers.
func (e *Engine) Prompt(entity models.CodeEntity) (string, error) {
	return e.prompts.Build(entity)
}

// Close releases the backend's model handle.
func (e *Engine) Close() error {
	return e.backend.Close()
}

// directSource tags successful first-attempt generations. When the
// configured backend is the mock variant itself, the result is mock-sourced
// even though no fallback was involved.
func (e *Engine) directSource() models.Source {
	if e.backend.Name() == "mock" {
		return models.SourceMock
	}
	return models.SourceDirect
}

func (e *Engine) cacheGet(p string) (string, bool) {
	if e.cache == nil {
		return "", false
	}
	return e.cache.Get(p)
}

func (e *Engine) cachePut(p, text string) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Put(p, text); err != nil {
		log.Printf("engine: %v", err)
	}
}
