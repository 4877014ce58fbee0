package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/autodoc-ai/autodoc/pkg/backend"
	"github.com/autodoc-ai/autodoc/pkg/cache/fscache"
	"github.com/autodoc-ai/autodoc/pkg/config"
	"github.com/autodoc-ai/autodoc/pkg/engine"
	"github.com/autodoc-ai/autodoc/pkg/extract"
	"github.com/autodoc-ai/autodoc/pkg/models"
	"github.com/autodoc-ai/autodoc/pkg/prompt"
	"github.com/autodoc-ai/autodoc/pkg/render"
	"github.com/autodoc-ai/autodoc/pkg/tokens"
	"github.com/autodoc-ai/autodoc/pkg/tracker"
)

func newGenerateCmd() *cobra.Command {
	var (
		configPath string
		inputDir   string
		outputDir  string
		format     string
		model      string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate documentation for a source tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if inputDir != "" {
				cfg.InputDir = inputDir
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}
			if format != "" {
				cfg.OutputFormat = format
			}
			if model != "" {
				cfg.LLM.Model = model
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runGenerate(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "autodoc.yaml", "path to config file")
	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "input source directory (overrides config)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output documentation directory (overrides config)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: markdown or html (overrides config)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "model path or tag (overrides config)")
	return cmd
}

func runGenerate(ctx context.Context, cfg *config.Config) error {
	store, err := loadTemplates(cfg)
	if err != nil {
		return err
	}

	be, err := backend.New(cfg.LLM)
	if err != nil {
		return err
	}

	var cache *fscache.Cache
	if cfg.Cache.Enabled {
		cache, err = fscache.New(cfg.Cache.Dir)
		if err != nil {
			return fmt.Errorf("init cache: %w", err)
		}
	}

	tr, err := tracker.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("init tracker: %w", err)
	}
	defer func() { _ = tr.Close() }()

	renderer, err := render.New(cfg.OutputFormat, cfg.OutputDir)
	if err != nil {
		return err
	}

	eng := engine.New(be, store, cache, cfg.LLM)
	defer func() { _ = eng.Close() }()

	files, err := sourceFiles(cfg.InputDir, cfg.FileExtensions)
	if err != nil {
		return err
	}
	log.Printf("found %d source files under %s", len(files), cfg.InputDir)

	var documented []string
	for _, rel := range files {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("processing %s", rel)

		src, err := extract.File(filepath.Join(cfg.InputDir, rel))
		if err != nil {
			log.Printf("skipping %s: %v", rel, err)
			continue
		}

		doc := documentFile(ctx, eng, tr, rel, src)
		if _, err := renderer.RenderFile(doc); err != nil {
			return fmt.Errorf("render %s: %w", rel, err)
		}
		documented = append(documented, rel)
	}

	if cfg.GenerateIndex && len(documented) > 0 {
		if _, err := renderer.RenderIndex(cfg.ProjectName, documented); err != nil {
			return fmt.Errorf("render index: %w", err)
		}
	}

	log.Printf("documented %d files into %s", len(documented), cfg.OutputDir)
	return nil
}

// documentFile runs every entity of one source file through the engine. A
// failed entity yields an error marker in its place and never aborts the
// rest of the batch.
func documentFile(ctx context.Context, eng *engine.Engine, tr tracker.Tracker, rel string, src extract.Result) render.FileDoc {
	doc := render.FileDoc{Path: rel, Imports: src.Imports}

	for _, entity := range src.Entities {
		start := time.Now()
		res, err := eng.Generate(ctx, entity)
		if err != nil {
			log.Printf("generation failed for %s %q: %v", entity.Kind, entity.Name, err)
			res = models.GenerationResult{Text: fmt.Sprintf("Error generating documentation: %v", err)}
		} else {
			record(ctx, tr, eng, rel, entity, res, time.Since(start))
		}

		ed := render.EntityDoc{Entity: entity, Doc: res.Text, Source: res.Source}
		switch entity.Kind {
		case models.KindModule:
			doc.Module = ed
		case models.KindClass:
			doc.Classes = append(doc.Classes, ed)
		case models.KindFunction:
			doc.Functions = append(doc.Functions, ed)
		case models.KindVariable:
			doc.Variables = append(doc.Variables, ed)
		}
	}
	return doc
}

func record(ctx context.Context, tr tracker.Tracker, eng *engine.Engine, rel string, entity models.CodeEntity, res models.GenerationResult, latency time.Duration) {
	p, err := eng.Prompt(entity)
	if err != nil {
		return
	}
	rec := models.GenerationRecord{
		File:         rel,
		Kind:         entity.Kind,
		Name:         entity.Name,
		Source:       res.Source,
		PromptTokens: tokens.Count(p),
		OutputTokens: tokens.Count(res.Text),
		LatencyMs:    latency.Milliseconds(),
	}
	if err := tr.Record(ctx, rec); err != nil {
		log.Printf("tracker: %v", err)
	}
}

// sourceFiles returns paths relative to root for all files matching the
// configured extensions.
func sourceFiles(root string, exts []string) ([]string, error) {
	extSet := make(map[string]bool, len(exts))
	for _, e := range exts {
		extSet[strings.ToLower(e)] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !extSet[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan input dir: %w", err)
	}
	return files, nil
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func loadTemplates(cfg *config.Config) (*prompt.Store, error) {
	if cfg.TemplatesPath == "" {
		return prompt.Default(), nil
	}
	store, err := prompt.LoadStore(cfg.TemplatesPath)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return store, nil
}
