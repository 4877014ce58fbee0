package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.OutputFormat != "markdown" {
		t.Errorf("expected markdown, got %s", cfg.OutputFormat)
	}
	if cfg.LLM.ContextLength != 4096 {
		t.Errorf("expected context_length 4096, got %d", cfg.LLM.ContextLength)
	}
	if len(cfg.FileExtensions) != 2 || cfg.FileExtensions[0] != ".py" || cfg.FileExtensions[1] != ".java" {
		t.Errorf("expected default extensions .py and .java, got %v", cfg.FileExtensions)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_MODEL_DIR", "/models")

	content := `
project_name: "Insurance Docs"
input_dir: "src"
output_format: html
llm:
  backend: llama
  model: ${TEST_MODEL_DIR}/llama-2-7b-code-instruct.gguf
  server_url: "http://localhost:8080"
  context_length: 2048
  temperature: 0.3
cache:
  enabled: true
  dir: .autodoc-cache
`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.LLM.Model != "/models/llama-2-7b-code-instruct.gguf" {
		t.Errorf("env var not expanded: got %s", cfg.LLM.Model)
	}
	if cfg.LLM.ContextLength != 2048 {
		t.Errorf("expected context_length 2048, got %d", cfg.LLM.ContextLength)
	}
	if cfg.LLM.TopP != 0.9 {
		t.Errorf("expected default top_p to survive partial llm block, got %g", cfg.LLM.TopP)
	}
	if cfg.Cache.Dir != ".autodoc-cache" {
		t.Errorf("expected .autodoc-cache, got %s", cfg.Cache.Dir)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidateRanges(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero context", func(c *Config) { c.LLM.ContextLength = 0 }},
		{"zero max tokens", func(c *Config) { c.LLM.MaxTokens = 0 }},
		{"temperature too high", func(c *Config) { c.LLM.Temperature = 2.5 }},
		{"negative temperature", func(c *Config) { c.LLM.Temperature = -0.1 }},
		{"top_p too high", func(c *Config) { c.LLM.TopP = 1.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
