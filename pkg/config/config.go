package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all autodoc configuration.
type Config struct {
	ProjectName    string      `yaml:"project_name"`
	InputDir       string      `yaml:"input_dir"`
	OutputDir      string      `yaml:"output_dir"`
	OutputFormat   string      `yaml:"output_format"`
	FileExtensions []string    `yaml:"file_extensions"`
	TemplatesPath  string      `yaml:"prompt_templates"`
	DBPath         string      `yaml:"db_path"`
	GenerateIndex  bool        `yaml:"generate_index"`
	LLM            LLMConfig   `yaml:"llm"`
	Cache          CacheConfig `yaml:"cache"`
}

// LLMConfig controls the generation backend and sampling parameters.
type LLMConfig struct {
	Backend       string   `yaml:"backend"`
	Model         string   `yaml:"model"`
	ServerURL     string   `yaml:"server_url"`
	ContextLength int      `yaml:"context_length"`
	Temperature   float64  `yaml:"temperature"`
	TopP          float64  `yaml:"top_p"`
	MaxTokens     int      `yaml:"max_tokens"`
	BatchSize     int      `yaml:"batch_size"`
	GPULayers     int      `yaml:"gpu_layers"`
	StopSequences []string `yaml:"stop_sequences"`
	SystemPrompt  string   `yaml:"system_prompt"`
}

// CacheConfig controls the response cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		ProjectName:    "Code Documentation",
		InputDir:       "data/input",
		OutputDir:      "data/output",
		OutputFormat:   "markdown",
		FileExtensions: []string{".py", ".java"},
		DBPath:         "autodoc.db",
		GenerateIndex:  true,
		LLM: LLMConfig{
			Backend:       "mock",
			ContextLength: 4096,
			Temperature:   0.2,
			TopP:          0.9,
			MaxTokens:     1024,
			BatchSize:     512,
			GPULayers:     -1,
			StopSequences: []string{"</answer>", "Human:", "User:"},
			SystemPrompt:  "You are an expert technical writer specializing in code documentation.",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "cache",
		},
	}
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks sampling parameter ranges and required fields.
func (c *Config) Validate() error {
	l := c.LLM
	if l.ContextLength <= 0 {
		return fmt.Errorf("config: context_length must be positive, got %d", l.ContextLength)
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("config: max_tokens must be positive, got %d", l.MaxTokens)
	}
	if l.Temperature < 0 || l.Temperature > 2 {
		return fmt.Errorf("config: temperature must be in [0,2], got %g", l.Temperature)
	}
	if l.TopP < 0 || l.TopP > 1 {
		return fmt.Errorf("config: top_p must be in [0,1], got %g", l.TopP)
	}
	return nil
}
