package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/autodoc-ai/autodoc/pkg/config"
)

const mistralDefaultURL = "http://localhost:11434"

// Mistral runs Mistral-family models through a local Ollama instance,
// applying the Mistral instruct format around prompts.
type Mistral struct {
	cfg        config.LLMConfig
	baseURL    string
	httpClient *http.Client

	mu     sync.Mutex
	loaded bool
}

// NewMistral builds a Mistral backend from configuration. cfg.Model is the
// Ollama model tag (e.g. "mistral:7b-instruct").
func NewMistral(cfg config.LLMConfig) *Mistral {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.ServerURL), "/")
	if baseURL == "" {
		baseURL = mistralDefaultURL
	}
	return &Mistral{
		cfg:        cfg,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Name returns the backend identifier.
func (m *Mistral) Name() string { return "mistral" }

// Load verifies the Ollama server is reachable and the configured model tag
// is present. A missing tag is the local equivalent of a missing model
// artifact: Load reports false and the caller falls back to mock.
func (m *Mistral) Load() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loaded {
		return true
	}

	resp, err := m.httpClient.Get(m.baseURL + "/api/tags")
	if err != nil {
		log.Printf("mistral: ollama not reachable at %s: %v", m.baseURL, err)
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("mistral: ollama tags failed (%d)", resp.StatusCode)
		return false
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		log.Printf("mistral: decode tags: %v", err)
		return false
	}

	found := false
	for _, md := range tags.Models {
		if md.Name == m.cfg.Model || strings.TrimSuffix(md.Name, ":latest") == m.cfg.Model {
			found = true
			break
		}
	}
	if !found {
		log.Printf("mistral: model %q not available in ollama", m.cfg.Model)
		return false
	}

	log.Printf("mistral: model %s ready (context length %d)", m.cfg.Model, m.cfg.ContextLength)
	m.loaded = true
	return true
}

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Raw     bool           `json:"raw"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

// Generate runs one completion against Ollama.
func (m *Mistral) Generate(ctx context.Context, prompt string) (string, error) {
	opts := map[string]any{
		"num_predict": m.cfg.MaxTokens,
		"temperature": m.cfg.Temperature,
		"top_p":       m.cfg.TopP,
		"num_ctx":     m.cfg.ContextLength,
	}
	if m.cfg.GPULayers >= 0 {
		opts["num_gpu"] = m.cfg.GPULayers
	}
	if len(m.cfg.StopSequences) > 0 {
		opts["stop"] = m.cfg.StopSequences
	}

	body, err := json.Marshal(ollamaGenerateRequest{
		Model:   m.cfg.Model,
		Prompt:  m.formatPrompt(prompt),
		Raw:     true,
		Stream:  false,
		Options: opts,
	})
	if err != nil {
		return "", &GenerationError{Backend: m.Name(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", &GenerationError{Backend: m.Name(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", &GenerationError{Backend: m.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", &GenerationError{
			Backend: m.Name(),
			Err:     fmt.Errorf("generate failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(msg))),
		}
	}

	var result ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &GenerationError{Backend: m.Name(), Err: fmt.Errorf("decode response: %w", err)}
	}
	return result.Response, nil
}

// formatPrompt wraps the prompt in the Mistral instruct template.
func (m *Mistral) formatPrompt(prompt string) string {
	return fmt.Sprintf("<s>[INST] %s\n\n%s [/INST]", m.cfg.SystemPrompt, prompt)
}

// Close releases the model handle.
func (m *Mistral) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded = false
	return nil
}
