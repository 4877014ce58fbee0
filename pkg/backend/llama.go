package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/autodoc-ai/autodoc/pkg/config"
)

const llamaDefaultURL = "http://localhost:8080"

// Llama talks to a local llama.cpp server (llama-server) and applies Llama-2
// chat formatting around prompts.
type Llama struct {
	cfg        config.LLMConfig
	baseURL    string
	httpClient *http.Client

	mu     sync.Mutex
	loaded bool
}

// NewLlama builds a Llama backend from configuration. The model is not
// loaded until the first Load call.
func NewLlama(cfg config.LLMConfig) *Llama {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.ServerURL), "/")
	if baseURL == "" {
		baseURL = llamaDefaultURL
	}
	return &Llama{
		cfg:        cfg,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Name returns the backend identifier.
func (l *Llama) Name() string { return "llama" }

// Load verifies the model artifact exists and the local server is healthy.
func (l *Llama) Load() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loaded {
		return true
	}

	if l.cfg.Model != "" {
		if _, err := os.Stat(l.cfg.Model); err != nil {
			log.Printf("llama: model file not found: %s", l.cfg.Model)
			return false
		}
	}

	resp, err := l.httpClient.Get(l.baseURL + "/health")
	if err != nil {
		log.Printf("llama: server not reachable at %s: %v", l.baseURL, err)
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("llama: server unhealthy (%d)", resp.StatusCode)
		return false
	}

	log.Printf("llama: model ready (context length %d, batch size %d)", l.cfg.ContextLength, l.cfg.BatchSize)
	l.loaded = true
	return true
}

type llamaCompletionRequest struct {
	Prompt      string   `json:"prompt"`
	NPredict    int      `json:"n_predict"`
	Temperature float64  `json:"temperature"`
	TopP        float64  `json:"top_p"`
	Stop        []string `json:"stop,omitempty"`
}

type llamaCompletionResponse struct {
	Content string `json:"content"`
}

// Generate runs one completion against the llama.cpp server.
func (l *Llama) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(llamaCompletionRequest{
		Prompt:      l.formatPrompt(prompt),
		NPredict:    l.cfg.MaxTokens,
		Temperature: l.cfg.Temperature,
		TopP:        l.cfg.TopP,
		Stop:        l.cfg.StopSequences,
	})
	if err != nil {
		return "", &GenerationError{Backend: l.Name(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/completion", bytes.NewReader(body))
	if err != nil {
		return "", &GenerationError{Backend: l.Name(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", &GenerationError{Backend: l.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", &GenerationError{
			Backend: l.Name(),
			Err:     fmt.Errorf("completion failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(msg))),
		}
	}

	var result llamaCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &GenerationError{Backend: l.Name(), Err: fmt.Errorf("decode completion: %w", err)}
	}
	return result.Content, nil
}

// formatPrompt wraps the prompt in the Llama-2 chat template.
func (l *Llama) formatPrompt(prompt string) string {
	return fmt.Sprintf("<s>[INST] <<SYS>>\n%s\n<</SYS>>\n\n%s [/INST]\n", l.cfg.SystemPrompt, prompt)
}

// Close releases the model handle.
func (l *Llama) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = false
	return nil
}
