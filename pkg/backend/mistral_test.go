package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/autodoc-ai/autodoc/pkg/config"
)

func mistralTestServer(t *testing.T, models []string, response string, gotReq *ollamaGenerateRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			type tag struct {
				Name string `json:"name"`
			}
			var tags []tag
			for _, m := range models {
				tags = append(tags, tag{Name: m})
			}
			json.NewEncoder(w).Encode(map[string]any{"models": tags})
		case "/api/generate":
			if err := json.NewDecoder(r.Body).Decode(gotReq); err != nil {
				t.Errorf("decode request: %v", err)
			}
			json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: response})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
}

func TestMistralLoadAndGenerate(t *testing.T) {
	var gotReq ollamaGenerateRequest
	srv := mistralTestServer(t, []string{"mistral:7b-instruct"}, "A claims processor.", &gotReq)
	defer srv.Close()

	m := NewMistral(config.LLMConfig{
		Backend:       "mistral",
		Model:         "mistral:7b-instruct",
		ServerURL:     srv.URL,
		ContextLength: 4096,
		Temperature:   0.2,
		TopP:          0.9,
		MaxTokens:     256,
		GPULayers:     0,
		SystemPrompt:  "You are a technical writer.",
	})
	if !m.Load() {
		t.Fatal("expected load to succeed")
	}

	got, err := m.Generate(context.Background(), "Describe ClaimsProcessor")
	if err != nil {
		t.Fatal(err)
	}
	if got != "A claims processor." {
		t.Errorf("got %q", got)
	}

	if gotReq.Model != "mistral:7b-instruct" {
		t.Errorf("model not forwarded: %q", gotReq.Model)
	}
	if !strings.HasPrefix(gotReq.Prompt, "<s>[INST] ") || !strings.HasSuffix(gotReq.Prompt, " [/INST]") {
		t.Errorf("prompt missing mistral instruct format: %q", gotReq.Prompt)
	}
	if gotReq.Options["num_ctx"] != float64(4096) {
		t.Errorf("context length not forwarded: %v", gotReq.Options["num_ctx"])
	}
}

func TestMistralLoadMissingModel(t *testing.T) {
	var gotReq ollamaGenerateRequest
	srv := mistralTestServer(t, []string{"llama3:8b"}, "", &gotReq)
	defer srv.Close()

	m := NewMistral(config.LLMConfig{Model: "mistral:7b-instruct", ServerURL: srv.URL})
	if m.Load() {
		t.Error("expected load to fail when model tag is absent")
	}
}

func TestMistralLoadServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	m := NewMistral(config.LLMConfig{Model: "mistral:7b-instruct", ServerURL: url})
	if m.Load() {
		t.Error("expected load to fail with server down")
	}
}
