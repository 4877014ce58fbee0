package models

import "time"

// GenerationRecord tracks one entity that went through the generation ladder.
type GenerationRecord struct {
	ID           string    `json:"id"`
	File         string    `json:"file"`
	Kind         Kind      `json:"kind"`
	Name         string    `json:"name"`
	Source       Source    `json:"source"`
	PromptTokens int       `json:"prompt_tokens"`
	OutputTokens int       `json:"output_tokens"`
	LatencyMs    int64     `json:"latency_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// GenerationSummary aggregates generation records by result source.
type GenerationSummary struct {
	Source       Source  `json:"source"`
	Count        int64   `json:"count"`
	PromptTokens int64   `json:"prompt_tokens"`
	OutputTokens int64   `json:"output_tokens"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}
