package models

// Kind classifies a documented unit of source code.
type Kind string

const (
	KindModule   Kind = "module"
	KindClass    Kind = "class"
	KindFunction Kind = "function"
	KindVariable Kind = "variable"
)

// CodeEntity is a parsed unit of source code handed to the generation
// pipeline. Produced by the extractor; read-only from here on.
type CodeEntity struct {
	Kind    Kind   `json:"kind"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Context string `json:"context,omitempty"`
}

// Source tags where a generation result came from.
type Source string

const (
	SourceCache     Source = "cache"
	SourceDirect    Source = "direct"
	SourceCondensed Source = "condensed"
	SourceFallback  Source = "fallback"
	SourceMock      Source = "mock"
)

// GenerationResult is the cleaned description for one entity. Source is
// observability metadata and plays no part in cache identity.
type GenerationResult struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
}
