package types

import (
	"context"

	"github.com/imtiz/ragfolio/internal/models"
)

// Core interfaces wired into the orchestrators. Concrete implementations
// live in pkg/fetcher, pkg/chunker, pkg/llm and pkg/store.

// Fetcher retrieves plain-text content for a URL. An empty string means
// "no content, skip this URL"; an error aborts the run.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Splitter cuts normalized text into bounded overlapping chunks.
type Splitter interface {
	Split(text string) ([]string, error)
}

// Embedder converts text into fixed-dimension vectors.
type Embedder interface {
	EmbedOne(ctx context.Context, text string) ([]float32, error)
	EmbedMany(ctx context.Context, texts []string) ([][]float32, error)
}

// InsertStore is the write side of the vector store.
type InsertStore interface {
	Insert(ctx context.Context, rec models.Record) (string, error)
}

// SearchStore is the read side of the vector store.
type SearchStore interface {
	Search(ctx context.Context, embedding []float32, k int) ([]models.Record, error)
}

// Generator streams a model response for a message list. The channel is
// closed when the response is complete.
type Generator interface {
	Stream(ctx context.Context, msgs []models.ChatMessage) (<-chan string, error)
}
