package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// EmbedderConfig points the embedder at an OpenAI-compatible embedding
// endpoint. Dimension is the collection's declared vector size; every
// returned vector is checked against it.
type EmbedderConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	Dimension int
}

// Embedder converts text into fixed-dimension vectors via a remote
// embedding service.
type Embedder struct {
	config EmbedderConfig
	client *openai.Client
}

func NewEmbedder(config EmbedderConfig) *Embedder {
	if config.Model == "" {
		config.Model = "jina-embeddings-v3"
	}
	if config.Dimension == 0 {
		config.Dimension = 1024
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &Embedder{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// EmbedOne embeds a single text.
func (e *Embedder) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedMany(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedMany embeds a batch of texts in one request, preserving order.
func (e *Embedder) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.config.Model),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	if len(resp.Data) < len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrEmbedding, len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(texts) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", ErrEmbedding, item.Index)
		}
		if len(item.Embedding) != e.config.Dimension {
			return nil, fmt.Errorf("%w: dimension %d, collection expects %d",
				ErrEmbedding, len(item.Embedding), e.config.Dimension)
		}
		vectors[item.Index] = item.Embedding
	}
	return vectors, nil
}
