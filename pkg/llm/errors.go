package llm

import "errors"

var (
	// ErrEmbedding wraps embedding-service failures: quota exhaustion, an
	// empty or undersized result set, or a dimension mismatch. Ingestion
	// treats it as fatal for the current run, not just the current chunk.
	ErrEmbedding = errors.New("embedding failed")

	// ErrNoResponse is returned when the generation service accepts the
	// request but produces no stream.
	ErrNoResponse = errors.New("no response from model")
)
