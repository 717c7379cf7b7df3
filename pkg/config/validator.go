package config

import (
	"fmt"
	"net/url"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if c.Fetcher.Strategy != "markdown" && c.Fetcher.Strategy != "page" {
		errors = append(errors, ValidationError{
			Field:   "fetcher.strategy",
			Message: fmt.Sprintf("unknown strategy %q, want \"markdown\" or \"page\"", c.Fetcher.Strategy),
		})
	}

	if c.Fetcher.Strategy == "markdown" {
		if _, err := url.Parse(c.Fetcher.MarkdownerEndpoint); err != nil || c.Fetcher.MarkdownerEndpoint == "" {
			errors = append(errors, ValidationError{
				Field:   "fetcher.markdowner_endpoint",
				Message: "a valid conversion endpoint URL is required",
			})
		}
	}

	if c.Fetcher.RateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "fetcher.rate_limit",
			Message: "rate_limit must be positive",
		})
	}

	if c.Database.VectorDim < 1 {
		errors = append(errors, ValidationError{
			Field:   "database.vector_dim",
			Message: "vector_dim must be positive",
		})
	}

	if c.Chunker.ChunkSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "chunker.chunk_size",
			Message: "chunk_size must be positive",
		})
	}

	if c.Chunker.ChunkOverlap < 0 || c.Chunker.ChunkOverlap >= c.Chunker.ChunkSize {
		errors = append(errors, ValidationError{
			Field:   "chunker.chunk_overlap",
			Message: "chunk_overlap must be non-negative and less than chunk_size",
		})
	}

	if c.Query.TopK < 1 {
		errors = append(errors, ValidationError{
			Field:   "query.top_k",
			Message: "top_k must be positive",
		})
	}

	if c.LLM.MaxTokens < 1 || c.LLM.MaxTokens > 8192 {
		errors = append(errors, ValidationError{
			Field:   "llm.max_tokens",
			Message: "max_tokens must be between 1 and 8192",
		})
	}

	return errors
}
