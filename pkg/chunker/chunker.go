// Package chunker splits normalized text into bounded overlapping segments
// sized for embedding.
package chunker

import (
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

// markdownSeparators biases the recursive splitter toward heading and
// paragraph boundaries before falling back to fixed-size windows.
var markdownSeparators = []string{"\n## ", "\n### ", "\n#### ", "\n\n", "\n", " ", ""}

type Config struct {
	ChunkSize    int
	ChunkOverlap int
}

type Splitter struct {
	inner textsplitter.RecursiveCharacter
}

func NewSplitter(cfg Config) *Splitter {
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = 512
	}
	if cfg.ChunkOverlap == 0 {
		cfg.ChunkOverlap = 50
	}

	return &Splitter{
		inner: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(cfg.ChunkSize),
			textsplitter.WithChunkOverlap(cfg.ChunkOverlap),
			textsplitter.WithSeparators(markdownSeparators),
		),
	}
}

// Split returns the ordered chunk sequence for text. Whitespace-only input
// yields an empty sequence; every returned chunk is non-empty.
func (s *Splitter) Split(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	raw, err := s.inner.SplitText(text)
	if err != nil {
		return nil, err
	}

	chunks := make([]string, 0, len(raw))
	for _, chunk := range raw {
		if strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks, nil
}
