package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist-so-defaults.yaml"))
	if err == nil {
		t.Fatal("expected error for explicit missing path")
	}

	// Empty path with no config file around falls back to pure defaults.
	chdir(t, t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Database.VectorDim)
	assert.Equal(t, "documents", cfg.Database.Collection)
	assert.Equal(t, 512, cfg.Chunker.ChunkSize)
	assert.Equal(t, 50, cfg.Chunker.ChunkOverlap)
	assert.Equal(t, 5, cfg.Query.TopK)
	assert.Equal(t, "markdown", cfg.Fetcher.Strategy)
	assert.Equal(t, "progress.json", cfg.Ingest.ProgressFile)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
database:
  collection: portfolio
  vector_dim: 768
chunker:
  chunk_size: 256
  chunk_overlap: 32
fetcher:
  strategy: page
ingest:
  urls:
    - https://example.com/
    - https://example.com/projects/
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "portfolio", cfg.Database.Collection)
	assert.Equal(t, 768, cfg.Database.VectorDim)
	assert.Equal(t, 256, cfg.Chunker.ChunkSize)
	assert.Equal(t, "page", cfg.Fetcher.Strategy)
	assert.Len(t, cfg.Ingest.URLs, 2)

	// Unset values still get defaults.
	assert.Equal(t, 5, cfg.Query.TopK)
}

func TestLoadEnvOverlay(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("EMBEDDING_API_KEY", "jina-key")
	t.Setenv("MARKDOWNER_API_KEY", "md-key")

	path := writeConfig(t, "database:\n  collection: docs\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env/db", cfg.Secrets.DatabaseURL)
	assert.Equal(t, "jina-key", cfg.Secrets.EmbeddingAPIKey)
	assert.Equal(t, "md-key", cfg.Secrets.MarkdownerAPIKey)
	assert.Equal(t, "https://api.jina.ai/v1", cfg.Secrets.EmbeddingBaseURL)
	assert.Equal(t, "8080", cfg.Secrets.Port)
}

func TestValidate(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Validate())

	cfg.Fetcher.Strategy = "carrier-pigeon"
	cfg.Database.VectorDim = 0
	cfg.Chunker.ChunkOverlap = 9999
	cfg.Query.TopK = -1

	errs := cfg.Validate()
	require.Len(t, errs, 4)

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
		assert.NotEmpty(t, e.Error())
	}
	assert.Contains(t, fields, "fetcher.strategy")
	assert.Contains(t, fields, "database.vector_dim")
	assert.Contains(t, fields, "chunker.chunk_overlap")
	assert.Contains(t, fields, "query.top_k")
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "database: [not a mapping")
	_, err := Load(path)
	assert.Error(t, err)
}
