// Package store is a pgvector-backed vector store client. A "collection" is
// a table holding (embedding, content, metadata) rows with a declared vector
// dimension and cosine distance. No operation here retries; retry policy
// belongs to callers.
package store

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/imtiz/ragfolio/internal/models"
)

type Config struct {
	ConnString string
	Collection string
	VectorDim  int
}

type VectorStore struct {
	config Config
	pool   *pgxpool.Pool
}

func New(ctx context.Context, config Config) (*VectorStore, error) {
	if config.Collection == "" {
		config.Collection = "documents"
	}
	if config.VectorDim == 0 {
		config.VectorDim = 1024
	}

	pool, err := pgxpool.New(ctx, config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &VectorStore{config: config, pool: pool}, nil
}

// EnsureCollection creates the collection if it does not exist. It is
// idempotent and never alters an existing table's dimension or metric.
func (vs *VectorStore) EnsureCollection(ctx context.Context) error {
	_, err := vs.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY,
			content TEXT NOT NULL,
			source_url TEXT,
			metadata JSONB,
			embedding vector(%d)
		)`, vs.config.Collection, vs.config.VectorDim)

	if _, err := vs.pool.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_embedding_idx
		ON %s
		USING ivfflat (embedding vector_cosine_ops)
		WITH (lists = 100)`,
		vs.config.Collection, vs.config.Collection)

	if _, err := vs.pool.Exec(ctx, createIndex); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}

// Insert appends one record and returns its assigned id. A vector whose
// length differs from the collection's declared dimension is rejected
// before any write.
func (vs *VectorStore) Insert(ctx context.Context, rec models.Record) (string, error) {
	if err := vs.checkDimension(rec.Embedding); err != nil {
		return "", err
	}

	id := uuid.NewString()
	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, content, source_url, metadata, embedding)
		VALUES ($1, $2, $3, $4, $5)`,
		vs.config.Collection)

	_, err := vs.pool.Exec(ctx, stmt,
		id,
		sanitizeUTF8(rec.Content),
		rec.SourceURL,
		rec.Metadata,
		pgvector.NewVector(rec.Embedding),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert record: %w", err)
	}

	return id, nil
}

// Search returns the k records nearest to the query vector by cosine
// distance, nearest first.
func (vs *VectorStore) Search(ctx context.Context, embedding []float32, k int) ([]models.Record, error) {
	if err := vs.checkDimension(embedding); err != nil {
		return nil, err
	}
	if k <= 0 {
		k = 5
	}

	query := fmt.Sprintf(`
		SELECT id, content, source_url, metadata
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2`,
		vs.config.Collection)

	rows, err := vs.pool.Query(ctx, query, pgvector.NewVector(embedding), k)
	if err != nil {
		return nil, fmt.Errorf("failed to search records: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var rec models.Record
		if err := rows.Scan(&rec.ID, &rec.Content, &rec.SourceURL, &rec.Metadata); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (vs *VectorStore) Close() {
	if vs.pool != nil {
		vs.pool.Close()
	}
}

func (vs *VectorStore) checkDimension(embedding []float32) error {
	if len(embedding) != vs.config.VectorDim {
		return fmt.Errorf("vector dimension %d does not match collection dimension %d",
			len(embedding), vs.config.VectorDim)
	}
	return nil
}

func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	v := make([]rune, 0, len(s))
	for i, r := range s {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(s[i:])
			if size == 1 {
				continue
			}
		}
		v = append(v, r)
	}
	return string(v)
}
