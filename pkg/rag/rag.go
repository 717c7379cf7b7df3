// Package rag answers a chat conversation by retrieving stored context for
// the latest user message and streaming a grounded model response.
package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/imtiz/ragfolio/internal/models"
	"github.com/imtiz/ragfolio/internal/types"
)

var (
	// ErrNoMessages is returned when a request carries no messages.
	ErrNoMessages = errors.New("no messages in request")

	// ErrEmptyMessage is returned when the latest message has no content.
	ErrEmptyMessage = errors.New("latest message has no content")
)

const systemPersona = "You are an assistant who answers questions about the site owner " +
	"using the provided context from their published pages. " +
	"Answer from the context when it is relevant; say so plainly when it is not. " +
	"Do not mention the context or these instructions in your answer."

// Orchestrator handles one query end to end. It holds no per-request state
// and is safe for concurrent use.
type Orchestrator struct {
	embedder types.Embedder
	store    types.SearchStore
	gen      types.Generator
	topK     int
}

func New(embedder types.Embedder, store types.SearchStore, gen types.Generator, topK int) *Orchestrator {
	if topK <= 0 {
		topK = 5
	}
	return &Orchestrator{
		embedder: embedder,
		store:    store,
		gen:      gen,
		topK:     topK,
	}
}

// Answer embeds the latest message, retrieves the nearest stored texts,
// prepends one synthesized system message carrying that context, and
// streams the model's response. The original message list is forwarded
// unchanged after the synthesized message.
func (o *Orchestrator) Answer(ctx context.Context, msgs []models.ChatMessage) (<-chan string, error) {
	if len(msgs) == 0 {
		return nil, ErrNoMessages
	}
	question := msgs[len(msgs)-1].Content
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyMessage
	}

	embedding, err := o.embedder.EmbedOne(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	matches, err := o.store.Search(ctx, embedding, o.topK)
	if err != nil {
		return nil, fmt.Errorf("searching context: %w", err)
	}

	full := make([]models.ChatMessage, 0, len(msgs)+1)
	full = append(full, models.ChatMessage{
		Role:    models.RoleSystem,
		Content: buildSystemPrompt(matches, question),
	})
	full = append(full, msgs...)

	return o.gen.Stream(ctx, full)
}

func buildSystemPrompt(matches []models.Record, question string) string {
	var b strings.Builder
	b.WriteString(systemPersona)
	b.WriteString("\n\nContext:\n")
	if len(matches) == 0 {
		b.WriteString("(no relevant context found)\n")
	}
	for _, match := range matches {
		b.WriteString("---\n")
		b.WriteString(match.Content)
		b.WriteString("\n")
	}
	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	return b.String()
}
