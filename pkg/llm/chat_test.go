package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imtiz/ragfolio/internal/models"
)

func chatStreamServer(t *testing.T, deltas []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "text/event-stream")

		for _, delta := range deltas {
			fmt.Fprintf(w,
				"data: {\"id\":\"1\",\"object\":\"chat.completion.chunk\",\"choices\":[{\"index\":0,\"delta\":{\"content\":%q}}]}\n\n",
				delta)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
}

func TestChatStream(t *testing.T) {
	server := chatStreamServer(t, []string{"Hello", ", ", "world"})
	defer server.Close()

	ce := NewChatEngine(ChatConfig{BaseURL: server.URL, APIKey: "k"})

	stream, err := ce.Stream(context.Background(), []models.ChatMessage{
		{Role: models.RoleSystem, Content: "You are helpful."},
		{Role: models.RoleUser, Content: "Say hello."},
	})
	require.NoError(t, err)

	var b strings.Builder
	for chunk := range stream {
		b.WriteString(chunk)
	}
	assert.Equal(t, "Hello, world", b.String())
}

func TestChatStreamRequestError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad model"}}`, http.StatusBadRequest)
	}))
	defer server.Close()

	ce := NewChatEngine(ChatConfig{BaseURL: server.URL, APIKey: "k"})

	_, err := ce.Stream(context.Background(), []models.ChatMessage{
		{Role: models.RoleUser, Content: "hi"},
	})
	assert.Error(t, err)
}
