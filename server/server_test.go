package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imtiz/ragfolio/internal/models"
	"github.com/imtiz/ragfolio/pkg/rag"
)

type fakeEmbedder struct{ err error }

func (e *fakeEmbedder) EmbedOne(context.Context, string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return []float32{0.5}, nil
}

func (e *fakeEmbedder) EmbedMany(context.Context, []string) ([][]float32, error) {
	return [][]float32{{0.5}}, nil
}

type fakeSearchStore struct{}

func (fakeSearchStore) Search(context.Context, []float32, int) ([]models.Record, error) {
	return []models.Record{{Content: "retrieved"}}, nil
}

type fakeGenerator struct{ reply []string }

func (g *fakeGenerator) Stream(context.Context, []models.ChatMessage) (<-chan string, error) {
	out := make(chan string, len(g.reply))
	for _, chunk := range g.reply {
		out <- chunk
	}
	close(out)
	return out, nil
}

func newTestServer(embedder *fakeEmbedder, gen *fakeGenerator) *httptest.Server {
	orchestrator := rag.New(embedder, fakeSearchStore{}, gen, 5)
	return httptest.NewServer(New(orchestrator).Router())
}

func TestChatHappyPath(t *testing.T) {
	server := newTestServer(&fakeEmbedder{}, &fakeGenerator{reply: []string{"Hi ", "there"}})
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/chat", "application/json",
		strings.NewReader(`{"messages":[{"role":"user","content":"Tell me about X"}]}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Hi there", string(body))
}

func TestChatEmptyMessages(t *testing.T) {
	server := newTestServer(&fakeEmbedder{}, &fakeGenerator{})
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/chat", "application/json",
		strings.NewReader(`{"messages":[]}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Something went wrong")
}

func TestChatMalformedBody(t *testing.T) {
	server := newTestServer(&fakeEmbedder{}, &fakeGenerator{})
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/chat", "application/json",
		strings.NewReader(`{"messages":`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatInternalErrorIsGeneric(t *testing.T) {
	server := newTestServer(&fakeEmbedder{err: fmt.Errorf("secret connection string leaked")}, &fakeGenerator{})
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/chat", "application/json",
		strings.NewReader(`{"messages":[{"role":"user","content":"q"}]}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "secret")
	assert.Contains(t, string(body), "Something went wrong")
}

func TestHealth(t *testing.T) {
	server := newTestServer(&fakeEmbedder{}, &fakeGenerator{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
