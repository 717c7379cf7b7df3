package llm

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/imtiz/ragfolio/internal/models"
)

// ChatConfig points the chat engine at an OpenAI-compatible completion
// endpoint. MaxDuration bounds the whole streamed response.
type ChatConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	MaxDuration time.Duration
}

// ChatEngine streams completions for a message list.
type ChatEngine struct {
	config ChatConfig
	client *openai.Client
}

func NewChatEngine(config ChatConfig) *ChatEngine {
	if config.Model == "" {
		config.Model = "llama3-70b-8192"
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 2000
	}
	if config.MaxDuration == 0 {
		config.MaxDuration = 30 * time.Second
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &ChatEngine{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// Stream sends the full message list to the model and returns a channel of
// content deltas. The channel is closed when the response completes or the
// duration ceiling is hit.
func (ce *ChatEngine) Stream(ctx context.Context, msgs []models.ChatMessage) (<-chan string, error) {
	converted := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, msg := range msgs {
		converted = append(converted, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, ce.config.MaxDuration)

	stream, err := ce.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:     ce.config.Model,
		Messages:  converted,
		MaxTokens: ce.config.MaxTokens,
		Stream:    true,
	})
	if err != nil {
		cancel()
		return nil, err
	}

	out := make(chan string)
	go func() {
		defer cancel()
		defer close(out)
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				log.Printf("chat stream ended early: %v", err)
				return
			}
			if len(resp.Choices) > 0 && resp.Choices[0].Delta.Content != "" {
				select {
				case out <- resp.Choices[0].Delta.Content:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
