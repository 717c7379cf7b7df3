package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/imtiz/ragfolio/pkg/config"
	"github.com/imtiz/ragfolio/pkg/llm"
	"github.com/imtiz/ragfolio/pkg/rag"
	"github.com/imtiz/ragfolio/pkg/store"
	"github.com/imtiz/ragfolio/server"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			log.Printf("config: %v", e)
		}
		log.Fatal("invalid configuration")
	}

	vectorStore, err := store.New(context.Background(), store.Config{
		ConnString: cfg.Secrets.DatabaseURL,
		Collection: cfg.Database.Collection,
		VectorDim:  cfg.Database.VectorDim,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer vectorStore.Close()

	embedder := llm.NewEmbedder(llm.EmbedderConfig{
		BaseURL:   cfg.Secrets.EmbeddingBaseURL,
		APIKey:    cfg.Secrets.EmbeddingAPIKey,
		Model:     cfg.LLM.EmbeddingModel,
		Dimension: cfg.Database.VectorDim,
	})

	chatEngine := llm.NewChatEngine(llm.ChatConfig{
		BaseURL:     cfg.Secrets.ChatBaseURL,
		APIKey:      cfg.Secrets.ChatAPIKey,
		Model:       cfg.LLM.ChatModel,
		MaxTokens:   cfg.LLM.MaxTokens,
		MaxDuration: time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	})

	orchestrator := rag.New(embedder, vectorStore, chatEngine, cfg.Query.TopK)

	addr := ":" + cfg.Secrets.Port
	log.Printf("Starting chat server on %s", addr)
	if err := http.ListenAndServe(addr, server.New(orchestrator).Router()); err != nil {
		log.Fatal(err)
	}
}
