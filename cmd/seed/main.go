package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/imtiz/ragfolio/pkg/chunker"
	"github.com/imtiz/ragfolio/pkg/config"
	"github.com/imtiz/ragfolio/pkg/fetcher"
	"github.com/imtiz/ragfolio/pkg/ingest"
	"github.com/imtiz/ragfolio/pkg/llm"
	"github.com/imtiz/ragfolio/pkg/progress"
	"github.com/imtiz/ragfolio/pkg/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			color.Red("config: %v", e)
		}
		os.Exit(1)
	}

	ctx := context.Background()

	vectorStore, err := store.New(ctx, store.Config{
		ConnString: cfg.Secrets.DatabaseURL,
		Collection: cfg.Database.Collection,
		VectorDim:  cfg.Database.VectorDim,
	})
	if err != nil {
		return err
	}
	defer vectorStore.Close()

	if err := vectorStore.EnsureCollection(ctx); err != nil {
		return err
	}
	color.Green("✓ Collection %s ready (dim %d, cosine)", cfg.Database.Collection, cfg.Database.VectorDim)

	contentFetcher, err := fetcher.FromConfig(fetcher.Config{
		Strategy:       cfg.Fetcher.Strategy,
		Endpoint:       cfg.Fetcher.MarkdownerEndpoint,
		APIKey:         cfg.Secrets.MarkdownerAPIKey,
		RateLimit:      cfg.Fetcher.RateLimit,
		TimeoutSeconds: cfg.Fetcher.TimeoutSeconds,
	})
	if err != nil {
		return err
	}

	embedder := llm.NewEmbedder(llm.EmbedderConfig{
		BaseURL:   cfg.Secrets.EmbeddingBaseURL,
		APIKey:    cfg.Secrets.EmbeddingAPIKey,
		Model:     cfg.LLM.EmbeddingModel,
		Dimension: cfg.Database.VectorDim,
	})

	splitter := chunker.NewSplitter(chunker.Config{
		ChunkSize:    cfg.Chunker.ChunkSize,
		ChunkOverlap: cfg.Chunker.ChunkOverlap,
	})

	color.Blue("\nIngesting %d URLs\n", len(cfg.Ingest.URLs))

	bar := progressbar.NewOptions(len(cfg.Ingest.URLs),
		progressbar.OptionSetDescription(color.BlueString("Ingesting pages...")),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)

	runner := ingest.NewRunner(ingest.Options{
		Fetcher:  contentFetcher,
		Splitter: splitter,
		Embedder: embedder,
		Store:    vectorStore,
		Tracker:  progress.NewTracker(cfg.Ingest.ProgressFile),
		URLs:     cfg.Ingest.URLs,
		Out:      os.Stderr,
		OnURL:    func(string) { bar.Add(1) },
	})

	start := time.Now()
	if err := runner.Run(ctx); err != nil {
		bar.Finish()
		color.Red("\nIngestion halted: %v", err)
		color.Yellow("Progress up to the failure is saved; rerun to resume.")
		return err
	}

	bar.Finish()
	color.Green("\n✓ Ingestion complete in %s\n", time.Since(start).Round(time.Second))
	return nil
}
