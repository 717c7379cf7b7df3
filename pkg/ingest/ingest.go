// Package ingest drives the ingestion pipeline: fetch, chunk, embed and
// insert each URL in turn, recording progress after every committed chunk
// so a crashed run resumes where it stopped.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/imtiz/ragfolio/internal/models"
	"github.com/imtiz/ragfolio/internal/types"
	"github.com/imtiz/ragfolio/pkg/llm"
	"github.com/imtiz/ragfolio/pkg/progress"
)

// Runner walks the URL list sequentially. There is no concurrency anywhere
// in this pipeline: per-chunk progress persistence is only correct when
// writes are serialized.
type Runner struct {
	fetcher  types.Fetcher
	splitter types.Splitter
	embedder types.Embedder
	store    types.InsertStore
	tracker  *progress.Tracker
	urls     []string
	out      io.Writer
	onURL    func(url string)
}

type Options struct {
	Fetcher  types.Fetcher
	Splitter types.Splitter
	Embedder types.Embedder
	Store    types.InsertStore
	Tracker  *progress.Tracker
	URLs     []string
	Out      io.Writer        // progress lines; defaults to io.Discard
	OnURL    func(url string) // called after each URL is finished or skipped
}

func NewRunner(opts Options) *Runner {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Runner{
		fetcher:  opts.Fetcher,
		splitter: opts.Splitter,
		embedder: opts.Embedder,
		store:    opts.Store,
		tracker:  opts.Tracker,
		urls:     opts.URLs,
		out:      out,
		onURL:    opts.OnURL,
	}
}

// Run processes every URL not already recorded as done. Semantics are
// at-least-once: a crash between an insert and its progress save re-ingests
// that one chunk on the next run.
//
// An embedding failure abandons the remaining chunks of the current URL and
// halts the whole run, leaving the URL unmarked. This favors manual
// investigation over silently partial ingestion across many URLs. Fetch and
// store failures likewise halt the run.
func (r *Runner) Run(ctx context.Context) error {
	state, err := r.tracker.Load()
	if err != nil {
		return err
	}

	for _, url := range r.urls {
		if state.ProcessedURLs[url] {
			fmt.Fprintf(r.out, "Skipping URL already processed: %s\n", url)
			r.urlDone(url)
			continue
		}

		fmt.Fprintf(r.out, "Processing URL: %s\n", url)
		content, err := r.fetcher.Fetch(ctx, url)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", url, err)
		}
		if content == "" {
			fmt.Fprintf(r.out, "Skipping empty content for URL: %s\n", url)
			r.urlDone(url)
			continue
		}

		chunks, err := r.splitter.Split(content)
		if err != nil {
			return fmt.Errorf("splitting %s: %w", url, err)
		}
		if len(chunks) == 0 {
			fmt.Fprintf(r.out, "Skipping URL with no chunks: %s\n", url)
			r.urlDone(url)
			continue
		}
		fmt.Fprintf(r.out, "Split content into %d chunks\n", len(chunks))

		for i, chunk := range chunks {
			embedding, err := r.embedder.EmbedOne(ctx, chunk)
			if err != nil {
				if errors.Is(err, llm.ErrEmbedding) {
					return fmt.Errorf("embedding chunk %d of %s, halting run: %w", i, url, err)
				}
				return fmt.Errorf("embedding chunk %d of %s: %w", i, url, err)
			}

			id, err := r.store.Insert(ctx, models.Record{
				Embedding: embedding,
				Content:   chunk,
				SourceURL: url,
				Metadata:  map[string]interface{}{"chunkIndex": i},
			})
			if err != nil {
				return fmt.Errorf("inserting chunk %d of %s: %w", i, url, err)
			}
			fmt.Fprintf(r.out, "Inserted chunk %s\n", id)

			state.TotalChunksProcessed++
			if err := r.tracker.Save(state); err != nil {
				return err
			}
		}

		state.ProcessedURLs[url] = true
		if err := r.tracker.Save(state); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Finished URL: %s\n", url)
		r.urlDone(url)
	}

	return nil
}

func (r *Runner) urlDone(url string) {
	if r.onURL != nil {
		r.onURL(url)
	}
}
