// Package fetcher retrieves plain-text content for URLs. Two strategies are
// available: a markdown conversion service and a direct page fetch with tag
// stripping. Both report "no content" as an empty string so callers have a
// single skip signal.
package fetcher

import (
	"errors"
	"fmt"

	"github.com/imtiz/ragfolio/internal/types"
)

// ErrFetch wraps any conversion-service failure. Callers treat it as fatal
// for the run rather than retrying.
var ErrFetch = errors.New("fetch failed")

// Strategy names accepted by FromConfig.
const (
	StrategyMarkdown = "markdown"
	StrategyPage     = "page"
)

type Config struct {
	Strategy       string
	Endpoint       string // conversion service endpoint, markdown strategy only
	APIKey         string
	RateLimit      float64 // requests per second
	TimeoutSeconds int
}

// FromConfig selects the deployment's fetch strategy.
func FromConfig(cfg Config) (types.Fetcher, error) {
	switch cfg.Strategy {
	case StrategyMarkdown:
		return NewMarkdown(cfg), nil
	case StrategyPage:
		return NewPage(cfg), nil
	default:
		return nil, fmt.Errorf("unknown fetch strategy %q", cfg.Strategy)
	}
}
