package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Markdown fetches content through an external markdown conversion service.
// The service takes the target URL as a query parameter and returns the
// page rendered as markdown. Any non-success response is fatal for the URL.
type Markdown struct {
	endpoint string
	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
}

func NewMarkdown(cfg Config) *Markdown {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	limit := cfg.RateLimit
	if limit == 0 {
		limit = 2
	}

	return &Markdown{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(rate.Limit(limit), 1),
	}
}

func (m *Markdown) Fetch(ctx context.Context, target string) (string, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqURL := fmt.Sprintf("%s?url=%s", m.endpoint, url.QueryEscape(target))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFetch, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s: %s", ErrFetch, target, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFetch, target, err)
	}

	return strings.TrimSpace(string(body)), nil
}
