package fetcher

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Page fetches a URL directly and extracts the visible page text. Unlike the
// markdown strategy it never fails a run: navigation errors, bad statuses and
// empty pages all degrade to an empty result, which callers read as "skip".
type Page struct {
	client  *http.Client
	limiter *rate.Limiter
}

func NewPage(cfg Config) *Page {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	limit := cfg.RateLimit
	if limit == 0 {
		limit = 2
	}

	return &Page{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(limit), 1),
	}
}

func (p *Page) Fetch(ctx context.Context, target string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		log.Printf("page fetch: bad URL %s: %v", target, err)
		return "", nil
	}

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("page fetch: %s: %v", target, err)
		return "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("page fetch: %s: %s", target, resp.Status)
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		log.Printf("page fetch: %s: %v", target, err)
		return "", nil
	}

	return extractText(doc), nil
}

// extractText prefers the main content area and falls back to the whole
// body. The residual tag strip is a pattern pass, not a parser; it only
// guarantees markup-free text.
func extractText(doc *goquery.Document) string {
	selectors := []string{"main", "article", ".content", "#content"}

	var content string
	for _, selector := range selectors {
		if selected := doc.Find(selector); selected.Length() > 0 {
			content = selected.Text()
			break
		}
	}
	if content == "" {
		content = doc.Find("body").Text()
	}

	content = tagPattern.ReplaceAllString(content, " ")
	return strings.TrimSpace(strings.Join(strings.Fields(content), " "))
}
