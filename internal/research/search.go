// Package research provides the web-search and page-scraping tools the
// onboarding agent uses to ground its market analysis in real data.
package research

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/jonathan/pilotfinder/internal/fetch"
)

// Tool name constants used when recording research results
const (
	ToolWebSearch    = "web_search"
	ToolDeepResearch = "deep_research"
)

// DefaultSearchLimit is the number of results requested per query
const DefaultSearchLimit = 5

// maxEnrichConcurrency bounds parallel page fetches during enrichment
const maxEnrichConcurrency = 4

// SearchResult is one web search hit, optionally enriched with page content
type SearchResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Content string `json:"content,omitempty"`
}

// Searcher performs web searches via the Google Custom Search API
type Searcher struct {
	svc *customsearch.Service
	cx  string
}

// NewSearcher creates a new Searcher instance
func NewSearcher(ctx context.Context, apiKey, cx string) (*Searcher, error) {
	if apiKey == "" || cx == "" {
		return nil, fmt.Errorf("search API key and engine ID are required")
	}
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &Searcher{svc: svc, cx: cx}, nil
}

// Search returns up to limit results for a query
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	resp, err := s.svc.Cse.List().Cx(s.cx).Q(query).Num(int64(limit)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("search failed for %q: %w", query, err)
	}

	results := make([]SearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, SearchResult{
			URL:     item.Link,
			Title:   item.Title,
			Snippet: item.Snippet,
		})
	}
	return results, nil
}

// Queries builds the search queries for a business. The angle mirrors the
// onboarding agent's mission: competitors, complaints, and communities where
// potential pilot customers gather.
func Queries(businessName, businessDescription string) []string {
	return []string{
		businessDescription + " competitors",
		businessDescription + " alternatives reviews",
		businessDescription + " problems complaints",
		businessDescription + " reddit",
		businessName + " market size trends",
	}
}

// EnrichOptions configures result enrichment
type EnrichOptions struct {
	// UseBrowser enables headless browser rendering for pages whose plain
	// fetch yields too little text. Requires Chrome on the host.
	UseBrowser bool
	Verbose    bool
}

// EnrichResults fetches page text for each result concurrently, filling in
// the Content field. Pages that fail to fetch keep their snippet only; a
// partial corpus is still useful to the agent.
func EnrichResults(ctx context.Context, results []SearchResult, opts EnrichOptions) []SearchResult {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxEnrichConcurrency)

	enriched := make([]SearchResult, len(results))
	copy(enriched, results)

	for i := range enriched {
		g.Go(func() error {
			page, err := fetch.URL(gctx, enriched[i].URL, nil)
			if err != nil {
				if opts.Verbose {
					log.Printf("[RESEARCH] Skipping %s: %v", enriched[i].URL, err)
				}
				return nil
			}

			text := page.Text
			if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
				text = renderWithBrowser(gctx, enriched[i].URL, text, opts.Verbose)
			}

			enriched[i].Content = truncate(text, 2000)
			if enriched[i].Title == "" {
				enriched[i].Title = page.Title
			}
			return nil
		})
	}

	// Workers only return nil; Wait is used for joining.
	_ = g.Wait()
	return enriched
}

// renderWithBrowser retries a thin page through the headless browser. Any
// failure keeps the plain-fetch text.
func renderWithBrowser(ctx context.Context, url, fallback string, verbose bool) string {
	html, err := fetch.BrowserSimple(ctx, url, verbose)
	if err != nil {
		if verbose {
			log.Printf("[RESEARCH] Browser render failed for %s: %v", url, err)
		}
		return fallback
	}
	_, rendered, err := fetch.ExtractText(html)
	if err != nil || len(rendered) <= len(fallback) {
		return fallback
	}
	return rendered
}

// truncate limits page content to keep prompt size bounded
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
