package research

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearcher_RequiresCredentials(t *testing.T) {
	_, err := NewSearcher(context.Background(), "", "cx")
	assert.Error(t, err)

	_, err = NewSearcher(context.Background(), "key", "")
	assert.Error(t, err)
}

func TestQueries(t *testing.T) {
	queries := Queries("Acme", "widget subscription box")

	require.Len(t, queries, 5)
	assert.Contains(t, queries[0], "competitors")
	for _, q := range queries {
		assert.True(t, strings.Contains(q, "Acme") || strings.Contains(q, "widget subscription box"),
			"query should reference the business: %q", q)
	}
}

func TestEnrichResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><head><title>Thread</title></head><body>widget complaints everywhere</body></html>"))
	}))
	defer srv.Close()

	results := []SearchResult{
		{URL: srv.URL, Title: "A thread", Snippet: "snippet"},
		{URL: "http://127.0.0.1:1/unreachable", Title: "Dead", Snippet: "kept"},
	}

	enriched := EnrichResults(context.Background(), results, EnrichOptions{})

	require.Len(t, enriched, 2)
	assert.Contains(t, enriched[0].Content, "widget complaints")
	assert.Empty(t, enriched[1].Content, "failed fetch should leave content empty")
	assert.Equal(t, "kept", enriched[1].Snippet)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "abcde", truncate("abcdefgh", 5))
}
