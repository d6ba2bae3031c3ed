package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/pilotfinder/internal/research"
)

type fakeLLM struct {
	lastPrompt string
	response   string
	err        error
}

func (f *fakeLLM) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeLLM) Close() error { return nil }

type fakeSearcher struct {
	queries []string
	results []research.SearchResult
	err     error
}

func (f *fakeSearcher) Search(_ context.Context, query string, _ int) ([]research.SearchResult, error) {
	f.queries = append(f.queries, query)
	return f.results, f.err
}

type fakeRecorder struct {
	calls int
	tool  string
}

func (f *fakeRecorder) SaveResearchResult(_ context.Context, _ uuid.UUID, toolUsed, _ string, _ any, _ string, _ int) error {
	f.calls++
	f.tool = toolUsed
	return nil
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Acme", "Widget subscription box", "")

	assert.Contains(t, prompt, "Business Name: Acme")
	assert.Contains(t, prompt, "Business Description: Widget subscription box")
	assert.Contains(t, prompt, "market viability")
	assert.NotContains(t, prompt, "Web research gathered")
}

func TestBuildPrompt_WithResearchContext(t *testing.T) {
	prompt := BuildPrompt("Acme", "Widgets", "### Search: widgets competitors\n- result")

	assert.Contains(t, prompt, "Web research gathered")
	assert.Contains(t, prompt, "widgets competitors")
}

func TestGenerate_PromptOnlyWithoutSearcher(t *testing.T) {
	client := &fakeLLM{response: "The market is viable."}
	a := New(client, nil, nil, Options{})

	narrative, err := a.Generate(context.Background(), uuid.New(), "Acme", "Widgets")
	require.NoError(t, err)

	assert.Equal(t, "The market is viable.", narrative)
	assert.Contains(t, client.lastPrompt, "Business Name: Acme")
}

func TestGenerate_RecordsResearch(t *testing.T) {
	client := &fakeLLM{response: "narrative"}
	searcher := &fakeSearcher{results: []research.SearchResult{
		{URL: "http://127.0.0.1:1/thread", Title: "A", Snippet: "people complain"},
	}}
	recorder := &fakeRecorder{}
	a := New(client, searcher, recorder, Options{MaxQueries: 2})

	_, err := a.Generate(context.Background(), uuid.New(), "Acme", "Widgets")
	require.NoError(t, err)

	assert.Len(t, searcher.queries, 2, "should respect MaxQueries")
	assert.Equal(t, 2, recorder.calls)
	assert.Equal(t, research.ToolWebSearch, recorder.tool)
	assert.Contains(t, client.lastPrompt, "127.0.0.1:1/thread")
}

func TestGenerate_SearchFailureDegradesToPromptOnly(t *testing.T) {
	client := &fakeLLM{response: "narrative"}
	searcher := &fakeSearcher{err: errors.New("quota exceeded")}
	a := New(client, searcher, nil, Options{MaxQueries: 1})

	narrative, err := a.Generate(context.Background(), uuid.New(), "Acme", "Widgets")
	require.NoError(t, err)

	assert.Equal(t, "narrative", narrative)
	assert.NotContains(t, client.lastPrompt, "Web research gathered")
}

func TestGenerate_LLMErrorPropagates(t *testing.T) {
	client := &fakeLLM{err: errors.New("model overloaded")}
	a := New(client, nil, nil, Options{})

	_, err := a.Generate(context.Background(), uuid.New(), "Acme", "Widgets")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agent generation failed")
}
