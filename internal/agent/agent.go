// Package agent implements the onboarding agent: it composes the analysis
// prompt, gathers web research for context, and asks the language model for a
// brutally honest market assessment as unstructured narrative text.
package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/pilotfinder/internal/llm"
	"github.com/jonathan/pilotfinder/internal/prompts"
	"github.com/jonathan/pilotfinder/internal/research"
)

// DefaultMaxQueries bounds how many search queries a single run issues
const DefaultMaxQueries = 3

// Searcher is the web-search capability the agent uses for market research
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]research.SearchResult, error)
}

// Recorder persists research-tool invocations for a session. Recording is
// best-effort; a recorder failure never fails the analysis run.
type Recorder interface {
	SaveResearchResult(ctx context.Context, sessionID uuid.UUID, toolUsed, query string, results any, summary string, totalResults int) error
}

// Options configures an agent run
type Options struct {
	MaxQueries int
	UseBrowser bool
	Verbose    bool
}

// Agent runs onboarding analyses. The searcher and recorder are optional:
// without a searcher the agent produces a prompt-only assessment.
type Agent struct {
	client   llm.Client
	searcher Searcher
	recorder Recorder
	opts     Options
}

// New creates an onboarding agent
func New(client llm.Client, searcher Searcher, recorder Recorder, opts Options) *Agent {
	if opts.MaxQueries <= 0 {
		opts.MaxQueries = DefaultMaxQueries
	}
	return &Agent{
		client:   client,
		searcher: searcher,
		recorder: recorder,
		opts:     opts,
	}
}

// Generate produces the analysis narrative for a business. It may take
// minutes; cancel via the context.
func (a *Agent) Generate(ctx context.Context, sessionID uuid.UUID, businessName, businessDescription string) (string, error) {
	researchContext := a.gatherResearch(ctx, sessionID, businessName, businessDescription)

	prompt := BuildPrompt(businessName, businessDescription, researchContext)

	narrative, err := a.client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("agent generation failed: %w", err)
	}
	return narrative, nil
}

// BuildPrompt composes the full agent prompt from the embedded templates.
// researchContext may be empty.
func BuildPrompt(businessName, businessDescription, researchContext string) string {
	prompt := prompts.Format(prompts.MustGet("onboarding.json", "analyze_business"), map[string]string{
		"BusinessName":        businessName,
		"BusinessDescription": businessDescription,
	})

	if researchContext != "" {
		prompt += "\n\n" + prompts.Format(prompts.MustGet("onboarding.json", "research_context"), map[string]string{
			"ResearchContext": researchContext,
		})
	}
	return prompt
}

// gatherResearch runs bounded web research and renders it as prompt context.
// Every failure degrades to less context rather than failing the run.
func (a *Agent) gatherResearch(ctx context.Context, sessionID uuid.UUID, businessName, businessDescription string) string {
	if a.searcher == nil {
		return ""
	}

	queries := research.Queries(businessName, businessDescription)
	if len(queries) > a.opts.MaxQueries {
		queries = queries[:a.opts.MaxQueries]
	}

	var sections []string
	for _, query := range queries {
		results, err := a.searcher.Search(ctx, query, research.DefaultSearchLimit)
		if err != nil {
			if a.opts.Verbose {
				log.Printf("[AGENT] Search failed for %q: %v", query, err)
			}
			continue
		}
		if len(results) == 0 {
			continue
		}

		results = research.EnrichResults(ctx, results, research.EnrichOptions{
			UseBrowser: a.opts.UseBrowser,
			Verbose:    a.opts.Verbose,
		})
		a.record(ctx, sessionID, query, results)
		sections = append(sections, renderSection(query, results))
	}

	return strings.Join(sections, "\n\n")
}

func (a *Agent) record(ctx context.Context, sessionID uuid.UUID, query string, results []research.SearchResult) {
	if a.recorder == nil || sessionID == uuid.Nil {
		return
	}
	summary := fmt.Sprintf("Found %d sources for %q", len(results), query)
	if err := a.recorder.SaveResearchResult(ctx, sessionID, research.ToolWebSearch, query, results, summary, len(results)); err != nil {
		log.Printf("[AGENT] Failed to record research result: %v", err)
	}
}

// renderSection formats one query's results as prompt context
func renderSection(query string, results []research.SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### Search: %s\n", query)
	for _, r := range results {
		fmt.Fprintf(&b, "- %s (%s)\n", r.Title, r.URL)
		if r.Content != "" {
			fmt.Fprintf(&b, "  %s\n", r.Content)
		} else if r.Snippet != "" {
			fmt.Fprintf(&b, "  %s\n", r.Snippet)
		}
	}
	return b.String()
}
