// Package analysis extracts structured fields from the onboarding agent's
// free-text narrative. The agent is not contracted to return structured
// output, so extraction is best-effort substring matching: Parse is a pure
// function that never fails, defaulting every field it cannot recognize.
package analysis

import "strings"

// MarketViability values
const (
	ViabilityViable        = "viable"
	ViabilityOversaturated = "oversaturated"
	ViabilityPivotNeeded   = "pivot_needed"
	ViabilityUnknown       = "unknown"
)

// MarketSize values
const (
	MarketSizeSmall   = "small"
	MarketSizeMedium  = "medium"
	MarketSizeLarge   = "large"
	MarketSizeUnknown = "unknown"
)

// DefaultRecommendations is used when no recommendation text can be extracted
const DefaultRecommendations = "See full assessment for details"

// Lead is a pilot customer lead extracted from the narrative
type Lead struct {
	Source           string
	URL              string
	Title            string
	Description      string
	Contact          string
	PainPointMatch   string
	OutreachStrategy string
	Priority         int
}

// Result is the structured view of an agent narrative
type Result struct {
	MarketViability        string
	MarketSize             string
	CompetitorAnalysis     []any
	CustomerSegments       []any
	PainPoints             []any
	MarketTrends           []any
	BrutalHonestAssessment string
	Recommendations        string
	Leads                  []Lead
}

// Parse maps an agent narrative to a Result. The checks run in a fixed
// priority order and the first match wins; the full narrative is always
// preserved verbatim as the assessment.
func Parse(narrative string) Result {
	result := Result{
		MarketViability:        ViabilityUnknown,
		MarketSize:             MarketSizeUnknown,
		CompetitorAnalysis:     []any{},
		CustomerSegments:       []any{},
		PainPoints:             []any{},
		MarketTrends:           []any{},
		BrutalHonestAssessment: narrative,
		Recommendations:        DefaultRecommendations,
		Leads:                  []Lead{},
	}

	lower := strings.ToLower(narrative)

	switch {
	case strings.Contains(lower, "viable") && !strings.Contains(lower, "not viable"):
		result.MarketViability = ViabilityViable
	case strings.Contains(lower, "oversaturated"):
		result.MarketViability = ViabilityOversaturated
	case strings.Contains(lower, "pivot"):
		result.MarketViability = ViabilityPivotNeeded
	}

	switch {
	case strings.Contains(lower, "large market"):
		result.MarketSize = MarketSizeLarge
	case strings.Contains(lower, "medium market"), strings.Contains(lower, "moderate market"):
		result.MarketSize = MarketSizeMedium
	case strings.Contains(lower, "small market"), strings.Contains(lower, "niche"):
		result.MarketSize = MarketSizeSmall
	}

	return result
}
