package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_MarketViability(t *testing.T) {
	tests := []struct {
		name      string
		narrative string
		want      string
	}{
		{"viable", "This business is viable with strong demand.", ViabilityViable},
		{"not viable excluded", "Honestly, this is not viable as described.", ViabilityUnknown},
		{"oversaturated", "The space is completely oversaturated.", ViabilityOversaturated},
		{"pivot", "You should pivot to enterprise buyers.", ViabilityPivotNeeded},
		{"viable wins over pivot", "Viable, though a pivot could widen the market.", ViabilityViable},
		{"no keywords", "Lorem ipsum dolor sit amet.", ViabilityUnknown},
		{"case insensitive", "VIABLE opportunity here.", ViabilityViable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.narrative).MarketViability)
		})
	}
}

func TestParse_MarketSize(t *testing.T) {
	tests := []struct {
		name      string
		narrative string
		want      string
	}{
		{"large", "This is a large market with many buyers.", MarketSizeLarge},
		{"medium", "A medium market at best.", MarketSizeMedium},
		{"moderate", "Expect a moderate market.", MarketSizeMedium},
		{"small", "It is a small market overall.", MarketSizeSmall},
		{"niche", "This is a niche play.", MarketSizeSmall},
		{"large wins over niche", "A large market with a niche entry point.", MarketSizeLarge},
		{"no keywords", "Nothing recognizable here.", MarketSizeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.narrative).MarketSize)
		})
	}
}

// Oversaturated is checked before pivot, and "niche" maps to small.
func TestParse_OversaturatedBeforePivot(t *testing.T) {
	narrative := "This market is oversaturated and a pivot is recommended, niche market only."
	result := Parse(narrative)

	assert.Equal(t, ViabilityOversaturated, result.MarketViability)
	assert.Equal(t, MarketSizeSmall, result.MarketSize)
}

func TestParse_Defaults(t *testing.T) {
	narrative := "No recognizable keywords at all."
	result := Parse(narrative)

	assert.Equal(t, ViabilityUnknown, result.MarketViability)
	assert.Equal(t, MarketSizeUnknown, result.MarketSize)
	assert.Equal(t, DefaultRecommendations, result.Recommendations)
	assert.Equal(t, narrative, result.BrutalHonestAssessment)
	assert.Empty(t, result.Leads)
	assert.Empty(t, result.CompetitorAnalysis)
	assert.Empty(t, result.CustomerSegments)
	assert.Empty(t, result.PainPoints)
	assert.Empty(t, result.MarketTrends)
}

func TestParse_AssessmentPreservedVerbatim(t *testing.T) {
	narrative := "  Viable.\n\nDetailed findings follow...  "
	result := Parse(narrative)

	assert.Equal(t, narrative, result.BrutalHonestAssessment)
}

func TestParse_Idempotent(t *testing.T) {
	narrative := "The market is viable, large market, with niche sub-segments."

	first := Parse(narrative)
	second := Parse(narrative)

	assert.Equal(t, first, second)
}

func TestParse_EmptyNarrative(t *testing.T) {
	result := Parse("")

	assert.Equal(t, ViabilityUnknown, result.MarketViability)
	assert.Equal(t, MarketSizeUnknown, result.MarketSize)
	assert.Equal(t, "", result.BrutalHonestAssessment)
	assert.Equal(t, DefaultRecommendations, result.Recommendations)
}
