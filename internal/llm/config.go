// Package llm provides the language-model client used to run the onboarding agent.
package llm

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// DefaultModel is the model used for onboarding analysis when none is configured.
// Analysis runs are long-form reasoning over research context, so this defaults
// to a full-capability model rather than a lite tier.
const DefaultModel = "gemini-2.5-pro"

// DefaultTemperature is used for agent generations. The narrative is meant to be
// opinionated free text, not deterministic extraction, so it is left fairly high.
const DefaultTemperature = 0.7

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Model       string
	Temperature float32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
	}
}

// ModelName returns the configured model, falling back to the default
func (c *Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModel
}
