package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPrompt(t *testing.T) {
	prompt, err := Get("onboarding.json", "analyze_business")
	require.NoError(t, err)

	assert.Contains(t, prompt, "{{.BusinessName}}")
	assert.Contains(t, prompt, "{{.BusinessDescription}}")
	assert.Contains(t, prompt, "market viability")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("onboarding.json", "missing")
	assert.Error(t, err)
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("nope.json", "analyze_business")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	out := Format("Hello {{.Name}}, you run {{.Business}}.", map[string]string{
		"Name":     "Sam",
		"Business": "Acme",
	})
	assert.Equal(t, "Hello Sam, you run Acme.", out)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("onboarding.json", "does_not_exist")
	})
}
