package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Timothy0727/ModeMap/pkg/config"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(&config.OpenAIConfig{})
	assert.Error(t, err)

	_, err = NewClient(nil)
	assert.Error(t, err)
}

func TestParseEnrichmentPayload(t *testing.T) {
	text := `{"attribute_scores":{"work":0.8,"date":0.3},"evidence":{"work":["quiet cafe with wifi"]}}`

	parsed, err := parseEnrichmentPayload(text)
	require.NoError(t, err)

	assert.Equal(t, 0.8, parsed.AttributeScores["work"])
	assert.Equal(t, []string{"quiet cafe with wifi"}, parsed.Evidence["work"])
}

func TestParseEnrichmentPayloadStripsCodeFence(t *testing.T) {
	text := "```json\n{\"attribute_scores\":{\"budget\":0.9},\"evidence\":{}}\n```"

	parsed, err := parseEnrichmentPayload(text)
	require.NoError(t, err)
	assert.Equal(t, 0.9, parsed.AttributeScores["budget"])
}

func TestParseEnrichmentPayloadRejectsEmptyScores(t *testing.T) {
	_, err := parseEnrichmentPayload(`{"attribute_scores":{},"evidence":{}}`)
	assert.Error(t, err)

	_, err = parseEnrichmentPayload("not json")
	assert.Error(t, err)
}

func TestBuildVenueProfileUserPrompt(t *testing.T) {
	price := 2
	rating := 4.4

	prompt := buildVenueProfileUserPrompt("Blue Bottle Coffee", []string{"Cafe", "Coffee Shop"}, &price, &rating)

	assert.Contains(t, prompt, "Blue Bottle Coffee")
	assert.Contains(t, prompt, "Cafe, Coffee Shop")
	assert.Contains(t, prompt, "2")
	assert.Contains(t, prompt, "4.4")
}
