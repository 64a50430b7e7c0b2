// internal/pricing/pricing_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCost(t *testing.T) {
	tests := []struct {
		name             string
		model            string
		promptTokens     int
		completionTokens int
		expected         float64
	}{
		{
			name:             "gpt-4o-mini small query",
			model:            "gpt-4o-mini",
			promptTokens:     100,
			completionTokens: 150,
			expected:         (100.0/1000)*0.00015 + (150.0/1000)*0.0006,
		},
		{
			name:             "gpt-4o larger query",
			model:            "gpt-4o",
			promptTokens:     1000,
			completionTokens: 500,
			expected:         0.0025 + 0.005,
		},
		{
			name:             "gpt-5 flagship",
			model:            "gpt-5",
			promptTokens:     1000,
			completionTokens: 1000,
			expected:         0.00125 + 0.01,
		},
		{
			name:             "o1 reasoning model",
			model:            "o1",
			promptTokens:     2000,
			completionTokens: 1000,
			expected:         0.03 + 0.06,
		},
		{
			name:             "zero tokens",
			model:            "gpt-4o-mini",
			promptTokens:     0,
			completionTokens: 0,
			expected:         0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cost(tt.model, tt.promptTokens, tt.completionTokens)
			assert.InDelta(t, tt.expected, got, 0.000001)
		})
	}
}

func TestCost_UnknownModelFallsBack(t *testing.T) {
	unknown := Cost("some-future-model", 100, 150)
	fallback := Cost(DefaultModel, 100, 150)

	assert.InDelta(t, fallback, unknown, 0.000001)
	assert.Greater(t, unknown, 0.0)
}

func TestLookup(t *testing.T) {
	r := Lookup("gpt-4o-mini")
	assert.Equal(t, 0.00015, r.Prompt)
	assert.Equal(t, 0.0006, r.Completion)

	// Unknown names resolve to the default row, never a zero rate.
	r = Lookup("not-a-model")
	assert.Equal(t, rates[DefaultModel], r)
}
