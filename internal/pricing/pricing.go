// internal/pricing/pricing.go
package pricing

// Rate holds USD-per-1K-token prices for one model.
type Rate struct {
	Prompt     float64
	Completion float64
}

// DefaultModel is the pricing row used when a model name is unknown.
const DefaultModel = "gpt-4o-mini"

// Per 1K tokens, November 2025 rates from openai.com/api/pricing
// (converted from the published per-1M prices).
var rates = map[string]Rate{
	// GPT-5 family
	"gpt-5":      {Prompt: 0.00125, Completion: 0.01},
	"gpt-5-mini": {Prompt: 0.00025, Completion: 0.002},
	"gpt-5-nano": {Prompt: 0.00005, Completion: 0.0004},

	// GPT-4.1 family
	"gpt-4.1":      {Prompt: 0.002, Completion: 0.008},
	"gpt-4.1-mini": {Prompt: 0.0004, Completion: 0.0016},
	"gpt-4.1-nano": {Prompt: 0.0001, Completion: 0.0004},

	// GPT-4o family
	"gpt-4o":      {Prompt: 0.0025, Completion: 0.01},
	"gpt-4o-mini": {Prompt: 0.00015, Completion: 0.0006},

	// o-series reasoning models
	"o1":      {Prompt: 0.015, Completion: 0.06},
	"o1-mini": {Prompt: 0.0011, Completion: 0.0044},
	"o3":      {Prompt: 0.002, Completion: 0.008},
	"o3-mini": {Prompt: 0.0011, Completion: 0.0044},
	"o4-mini": {Prompt: 0.0011, Completion: 0.0044},
}

// Lookup returns the pricing row for model, falling back to DefaultModel
// for unknown names.
func Lookup(model string) Rate {
	if r, ok := rates[model]; ok {
		return r
	}
	return rates[DefaultModel]
}

// Cost estimates the USD cost of a call from its token counts.
func Cost(model string, promptTokens, completionTokens int) float64 {
	r := Lookup(model)
	return (float64(promptTokens)/1000)*r.Prompt + (float64(completionTokens)/1000)*r.Completion
}
