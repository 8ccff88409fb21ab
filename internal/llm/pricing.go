package llm

// ModelCost holds USD pricing per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID. Gateway IDs such as
// "google/gemini-2.5-flash" are matched on the part after the slash.
func LookupCost(modelID string) (ModelCost, bool) {
	if c, ok := modelCosts[modelID]; ok {
		return c, true
	}
	for i := len(modelID) - 1; i >= 0; i-- {
		if modelID[i] == '/' {
			c, ok := modelCosts[modelID[i+1:]]
			return c, ok
		}
	}
	return ModelCost{}, false
}

// modelCosts covers the models reachable through the friendly names above.
var modelCosts = map[string]ModelCost{
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
	"gemini-3-flash-preview": {0.5, 3},
	"gemini-3-pro-preview":   {2, 12},

	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1-mini": {0.4, 1.6},

	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4-5": {3, 15},
}
