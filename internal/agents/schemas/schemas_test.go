package schemas

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestExample_NestedObject(t *testing.T) {
	schema := &genai.Schema{
		Type: "OBJECT",
		Properties: map[string]*genai.Schema{
			"summary": {Type: "STRING", Description: "One-paragraph summary"},
			"levels": {
				Type: "OBJECT",
				Properties: map[string]*genai.Schema{
					"support": {Type: "STRING", Description: "Key support level"},
				},
			},
			"risks": {
				Type:  "ARRAY",
				Items: &genai.Schema{Type: "STRING", Description: "One risk"},
			},
		},
	}

	rendered := Example(schema)

	assert.Contains(t, rendered, `"summary": "One-paragraph summary"`)
	assert.Contains(t, rendered, `"levels": {`)
	assert.Contains(t, rendered, `"support": "Key support level"`)
	assert.Contains(t, rendered, `"risks": ["One risk"]`)
}

func TestExample_KeysAreSorted(t *testing.T) {
	schema := &genai.Schema{
		Type: "OBJECT",
		Properties: map[string]*genai.Schema{
			"zeta":  {Type: "STRING", Description: "z"},
			"alpha": {Type: "STRING", Description: "a"},
		},
	}

	rendered := Example(schema)
	assert.Less(t, strings.Index(rendered, "alpha"), strings.Index(rendered, "zeta"))
}

func TestExample_EnumLeaf(t *testing.T) {
	schema := &genai.Schema{
		Type: "OBJECT",
		Properties: map[string]*genai.Schema{
			"overall_risk_rating": {
				Type:        "STRING",
				Description: "Overall risk rating",
				Enum:        []string{"low", "medium", "high"},
			},
		},
	}

	rendered := Example(schema)
	assert.Contains(t, rendered, "(one of: low/medium/high)")
}

func TestRoleSchemas_RenderNonEmpty(t *testing.T) {
	for name, schema := range map[string]*genai.Schema{
		"market_research":      MarketResearchOutputSchema,
		"technical_analysis":   TechnicalAnalysisOutputSchema,
		"fundamental_analysis": FundamentalAnalysisOutputSchema,
		"risk_analysis":        RiskAnalysisOutputSchema,
		"strategy":             StrategyOutputSchema,
	} {
		t.Run(name, func(t *testing.T) {
			require.NotNil(t, schema)
			rendered := Example(schema)
			assert.True(t, len(rendered) > 2)
			assert.Contains(t, rendered, "{")
			assert.Contains(t, rendered, "}")
		})
	}
}

func TestRiskAnalysisSchema_Fields(t *testing.T) {
	rendered := Example(RiskAnalysisOutputSchema)

	for _, field := range []string{
		"volatility_exposure", "downside_scenarios", "liquidity_risk",
		"position_risk", "risk_mitigation", "overall_risk_rating",
	} {
		assert.Contains(t, rendered, field)
	}
}
