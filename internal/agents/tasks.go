package agents

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"minerva/internal/agents/schemas"
	"minerva/pkg/errors"
)

// Task is one unit of analysis work: a ticker-templated description, an
// expected output schema embedded in the prompt as formatting guidance, and
// the accumulated output of every upstream task. Executed exactly once.
type Task struct {
	Role        AnalysisRole
	Ticker      string
	Description string
	Schema      *genai.Schema
	Context     string
}

// taskTemplate defines the fixed prompt material for one role.
type taskTemplate struct {
	header   string // fmt template with one %s for the ticker
	focus    []string
	toolHint string
	closing  string
	schema   *genai.Schema
}

var taskTemplates = map[AnalysisRole]taskTemplate{
	RoleMarketResearcher: {
		header: "Research %s market conditions and competitive landscape.",
		focus: []string{
			"Current market position and trends",
			"Competitive advantages and threats",
			"Industry dynamics and market share",
			"Recent news and developments",
			"Market sentiment analysis",
		},
		toolHint: "Use the search tool with simple text queries and the stock data tool with the ticker symbol.",
		closing:  "Provide a detailed JSON response with your findings.",
		schema:   schemas.MarketResearchOutputSchema,
	},
	RoleTechnicalAnalyst: {
		header: "Analyze %s technical indicators and price patterns.",
		focus: []string{
			"Current price trends and momentum",
			"Support and resistance levels",
			"Volume analysis",
			"Technical indicators (RSI, MACD)",
			"Price targets",
		},
		toolHint: "Use the stock data tool with the ticker symbol.",
		closing:  "Provide specific entry/exit points in your JSON response.",
		schema:   schemas.TechnicalAnalysisOutputSchema,
	},
	RoleFundamentalAnalyst: {
		header: "Evaluate %s fundamental metrics and valuation.",
		focus: []string{
			"Financial health indicators",
			"Growth metrics and trends",
			"Profitability ratios",
			"Valuation metrics",
			"Risk assessment",
		},
		toolHint: "Use both stock data and financial metrics tools with the ticker symbol.",
		closing:  "Provide a detailed valuation analysis in your JSON response.",
		schema:   schemas.FundamentalAnalysisOutputSchema,
	},
	RoleRiskAnalyst: {
		header: "Assess %s risk exposure and downside scenarios.",
		focus: []string{
			"Historical volatility and price swings",
			"Plausible downside scenarios",
			"Liquidity and slippage risk",
			"Concentration and drawdown potential",
			"Risk mitigation measures",
		},
		toolHint: "Use the stock data tool with the ticker symbol.",
		closing:  "Provide a comprehensive risk assessment in your JSON response.",
		schema:   schemas.RiskAnalysisOutputSchema,
	},
	RoleStrategyExpert: {
		header: "Create an investment strategy for %s based on all analyses.",
		focus: []string{
			"Investment recommendation",
			"Position sizing",
			"Risk management",
			"Entry/exit strategy",
			"Portfolio considerations",
		},
		toolHint: "Use the stock data tool with the ticker symbol.",
		closing:  "Provide a comprehensive strategy in your JSON response.",
		schema:   schemas.StrategyOutputSchema,
	},
}

// Describe builds the task description and expected-output schema for a role
// and ticker. Pure and deterministic; the description always contains the
// numbered focus list and an example output shape.
func Describe(role AnalysisRole, ticker string) (string, *genai.Schema, error) {
	tmpl, ok := taskTemplates[role]
	if !ok {
		return "", nil, errors.Wrapf(errors.ErrNotFound, "no task template for role %s", role)
	}

	var b strings.Builder
	fmt.Fprintf(&b, tmpl.header, ticker)
	b.WriteString("\nFocus on:\n")
	for i, item := range tmpl.focus {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	b.WriteString("\n")
	b.WriteString(tmpl.toolHint)
	b.WriteString("\n\n")
	b.WriteString(tmpl.closing)
	b.WriteString("\n\nExpected output: A JSON object containing:\n")
	b.WriteString(schemas.Example(tmpl.schema))

	return b.String(), tmpl.schema, nil
}

// NewTask instantiates the task for one role and ticker.
func NewTask(role AnalysisRole, ticker string) (*Task, error) {
	description, schema, err := Describe(role, ticker)
	if err != nil {
		return nil, err
	}

	return &Task{
		Role:        role,
		Ticker:      ticker,
		Description: description,
		Schema:      schema,
	}, nil
}
