package agents

import (
	"minerva/internal/tools"
)

// AnalysisRole identifies one specialized analyst in the pipeline.
type AnalysisRole string

const (
	RoleMarketResearcher   AnalysisRole = "market_researcher"
	RoleTechnicalAnalyst   AnalysisRole = "technical_analyst"
	RoleFundamentalAnalyst AnalysisRole = "fundamental_analyst"
	RoleRiskAnalyst        AnalysisRole = "risk_analyst"
	RoleStrategyExpert     AnalysisRole = "strategy_expert"
)

// String returns the role identifier.
func (r AnalysisRole) String() string { return string(r) }

// RoleConfig is the value object that parameterizes an Agent: display name,
// goal and backstory injected into the model request, and the capability
// tools the role may call.
type RoleConfig struct {
	Role      AnalysisRole
	Name      string
	Goal      string
	Backstory string
	Tools     []string
}

// PipelineRoles is the canonical five-role execution order. Each downstream
// role reads the accumulated conclusions of every upstream role.
var PipelineRoles = []AnalysisRole{
	RoleMarketResearcher,
	RoleTechnicalAnalyst,
	RoleFundamentalAnalyst,
	RoleRiskAnalyst,
	RoleStrategyExpert,
}

// LiteRoles is the reduced four-role pipeline without the dedicated risk
// analyst.
var LiteRoles = []AnalysisRole{
	RoleMarketResearcher,
	RoleTechnicalAnalyst,
	RoleFundamentalAnalyst,
	RoleStrategyExpert,
}

// DefaultRoleConfigs binds each role to its fixed goal, backstory and
// permitted tools.
var DefaultRoleConfigs = map[AnalysisRole]RoleConfig{
	RoleMarketResearcher: {
		Role: RoleMarketResearcher,
		Name: "Market Intelligence Officer",
		Goal: "Provide actionable market research and competitive analysis",
		Backstory: "Expert market researcher focused on industry trends and competitive analysis. " +
			"Specializes in identifying market opportunities and risks.",
		Tools: []string{tools.ToolSearch, tools.ToolStockData},
	},
	RoleTechnicalAnalyst: {
		Role: RoleTechnicalAnalyst,
		Name: "Technical Analysis Specialist",
		Goal: "Provide technical analysis and price targets",
		Backstory: "Technical analysis expert specializing in price patterns and momentum indicators. " +
			"Focuses on identifying entry/exit points based on technical signals.",
		Tools: []string{tools.ToolStockData},
	},
	RoleFundamentalAnalyst: {
		Role: RoleFundamentalAnalyst,
		Name: "Fundamental Analysis Expert",
		Goal: "Evaluate financial health and provide valuation analysis",
		Backstory: "Financial analysis expert specializing in company valuations and financial metrics. " +
			"Focuses on analyzing financial statements and ratios.",
		Tools: []string{tools.ToolStockData, tools.ToolFinancialMetrics},
	},
	RoleRiskAnalyst: {
		Role: RoleRiskAnalyst,
		Name: "Risk Assessment Specialist",
		Goal: "Quantify downside exposure and recommend risk controls",
		Backstory: "Risk management expert specializing in volatility analysis and drawdown scenarios. " +
			"Focuses on identifying what can go wrong before capital is committed.",
		Tools: []string{tools.ToolStockData},
	},
	RoleStrategyExpert: {
		Role: RoleStrategyExpert,
		Name: "Portfolio Strategy Expert",
		Goal: "Synthesize all analyses into actionable investment recommendations",
		Backstory: "Investment strategist who combines market, technical, and fundamental analysis " +
			"to create comprehensive investment strategies.",
		Tools: []string{tools.ToolStockData},
	},
}
