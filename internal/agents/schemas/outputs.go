package schemas

import "google.golang.org/genai"

// MarketResearchOutputSchema is the expected output shape for the market
// research task.
var MarketResearchOutputSchema = &genai.Schema{
	Type: "OBJECT",
	Properties: map[string]*genai.Schema{
		"market_position": {
			Type:        "STRING",
			Description: "Current market standing and trends",
		},
		"competitive_analysis": {
			Type: "OBJECT",
			Properties: map[string]*genai.Schema{
				"advantages": {
					Type:        "ARRAY",
					Items:       &genai.Schema{Type: "STRING", Description: "List of competitive advantages"},
					Description: "Competitive advantages",
				},
				"threats": {
					Type:        "ARRAY",
					Items:       &genai.Schema{Type: "STRING", Description: "List of potential threats"},
					Description: "Potential threats",
				},
			},
		},
		"industry_analysis": {
			Type:        "STRING",
			Description: "Industry dynamics and market share details",
		},
		"recent_developments": {
			Type:        "ARRAY",
			Items:       &genai.Schema{Type: "STRING", Description: "List of recent news and events"},
			Description: "Recent news and events",
		},
		"market_sentiment": {
			Type:        "STRING",
			Description: "Overall market sentiment analysis",
		},
	},
}

// TechnicalAnalysisOutputSchema is the expected output shape for the
// technical analysis task.
var TechnicalAnalysisOutputSchema = &genai.Schema{
	Type: "OBJECT",
	Properties: map[string]*genai.Schema{
		"trend_analysis": {
			Type:        "STRING",
			Description: "Current price trend analysis",
		},
		"support_resistance": {
			Type: "OBJECT",
			Properties: map[string]*genai.Schema{
				"support_levels": {
					Type:        "ARRAY",
					Items:       &genai.Schema{Type: "STRING", Description: "List of support prices"},
					Description: "Key support prices",
				},
				"resistance_levels": {
					Type:        "ARRAY",
					Items:       &genai.Schema{Type: "STRING", Description: "List of resistance prices"},
					Description: "Key resistance prices",
				},
			},
		},
		"volume_analysis": {
			Type:        "STRING",
			Description: "Trading volume analysis",
		},
		"technical_indicators": {
			Type: "OBJECT",
			Properties: map[string]*genai.Schema{
				"rsi": {
					Type:        "STRING",
					Description: "RSI value and interpretation",
				},
				"macd": {
					Type:        "STRING",
					Description: "MACD analysis",
				},
			},
		},
		"price_targets": {
			Type: "OBJECT",
			Properties: map[string]*genai.Schema{
				"entry_points": {
					Type:        "ARRAY",
					Items:       &genai.Schema{Type: "STRING", Description: "List of recommended entry prices"},
					Description: "Recommended entry prices",
				},
				"exit_points": {
					Type:        "ARRAY",
					Items:       &genai.Schema{Type: "STRING", Description: "List of recommended exit prices"},
					Description: "Recommended exit prices",
				},
				"target_price": {
					Type:        "STRING",
					Description: "Price target",
				},
			},
		},
	},
}

// FundamentalAnalysisOutputSchema is the expected output shape for the
// fundamental analysis task.
var FundamentalAnalysisOutputSchema = &genai.Schema{
	Type: "OBJECT",
	Properties: map[string]*genai.Schema{
		"financial_health": {
			Type: "OBJECT",
			Properties: map[string]*genai.Schema{
				"liquidity_ratios": {
					Type:        "STRING",
					Description: "Analysis of liquidity",
				},
				"solvency_ratios": {
					Type:        "STRING",
					Description: "Analysis of solvency",
				},
				"overall_health": {
					Type:        "STRING",
					Description: "Overall financial health assessment",
				},
			},
		},
		"growth_metrics": {
			Type: "OBJECT",
			Properties: map[string]*genai.Schema{
				"revenue_growth": {
					Type:        "STRING",
					Description: "Revenue growth analysis",
				},
				"earnings_growth": {
					Type:        "STRING",
					Description: "Earnings growth analysis",
				},
				"future_outlook": {
					Type:        "STRING",
					Description: "Growth outlook",
				},
			},
		},
		"profitability": {
			Type: "OBJECT",
			Properties: map[string]*genai.Schema{
				"margins": {
					Type:        "STRING",
					Description: "Margin analysis",
				},
				"returns": {
					Type:        "STRING",
					Description: "Return metrics analysis",
				},
			},
		},
		"valuation": {
			Type: "OBJECT",
			Properties: map[string]*genai.Schema{
				"current_valuation": {
					Type:        "STRING",
					Description: "Current valuation metrics",
				},
				"fair_value": {
					Type:        "STRING",
					Description: "Calculated fair value",
				},
				"valuation_assessment": {
					Type:        "STRING",
					Description: "Over/undervalued assessment",
				},
			},
		},
		"risk_analysis": {
			Type:        "STRING",
			Description: "Comprehensive risk assessment",
		},
	},
}

// RiskAnalysisOutputSchema is the expected output shape for the dedicated
// risk analysis task.
var RiskAnalysisOutputSchema = &genai.Schema{
	Type: "OBJECT",
	Properties: map[string]*genai.Schema{
		"volatility_exposure": {
			Type:        "STRING",
			Description: "Assessment of historical and implied volatility exposure",
		},
		"downside_scenarios": {
			Type:        "ARRAY",
			Items:       &genai.Schema{Type: "STRING", Description: "List of plausible downside scenarios"},
			Description: "Plausible downside scenarios",
		},
		"liquidity_risk": {
			Type:        "STRING",
			Description: "Trading liquidity and slippage considerations",
		},
		"position_risk": {
			Type: "OBJECT",
			Properties: map[string]*genai.Schema{
				"concentration": {
					Type:        "STRING",
					Description: "Concentration risk assessment",
				},
				"drawdown_potential": {
					Type:        "STRING",
					Description: "Potential drawdown magnitude and duration",
				},
			},
		},
		"risk_mitigation": {
			Type:        "ARRAY",
			Items:       &genai.Schema{Type: "STRING", Description: "List of concrete risk mitigation measures"},
			Description: "Concrete risk mitigation measures",
		},
		"overall_risk_rating": {
			Type:        "STRING",
			Description: "Overall risk rating",
			Enum:        []string{"low", "medium", "high"},
		},
	},
}

// StrategyOutputSchema is the expected output shape for the investment
// strategy task.
var StrategyOutputSchema = &genai.Schema{
	Type: "OBJECT",
	Properties: map[string]*genai.Schema{
		"recommendation": {
			Type: "OBJECT",
			Properties: map[string]*genai.Schema{
				"action": {
					Type:        "STRING",
					Description: "Buy/Sell/Hold recommendation",
				},
				"confidence": {
					Type:        "STRING",
					Description: "Confidence level in recommendation",
				},
				"time_horizon": {
					Type:        "STRING",
					Description: "Recommended investment timeframe",
				},
			},
		},
		"position_sizing": {
			Type: "OBJECT",
			Properties: map[string]*genai.Schema{
				"recommended_size": {
					Type:        "STRING",
					Description: "Recommended position size",
				},
				"rationale": {
					Type:        "STRING",
					Description: "Rationale for position size",
				},
			},
		},
		"risk_management": {
			Type: "OBJECT",
			Properties: map[string]*genai.Schema{
				"stop_loss": {
					Type:        "STRING",
					Description: "Stop loss price and rationale",
				},
				"risk_reward_ratio": {
					Type:        "STRING",
					Description: "Risk/reward ratio",
				},
				"max_drawdown": {
					Type:        "STRING",
					Description: "Maximum acceptable drawdown",
				},
			},
		},
		"execution_strategy": {
			Type: "OBJECT",
			Properties: map[string]*genai.Schema{
				"entry_strategy": {
					Type:        "STRING",
					Description: "Detailed entry strategy",
				},
				"exit_strategy": {
					Type:        "STRING",
					Description: "Detailed exit strategy",
				},
				"monitoring_points": {
					Type:        "ARRAY",
					Items:       &genai.Schema{Type: "STRING", Description: "Key points to monitor"},
					Description: "Key points to monitor",
				},
			},
		},
		"portfolio_fit": {
			Type:        "STRING",
			Description: "Analysis of how this fits into a portfolio",
		},
	},
}
