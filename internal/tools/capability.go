package tools

import (
	"context"
	"fmt"

	"minerva/internal/tools/indicators"
)

// Capability tools wrap providers with the degradation contract the agents
// rely on: a provider failure becomes a payload containing only an "error"
// field, never a returned error, so one failed fetch cannot abort a task.

// NewStockDataTool wraps a QuoteProvider as the stock_data tool. When the
// payload carries a usable price history, a technical-indicator snapshot is
// attached under "technical_indicators".
func NewStockDataTool(provider QuoteProvider) Tool {
	return New(ToolStockData,
		"Get current stock data and basic financials. Input should be a stock ticker symbol.",
		func(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
			ticker, _ := args["ticker"].(string)
			if ticker == "" {
				return map[string]interface{}{"error": "no ticker provided"}, nil
			}

			data, err := provider.StockData(ctx, ticker)
			if err != nil {
				return map[string]interface{}{
					"error": fmt.Sprintf("failed to fetch stock data: %v", err),
				}, nil
			}

			if closes := FloatSeries(data["price_history"]); len(closes) > 0 {
				if snapshot := indicators.Snapshot(closes); snapshot != nil {
					data["technical_indicators"] = snapshot
				}
			}

			return data, nil
		})
}

// NewFinancialMetricsTool wraps a FinancialMetricsProvider as the
// financial_metrics tool.
func NewFinancialMetricsTool(provider FinancialMetricsProvider) Tool {
	return New(ToolFinancialMetrics,
		"Get detailed financial metrics and ratios. Input should be a stock ticker symbol.",
		func(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
			ticker, _ := args["ticker"].(string)
			if ticker == "" {
				return map[string]interface{}{"error": "no ticker provided"}, nil
			}

			data, err := provider.FinancialMetrics(ctx, ticker)
			if err != nil {
				return map[string]interface{}{
					"error": fmt.Sprintf("failed to fetch financial metrics: %v", err),
				}, nil
			}

			return data, nil
		})
}

// NewSearchTool wraps a SearchProvider as the search tool. The free-text
// result is returned under "result".
func NewSearchTool(provider SearchProvider) Tool {
	return New(ToolSearch,
		"Search the internet for recent information. Input should be a simple search query string.",
		func(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
			query, _ := args["query"].(string)
			if query == "" {
				return map[string]interface{}{"error": "no query provided"}, nil
			}

			text, err := provider.Search(ctx, query)
			if err != nil {
				return map[string]interface{}{
					"error": fmt.Sprintf("search failed: %v", err),
				}, nil
			}

			return map[string]interface{}{"result": text}, nil
		})
}
