package tools

import "context"

// Capability provider contracts. Implementations live outside the engine;
// the engine consumes them as opaque data sources that may fail or return
// partial data.

// QuoteProvider returns current market data for a ticker. The mapping is
// expected to carry at minimum: current_price, market_cap, volume, pe_ratio,
// dividend_yield, price_history, volume_history and dates (ISO strings),
// optionally beta.
type QuoteProvider interface {
	StockData(ctx context.Context, ticker string) (map[string]interface{}, error)
}

// FinancialMetricsProvider returns detailed ratios for a ticker, grouped as
// profitability, valuation, growth and financial_health. Individual ratios
// may be null.
type FinancialMetricsProvider interface {
	FinancialMetrics(ctx context.Context, ticker string) (map[string]interface{}, error)
}

// SearchProvider answers a free-text query with free text.
type SearchProvider interface {
	Search(ctx context.Context, query string) (string, error)
}

// Canonical tool names bound to role configurations.
const (
	ToolSearch           = "search"
	ToolStockData        = "stock_data"
	ToolFinancialMetrics = "financial_metrics"
)

// FloatSeries coerces a provider value into a []float64. Values arrive either
// as []float64 straight from a provider or as []interface{} after a JSON
// round-trip through the cache.
func FloatSeries(v interface{}) []float64 {
	switch s := v.(type) {
	case []float64:
		return s
	case []interface{}:
		out := make([]float64, 0, len(s))
		for _, item := range s {
			f, ok := item.(float64)
			if !ok {
				return nil
			}
			out = append(out, f)
		}
		return out
	default:
		return nil
	}
}
