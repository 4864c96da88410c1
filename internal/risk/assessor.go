// Package risk derives numeric risk metrics from a closing price series.
// Everything here is a pure function of its inputs; the assessor never
// performs I/O and is recomputed per analysis run.
package risk

import (
	"math"
	"sort"

	"minerva/pkg/errors"
)

// TradingPeriodsPerYear is the annualization factor base (daily bars).
const TradingPeriodsPerYear = 252

// DefaultRiskFreeRate is the annual risk-free rate used for Sharpe.
const DefaultRiskFreeRate = 0.05

// Tier classifies overall volatility exposure.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Metrics is the numeric risk profile of a price series.
type Metrics struct {
	Volatility  float64  `json:"volatility"`
	ValueAtRisk float64  `json:"value_at_risk"`
	SharpeRatio float64  `json:"sharpe_ratio"`
	Beta        *float64 `json:"beta,omitempty"`
	RiskTier    Tier     `json:"risk_tier"`
}

// Option adjusts assessment parameters.
type Option func(*options)

type options struct {
	riskFreeRate float64
	beta         *float64
}

// WithRiskFreeRate overrides the annual risk-free rate.
func WithRiskFreeRate(rate float64) Option {
	return func(o *options) { o.riskFreeRate = rate }
}

// WithBeta attaches an externally sourced beta. Beta is never computed
// locally; it passes through from the market-data provider when available.
func WithBeta(beta float64) Option {
	return func(o *options) {
		b := beta
		o.beta = &b
	}
}

// Assess computes volatility, value at risk and Sharpe ratio from a
// chronological closing price series. Fewer than two prices cannot produce a
// return distribution and yield ErrInsufficientData.
func Assess(prices []float64, opts ...Option) (*Metrics, error) {
	if len(prices) < 2 {
		return nil, errors.Wrapf(errors.ErrInsufficientData,
			"need at least 2 price points, got %d", len(prices))
	}

	o := options{riskFreeRate: DefaultRiskFreeRate}
	for _, opt := range opts {
		opt(&o)
	}

	returns := periodReturns(prices)

	sd := stddev(returns)
	volatility := sd * math.Sqrt(TradingPeriodsPerYear)

	var sharpe float64
	if sd > 0 {
		perPeriodRF := o.riskFreeRate / TradingPeriodsPerYear
		sharpe = math.Sqrt(TradingPeriodsPerYear) * (mean(returns) - perPeriodRF) / sd
	}

	return &Metrics{
		Volatility:  volatility,
		ValueAtRisk: percentile(returns, 0.05),
		SharpeRatio: sharpe,
		Beta:        o.beta,
		RiskTier:    ClassifyTier(volatility),
	}, nil
}

// ClassifyTier maps annualized volatility onto a risk tier. Thresholds are
// strict: exactly 0.30 is medium, exactly 0.15 is low.
func ClassifyTier(volatility float64) Tier {
	switch {
	case volatility > 0.30:
		return TierHigh
	case volatility > 0.15:
		return TierMedium
	default:
		return TierLow
	}
}

func periodReturns(prices []float64) []float64 {
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}
	return returns
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	variance := 0.0
	for _, v := range values {
		diff := v - m
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

// percentile returns the p-th quantile (0..1) of values with linear
// interpolation between adjacent order statistics.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}

	frac := rank - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}
