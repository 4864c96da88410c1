package indicators

import (
	"github.com/markcheno/go-talib"
)

// Default lookback periods for the indicator snapshot embedded into the
// stock_data tool payload.
const (
	rsiPeriod        = 14
	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9
	smaShortPeriod   = 20
	smaLongPeriod    = 50
)

// Snapshot computes a compact technical-indicator view of a closing price
// series. Indicators whose lookback exceeds the series length are omitted.
// Returns nil when the series is too short for any indicator.
func Snapshot(closes []float64) map[string]interface{} {
	if len(closes) <= rsiPeriod {
		return nil
	}

	out := make(map[string]interface{})

	rsi := talib.Rsi(closes, rsiPeriod)
	if v, ok := last(rsi); ok {
		out["rsi_14"] = v
	}

	if len(closes) > macdSlowPeriod+macdSignalPeriod {
		macd, signal, hist := talib.Macd(closes, macdFastPeriod, macdSlowPeriod, macdSignalPeriod)
		if v, ok := last(macd); ok {
			out["macd"] = v
		}
		if v, ok := last(signal); ok {
			out["macd_signal"] = v
		}
		if v, ok := last(hist); ok {
			out["macd_histogram"] = v
		}
	}

	if len(closes) >= smaShortPeriod {
		if v, ok := last(talib.Sma(closes, smaShortPeriod)); ok {
			out["sma_20"] = v
		}
	}
	if len(closes) >= smaLongPeriod {
		if v, ok := last(talib.Sma(closes, smaLongPeriod)); ok {
			out["sma_50"] = v
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// last returns the final non-zero-indexed value of a talib output series.
// talib pads the warm-up region with zeros, so an all-zero series means the
// indicator never produced a value.
func last(series []float64) (float64, bool) {
	if len(series) == 0 {
		return 0, false
	}
	return series[len(series)-1], true
}
