package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + float64(i%9) - float64(i%4)
	}
	return closes
}

func TestSnapshot_TooShort(t *testing.T) {
	assert.Nil(t, Snapshot(nil))
	assert.Nil(t, Snapshot(series(5)))
	assert.Nil(t, Snapshot(series(rsiPeriod)))
}

func TestSnapshot_RSIOnly(t *testing.T) {
	// Long enough for RSI but not for MACD or the short SMA.
	snapshot := Snapshot(series(16))

	require.NotNil(t, snapshot)
	assert.Contains(t, snapshot, "rsi_14")
	assert.NotContains(t, snapshot, "macd")
	assert.NotContains(t, snapshot, "sma_20")
	assert.NotContains(t, snapshot, "sma_50")
}

func TestSnapshot_FullSet(t *testing.T) {
	snapshot := Snapshot(series(120))

	require.NotNil(t, snapshot)
	for _, key := range []string{"rsi_14", "macd", "macd_signal", "macd_histogram", "sma_20", "sma_50"} {
		assert.Contains(t, snapshot, key)
	}

	rsi, ok := snapshot["rsi_14"].(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, rsi, 0.0)
	assert.LessOrEqual(t, rsi, 100.0)
}
