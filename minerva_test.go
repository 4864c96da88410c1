package minerva

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minerva/internal/adapters/config"
	"minerva/internal/adapters/errors/noop"
	"minerva/internal/agents"
)

type staticQuotes struct{}

func (staticQuotes) StockData(ctx context.Context, ticker string) (map[string]interface{}, error) {
	return map[string]interface{}{"current_price": 100.0}, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Setenv("OPENAI_API_KEY", "test-key")
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestNewEngine_WiresCrew(t *testing.T) {
	engine, err := NewEngine(testConfig(t), Providers{Quotes: staticQuotes{}}, nil)
	require.NoError(t, err)
	defer engine.Close(context.Background())

	require.NotNil(t, engine.Crew)
	assert.IsType(t, &noop.Tracker{}, engine.Tracker)
	assert.Equal(t, agents.PipelineRoles, engine.Crew.Roles())
	assert.NotNil(t, engine.Progress())
}

func TestNewEngine_LiteOption(t *testing.T) {
	engine, err := NewEngine(testConfig(t), Providers{Quotes: staticQuotes{}}, nil, agents.WithLitePipeline())
	require.NoError(t, err)
	defer engine.Close(context.Background())

	assert.Equal(t, agents.LiteRoles, engine.Crew.Roles())
}

func TestNewEngine_RequiresQuoteProvider(t *testing.T) {
	_, err := NewEngine(testConfig(t), Providers{}, nil)
	assert.Error(t, err)
}

func TestNewEngine_RequiresConfig(t *testing.T) {
	_, err := NewEngine(nil, Providers{Quotes: staticQuotes{}}, nil)
	assert.Error(t, err)
}

func TestNewEngine_RequiresAPIKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.AI.OpenAIKey = ""

	_, err := NewEngine(cfg, Providers{Quotes: staticQuotes{}}, nil)
	assert.Error(t, err)
}
