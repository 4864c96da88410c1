package agents

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minerva/internal/adapters/ai"
	"minerva/internal/tools"
	"minerva/pkg/errors"
	"minerva/pkg/logger"
)

// fakeChatClient records every request and answers via a configurable
// handler.
type fakeChatClient struct {
	mu       sync.Mutex
	requests []ai.ChatRequest
	handler  func(req ai.ChatRequest) (*ai.ChatResponse, error)
}

func (f *fakeChatClient) Chat(ctx context.Context, req ai.ChatRequest) (*ai.ChatResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.handler != nil {
		return f.handler(req)
	}
	return &ai.ChatResponse{
		Content: `{"summary": "ok"}`,
		Usage:   ai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}, nil
}

func (f *fakeChatClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeChatClient) request(i int) ai.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[i]
}

type fakeQuoteProvider struct {
	data map[string]interface{}
	err  error
}

func (f *fakeQuoteProvider) StockData(ctx context.Context, ticker string) (map[string]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

type fakeMetricsProvider struct {
	data map[string]interface{}
	err  error
}

func (f *fakeMetricsProvider) FinancialMetrics(ctx context.Context, ticker string) (map[string]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

type fakeSearchProvider struct {
	result string
	err    error
}

func (f *fakeSearchProvider) Search(ctx context.Context, query string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}

func testRegistry(quotes tools.QuoteProvider) *tools.Registry {
	registry := tools.NewRegistry()
	registry.Register(tools.ToolStockData, tools.NewStockDataTool(quotes))
	registry.Register(tools.ToolFinancialMetrics, tools.NewFinancialMetricsTool(&fakeMetricsProvider{
		data: map[string]interface{}{"profitability": map[string]interface{}{"roe": 0.35}},
	}))
	registry.Register(tools.ToolSearch, tools.NewSearchTool(&fakeSearchProvider{result: "recent headlines"}))
	return registry
}

func quietRetry() RetryPolicy {
	p := DefaultRetryPolicy()
	p.MinBackoff = time.Millisecond
	p.MaxBackoff = time.Millisecond
	return p
}

func newTestAgent(role AnalysisRole, client ai.ChatClient, registry *tools.Registry, progress *ProgressChannel) *Agent {
	return NewAgent(DefaultRoleConfigs[role], AgentParams{
		Client:      client,
		Registry:    registry,
		Progress:    progress,
		Retry:       quietRetry(),
		Logger:      logger.NewNop(),
		Model:       "gpt-4o",
		Temperature: 0.7,
		MaxTokens:   1024,
	})
}

func TestAgent_ExecutePublishesLifecycleEvents(t *testing.T) {
	client := &fakeChatClient{}
	progress := NewProgressChannel()
	registry := testRegistry(&fakeQuoteProvider{data: map[string]interface{}{"current_price": 187.5}})
	agent := newTestAgent(RoleTechnicalAnalyst, client, registry, progress)

	task, err := NewTask(RoleTechnicalAnalyst, "AAPL")
	require.NoError(t, err)

	output, err := agent.Execute(context.Background(), task)
	require.NoError(t, err)
	require.NotNil(t, output)
	assert.True(t, output.IsStructured())
	assert.Equal(t, 15, output.Usage.TotalTokens)

	events := progress.DrainAll()
	require.GreaterOrEqual(t, len(events), 3)
	assert.Equal(t, StatusStart, events[0].Status)
	assert.Equal(t, StatusProgress, events[1].Status)
	last := events[len(events)-1]
	assert.Equal(t, StatusComplete, last.Status)
	assert.Equal(t, map[string]interface{}{"summary": "ok"}, last.Result)
}

func TestAgent_PromptCarriesToolDataAndContext(t *testing.T) {
	client := &fakeChatClient{}
	progress := NewProgressChannel()
	registry := testRegistry(&fakeQuoteProvider{data: map[string]interface{}{"current_price": 42.0}})
	agent := newTestAgent(RoleTechnicalAnalyst, client, registry, progress)

	task, err := NewTask(RoleTechnicalAnalyst, "AAPL")
	require.NoError(t, err)
	task.Context = "## Market Intelligence Officer (market_researcher)\nstrong demand"

	_, err = agent.Execute(context.Background(), task)
	require.NoError(t, err)

	req := client.request(0)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, ai.RoleSystem, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, DefaultRoleConfigs[RoleTechnicalAnalyst].Goal)

	user := req.Messages[1].Content
	assert.Contains(t, user, "Previous analysis:")
	assert.Contains(t, user, "strong demand")
	assert.Contains(t, user, "Tool data:")
	assert.Contains(t, user, "current_price")
	assert.Contains(t, user, "Expected output:")
}

func TestAgent_ToolFailureDegradesIntoPrompt(t *testing.T) {
	client := &fakeChatClient{}
	progress := NewProgressChannel()
	registry := testRegistry(&fakeQuoteProvider{err: errors.New("yahoo unavailable")})
	agent := newTestAgent(RoleTechnicalAnalyst, client, registry, progress)

	task, err := NewTask(RoleTechnicalAnalyst, "AAPL")
	require.NoError(t, err)

	_, err = agent.Execute(context.Background(), task)
	require.NoError(t, err)

	user := client.request(0).Messages[1].Content
	assert.Contains(t, user, "failed to fetch stock data")
	assert.Contains(t, user, "yahoo unavailable")
}

func TestAgent_MissingToolDegradesIntoPrompt(t *testing.T) {
	client := &fakeChatClient{}
	progress := NewProgressChannel()
	agent := newTestAgent(RoleTechnicalAnalyst, client, tools.NewRegistry(), progress)

	task, err := NewTask(RoleTechnicalAnalyst, "AAPL")
	require.NoError(t, err)

	_, err = agent.Execute(context.Background(), task)
	require.NoError(t, err)

	user := client.request(0).Messages[1].Content
	assert.Contains(t, user, "tool stock_data is not available")
}

func TestAgent_RetriesTransientModelFailures(t *testing.T) {
	calls := 0
	client := &fakeChatClient{handler: func(req ai.ChatRequest) (*ai.ChatResponse, error) {
		calls++
		if calls < 3 {
			return nil, errors.Wrap(errors.ErrModelConnection, "connection reset")
		}
		return &ai.ChatResponse{Content: "recovered"}, nil
	}}
	progress := NewProgressChannel()
	registry := testRegistry(&fakeQuoteProvider{data: map[string]interface{}{}})
	agent := newTestAgent(RoleTechnicalAnalyst, client, registry, progress)

	task, err := NewTask(RoleTechnicalAnalyst, "AAPL")
	require.NoError(t, err)

	output, err := agent.Execute(context.Background(), task)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, "recovered", output.Raw)

	retriesReported := 0
	for _, event := range progress.DrainAll() {
		if event.Status == StatusProgress && event.Message != "Analyzing data..." {
			retriesReported++
		}
	}
	assert.Equal(t, 2, retriesReported)
}

func TestAgent_NonTransientFailurePublishesErrorEvent(t *testing.T) {
	client := &fakeChatClient{handler: func(req ai.ChatRequest) (*ai.ChatResponse, error) {
		return nil, errors.Wrap(errors.ErrModelResponse, "empty choices")
	}}
	progress := NewProgressChannel()
	registry := testRegistry(&fakeQuoteProvider{data: map[string]interface{}{}})
	agent := newTestAgent(RoleTechnicalAnalyst, client, registry, progress)

	task, err := NewTask(RoleTechnicalAnalyst, "AAPL")
	require.NoError(t, err)

	output, err := agent.Execute(context.Background(), task)
	require.Error(t, err)
	assert.Nil(t, output)
	assert.Equal(t, 1, client.callCount())
	assert.ErrorIs(t, err, errors.ErrModelResponse)

	events := progress.DrainAll()
	last := events[len(events)-1]
	assert.Equal(t, StatusProgress, last.Status)
	assert.Contains(t, last.Message, "Task failed")
	assert.Contains(t, last.Message, "empty choices")
}
