package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"minerva/internal/adapters/ai"
	"minerva/internal/metrics"
	"minerva/internal/risk"
	"minerva/internal/tools"
	"minerva/pkg/errors"
	"minerva/pkg/logger"
)

// MarketAnalysisCrew runs the sequential multi-analyst pipeline for one
// ticker at a time. Each analyst receives the accumulated conclusions of
// every analyst before it; the last role synthesizes the final strategy.
type MarketAnalysisCrew struct {
	roles    []AnalysisRole
	configs  map[AnalysisRole]RoleConfig
	client   ai.ChatClient
	registry *tools.Registry
	quotes   tools.QuoteProvider
	progress *ProgressChannel
	retry    RetryPolicy
	recorder *metrics.Recorder
	tracker  errors.Tracker
	log      *logger.Logger

	model        string
	temperature  float64
	maxTokens    int
	riskFreeRate float64
}

// CrewOption customizes crew construction.
type CrewOption func(*MarketAnalysisCrew)

// WithLitePipeline drops the dedicated risk analyst, leaving four roles.
// Quantitative risk metrics are still computed.
func WithLitePipeline() CrewOption {
	return func(c *MarketAnalysisCrew) { c.roles = LiteRoles }
}

// WithModel overrides the model used for every agent.
func WithModel(model string) CrewOption {
	return func(c *MarketAnalysisCrew) { c.model = model }
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float64) CrewOption {
	return func(c *MarketAnalysisCrew) { c.temperature = t }
}

// WithMaxTokens overrides the per-call completion budget.
func WithMaxTokens(n int) CrewOption {
	return func(c *MarketAnalysisCrew) { c.maxTokens = n }
}

// WithRetryPolicy overrides the model-call retry behavior.
func WithRetryPolicy(p RetryPolicy) CrewOption {
	return func(c *MarketAnalysisCrew) { c.retry = p }
}

// WithQuoteProvider supplies the market-data source used for quantitative
// risk metrics. Without it the result carries no risk metrics section.
func WithQuoteProvider(p tools.QuoteProvider) CrewOption {
	return func(c *MarketAnalysisCrew) { c.quotes = p }
}

// WithRiskFreeRate overrides the annual risk-free rate used for the Sharpe
// ratio.
func WithRiskFreeRate(rate float64) CrewOption {
	return func(c *MarketAnalysisCrew) { c.riskFreeRate = rate }
}

// WithRecorder attaches pipeline metrics.
func WithRecorder(r *metrics.Recorder) CrewOption {
	return func(c *MarketAnalysisCrew) { c.recorder = r }
}

// WithTracker attaches an error tracker for run failures.
func WithTracker(t errors.Tracker) CrewOption {
	return func(c *MarketAnalysisCrew) { c.tracker = t }
}

// WithLogger overrides the crew logger.
func WithLogger(l *logger.Logger) CrewOption {
	return func(c *MarketAnalysisCrew) { c.log = l }
}

// WithProgressChannel replaces the crew's progress channel, letting several
// consumers share one observer.
func WithProgressChannel(ch *ProgressChannel) CrewOption {
	return func(c *MarketAnalysisCrew) { c.progress = ch }
}

// NewMarketAnalysisCrew assembles the full five-role pipeline over the given
// model client and tool registry.
func NewMarketAnalysisCrew(client ai.ChatClient, registry *tools.Registry, opts ...CrewOption) *MarketAnalysisCrew {
	c := &MarketAnalysisCrew{
		roles:        PipelineRoles,
		configs:      DefaultRoleConfigs,
		client:       client,
		registry:     registry,
		progress:     NewProgressChannel(),
		retry:        DefaultRetryPolicy(),
		model:        "gpt-4o",
		temperature:  0.7,
		maxTokens:    4096,
		riskFreeRate: risk.DefaultRiskFreeRate,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.log == nil {
		c.log = logger.Get()
	}
	c.log = c.log.With("component", "market_analysis_crew")

	return c
}

// Progress exposes the crew's progress channel for draining during a run.
func (c *MarketAnalysisCrew) Progress() *ProgressChannel {
	return c.progress
}

// Roles returns the execution order of the configured pipeline.
func (c *MarketAnalysisCrew) Roles() []AnalysisRole {
	out := make([]AnalysisRole, len(c.roles))
	copy(out, c.roles)
	return out
}

// Analyze runs the pipeline for a ticker. It never returns an error or
// panics: total failures come back as a result whose Error field is set and
// whose analysis fields are empty.
func (c *MarketAnalysisCrew) Analyze(ctx context.Context, ticker string) (result *AnalysisResult) {
	runID := uuid.New().String()
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	defer func() {
		if r := recover(); r != nil {
			c.log.Errorw("analysis run panicked", "run_id", runID, "ticker", ticker, "panic", r)
			result = c.failedRun(ctx, runID, ticker, fmt.Errorf("analysis panicked: %v", r))
		}
	}()

	if ticker == "" {
		return c.failedRun(ctx, runID, ticker, errors.Wrap(errors.ErrInvalidInput, "no ticker provided"))
	}

	c.progress.Reset()
	c.log.Infow("starting analysis", "run_id", runID, "ticker", ticker, "roles", len(c.roles))
	started := time.Now()

	var (
		outputs      []*TaskOutput
		totalUsage   ai.Usage
		contextParts []string
	)

	for _, role := range c.roles {
		config, ok := c.configs[role]
		if !ok {
			return c.failedRun(ctx, runID, ticker, errors.Wrapf(errors.ErrNotFound, "no configuration for role %s", role))
		}

		task, err := NewTask(role, ticker)
		if err != nil {
			return c.failedRun(ctx, runID, ticker, err)
		}
		task.Context = strings.Join(contextParts, "\n\n")

		agent := NewAgent(config, AgentParams{
			Client:      c.client,
			Registry:    c.registry,
			Progress:    c.progress,
			Retry:       c.retry,
			Recorder:    c.recorder,
			Logger:      c.log,
			Model:       c.model,
			Temperature: c.temperature,
			MaxTokens:   c.maxTokens,
		})

		output, err := agent.Execute(ctx, task)
		if err != nil {
			return c.failedRun(ctx, runID, ticker, err)
		}

		outputs = append(outputs, output)
		totalUsage.Add(output.Usage)
		contextParts = append(contextParts, contextSection(config, output))
	}

	generatedAt := time.Now().UTC()
	terminal := outputs[len(outputs)-1]

	result = &AnalysisResult{
		RunID:       runID,
		Ticker:      ticker,
		Analysis:    finalAnalysis(terminal, generatedAt),
		Tasks:       outputs,
		RiskMetrics: c.riskMetrics(ctx, ticker),
		Usage:       totalUsage,
		GeneratedAt: generatedAt,
	}

	c.recorder.RunCompleted("success")
	c.log.Infow("analysis completed",
		"run_id", runID,
		"ticker", ticker,
		"duration", time.Since(started),
		"tokens", totalUsage.TotalTokens,
	)

	return result
}

// failedRun builds the terminal-failure result and records the run.
func (c *MarketAnalysisCrew) failedRun(ctx context.Context, runID, ticker string, err error) *AnalysisResult {
	c.log.Errorw("analysis failed", "run_id", runID, "ticker", ticker, "error", err)
	c.recorder.RunCompleted("error")
	if c.tracker != nil {
		_ = c.tracker.CaptureError(ctx, err, map[string]string{"run_id": runID, "ticker": ticker})
	}

	return &AnalysisResult{
		RunID:       runID,
		Ticker:      ticker,
		GeneratedAt: time.Now().UTC(),
		Error:       err.Error(),
	}
}

// riskMetrics fetches a fresh price series and computes the quantitative
// risk profile. Failures degrade to an error payload; they never fail the
// run.
func (c *MarketAnalysisCrew) riskMetrics(ctx context.Context, ticker string) map[string]interface{} {
	if c.quotes == nil {
		return nil
	}

	data, err := c.quotes.StockData(ctx, ticker)
	if err != nil {
		c.log.Warnw("risk metrics unavailable", "ticker", ticker, "error", err)
		return map[string]interface{}{"error": fmt.Sprintf("failed to fetch stock data: %v", err)}
	}

	prices := tools.FloatSeries(data["price_history"])
	opts := []risk.Option{risk.WithRiskFreeRate(c.riskFreeRate)}
	if beta, ok := data["beta"].(float64); ok {
		opts = append(opts, risk.WithBeta(beta))
	}

	m, err := risk.Assess(prices, opts...)
	if err != nil {
		c.log.Warnw("risk metrics unavailable", "ticker", ticker, "error", err)
		return map[string]interface{}{"error": err.Error()}
	}

	out := map[string]interface{}{
		"volatility":    m.Volatility,
		"value_at_risk": m.ValueAtRisk,
		"sharpe_ratio":  m.SharpeRatio,
		"risk_tier":     string(m.RiskTier),
	}
	if m.Beta != nil {
		out["beta"] = *m.Beta
	}

	return out
}

// contextSection renders one completed task for downstream prompts.
func contextSection(config RoleConfig, out *TaskOutput) string {
	body := out.Raw
	if out.IsStructured() {
		if encoded, err := json.MarshalIndent(out.Structured, "", "  "); err == nil {
			body = string(encoded)
		}
	}

	return fmt.Sprintf("## %s (%s)\n%s", config.Name, config.Role, body)
}
