// Package minerva assembles the multi-analyst equity research pipeline from
// configuration: model client, capability tools, optional quote caching and
// error tracking, and the crew that orchestrates the analysis.
package minerva

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"minerva/internal/adapters/ai"
	"minerva/internal/adapters/config"
	"minerva/internal/adapters/errors/noop"
	"minerva/internal/adapters/errors/sentry"
	adapterredis "minerva/internal/adapters/redis"
	"minerva/internal/agents"
	"minerva/internal/metrics"
	"minerva/internal/tools"
	"minerva/pkg/errors"
	"minerva/pkg/logger"
)

// Providers supplies the market-data capabilities the analysis tools wrap.
// Quotes is required; the others are optional and their tools are simply
// not registered when absent.
type Providers struct {
	Quotes           tools.QuoteProvider
	FinancialMetrics tools.FinancialMetricsProvider
	Search           tools.SearchProvider
}

// Engine is the wired analysis pipeline plus the resources it owns.
type Engine struct {
	Crew    *agents.MarketAnalysisCrew
	Tracker errors.Tracker

	cache *adapterredis.Client
	log   *logger.Logger
}

// NewEngine wires an analysis engine from configuration. Optional crew
// options (lite mode, overrides) are applied after config-derived ones.
func NewEngine(cfg *config.Config, providers Providers, reg prometheus.Registerer, opts ...agents.CrewOption) (*Engine, error) {
	if cfg == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "config is required")
	}
	if providers.Quotes == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "quote provider is required")
	}

	log := logger.Get().With("component", "engine")

	client, err := ai.NewOpenAIClient(ai.OpenAIConfig{
		APIKey:       cfg.AI.OpenAIKey,
		Timeout:      cfg.AI.RequestTimeout,
		ReqPerMinute: cfg.AI.ReqPerMinute,
	})
	if err != nil {
		return nil, err
	}

	engine := &Engine{log: log}

	quotes := providers.Quotes
	if cfg.MarketData.CacheEnabled {
		cache, err := adapterredis.NewClient(cfg.Redis)
		if err != nil {
			return nil, errors.Wrap(err, "connect quote cache")
		}
		engine.cache = cache
		quotes = tools.NewCachedQuoteProvider(quotes, cache, cfg.MarketData.CacheTTL)
		log.Infow("quote caching enabled", "ttl", cfg.MarketData.CacheTTL)
	}

	registry := tools.NewRegistry()
	registry.Register(tools.ToolStockData, tools.NewStockDataTool(quotes))
	if providers.FinancialMetrics != nil {
		registry.Register(tools.ToolFinancialMetrics, tools.NewFinancialMetricsTool(providers.FinancialMetrics))
	}
	if providers.Search != nil {
		registry.Register(tools.ToolSearch, tools.NewSearchTool(providers.Search))
	}

	if cfg.ErrorTracking.Enabled && cfg.ErrorTracking.SentryDSN != "" {
		tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.App.Env)
		if err != nil {
			return nil, errors.Wrap(err, "init error tracking")
		}
		engine.Tracker = tracker
	} else {
		engine.Tracker = noop.New()
	}

	crewOpts := []agents.CrewOption{
		agents.WithModel(cfg.AI.Model),
		agents.WithTemperature(cfg.AI.Temperature),
		agents.WithMaxTokens(cfg.AI.MaxTokens),
		agents.WithQuoteProvider(quotes),
		agents.WithTracker(engine.Tracker),
	}
	if reg != nil {
		crewOpts = append(crewOpts, agents.WithRecorder(metrics.NewRecorder(reg)))
	}
	crewOpts = append(crewOpts, opts...)

	engine.Crew = agents.NewMarketAnalysisCrew(client, registry, crewOpts...)
	return engine, nil
}

// Analyze runs the full pipeline for a ticker.
func (e *Engine) Analyze(ctx context.Context, ticker string) *agents.AnalysisResult {
	return e.Crew.Analyze(ctx, ticker)
}

// Progress exposes the crew's progress channel for draining during a run.
func (e *Engine) Progress() *agents.ProgressChannel {
	return e.Crew.Progress()
}

// Close releases engine-owned resources and flushes pending error reports.
func (e *Engine) Close(ctx context.Context) error {
	if e.Tracker != nil {
		_ = e.Tracker.Flush(ctx)
	}
	if e.cache != nil {
		return e.cache.Close()
	}
	return nil
}
