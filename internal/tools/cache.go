package tools

import (
	"context"
	"strings"
	"time"

	"minerva/internal/adapters/redis"
	"minerva/pkg/errors"
	"minerva/pkg/logger"
)

// CachedQuoteProvider is a read-through cache over a QuoteProvider. Several
// roles in one pipeline fetch the same ticker back to back; a short TTL keeps
// those fetches cheap without serving stale quotes across runs.
type CachedQuoteProvider struct {
	inner QuoteProvider
	cache *redis.Client
	ttl   time.Duration
	log   *logger.Logger
}

// NewCachedQuoteProvider decorates a QuoteProvider with Redis caching.
func NewCachedQuoteProvider(inner QuoteProvider, cache *redis.Client, ttl time.Duration) *CachedQuoteProvider {
	if ttl <= 0 {
		ttl = 3 * time.Minute
	}

	return &CachedQuoteProvider{
		inner: inner,
		cache: cache,
		ttl:   ttl,
		log:   logger.Get().With("component", "quote_cache"),
	}
}

// StockData returns cached market data when fresh, otherwise fetches from the
// inner provider and stores the result. Cache failures degrade to a direct
// fetch.
func (p *CachedQuoteProvider) StockData(ctx context.Context, ticker string) (map[string]interface{}, error) {
	key := cacheKey(ticker)

	var cached map[string]interface{}
	err := p.cache.Get(ctx, key, &cached)
	if err == nil {
		p.log.Debugw("Quote cache hit", "ticker", ticker)
		return cached, nil
	}
	if !errors.Is(err, redis.ErrCacheMiss) {
		p.log.Warnw("Quote cache read failed", "ticker", ticker, "error", err)
	}

	data, err := p.inner.StockData(ctx, ticker)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, key, data, p.ttl); err != nil {
		p.log.Warnw("Quote cache write failed", "ticker", ticker, "error", err)
	}

	return data, nil
}

func cacheKey(ticker string) string {
	return "quote:" + strings.ToUpper(ticker)
}
