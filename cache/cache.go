// Package cache memoizes search hits in Redis.
//
// Entries are keyed by the index fingerprint and a hash of the raw input,
// so rebuilding the index invalidates every cached result without a flush.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/jonwraymond/docsearch/search"
)

// Defaults applied by New.
const (
	DefaultKeyPrefix = "docsearch:"
	DefaultTTL       = 5 * time.Minute
)

// Options configures a CachedSearcher.
type Options struct {
	// Namespace separates entries of different indexes, usually the index
	// fingerprint.
	Namespace string

	// KeyPrefix starts every key. Default: "docsearch:"
	KeyPrefix string

	// TTL bounds entry lifetime. Default: 5m
	TTL time.Duration

	// CacheTotal counts lookups by label "result" (hit / miss). Optional.
	CacheTotal *prometheus.CounterVec

	// Logger receives store failures. Default: zap.NewNop()
	Logger *zap.Logger
}

// CachedSearcher is a search.Searcher decorator backed by a Store.
// Store failures degrade to calling the inner searcher.
type CachedSearcher struct {
	inner      search.Searcher
	store      Store
	prefix     string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

var _ search.Searcher = (*CachedSearcher)(nil)

// New creates a caching decorator around inner.
func New(inner search.Searcher, s Store, opts Options) *CachedSearcher {
	c := &CachedSearcher{
		inner:      inner,
		store:      s,
		prefix:     opts.KeyPrefix,
		ttl:        opts.TTL,
		cacheTotal: opts.CacheTotal,
		logger:     opts.Logger,
	}
	if c.prefix == "" {
		c.prefix = DefaultKeyPrefix
	}
	if opts.Namespace != "" {
		c.prefix += opts.Namespace + ":"
	}
	if c.ttl <= 0 {
		c.ttl = DefaultTTL
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Search returns cached hits for input or computes and stores them.
// Errors from the inner searcher are returned unchanged and never cached.
func (c *CachedSearcher) Search(ctx context.Context, input string) ([]search.Hit, error) {
	key := c.Key(input)

	if hits, ok := c.get(ctx, key); ok {
		c.incCache("hit")
		return hits, nil
	}
	c.incCache("miss")

	hits, err := c.inner.Search(ctx, input)
	if err != nil {
		return nil, err
	}

	c.put(ctx, key, hits)
	return hits, nil
}

// Key returns the store key for input.
func (c *CachedSearcher) Key(input string) string {
	h := sha256.Sum256([]byte(input))
	return c.prefix + "hits:" + hex.EncodeToString(h[:])
}

func (c *CachedSearcher) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedSearcher) get(ctx context.Context, key string) ([]search.Hit, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.logger.Warn("Failed to get cached hits", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	hits, err := decodeHits(data)
	if err != nil {
		c.logger.Warn("Failed to parse cached hits", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return hits, true
}

func (c *CachedSearcher) put(ctx context.Context, key string, hits []search.Hit) {
	data, err := json.Marshal(hits)
	if err != nil {
		c.logger.Warn("Failed to encode hits", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache hits", zap.String("key", key), zap.Error(err))
	}
}

func decodeHits(data []byte) ([]search.Hit, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty cache entry")
	}
	var hits []search.Hit
	if err := json.Unmarshal(data, &hits); err != nil {
		return nil, fmt.Errorf("decode cached hits: %w", err)
	}
	if hits == nil {
		hits = []search.Hit{}
	}
	return hits, nil
}
