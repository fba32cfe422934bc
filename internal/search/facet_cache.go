package search

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// FacetCache memoizes parsed search facets in Redis keyed by the normalized
// query text, so repeated natural-language queries skip the external parser
// round trip. All failures degrade to a cache miss.
type FacetCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewFacetCache builds a cache. A nil client disables caching entirely.
func NewFacetCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *FacetCache {
	return &FacetCache{client: client, ttl: ttl, logger: logger}
}

// Get returns cached facets for the query, if present.
func (c *FacetCache) Get(ctx context.Context, query string) (Facets, bool) {
	if c == nil || c.client == nil {
		return Facets{}, false
	}
	raw, err := c.client.Get(ctx, cacheKey(query)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("facet cache read failed", zap.Error(err))
		}
		return Facets{}, false
	}
	var facets Facets
	if err := json.Unmarshal(raw, &facets); err != nil {
		c.logger.Warn("facet cache entry malformed", zap.Error(err))
		return Facets{}, false
	}
	return facets.Normalize(), true
}

// Put stores parsed facets for the query.
func (c *FacetCache) Put(ctx context.Context, query string, facets Facets) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(facets)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(query), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("facet cache write failed", zap.Error(err))
	}
}

func cacheKey(query string) string {
	return "triage:facets:" + strings.ToLower(strings.Join(strings.Fields(query), " "))
}
