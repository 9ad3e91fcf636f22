package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/resumematcher/resume-search/internal/logger"
	"github.com/resumematcher/resume-search/services"
)

const keyPrefix = "resume-search:"

// Counter is notified of cache hits and misses.
type Counter interface {
	CacheHit()
	CacheMiss()
}

// CachedEngine decorates a services.SearchEngine with a read-through result
// cache. Only successful results are stored. Keys include the index
// generation, so entries from before a reload are never read again and simply
// expire.
type CachedEngine struct {
	inner   services.SearchEngine
	store   Store
	ttl     time.Duration
	counter Counter
	group   singleflight.Group
	log     *slog.Logger
}

// NewCachedEngine wraps inner. counter may be nil.
func NewCachedEngine(inner services.SearchEngine, store Store, ttl time.Duration, counter Counter) *CachedEngine {
	return &CachedEngine{
		inner:   inner,
		store:   store,
		ttl:     ttl,
		counter: counter,
		log:     logger.WithComponent("cache"),
	}
}

func (c *CachedEngine) Load(ctx context.Context, dir string) (services.LoadStats, error) {
	return c.inner.Load(ctx, dir)
}

func (c *CachedEngine) Stats() services.IndexStats {
	return c.inner.Stats()
}

func (c *CachedEngine) Search(ctx context.Context, query string) (services.SearchResult, error) {
	return c.getOrCompute(ctx, services.SearchTypePlain, query, nil, func() (services.SearchResult, error) {
		return c.inner.Search(ctx, query)
	})
}

func (c *CachedEngine) RefineSearch(ctx context.Context, query string, relevantIDs []string) (services.SearchResult, error) {
	return c.getOrCompute(ctx, services.SearchTypeRefine, query, relevantIDs, func() (services.SearchResult, error) {
		return c.inner.RefineSearch(ctx, query, relevantIDs)
	})
}

func (c *CachedEngine) TolerantSearch(ctx context.Context, query string) (services.SearchResult, error) {
	return c.getOrCompute(ctx, services.SearchTypeTolerant, query, nil, func() (services.SearchResult, error) {
		return c.inner.TolerantSearch(ctx, query)
	})
}

func (c *CachedEngine) getOrCompute(ctx context.Context, searchType services.SearchType, query string,
	relevantIDs []string, compute func() (services.SearchResult, error)) (services.SearchResult, error) {
	stats := c.inner.Stats()
	if !stats.Loaded {
		return compute()
	}

	key := buildKey(stats.Generation, searchType, query, relevantIDs)
	if result, ok := c.get(ctx, key); ok {
		c.hit()
		return fresh(result, query), nil
	}
	c.miss()

	v, err, _ := c.group.Do(key, func() (any, error) {
		result, err := compute()
		if err != nil {
			return services.SearchResult{}, err
		}
		c.set(ctx, key, result)
		return result, nil
	})
	if err != nil {
		return services.SearchResult{}, err
	}
	return fresh(v.(services.SearchResult), query), nil
}

func (c *CachedEngine) get(ctx context.Context, key string) (services.SearchResult, bool) {
	data, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Error("cache get failed", "key", key, "error", err)
		return services.SearchResult{}, false
	}
	if !found {
		return services.SearchResult{}, false
	}
	var result services.SearchResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		c.log.Error("cache unmarshal failed", "key", key, "error", err)
		return services.SearchResult{}, false
	}
	return result, true
}

func (c *CachedEngine) set(ctx context.Context, key string, result services.SearchResult) {
	data, err := json.Marshal(result)
	if err != nil {
		c.log.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.store.Set(ctx, key, string(data), c.ttl); err != nil {
		c.log.Error("cache set failed", "key", key, "error", err)
	}
}

func (c *CachedEngine) hit() {
	if c.counter != nil {
		c.counter.CacheHit()
	}
}

func (c *CachedEngine) miss() {
	if c.counter != nil {
		c.counter.CacheMiss()
	}
}

// fresh stamps a shared or cached result with the caller's query text and a
// new query ID.
func fresh(result services.SearchResult, query string) services.SearchResult {
	result.Query = query
	result.QueryId = uuid.NewString()
	return result
}

// cacheKeyFields is hashed as JSON so that separators inside queries or
// document IDs cannot make two requests share a key.
type cacheKeyFields struct {
	Generation  uint64              `json:"g"`
	Type        services.SearchType `json:"t"`
	Query       string              `json:"q"`
	RelevantIDs []string            `json:"r"`
}

func buildKey(generation uint64, searchType services.SearchType, query string, relevantIDs []string) string {
	ids := append([]string(nil), relevantIDs...)
	sort.Strings(ids)
	raw, _ := json.Marshal(cacheKeyFields{
		Generation:  generation,
		Type:        searchType,
		Query:       strings.Join(strings.Fields(strings.ToLower(query)), " "),
		RelevantIDs: slices.Compact(ids),
	})
	hash := sha256.Sum256(raw)
	return fmt.Sprintf("%s%d:%x", keyPrefix, generation, hash[:16])
}
