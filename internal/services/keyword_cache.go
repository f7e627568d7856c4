package services

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeywordCache stores extracted keyword lists by text.
type KeywordCache interface {
	Get(ctx context.Context, key string) ([]string, bool)
	Set(ctx context.Context, key string, keywords []string)
}

type redisKeywordCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisKeywordCache connects to redisURL and pings it once.
func NewRedisKeywordCache(redisURL string, ttl time.Duration) (KeywordCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}

	return &redisKeywordCache{rdb: rdb, ttl: ttl}, nil
}

func (c *redisKeywordCache) Get(ctx context.Context, key string) ([]string, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("⚠️  Keyword cache read failed: %v\n", err)
		}
		return nil, false
	}

	var keywords []string
	if err := json.Unmarshal(data, &keywords); err != nil {
		return nil, false
	}
	return keywords, true
}

func (c *redisKeywordCache) Set(ctx context.Context, key string, keywords []string) {
	data, err := json.Marshal(keywords)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("⚠️  Keyword cache write failed: %v\n", err)
	}
}

// cachedOracle serves ExtractKeywords from a cache and passes everything else through.
type cachedOracle struct {
	Oracle
	cache     KeywordCache
	namespace string
}

// NewCachedOracle wraps next so identical texts are sent to the model once.
// namespace should identify the model so a provider switch starts cold.
func NewCachedOracle(next Oracle, cache KeywordCache, namespace string) Oracle {
	return &cachedOracle{Oracle: next, cache: cache, namespace: namespace}
}

func (c *cachedOracle) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	key := keywordCacheKey(c.namespace, text)

	if keywords, ok := c.cache.Get(ctx, key); ok {
		metrics.KeywordCacheHits.Add(1)
		return keywords, nil
	}
	metrics.KeywordCacheMisses.Add(1)

	keywords, err := c.Oracle.ExtractKeywords(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Set(ctx, key, keywords)
	return keywords, nil
}

var _ Oracle = (*cachedOracle)(nil)

func keywordCacheKey(namespace, text string) string {
	hash := sha256.Sum256([]byte(namespace + "|" + text))
	return fmt.Sprintf("ats:kw:%x", hash[:16])
}
