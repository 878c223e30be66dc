package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"coliving_server/metrics"
	"coliving_server/models"
)

// RedisVectorCache stores feature vectors as JSON in Redis with a TTL tied
// to the attribute version in the key, so an edited profile never hits a
// stale vector.
type RedisVectorCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisVectorCache(client *redis.Client, ttl time.Duration) *RedisVectorCache {
	return &RedisVectorCache{Client: client, TTL: ttl}
}

func vectorCacheKey(profileID string, version int64) string {
	return fmt.Sprintf("featurevector:%s:%d", profileID, version)
}

func (c *RedisVectorCache) Get(ctx context.Context, profileID string, version int64) (*models.FeatureVector, error) {
	raw, err := c.Client.Get(ctx, vectorCacheKey(profileID, version)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.VectorCacheHits.WithLabelValues("miss").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("vector cache get failed: %w", err)
	}

	var vector models.FeatureVector
	if err := json.Unmarshal([]byte(raw), &vector); err != nil {
		// A corrupt entry behaves as a miss; the extractor rewrites it.
		metrics.VectorCacheHits.WithLabelValues("miss").Inc()
		return nil, nil
	}
	metrics.VectorCacheHits.WithLabelValues("hit").Inc()
	return &vector, nil
}

func (c *RedisVectorCache) Set(ctx context.Context, vector *models.FeatureVector) error {
	raw, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("vector cache marshal failed: %w", err)
	}
	key := vectorCacheKey(vector.ProfileID, vector.Version)
	if err := c.Client.Set(ctx, key, raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("vector cache set failed: %w", err)
	}
	return nil
}

// MemoryVectorCache is a map-backed VectorCache for tests and local runs
// without Redis.
type MemoryVectorCache struct {
	mu      sync.RWMutex
	vectors map[string]models.FeatureVector
}

func NewMemoryVectorCache() *MemoryVectorCache {
	return &MemoryVectorCache{vectors: make(map[string]models.FeatureVector)}
}

func (c *MemoryVectorCache) Get(ctx context.Context, profileID string, version int64) (*models.FeatureVector, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vector, ok := c.vectors[vectorCacheKey(profileID, version)]
	if !ok {
		return nil, nil
	}
	copied := vector
	return &copied, nil
}

func (c *MemoryVectorCache) Set(ctx context.Context, vector *models.FeatureVector) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vectors[vectorCacheKey(vector.ProfileID, vector.Version)] = *vector
	return nil
}
