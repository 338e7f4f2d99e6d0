package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/openshelf/storefront/internal/domain"
	"github.com/openshelf/storefront/internal/metrics"
)

const tenantKeyPrefix = "tenant:host:"

// RedisCache is the shared TenantCache for multi-node deployments. Cache
// failures degrade to misses; the resolver still answers from the store.
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisCache(client *redis.Client, logger *zap.Logger) *RedisCache {
	return &RedisCache{client: client, logger: logger}
}

func (c *RedisCache) GetTenantByHost(ctx context.Context, host string) (*domain.Tenant, bool) {
	raw, err := c.client.Get(ctx, tenantKeyPrefix+host).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("tenant cache read failed", zap.String("host", host), zap.Error(err))
		}
		metrics.TenantCacheMisses.Inc()
		return nil, false
	}

	var t domain.Tenant
	if err := json.Unmarshal(raw, &t); err != nil {
		c.logger.Warn("tenant cache entry corrupt", zap.String("host", host), zap.Error(err))
		metrics.TenantCacheMisses.Inc()
		return nil, false
	}

	metrics.TenantCacheHits.Inc()
	return &t, true
}

func (c *RedisCache) SetTenantByHost(ctx context.Context, host string, t *domain.Tenant, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	raw, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, tenantKeyPrefix+host, raw, ttl).Err(); err != nil {
		c.logger.Warn("tenant cache write failed", zap.String("host", host), zap.Error(err))
	}
}

func (c *RedisCache) InvalidateHost(ctx context.Context, host string) {
	if err := c.client.Del(ctx, tenantKeyPrefix+host).Err(); err != nil {
		c.logger.Warn("tenant cache invalidation failed", zap.String("host", host), zap.Error(err))
	}
}
