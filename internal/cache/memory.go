package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/openshelf/storefront/internal/domain"
	"github.com/openshelf/storefront/internal/metrics"
)

const defaultJanitorInterval = 1 * time.Minute

// MemoryCache is the single-node TenantCache used when no redis is
// configured. A background janitor sweeps expired entries.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	logger  *zap.Logger

	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

type memoryEntry struct {
	tenant    *domain.Tenant
	expiresAt time.Time
}

func NewMemoryCache(logger *zap.Logger) *MemoryCache {
	return &MemoryCache{
		entries:  make(map[string]memoryEntry),
		logger:   logger,
		interval: defaultJanitorInterval,
		stopCh:   make(chan struct{}),
	}
}

func (c *MemoryCache) GetTenantByHost(_ context.Context, host string) (*domain.Tenant, bool) {
	c.mu.RLock()
	e, ok := c.entries[host]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		metrics.TenantCacheMisses.Inc()
		return nil, false
	}
	metrics.TenantCacheHits.Inc()
	return e.tenant, true
}

func (c *MemoryCache) SetTenantByHost(_ context.Context, host string, t *domain.Tenant, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[host] = memoryEntry{tenant: t, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

func (c *MemoryCache) InvalidateHost(_ context.Context, host string) {
	c.mu.Lock()
	delete(c.entries, host)
	c.mu.Unlock()
}

func (c *MemoryCache) SetInterval(d time.Duration) {
	c.interval = d
}

// Start launches the expiry janitor.
func (c *MemoryCache) Start() {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		c.logger.Info("tenant cache janitor started", zap.Duration("interval", c.interval))

		for {
			select {
			case <-ticker.C:
				c.sweep()
			case <-c.stopCh:
				c.logger.Info("tenant cache janitor stopped")
				return
			}
		}
	}()
}

func (c *MemoryCache) Stop() {
	close(c.stopCh)
	c.wg.Wait()
}

func (c *MemoryCache) sweep() {
	now := time.Now()
	c.mu.Lock()
	for host, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, host)
		}
	}
	c.mu.Unlock()
}
