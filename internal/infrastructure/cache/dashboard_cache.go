package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/nexbasket/backend/internal/domain/report"
	"github.com/redis/go-redis/v9"
)

const dashboardCountsKey = "nexbasket:dashboard:counts"

// DashboardCache caches the computed dashboard counts so repeated
// dashboard loads do not hammer the database
type DashboardCache interface {
	GetCounts(ctx context.Context) (*report.DashboardCounts, error)
	SetCounts(ctx context.Context, counts *report.DashboardCounts, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// ErrCacheMiss is returned when no cached value is present
var ErrCacheMiss = errors.New("cache miss")

// RedisDashboardCache stores dashboard counts in Redis
type RedisDashboardCache struct {
	client *redis.Client
}

// NewRedisDashboardCache creates a Redis-backed dashboard cache
func NewRedisDashboardCache(client *redis.Client) *RedisDashboardCache {
	return &RedisDashboardCache{client: client}
}

// GetCounts returns the cached counts or ErrCacheMiss
func (c *RedisDashboardCache) GetCounts(ctx context.Context) (*report.DashboardCounts, error) {
	raw, err := c.client.Get(ctx, dashboardCountsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var counts report.DashboardCounts
	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil, err
	}
	return &counts, nil
}

// SetCounts stores the counts with the given TTL
func (c *RedisDashboardCache) SetCounts(ctx context.Context, counts *report.DashboardCounts, ttl time.Duration) error {
	raw, err := json.Marshal(counts)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dashboardCountsKey, raw, ttl).Err()
}

// Invalidate drops the cached counts
func (c *RedisDashboardCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, dashboardCountsKey).Err()
}

// MemoryDashboardCache is an in-process cache used in tests and when
// Redis is not configured
type MemoryDashboardCache struct {
	mu        sync.RWMutex
	counts    *report.DashboardCounts
	expiresAt time.Time
}

// NewMemoryDashboardCache creates an in-memory dashboard cache
func NewMemoryDashboardCache() *MemoryDashboardCache {
	return &MemoryDashboardCache{}
}

// GetCounts returns the cached counts or ErrCacheMiss
func (c *MemoryDashboardCache) GetCounts(ctx context.Context) (*report.DashboardCounts, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.counts == nil || time.Now().After(c.expiresAt) {
		return nil, ErrCacheMiss
	}
	copied := *c.counts
	return &copied, nil
}

// SetCounts stores the counts with the given TTL
func (c *MemoryDashboardCache) SetCounts(ctx context.Context, counts *report.DashboardCounts, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	copied := *counts
	c.counts = &copied
	c.expiresAt = time.Now().Add(ttl)
	return nil
}

// Invalidate drops the cached counts
func (c *MemoryDashboardCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts = nil
	return nil
}

// Ensure both implementations satisfy DashboardCache
var (
	_ DashboardCache = (*RedisDashboardCache)(nil)
	_ DashboardCache = (*MemoryDashboardCache)(nil)
)
