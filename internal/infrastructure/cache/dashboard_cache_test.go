package cache

import (
	"context"
	"testing"
	"time"

	"github.com/nexbasket/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDashboardCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryDashboardCache()

	t.Run("miss on empty cache", func(t *testing.T) {
		_, err := c.GetCounts(ctx)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("set then get", func(t *testing.T) {
		counts := &report.DashboardCounts{
			Orders:     12,
			TotalSales: decimal.RequireFromString("345.67"),
		}
		require.NoError(t, c.SetCounts(ctx, counts, time.Minute))

		got, err := c.GetCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(12), got.Orders)
		assert.True(t, got.TotalSales.Equal(counts.TotalSales))
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		got, err := c.GetCounts(ctx)
		require.NoError(t, err)
		got.Orders = 999

		again, err := c.GetCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(12), again.Orders)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		require.NoError(t, c.SetCounts(ctx, &report.DashboardCounts{}, time.Nanosecond))
		time.Sleep(time.Millisecond)
		_, err := c.GetCounts(ctx)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("invalidate clears", func(t *testing.T) {
		require.NoError(t, c.SetCounts(ctx, &report.DashboardCounts{Orders: 1}, time.Minute))
		require.NoError(t, c.Invalidate(ctx))
		_, err := c.GetCounts(ctx)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}
