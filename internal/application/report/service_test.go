package report

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nexbasket/backend/internal/domain/catalog"
	"github.com/nexbasket/backend/internal/domain/identity"
	"github.com/nexbasket/backend/internal/domain/order"
	"github.com/nexbasket/backend/internal/domain/report"
	"github.com/nexbasket/backend/internal/domain/warehouse"
	"github.com/nexbasket/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Stubs
// =============================================================================

// The count queries only need Count, so the stubs embed the interface
// and override just that. Calling anything else panics, which is what
// we want in a test.

type stubCategoryRepo struct {
	catalog.CategoryRepository
	n int64
}

func (s stubCategoryRepo) Count(ctx context.Context) (int64, error) { return s.n, nil }

type stubSubCategoryRepo struct {
	catalog.SubCategoryRepository
	n int64
}

func (s stubSubCategoryRepo) Count(ctx context.Context) (int64, error) { return s.n, nil }

type stubProductRepo struct {
	catalog.ProductRepository
	n int64
}

func (s stubProductRepo) Count(ctx context.Context) (int64, error) { return s.n, nil }

type stubWarehouseRepo struct {
	warehouse.Repository
	n int64
}

func (s stubWarehouseRepo) Count(ctx context.Context) (int64, error) { return s.n, nil }

type stubUserRepo struct {
	identity.Repository
	n int64
}

func (s stubUserRepo) Count(ctx context.Context) (int64, error) { return s.n, nil }

type stubOrderRepo struct {
	order.Repository
	total    int64
	byStatus map[order.Status]int64
	calls    atomic.Int64
}

func (s *stubOrderRepo) Count(ctx context.Context) (int64, error) {
	s.calls.Add(1)
	return s.total, nil
}

func (s *stubOrderRepo) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	return s.byStatus[status], nil
}

type stubReportRepo struct {
	rows  []report.SalesRow
	total decimal.Decimal
	stats []report.WarehouseOrderStats
	err   error
}

func (s *stubReportRepo) SalesRows(ctx context.Context) ([]report.SalesRow, error) {
	return s.rows, s.err
}

func (s *stubReportRepo) TotalDeliveredSales(ctx context.Context) (decimal.Decimal, error) {
	return s.total, s.err
}

func (s *stubReportRepo) OrderStatsByWarehouse(ctx context.Context) ([]report.WarehouseOrderStats, error) {
	return s.stats, s.err
}

func newService(reports *stubReportRepo, orders *stubOrderRepo, counts cache.DashboardCache) *Service {
	return NewService(
		reports,
		orders,
		stubCategoryRepo{n: 4},
		stubSubCategoryRepo{n: 9},
		stubProductRepo{n: 120},
		stubWarehouseRepo{n: 3},
		stubUserRepo{n: 250},
		counts,
		30*time.Second,
		zap.NewNop(),
	)
}

func row(t *testing.T, ts string, total float64) report.SalesRow {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, ts)
	require.NoError(t, err)
	return report.SalesRow{CreatedAt: parsed, Total: decimal.NewFromFloat(total)}
}

// =============================================================================
// Tests
// =============================================================================

func TestCountAll(t *testing.T) {
	ctx := context.Background()

	orders := &stubOrderRepo{
		total: 40,
		byStatus: map[order.Status]int64{
			order.StatusDelivered: 25,
			order.StatusCancelled: 5,
			order.StatusPending:   3,
		},
	}
	reports := &stubReportRepo{total: decimal.NewFromFloat(12345.50)}

	t.Run("aggregates every figure", func(t *testing.T) {
		svc := newService(reports, orders, nil)
		counts, err := svc.CountAll(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(4), counts.Categories)
		assert.Equal(t, int64(9), counts.SubCategories)
		assert.Equal(t, int64(120), counts.Products)
		assert.Equal(t, int64(40), counts.Orders)
		assert.Equal(t, int64(25), counts.AcceptedOrders)
		assert.Equal(t, int64(5), counts.RejectedOrders)
		assert.Equal(t, int64(3), counts.PendingOrders)
		assert.Equal(t, int64(3), counts.Warehouses)
		assert.Equal(t, int64(250), counts.Users)
		assert.True(t, counts.TotalSales.Equal(decimal.NewFromFloat(12345.50)))
	})

	t.Run("second call within the TTL is served from cache", func(t *testing.T) {
		fresh := &stubOrderRepo{total: 40, byStatus: map[order.Status]int64{}}
		svc := newService(reports, fresh, cache.NewMemoryDashboardCache())

		_, err := svc.CountAll(ctx)
		require.NoError(t, err)
		_, err = svc.CountAll(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(1), fresh.calls.Load())
	})

	t.Run("invalidation forces a recompute", func(t *testing.T) {
		fresh := &stubOrderRepo{total: 40, byStatus: map[order.Status]int64{}}
		svc := newService(reports, fresh, cache.NewMemoryDashboardCache())

		_, err := svc.CountAll(ctx)
		require.NoError(t, err)
		svc.InvalidateCounts(ctx)
		_, err = svc.CountAll(ctx)
		require.NoError(t, err)

		assert.Equal(t, int64(2), fresh.calls.Load())
	})
}

func TestSalesStats(t *testing.T) {
	ctx := context.Background()
	orders := &stubOrderRepo{byStatus: map[order.Status]int64{}}

	t.Run("daily buckets use local time", func(t *testing.T) {
		reports := &stubReportRepo{rows: []report.SalesRow{
			// 20:00 UTC is already the next day in IST (+05:30)
			row(t, "2026-03-09T20:00:00Z", 100),
			row(t, "2026-03-10T04:00:00Z", 50),
			row(t, "2026-03-09T10:00:00Z", 30),
		}}

		svc := newService(reports, orders, nil)
		points, err := svc.SalesStats(ctx, report.TimeFrameDaily)
		require.NoError(t, err)
		require.Len(t, points, 2)

		assert.Equal(t, "2026-03-09", points[0].Bucket)
		assert.Equal(t, int64(1), points[0].OrderCount)
		assert.True(t, points[0].Total.Equal(decimal.NewFromInt(30)))

		assert.Equal(t, "2026-03-10", points[1].Bucket)
		assert.Equal(t, int64(2), points[1].OrderCount)
		assert.True(t, points[1].Total.Equal(decimal.NewFromInt(150)))
	})

	t.Run("monthly buckets", func(t *testing.T) {
		reports := &stubReportRepo{rows: []report.SalesRow{
			row(t, "2026-01-15T10:00:00Z", 10),
			row(t, "2026-02-01T10:00:00Z", 20),
			row(t, "2026-01-20T10:00:00Z", 5),
		}}

		svc := newService(reports, orders, nil)
		points, err := svc.SalesStats(ctx, report.TimeFrameMonthly)
		require.NoError(t, err)
		require.Len(t, points, 2)
		assert.Equal(t, "2026-01", points[0].Bucket)
		assert.True(t, points[0].Total.Equal(decimal.NewFromInt(15)))
		assert.Equal(t, "2026-02", points[1].Bucket)
	})

	t.Run("yearly buckets", func(t *testing.T) {
		reports := &stubReportRepo{rows: []report.SalesRow{
			row(t, "2025-06-15T10:00:00Z", 10),
			row(t, "2026-02-01T10:00:00Z", 20),
		}}

		svc := newService(reports, orders, nil)
		points, err := svc.SalesStats(ctx, report.TimeFrameYearly)
		require.NoError(t, err)
		require.Len(t, points, 2)
		assert.Equal(t, "2025", points[0].Bucket)
		assert.Equal(t, "2026", points[1].Bucket)
	})

	t.Run("no rows means no buckets", func(t *testing.T) {
		svc := newService(&stubReportRepo{}, orders, nil)
		points, err := svc.SalesStats(ctx, report.TimeFrameDaily)
		require.NoError(t, err)
		assert.Empty(t, points)
	})
}

func TestOrderStats(t *testing.T) {
	ctx := context.Background()
	reports := &stubReportRepo{stats: []report.WarehouseOrderStats{
		{WarehouseName: "Bengaluru Hub", Pending: 2, Delivered: 10},
	}}

	svc := newService(reports, &stubOrderRepo{byStatus: map[order.Status]int64{}}, nil)
	stats, err := svc.OrderStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "Bengaluru Hub", stats[0].WarehouseName)
}
