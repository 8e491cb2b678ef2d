package report

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/nexbasket/backend/internal/domain/catalog"
	"github.com/nexbasket/backend/internal/domain/identity"
	"github.com/nexbasket/backend/internal/domain/order"
	"github.com/nexbasket/backend/internal/domain/report"
	"github.com/nexbasket/backend/internal/domain/warehouse"
	"github.com/nexbasket/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Sales buckets are labelled in the storefront's local time zone.
var reportLocation = time.FixedZone("IST", 19800)

// Service aggregates dashboard figures from the other modules' stores
type Service struct {
	reports     report.Repository
	orders      order.Repository
	categories  catalog.CategoryRepository
	subs        catalog.SubCategoryRepository
	products    catalog.ProductRepository
	warehouses  warehouse.Repository
	users       identity.Repository
	countsCache cache.DashboardCache
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewService creates a new reporting service
func NewService(
	reports report.Repository,
	orders order.Repository,
	categories catalog.CategoryRepository,
	subs catalog.SubCategoryRepository,
	products catalog.ProductRepository,
	warehouses warehouse.Repository,
	users identity.Repository,
	countsCache cache.DashboardCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		reports:     reports,
		orders:      orders,
		categories:  categories,
		subs:        subs,
		products:    products,
		warehouses:  warehouses,
		users:       users,
		countsCache: countsCache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// CountAll returns the dashboard summary. Counts are read through a
// short-lived cache so a busy admin page does not hammer the database.
func (s *Service) CountAll(ctx context.Context) (*report.DashboardCounts, error) {
	if s.countsCache != nil {
		cached, err := s.countsCache.GetCounts(ctx)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	counts, err := s.computeCounts(ctx)
	if err != nil {
		return nil, err
	}

	if s.countsCache != nil {
		if err := s.countsCache.SetCounts(ctx, counts, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return counts, nil
}

func (s *Service) computeCounts(ctx context.Context) (*report.DashboardCounts, error) {
	var counts report.DashboardCounts

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts.Categories, err = s.categories.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.SubCategories, err = s.subs.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Products, err = s.products.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Orders, err = s.orders.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.AcceptedOrders, err = s.orders.CountByStatus(gctx, order.StatusDelivered)
		return err
	})
	g.Go(func() (err error) {
		counts.RejectedOrders, err = s.orders.CountByStatus(gctx, order.StatusCancelled)
		return err
	})
	g.Go(func() (err error) {
		counts.PendingOrders, err = s.orders.CountByStatus(gctx, order.StatusPending)
		return err
	})
	g.Go(func() (err error) {
		counts.Warehouses, err = s.warehouses.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Users, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts.TotalSales, err = s.reports.TotalDeliveredSales(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &counts, nil
}

// SalesStats buckets sales by day, month or year. Buckets are returned
// ascending and only for periods that saw at least one order.
func (s *Service) SalesStats(ctx context.Context, frame report.TimeFrame) ([]report.SalesPoint, error) {
	rows, err := s.reports.SalesRows(ctx)
	if err != nil {
		return nil, err
	}

	layout := bucketLayout(frame)
	buckets := make(map[string]*report.SalesPoint, len(rows))
	for _, row := range rows {
		key := row.CreatedAt.In(reportLocation).Format(layout)
		point, ok := buckets[key]
		if !ok {
			point = &report.SalesPoint{Bucket: key, Total: decimal.Zero}
			buckets[key] = point
		}
		point.OrderCount++
		point.Total = point.Total.Add(row.Total)
	}

	out := make([]report.SalesPoint, 0, len(buckets))
	for _, point := range buckets {
		out = append(out, *point)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket < out[j].Bucket })
	return out, nil
}

// OrderStats returns per-warehouse order counts broken down by status
func (s *Service) OrderStats(ctx context.Context) ([]report.WarehouseOrderStats, error) {
	return s.reports.OrderStatsByWarehouse(ctx)
}

// InvalidateCounts drops the cached dashboard summary
func (s *Service) InvalidateCounts(ctx context.Context) {
	if s.countsCache == nil {
		return
	}
	if err := s.countsCache.Invalidate(ctx); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func bucketLayout(frame report.TimeFrame) string {
	switch frame {
	case report.TimeFrameMonthly:
		return "2006-01"
	case report.TimeFrameYearly:
		return "2006"
	default:
		return "2006-01-02"
	}
}
