package persistence

import (
	"context"

	"github.com/nexbasket/backend/internal/domain/order"
	"github.com/nexbasket/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// salesStatuses are the order statuses that count towards sales
// figures. The legacy "completed" value still appears in rows imported
// from the previous system, so it stays in the filter.
var salesStatuses = []string{"accepted", "completed", "delivered"}

// GormReportRepository implements report.Repository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// SalesRows returns the creation time and total of every order that
// counts towards sales figures
func (r *GormReportRepository) SalesRows(ctx context.Context) ([]report.SalesRow, error) {
	var orders []order.Order
	if err := r.db.WithContext(ctx).
		Select("created_at, total_amount").
		Where("status IN ?", salesStatuses).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	rows := make([]report.SalesRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, report.SalesRow{
			CreatedAt: o.CreatedAt,
			Total:     o.TotalAmount,
		})
	}
	return rows, nil
}

// TotalDeliveredSales sums the totals of delivered orders
func (r *GormReportRepository) TotalDeliveredSales(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("status = ?", order.StatusDelivered).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// OrderStatsByWarehouse returns per-warehouse order counts broken down
// by status
func (r *GormReportRepository) OrderStatsByWarehouse(ctx context.Context) ([]report.WarehouseOrderStats, error) {
	var stats []report.WarehouseOrderStats
	if err := r.db.WithContext(ctx).Raw(`
		SELECT w.id   AS warehouse_id,
		       w.name AS warehouse_name,
		       COUNT(CASE WHEN o.status = 'pending'   THEN 1 END) AS pending,
		       COUNT(CASE WHEN o.status = 'accepted'  THEN 1 END) AS accepted,
		       COUNT(CASE WHEN o.status = 'shipped'   THEN 1 END) AS shipped,
		       COUNT(CASE WHEN o.status = 'delivered' THEN 1 END) AS delivered,
		       COUNT(CASE WHEN o.status = 'cancelled' THEN 1 END) AS cancelled
		FROM warehouses w
		LEFT JOIN orders o ON o.warehouse_id = w.id
		GROUP BY w.id, w.name
		ORDER BY w.name ASC`).
		Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// Ensure GormReportRepository implements report.Repository
var _ report.Repository = (*GormReportRepository)(nil)
