package report

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimeFrame selects the bucketing granularity for sales statistics
type TimeFrame string

const (
	TimeFrameDaily   TimeFrame = "daily"
	TimeFrameMonthly TimeFrame = "monthly"
	TimeFrameYearly  TimeFrame = "yearly"
)

// ParseTimeFrame maps a request parameter to a time frame. Anything
// unrecognised falls back to daily.
func ParseTimeFrame(raw string) TimeFrame {
	switch TimeFrame(strings.ToLower(strings.TrimSpace(raw))) {
	case TimeFrameMonthly:
		return TimeFrameMonthly
	case TimeFrameYearly:
		return TimeFrameYearly
	default:
		return TimeFrameDaily
	}
}

// DashboardCounts is the admin dashboard summary. AcceptedOrders counts
// delivered orders and RejectedOrders counts cancelled ones; the field
// names match what the dashboard client has always displayed.
type DashboardCounts struct {
	Categories     int64           `json:"categories"`
	SubCategories  int64           `json:"subcategories"`
	Products       int64           `json:"products"`
	Orders         int64           `json:"orders"`
	AcceptedOrders int64           `json:"acceptedOrders"`
	RejectedOrders int64           `json:"rejectedOrders"`
	PendingOrders  int64           `json:"pendingOrders"`
	Warehouses     int64           `json:"warehouses"`
	Users          int64           `json:"users"`
	TotalSales     decimal.Decimal `json:"totalSales"`
}

// SalesRow is one order included in sales statistics
type SalesRow struct {
	CreatedAt time.Time
	Total     decimal.Decimal
}

// SalesPoint is one bucket of aggregated sales, ordered ascending by
// bucket label
type SalesPoint struct {
	Bucket     string          `json:"bucket"`
	OrderCount int64           `json:"orderCount"`
	Total      decimal.Decimal `json:"total"`
}

// WarehouseOrderStats is the per-warehouse order status breakdown
type WarehouseOrderStats struct {
	WarehouseID   uuid.UUID `json:"warehouseId"`
	WarehouseName string    `json:"warehouseName"`
	Pending       int64     `json:"pending"`
	Accepted      int64     `json:"accepted"`
	Shipped       int64     `json:"shipped"`
	Delivered     int64     `json:"delivered"`
	Cancelled     int64     `json:"cancelled"`
}

// Repository exposes the read-side queries the reporting service needs
type Repository interface {
	// SalesRows returns the creation time and total of every order that
	// counts towards sales figures.
	SalesRows(ctx context.Context) ([]SalesRow, error)
	// TotalDeliveredSales sums the totals of delivered orders.
	TotalDeliveredSales(ctx context.Context) (decimal.Decimal, error)
	// OrderStatsByWarehouse returns per-warehouse order counts broken
	// down by status.
	OrderStatsByWarehouse(ctx context.Context) ([]WarehouseOrderStats, error)
}
