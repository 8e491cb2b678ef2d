package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	activityapp "github.com/nexbasket/backend/internal/application/activity"
	"github.com/nexbasket/backend/internal/domain/report"
)

// ReportService is the slice of the reporting service the dashboard
// endpoints need
type ReportService interface {
	CountAll(ctx context.Context) (*report.DashboardCounts, error)
	SalesStats(ctx context.Context, frame report.TimeFrame) ([]report.SalesPoint, error)
	OrderStats(ctx context.Context) ([]report.WarehouseOrderStats, error)
}

// ActivityService lists the recent activity feed
type ActivityService interface {
	Recent(ctx context.Context) ([]activityapp.Entry, error)
}

// DashboardHandler serves the admin dashboard
type DashboardHandler struct {
	BaseHandler
	reports    ReportService
	activities ActivityService
	adminMW    []gin.HandlerFunc
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(reports ReportService, activities ActivityService, adminMW ...gin.HandlerFunc) *DashboardHandler {
	return &DashboardHandler{reports: reports, activities: activities, adminMW: adminMW}
}

// RegisterRoutes registers dashboard routes on the API group
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard", h.adminMW...)
	dashboard.GET("/counts", h.Counts)
	dashboard.GET("/sales", h.SalesStats)
	dashboard.GET("/orders-by-warehouse", h.OrderStats)
	dashboard.GET("/activity", h.RecentActivity)
}

// Counts returns the dashboard summary figures
func (h *DashboardHandler) Counts(c *gin.Context) {
	counts, err := h.reports.CountAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counts)
}

// SalesStats returns bucketed sales figures. ?timeFrame= selects
// daily, monthly or yearly; anything else falls back to daily.
func (h *DashboardHandler) SalesStats(c *gin.Context) {
	frame := report.ParseTimeFrame(c.Query("timeFrame"))
	points, err := h.reports.SalesStats(c.Request.Context(), frame)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, points)
}

// OrderStats returns per-warehouse order status counts
func (h *DashboardHandler) OrderStats(c *gin.Context) {
	stats, err := h.reports.OrderStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// RecentActivity returns the latest activity feed entries
func (h *DashboardHandler) RecentActivity(c *gin.Context) {
	entries, err := h.activities.Recent(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}
