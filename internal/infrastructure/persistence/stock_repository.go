package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nexbasket/backend/internal/domain/shared"
	"github.com/nexbasket/backend/internal/domain/warehouse"
	"gorm.io/gorm"
)

// StockSortFields contains allowed sort fields for stock entries
var StockSortFields = map[string]bool{
	"id":         true,
	"product_id": true,
	"quantity":   true,
	"created_at": true,
	"updated_at": true,
}

// GormStockRepository implements warehouse.StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// FindByWarehouseAndProduct finds the ledger entry for a warehouse and product pair
func (r *GormStockRepository) FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uuid.UUID) (*warehouse.StockEntry, error) {
	var entry warehouse.StockEntry
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByWarehouse finds the ledger entries for a warehouse
func (r *GormStockRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) (*shared.Paginated[warehouse.StockEntry], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	query := r.db.WithContext(ctx).Model(&warehouse.StockEntry{}).Where("warehouse_id = ?", warehouseID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var entries []warehouse.StockEntry
	if err := applyPagination(query, filter, StockSortFields).Find(&entries).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(entries, total, filter.Page, filter.PageSize)
	return &page, nil
}

// FindByProduct finds the ledger entries for a product across all warehouses
func (r *GormStockRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]warehouse.StockEntry, error) {
	var entries []warehouse.StockEntry
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Upsert replaces the quantity for the (warehouse, product) pair,
// creating the row if it does not exist. The incoming write wins. On
// the overwrite path the caller's entry takes on the stored row's
// identity so it reflects the record the update touched.
func (r *GormStockRepository) Upsert(ctx context.Context, entry *warehouse.StockEntry) error {
	var existing warehouse.StockEntry
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND product_id = ?", entry.WarehouseID, entry.ProductID).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(entry).Error
		}
		return err
	}

	now := time.Now()
	if err := r.db.WithContext(ctx).Model(&existing).Updates(map[string]interface{}{
		"quantity":   entry.Quantity,
		"updated_at": now,
	}).Error; err != nil {
		return err
	}

	entry.ID = existing.ID
	entry.CreatedAt = existing.CreatedAt
	entry.UpdatedAt = now
	return nil
}

// Delete removes the ledger entry for a warehouse and product pair
func (r *GormStockRepository) Delete(ctx context.Context, warehouseID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND product_id = ?", warehouseID, productID).
		Delete(&warehouse.StockEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormStockRepository implements warehouse.StockRepository
var _ warehouse.StockRepository = (*GormStockRepository)(nil)
