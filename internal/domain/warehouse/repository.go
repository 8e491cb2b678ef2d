package warehouse

import (
	"context"

	"github.com/google/uuid"
	"github.com/nexbasket/backend/internal/domain/shared"
)

// Repository defines persistence operations for warehouses
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)
	FindByName(ctx context.Context, name string) (*Warehouse, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Warehouse], error)
	FindActive(ctx context.Context) ([]Warehouse, error)
	Save(ctx context.Context, w *Warehouse) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// StockRepository defines persistence operations for the stock ledger
type StockRepository interface {
	FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uuid.UUID) (*StockEntry, error)
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) (*shared.Paginated[StockEntry], error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]StockEntry, error)
	// Upsert replaces the quantity for the (warehouse, product) pair,
	// creating the row if it does not exist.
	Upsert(ctx context.Context, entry *StockEntry) error
	Delete(ctx context.Context, warehouseID, productID uuid.UUID) error
}
