package warehouse

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexbasket/backend/internal/domain/shared"
)

// StockEntry records the on-hand quantity of one product at one
// warehouse. The (warehouse, product) pair is unique; writes replace the
// quantity outright rather than applying deltas.
type StockEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_warehouse_product"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_warehouse_product"`
	Quantity    int       `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockEntry) TableName() string {
	return "stock_entries"
}

// NewStockEntry creates a stock ledger entry for a warehouse and product
func NewStockEntry(warehouseID, productID uuid.UUID, quantity int) (*StockEntry, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
	}

	now := time.Now()
	return &StockEntry{
		ID:          uuid.New(),
		WarehouseID: warehouseID,
		ProductID:   productID,
		Quantity:    quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SetQuantity replaces the recorded quantity. The last write wins.
func (s *StockEntry) SetQuantity(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
	}
	s.Quantity = quantity
	s.UpdatedAt = time.Now()
	return nil
}

// InStock returns true if any quantity is on hand
func (s *StockEntry) InStock() bool {
	return s.Quantity > 0
}
