package warehouse

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexbasket/backend/internal/domain/shared"
	"github.com/nexbasket/backend/internal/domain/warehouse"
)

// CreateWarehouseRequest is the payload for registering a warehouse
type CreateWarehouseRequest struct {
	Name      string  `json:"name" binding:"required"`
	Address   string  `json:"address" binding:"required"`
	City      string  `json:"city" binding:"required"`
	Pincode   string  `json:"pincode"`
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

// UpdateWarehouseRequest is the payload for editing a warehouse
type UpdateWarehouseRequest struct {
	Name      string  `json:"name" binding:"required"`
	Address   string  `json:"address" binding:"required"`
	City      string  `json:"city" binding:"required"`
	Pincode   string  `json:"pincode"`
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

// UpsertStockRequest is the payload for writing a stock ledger entry
type UpsertStockRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"min=0"`
}

// WarehouseResponse is a warehouse in API responses
type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Pincode   string    `json:"pincode"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// NearestWarehouseResponse is a warehouse with its distance to the
// queried point
type NearestWarehouseResponse struct {
	WarehouseResponse
	DistanceKm float64 `json:"distanceKm"`
}

// StockEntryResponse is a stock ledger row in API responses
type StockEntryResponse struct {
	WarehouseID uuid.UUID `json:"warehouseId"`
	ProductID   uuid.UUID `json:"productId"`
	Quantity    int       `json:"quantity"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToWarehouseResponse converts a domain warehouse to its API representation
func ToWarehouseResponse(w *warehouse.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Address:   w.Address,
		City:      w.City,
		Pincode:   w.Pincode,
		Latitude:  w.Latitude,
		Longitude: w.Longitude,
		Active:    w.Active,
		CreatedAt: w.CreatedAt,
	}
}

// ToStockEntryResponse converts a ledger entry to its API representation
func ToStockEntryResponse(e *warehouse.StockEntry) StockEntryResponse {
	return StockEntryResponse{
		WarehouseID: e.WarehouseID,
		ProductID:   e.ProductID,
		Quantity:    e.Quantity,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ToWarehousePage converts a paginated domain result to API responses
func ToWarehousePage(page *shared.Paginated[warehouse.Warehouse]) *shared.Paginated[WarehouseResponse] {
	items := make([]WarehouseResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToWarehouseResponse(&page.Items[i]))
	}
	return &shared.Paginated[WarehouseResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}

// ToStockPage converts a paginated ledger result to API responses
func ToStockPage(page *shared.Paginated[warehouse.StockEntry]) *shared.Paginated[StockEntryResponse] {
	items := make([]StockEntryResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToStockEntryResponse(&page.Items[i]))
	}
	return &shared.Paginated[StockEntryResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}
