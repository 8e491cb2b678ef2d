package warehouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	activityapp "github.com/nexbasket/backend/internal/application/activity"
	"github.com/nexbasket/backend/internal/domain/activity"
	"github.com/nexbasket/backend/internal/domain/shared"
	"github.com/nexbasket/backend/internal/domain/warehouse"
)

// Service handles warehouse management and the stock ledger
type Service struct {
	warehouses warehouse.Repository
	stock      warehouse.StockRepository
	activities *activityapp.Service
}

// NewService creates a new warehouse service
func NewService(warehouses warehouse.Repository, stock warehouse.StockRepository, activities *activityapp.Service) *Service {
	return &Service{
		warehouses: warehouses,
		stock:      stock,
		activities: activities,
	}
}

// Create registers a new warehouse
func (s *Service) Create(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	if _, err := s.warehouses.FindByName(ctx, req.Name); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A warehouse with this name already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	w, err := warehouse.NewWarehouse(req.Name, req.Address, req.City, req.Pincode, req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	if err := s.warehouses.Save(ctx, w); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, activity.TypeWarehouseAdded,
		fmt.Sprintf("Warehouse %s added in %s", w.Name, w.City),
		nil, &w.ID)

	resp := ToWarehouseResponse(w)
	return &resp, nil
}

// Get returns a warehouse by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	w, err := s.warehouses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(w)
	return &resp, nil
}

// List returns warehouses matching the filter
func (s *Service) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[WarehouseResponse], error) {
	page, err := s.warehouses.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToWarehousePage(page), nil
}

// Update edits a warehouse's details
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	w, err := s.warehouses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := w.Update(req.Name, req.Address, req.City, req.Pincode, req.Latitude, req.Longitude); err != nil {
		return nil, err
	}

	if err := s.warehouses.Save(ctx, w); err != nil {
		return nil, err
	}

	resp := ToWarehouseResponse(w)
	return &resp, nil
}

// SetActive activates or deactivates a warehouse
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) (*WarehouseResponse, error) {
	w, err := s.warehouses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if active {
		w.Activate()
	} else {
		w.Deactivate()
	}

	if err := s.warehouses.Save(ctx, w); err != nil {
		return nil, err
	}

	resp := ToWarehouseResponse(w)
	return &resp, nil
}

// Delete removes a warehouse
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.warehouses.Delete(ctx, id)
}

// Nearest returns the active warehouse closest to the given point,
// measured along the great circle.
func (s *Service) Nearest(ctx context.Context, lat, lng float64) (*NearestWarehouseResponse, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, shared.NewDomainError("INVALID_COORDINATES", "Coordinates out of range")
	}

	active, err := s.warehouses.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, shared.NewDomainError("NO_WAREHOUSES", "No active warehouses available")
	}

	best := 0
	bestDistance := active[0].DistanceKm(lat, lng)
	for i := 1; i < len(active); i++ {
		if d := active[i].DistanceKm(lat, lng); d < bestDistance {
			best, bestDistance = i, d
		}
	}

	return &NearestWarehouseResponse{
		WarehouseResponse: ToWarehouseResponse(&active[best]),
		DistanceKm:        bestDistance,
	}, nil
}

// UpsertStock writes a stock ledger entry for the warehouse. The
// submitted quantity replaces whatever was recorded before.
func (s *Service) UpsertStock(ctx context.Context, warehouseID uuid.UUID, req UpsertStockRequest) (*StockEntryResponse, error) {
	if _, err := s.warehouses.FindByID(ctx, warehouseID); err != nil {
		return nil, err
	}

	entry, err := warehouse.NewStockEntry(warehouseID, req.ProductID, req.Quantity)
	if err != nil {
		return nil, err
	}

	if err := s.stock.Upsert(ctx, entry); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, activity.TypeStockUpdated,
		fmt.Sprintf("Stock for product %s set to %d", req.ProductID, req.Quantity),
		nil, &warehouseID)

	resp := ToStockEntryResponse(entry)
	return &resp, nil
}

// ListStock returns the ledger entries for a warehouse
func (s *Service) ListStock(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) (*shared.Paginated[StockEntryResponse], error) {
	page, err := s.stock.FindByWarehouse(ctx, warehouseID, filter)
	if err != nil {
		return nil, err
	}
	return ToStockPage(page), nil
}

// GetStock returns the ledger entry for one product at one warehouse
func (s *Service) GetStock(ctx context.Context, warehouseID, productID uuid.UUID) (*StockEntryResponse, error) {
	entry, err := s.stock.FindByWarehouseAndProduct(ctx, warehouseID, productID)
	if err != nil {
		return nil, err
	}
	resp := ToStockEntryResponse(entry)
	return &resp, nil
}
