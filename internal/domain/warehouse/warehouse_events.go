package warehouse

import (
	"github.com/nexbasket/backend/internal/domain/shared"
)

const (
	EventWarehouseCreated = "warehouse.created"
)

// WarehouseCreatedEvent is raised when a new warehouse is registered
type WarehouseCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
	City string `json:"city"`
}

// NewWarehouseCreatedEvent creates a new warehouse created event
func NewWarehouseCreatedEvent(w *Warehouse) *WarehouseCreatedEvent {
	return &WarehouseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventWarehouseCreated, "Warehouse", w.ID),
		Name:            w.Name,
		City:            w.City,
	}
}
