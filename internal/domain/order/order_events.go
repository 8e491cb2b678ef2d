package order

import (
	"github.com/nexbasket/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderPaid          = "order.paid"
)

// OrderPlacedEvent is raised when a customer places a new order
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	WarehouseID string          `json:"warehouse_id"`
	UserID      string          `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
}

// NewOrderPlacedEvent creates a new order placed event
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderPlaced, "Order", o.ID),
		WarehouseID:     o.WarehouseID.String(),
		UserID:          o.UserID.String(),
		TotalAmount:     o.TotalAmount,
		ItemCount:       len(o.Items),
	}
}

// OrderStatusChangedEvent is raised on every successful status transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	WarehouseID string `json:"warehouse_id"`
	FromStatus  string `json:"from_status"`
	ToStatus    string `json:"to_status"`
}

// NewOrderStatusChangedEvent creates a new status changed event
func NewOrderStatusChangedEvent(o *Order, from Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderStatusChanged, "Order", o.ID),
		WarehouseID:     o.WarehouseID.String(),
		FromStatus:      from.String(),
		ToStatus:        o.Status.String(),
	}
}

// OrderPaidEvent is raised when a payment is confirmed for an order
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	PaymentRef  string          `json:"payment_ref"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewOrderPaidEvent creates a new order paid event
func NewOrderPaidEvent(o *Order) *OrderPaidEvent {
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderPaid, "Order", o.ID),
		PaymentRef:      o.PaymentRef,
		TotalAmount:     o.TotalAmount,
	}
}
