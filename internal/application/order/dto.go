package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexbasket/backend/internal/domain/order"
	"github.com/nexbasket/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateOrderItem is one requested line in a new order
type CreateOrderItem struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest is the payload for placing an order
type CreateOrderRequest struct {
	WarehouseID     uuid.UUID         `json:"warehouseId" binding:"required"`
	ShippingAddress string            `json:"shippingAddress" binding:"required"`
	Items           []CreateOrderItem `json:"items" binding:"required,min=1,dive"`
}

// UpdateStatusRequest is the payload for a status transition
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// ItemResponse is an order line in API responses
type ItemResponse struct {
	ProductID       uuid.UUID       `json:"productId"`
	ProductName     string          `json:"productName"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent int             `json:"discountPercent"`
	LineTotal       decimal.Decimal `json:"lineTotal"`
}

// OrderResponse is an order in API responses
type OrderResponse struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"userId"`
	WarehouseID     uuid.UUID       `json:"warehouseId"`
	ShippingAddress string          `json:"shippingAddress"`
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Paid            bool            `json:"paid"`
	PaymentRef      string          `json:"paymentRef,omitempty"`
	Items           []ItemResponse  `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
	AcceptedAt      *time.Time      `json:"acceptedAt,omitempty"`
	ShippedAt       *time.Time      `json:"shippedAt,omitempty"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	CancelledAt     *time.Time      `json:"cancelledAt,omitempty"`
	CancelReason    string          `json:"cancelReason,omitempty"`
}

// PlacedOrderResponse is returned from order placement. The client
// secret is present only when a payment intent was created.
type PlacedOrderResponse struct {
	Order               OrderResponse `json:"order"`
	PaymentClientSecret string        `json:"paymentClientSecret,omitempty"`
}

// ToOrderResponse converts a domain order to its API representation
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, ItemResponse{
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			LineTotal:       item.LineTotal,
		})
	}

	return OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		WarehouseID:     o.WarehouseID,
		ShippingAddress: o.ShippingAddress,
		Status:          o.Status.String(),
		TotalAmount:     o.TotalAmount,
		Paid:            o.Paid,
		PaymentRef:      o.PaymentRef,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		AcceptedAt:      o.AcceptedAt,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
		CancelReason:    o.CancelReason,
	}
}

// ToOrderPage converts a paginated domain result to API responses
func ToOrderPage(page *shared.Paginated[order.Order]) *shared.Paginated[OrderResponse] {
	items := make([]OrderResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToOrderResponse(&page.Items[i]))
	}
	return &shared.Paginated[OrderResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}
