package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nexbasket/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the fulfillment stage of an order
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the status is a known order status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The path is pending -> accepted -> shipped -> delivered, with a
// cancellation exit allowed from pending only.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusAccepted || target == StatusCancelled
	case StatusAccepted:
		return target == StatusShipped
	case StatusShipped:
		return target == StatusDelivered
	case StatusDelivered, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true if the status is a terminal state
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// ParseStatus parses and validates a status string
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", raw))
	}
	return s, nil
}

// Item represents a line item in an order. Price and discount are
// snapshots taken at order-creation time and never recomputed.
type Item struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName     string          `gorm:"type:varchar(200);not null"`
	Quantity        int             `gorm:"not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DiscountPercent int             `gorm:"not null;default:0"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// NewItem creates a new order line item with a computed line total
func NewItem(orderID, productID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal, discountPercent int) (*Item, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if discountPercent < 0 || discountPercent > 100 {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount must be a whole percentage between 0 and 100")
	}

	now := time.Now()
	return &Item{
		ID:              uuid.New(),
		OrderID:         orderID,
		ProductID:       productID,
		ProductName:     productName,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		LineTotal:       lineTotal(unitPrice, discountPercent, quantity),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// lineTotal computes price * (1 - discount/100) * quantity rounded to 2 places
func lineTotal(unitPrice decimal.Decimal, discountPercent, quantity int) decimal.Decimal {
	factor := decimal.NewFromInt(100 - int64(discountPercent)).Div(decimal.NewFromInt(100))
	return unitPrice.Mul(factor).Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// Order represents a customer order aggregate root. It carries the
// fulfillment status and the immutable pricing snapshot of its items.
type Order struct {
	shared.BaseAggregateRoot
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Items           []Item          `gorm:"foreignKey:OrderID;references:ID"`
	ShippingAddress string          `gorm:"type:text;not null"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status          Status          `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentRef      string          `gorm:"type:varchar(200)"`
	Paid            bool            `gorm:"not null;default:false"`
	AcceptedAt      *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new pending order. The total amount is computed
// once from the line items and is not recomputed afterwards.
func NewOrder(userID, warehouseID uuid.UUID, shippingAddress string, items []Item) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Order must contain at least one item")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		WarehouseID:       warehouseID,
		ShippingAddress:   shippingAddress,
		Status:            StatusPending,
	}

	total := decimal.Zero
	for i := range items {
		items[i].OrderID = o.ID
		total = total.Add(items[i].LineTotal)
	}
	o.Items = items
	o.TotalAmount = total

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return o, nil
}

// ChangeStatus applies a status transition, rejecting anything that is
// not the immediate successor of the current status (or cancellation
// while still pending).
func (o *Order) ChangeStatus(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}

	from := o.Status
	now := time.Now()
	o.Status = target
	o.UpdatedAt = now

	switch target {
	case StatusAccepted:
		o.AcceptedAt = &now
	case StatusShipped:
		o.ShippedAt = &now
	case StatusDelivered:
		o.DeliveredAt = &now
	case StatusCancelled:
		o.CancelledAt = &now
	}

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))

	return nil
}

// Cancel cancels a pending order with a reason
func (o *Order) Cancel(reason string) error {
	if err := o.ChangeStatus(StatusCancelled); err != nil {
		return err
	}
	o.CancelReason = reason
	return nil
}

// MarkPaid records the payment reference. Repeat calls with the same
// reference are no-ops so webhook redelivery stays idempotent.
func (o *Order) MarkPaid(paymentRef string) error {
	if paymentRef == "" {
		return shared.NewDomainError("INVALID_PAYMENT_REF", "Payment reference cannot be empty")
	}
	if o.Paid {
		if o.PaymentRef == paymentRef {
			return nil
		}
		return shared.NewDomainError("ALREADY_PAID", "Order is already paid with a different reference")
	}

	o.Paid = true
	o.PaymentRef = paymentRef
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewOrderPaidEvent(o))

	return nil
}

// ItemsTotal returns the sum of line totals. For orders written by this
// application it equals TotalAmount; it exists so listings can expose a
// recomputed figure next to the stored snapshot.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal)
	}
	return total
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// IsPending returns true if the order has not been accepted yet
func (o *Order) IsPending() bool {
	return o.Status == StatusPending
}

// IsTerminal returns true if the order is delivered or cancelled
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}
