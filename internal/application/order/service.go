package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	activityapp "github.com/nexbasket/backend/internal/application/activity"
	"github.com/nexbasket/backend/internal/domain/activity"
	"github.com/nexbasket/backend/internal/domain/catalog"
	"github.com/nexbasket/backend/internal/domain/identity"
	"github.com/nexbasket/backend/internal/domain/order"
	"github.com/nexbasket/backend/internal/domain/shared"
	"github.com/nexbasket/backend/internal/domain/warehouse"
	"github.com/nexbasket/backend/internal/infrastructure/email"
	"github.com/nexbasket/backend/internal/infrastructure/payment"
	"go.uber.org/zap"
)

// Service handles the order lifecycle
type Service struct {
	orders     order.Repository
	products   catalog.ProductRepository
	warehouses warehouse.Repository
	users      identity.Repository
	activities *activityapp.Service
	payments   payment.Provider
	mailer     email.Mailer
	logger     *zap.Logger
}

// NewService creates a new order service. The payment provider may be
// nil when no gateway is configured; orders are then placed unpaid.
func NewService(
	orders order.Repository,
	products catalog.ProductRepository,
	warehouses warehouse.Repository,
	users identity.Repository,
	activities *activityapp.Service,
	payments payment.Provider,
	mailer email.Mailer,
	logger *zap.Logger,
) *Service {
	return &Service{
		orders:     orders,
		products:   products,
		warehouses: warehouses,
		users:      users,
		activities: activities,
		payments:   payments,
		mailer:     mailer,
		logger:     logger.Named("order"),
	}
}

// Create places a new order. Prices and discounts are snapshotted from
// the catalog at this moment and never recomputed afterwards.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*PlacedOrderResponse, error) {
	w, err := s.warehouses.FindByID(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if !w.Active {
		return nil, shared.NewDomainError("WAREHOUSE_INACTIVE", "Warehouse is not accepting orders")
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, line := range req.Items {
		p, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if !p.Active {
			return nil, shared.NewDomainError("PRODUCT_INACTIVE", fmt.Sprintf("Product %s is no longer available", p.Name))
		}

		item, err := order.NewItem(uuid.Nil, p.ID, p.Name, line.Quantity, p.Price, p.DiscountPercent)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	o, err := order.NewOrder(userID, req.WarehouseID, req.ShippingAddress, items)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, activity.TypeOrderPlaced,
		fmt.Sprintf("Order for %s placed at %s", o.TotalAmount.StringFixed(2), w.Name),
		&userID, &o.ID)

	resp := &PlacedOrderResponse{Order: ToOrderResponse(o)}

	if s.payments != nil {
		intent, err := s.payments.CreateIntent(ctx, o.ID, o.TotalAmount)
		if err != nil {
			// The order stands; payment can be retried from the client
			s.logger.Warn("Payment intent creation failed",
				zap.String("order_id", o.ID.String()),
				zap.Error(err),
			)
		} else {
			resp.PaymentClientSecret = intent.ClientSecret
		}
	}

	return resp, nil
}

// Get returns a single order with its items
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// ListByWarehouse lists orders for a warehouse, optionally narrowed to
// a status, newest first
func (s *Service) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID, statusRaw string, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	var status *order.Status
	if statusRaw != "" {
		parsed, err := order.ParseStatus(statusRaw)
		if err != nil {
			return nil, err
		}
		status = &parsed
	}

	page, err := s.orders.FindByWarehouse(ctx, warehouseID, status, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderPage(page), nil
}

// ListByUser lists the orders a user has placed, newest first
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	page, err := s.orders.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderPage(page), nil
}

// UpdateStatus applies a status transition. Invalid transitions are
// rejected and leave the order untouched.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := o.Status

	if target == order.StatusCancelled {
		err = o.Cancel(req.Reason)
	} else {
		err = o.ChangeStatus(target)
	}
	if err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, activity.TypeOrderStatusChanged,
		fmt.Sprintf("Order %s moved from %s to %s", o.ID, from, o.Status),
		nil, &o.ID)

	s.notifyStatusChange(ctx, o)

	resp := ToOrderResponse(o)
	return &resp, nil
}

// MarkPaid records a confirmed payment against an order. Called from
// the payment webhook, so repeats of the same reference are accepted.
func (s *Service) MarkPaid(ctx context.Context, orderID uuid.UUID, paymentRef string) error {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if err := o.MarkPaid(paymentRef); err != nil {
		return err
	}

	return s.orders.Save(ctx, o)
}

// notifyStatusChange emails the customer about the new status. Delivery
// is best effort.
func (s *Service) notifyStatusChange(ctx context.Context, o *order.Order) {
	if s.mailer == nil {
		return
	}

	u, err := s.users.FindByID(ctx, o.UserID)
	if err != nil {
		s.logger.Warn("Cannot notify customer, user lookup failed",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
		return
	}

	msg := email.Message{
		To:      u.Email,
		Subject: fmt.Sprintf("Your order is %s", o.Status),
		HTML:    fmt.Sprintf("<p>Hi %s, your order %s is now <b>%s</b>.</p>", u.Name, o.ID, o.Status),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Warn("Status notification email failed",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
	}
}
