package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/nexbasket/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Order], error)
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, status *Status, filter shared.Filter) (*shared.Paginated[Order], error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[Order], error)
	FindByPaymentRef(ctx context.Context, paymentRef string) (*Order, error)
	Save(ctx context.Context, o *Order) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
