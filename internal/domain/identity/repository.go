package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/nexbasket/backend/internal/domain/shared"
)

// Repository defines persistence operations for users
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[User], error)
	Save(ctx context.Context, u *User) error
	Count(ctx context.Context) (int64, error)
}
