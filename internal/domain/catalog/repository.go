package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/nexbasket/backend/internal/domain/shared"
)

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Category], error)
	Save(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// SubCategoryRepository defines persistence operations for subcategories
type SubCategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SubCategory, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]SubCategory, error)
	Save(ctx context.Context, s *SubCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Product], error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) (*shared.Paginated[Product], error)
	Save(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
