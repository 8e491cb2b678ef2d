package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	activityapp "github.com/nexbasket/backend/internal/application/activity"
	"github.com/nexbasket/backend/internal/domain/activity"
	"github.com/nexbasket/backend/internal/domain/catalog"
	"github.com/nexbasket/backend/internal/domain/shared"
)

// Service handles catalog management
type Service struct {
	categories catalog.CategoryRepository
	subs       catalog.SubCategoryRepository
	products   catalog.ProductRepository
	activities *activityapp.Service
}

// NewService creates a new catalog service
func NewService(
	categories catalog.CategoryRepository,
	subs catalog.SubCategoryRepository,
	products catalog.ProductRepository,
	activities *activityapp.Service,
) *Service {
	return &Service{
		categories: categories,
		subs:       subs,
		products:   products,
		activities: activities,
	}
}

// CreateCategory adds a category
func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	if _, err := s.categories.FindByName(ctx, req.Name); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	c, err := catalog.NewCategory(req.Name, req.ImageURL)
	if err != nil {
		return nil, err
	}

	if err := s.categories.Save(ctx, c); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, activity.TypeCategoryAdded,
		fmt.Sprintf("Category %s added", c.Name), nil, &c.ID)

	resp := ToCategoryResponse(c)
	return &resp, nil
}

// ListCategories returns categories matching the filter
func (s *Service) ListCategories(ctx context.Context, filter shared.Filter) (*shared.Paginated[CategoryResponse], error) {
	page, err := s.categories.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToCategoryPage(page), nil
}

// DeleteCategory removes a category
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.categories.Delete(ctx, id)
}

// CreateSubCategory adds a subcategory under an existing category
func (s *Service) CreateSubCategory(ctx context.Context, req CreateSubCategoryRequest) (*SubCategoryResponse, error) {
	if _, err := s.categories.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	sub, err := catalog.NewSubCategory(req.CategoryID, req.Name, req.ImageURL)
	if err != nil {
		return nil, err
	}

	if err := s.subs.Save(ctx, sub); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, activity.TypeSubCategoryAdded,
		fmt.Sprintf("Subcategory %s added", sub.Name), nil, &sub.ID)

	resp := ToSubCategoryResponse(sub)
	return &resp, nil
}

// ListSubCategories returns the subcategories of a category
func (s *Service) ListSubCategories(ctx context.Context, categoryID uuid.UUID) ([]SubCategoryResponse, error) {
	subs, err := s.subs.FindByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	out := make([]SubCategoryResponse, 0, len(subs))
	for i := range subs {
		out = append(out, ToSubCategoryResponse(&subs[i]))
	}
	return out, nil
}

// CreateProduct adds a product
func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.categories.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if req.SubCategoryID != nil {
		if _, err := s.subs.FindByID(ctx, *req.SubCategoryID); err != nil {
			return nil, err
		}
	}

	p, err := catalog.NewProduct(req.Name, req.Description, req.CategoryID, req.SubCategoryID,
		req.Price, req.DiscountPercent, req.Unit, req.ImageURL)
	if err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}

	s.activities.Record(ctx, activity.TypeProductAdded,
		fmt.Sprintf("Product %s added", p.Name), nil, &p.ID)

	resp := ToProductResponse(p)
	return &resp, nil
}

// GetProduct returns a product by ID
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(p)
	return &resp, nil
}

// ListProducts returns products matching the filter
func (s *Service) ListProducts(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	page, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToProductPage(page), nil
}

// ListProductsByCategory returns the products in a category
func (s *Service) ListProductsByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	page, err := s.products.FindByCategory(ctx, categoryID, filter)
	if err != nil {
		return nil, err
	}
	return ToProductPage(page), nil
}

// UpdateProductPrice changes a product's list price and discount.
// Existing orders keep their snapshots.
func (s *Service) UpdateProductPrice(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.ChangePrice(req.Price, req.DiscountPercent); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}

	resp := ToProductResponse(p)
	return &resp, nil
}

// DiscontinueProduct hides a product from the storefront
func (s *Service) DiscontinueProduct(ctx context.Context, id uuid.UUID) error {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	p.Discontinue()
	return s.products.Save(ctx, p)
}
