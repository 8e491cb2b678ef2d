package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexbasket/backend/internal/domain/catalog"
	"github.com/nexbasket/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest is the payload for adding a category
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"imageUrl"`
}

// CreateSubCategoryRequest is the payload for adding a subcategory
type CreateSubCategoryRequest struct {
	CategoryID uuid.UUID `json:"categoryId" binding:"required"`
	Name       string    `json:"name" binding:"required"`
	ImageURL   string    `json:"imageUrl"`
}

// CreateProductRequest is the payload for adding a product
type CreateProductRequest struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	CategoryID      uuid.UUID       `json:"categoryId" binding:"required"`
	SubCategoryID   *uuid.UUID      `json:"subCategoryId"`
	Price           decimal.Decimal `json:"price" binding:"required"`
	DiscountPercent int             `json:"discountPercent" binding:"min=0,max=100"`
	Unit            string          `json:"unit"`
	ImageURL        string          `json:"imageUrl"`
}

// UpdateProductRequest is the payload for editing a product's price
type UpdateProductRequest struct {
	Price           decimal.Decimal `json:"price" binding:"required"`
	DiscountPercent int             `json:"discountPercent" binding:"min=0,max=100"`
}

// CategoryResponse is a category in API responses
type CategoryResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ImageURL string    `json:"imageUrl,omitempty"`
	Active   bool      `json:"active"`
}

// SubCategoryResponse is a subcategory in API responses
type SubCategoryResponse struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"categoryId"`
	Name       string    `json:"name"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	Active     bool      `json:"active"`
}

// ProductResponse is a product in API responses
type ProductResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	CategoryID      uuid.UUID       `json:"categoryId"`
	SubCategoryID   *uuid.UUID      `json:"subCategoryId,omitempty"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent int             `json:"discountPercent"`
	EffectivePrice  decimal.Decimal `json:"effectivePrice"`
	Unit            string          `json:"unit,omitempty"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToCategoryResponse converts a domain category to its API representation
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		ImageURL: c.ImageURL,
		Active:   c.Active,
	}
}

// ToSubCategoryResponse converts a domain subcategory to its API representation
func ToSubCategoryResponse(s *catalog.SubCategory) SubCategoryResponse {
	return SubCategoryResponse{
		ID:         s.ID,
		CategoryID: s.CategoryID,
		Name:       s.Name,
		ImageURL:   s.ImageURL,
		Active:     s.Active,
	}
}

// ToProductResponse converts a domain product to its API representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		SubCategoryID:   p.SubCategoryID,
		Price:           p.Price,
		DiscountPercent: p.DiscountPercent,
		EffectivePrice:  p.EffectivePrice(),
		Unit:            p.Unit,
		ImageURL:        p.ImageURL,
		Active:          p.Active,
		CreatedAt:       p.CreatedAt,
	}
}

// ToProductPage converts a paginated domain result to API responses
func ToProductPage(page *shared.Paginated[catalog.Product]) *shared.Paginated[ProductResponse] {
	items := make([]ProductResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToProductResponse(&page.Items[i]))
	}
	return &shared.Paginated[ProductResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}

// ToCategoryPage converts a paginated domain result to API responses
func ToCategoryPage(page *shared.Paginated[catalog.Category]) *shared.Paginated[CategoryResponse] {
	items := make([]CategoryResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToCategoryResponse(&page.Items[i]))
	}
	return &shared.Paginated[CategoryResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}
