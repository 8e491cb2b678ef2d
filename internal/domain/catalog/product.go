package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/nexbasket/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. Price and discount here are the
// current list values; orders snapshot them at purchase time.
type Product struct {
	shared.BaseAggregateRoot
	Name            string          `gorm:"type:varchar(200);not null;index"`
	Description     string          `gorm:"type:text"`
	CategoryID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	SubCategoryID   *uuid.UUID      `gorm:"type:uuid;index"`
	Price           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DiscountPercent int             `gorm:"not null;default:0"`
	Unit            string          `gorm:"type:varchar(30)"`
	ImageURL        string          `gorm:"type:text"`
	Active          bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product
func NewProduct(name, description string, categoryID uuid.UUID, subCategoryID *uuid.UUID, price decimal.Decimal, discountPercent int, unit, imageURL string) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if discountPercent < 0 || discountPercent > 100 {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount must be a whole percentage between 0 and 100")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       description,
		CategoryID:        categoryID,
		SubCategoryID:     subCategoryID,
		Price:             price,
		DiscountPercent:   discountPercent,
		Unit:              unit,
		ImageURL:          imageURL,
		Active:            true,
	}, nil
}

// ChangePrice updates the list price and discount for future orders
func (p *Product) ChangePrice(price decimal.Decimal, discountPercent int) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if discountPercent < 0 || discountPercent > 100 {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount must be a whole percentage between 0 and 100")
	}
	p.Price = price
	p.DiscountPercent = discountPercent
	return nil
}

// EffectivePrice returns the list price with the current discount applied
func (p *Product) EffectivePrice() decimal.Decimal {
	factor := decimal.NewFromInt(100 - int64(p.DiscountPercent)).Div(decimal.NewFromInt(100))
	return p.Price.Mul(factor).Round(2)
}

// Discontinue hides the product from the storefront
func (p *Product) Discontinue() {
	p.Active = false
}
