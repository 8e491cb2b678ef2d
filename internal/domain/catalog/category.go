package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nexbasket/backend/internal/domain/shared"
)

// Category is a top-level grouping of products
type Category struct {
	shared.BaseAggregateRoot
	Name     string `gorm:"type:varchar(120);not null;uniqueIndex"`
	ImageURL string `gorm:"type:text"`
	Active   bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new active category
func NewCategory(name, imageURL string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		ImageURL:          imageURL,
		Active:            true,
	}, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	c.Name = strings.TrimSpace(name)
	return nil
}

// SubCategory is a second-level grouping under a category
type SubCategory struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(120);not null"`
	ImageURL   string    `gorm:"type:text"`
	Active     bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SubCategory) TableName() string {
	return "sub_categories"
}

// NewSubCategory creates a new subcategory under a category
func NewSubCategory(categoryID uuid.UUID, name, imageURL string) (*SubCategory, error) {
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Subcategory name cannot be empty")
	}

	now := time.Now()
	return &SubCategory{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Name:       strings.TrimSpace(name),
		ImageURL:   imageURL,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
