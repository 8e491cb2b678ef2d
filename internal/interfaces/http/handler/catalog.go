package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/nexbasket/backend/internal/application/catalog"
	"github.com/nexbasket/backend/internal/domain/shared"
)

// CatalogService is the slice of the catalog service the endpoints need
type CatalogService interface {
	CreateCategory(ctx context.Context, req catalogapp.CreateCategoryRequest) (*catalogapp.CategoryResponse, error)
	ListCategories(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalogapp.CategoryResponse], error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CreateSubCategory(ctx context.Context, req catalogapp.CreateSubCategoryRequest) (*catalogapp.SubCategoryResponse, error)
	ListSubCategories(ctx context.Context, categoryID uuid.UUID) ([]catalogapp.SubCategoryResponse, error)
	CreateProduct(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error)
	ListProducts(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalogapp.ProductResponse], error)
	ListProductsByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) (*shared.Paginated[catalogapp.ProductResponse], error)
	UpdateProductPrice(ctx context.Context, id uuid.UUID, req catalogapp.UpdateProductRequest) (*catalogapp.ProductResponse, error)
	DiscontinueProduct(ctx context.Context, id uuid.UUID) error
}

// CatalogHandler handles category and product endpoints. Reads are
// public for the storefront; writes require an admin.
type CatalogHandler struct {
	BaseHandler
	catalog CatalogService
	adminMW []gin.HandlerFunc
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog CatalogService, adminMW ...gin.HandlerFunc) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, adminMW: adminMW}
}

// RegisterRoutes registers catalog routes on the API group
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.ListCategories)
	rg.GET("/categories/:id/subcategories", h.ListSubCategories)
	rg.GET("/categories/:id/products", h.ListProductsByCategory)
	rg.GET("/products", h.ListProducts)
	rg.GET("/products/:id", h.GetProduct)

	admin := rg.Group("", h.adminMW...)
	admin.POST("/categories", h.CreateCategory)
	admin.DELETE("/categories/:id", h.DeleteCategory)
	admin.POST("/subcategories", h.CreateSubCategory)
	admin.POST("/products", h.CreateProduct)
	admin.PUT("/products/:id", h.UpdateProduct)
	admin.DELETE("/products/:id", h.DiscontinueProduct)
}

// CreateCategory adds a category
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.catalog.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListCategories returns categories for the storefront
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.catalog.ListCategories(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// DeleteCategory removes a category
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateSubCategory adds a subcategory
func (h *CatalogHandler) CreateSubCategory(c *gin.Context) {
	var req catalogapp.CreateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.catalog.CreateSubCategory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListSubCategories lists the subcategories of a category
func (h *CatalogHandler) ListSubCategories(c *gin.Context) {
	categoryID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	subs, err := h.catalog.ListSubCategories(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, subs)
}

// CreateProduct adds a product
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.catalog.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetProduct returns one product
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	resp, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListProducts returns products for the storefront
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.catalog.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// ListProductsByCategory returns the products in a category
func (h *CatalogHandler) ListProductsByCategory(c *gin.Context) {
	categoryID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.catalog.ListProductsByCategory(c.Request.Context(), categoryID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// UpdateProduct changes a product's price and discount
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.catalog.UpdateProductPrice(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DiscontinueProduct hides a product from the storefront
func (h *CatalogHandler) DiscontinueProduct(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.catalog.DiscontinueProduct(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
