package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	warehouseapp "github.com/nexbasket/backend/internal/application/warehouse"
	"github.com/nexbasket/backend/internal/domain/shared"
)

// WarehouseService is the slice of the warehouse service the endpoints
// need
type WarehouseService interface {
	Create(ctx context.Context, req warehouseapp.CreateWarehouseRequest) (*warehouseapp.WarehouseResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*warehouseapp.WarehouseResponse, error)
	List(ctx context.Context, filter shared.Filter) (*shared.Paginated[warehouseapp.WarehouseResponse], error)
	Update(ctx context.Context, id uuid.UUID, req warehouseapp.UpdateWarehouseRequest) (*warehouseapp.WarehouseResponse, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*warehouseapp.WarehouseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Nearest(ctx context.Context, lat, lng float64) (*warehouseapp.NearestWarehouseResponse, error)
	UpsertStock(ctx context.Context, warehouseID uuid.UUID, req warehouseapp.UpsertStockRequest) (*warehouseapp.StockEntryResponse, error)
	ListStock(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) (*shared.Paginated[warehouseapp.StockEntryResponse], error)
}

// setActiveRequest toggles a warehouse's active flag
type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// WarehouseHandler handles warehouse and stock endpoints. The nearest
// lookup is public so the storefront can route a cart before login.
type WarehouseHandler struct {
	BaseHandler
	warehouses WarehouseService
	adminMW    []gin.HandlerFunc
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(warehouses WarehouseService, adminMW ...gin.HandlerFunc) *WarehouseHandler {
	return &WarehouseHandler{warehouses: warehouses, adminMW: adminMW}
}

// RegisterRoutes registers warehouse routes on the API group
func (h *WarehouseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/warehouses/nearest", h.Nearest)

	admin := rg.Group("/warehouses", h.adminMW...)
	admin.POST("", h.Create)
	admin.GET("", h.List)
	admin.GET("/:id", h.Get)
	admin.PUT("/:id", h.Update)
	admin.PATCH("/:id/active", h.SetActive)
	admin.DELETE("/:id", h.Delete)
	admin.PUT("/:id/stock/:productId", h.UpsertStock)
	admin.GET("/:id/stock", h.ListStock)
}

// Create adds a warehouse
func (h *WarehouseHandler) Create(c *gin.Context) {
	var req warehouseapp.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.warehouses.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one warehouse
func (h *WarehouseHandler) Get(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	resp, err := h.warehouses.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List returns warehouses
func (h *WarehouseHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.warehouses.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// Update edits a warehouse
func (h *WarehouseHandler) Update(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	var req warehouseapp.UpdateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.warehouses.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SetActive toggles whether a warehouse accepts orders
func (h *WarehouseHandler) SetActive(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.warehouses.SetActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a warehouse
func (h *WarehouseHandler) Delete(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	if err := h.warehouses.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Nearest returns the closest active warehouse to ?lat=&lng=
func (h *WarehouseHandler) Nearest(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		h.BadRequest(c, "lat must be a number")
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		h.BadRequest(c, "lng must be a number")
		return
	}

	resp, err := h.warehouses.Nearest(c.Request.Context(), lat, lng)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpsertStock sets the quantity of a product in a warehouse. The new
// level replaces the old one outright.
func (h *WarehouseHandler) UpsertStock(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var body struct {
		Quantity *int `json:"quantity" binding:"required,min=0"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	req := warehouseapp.UpsertStockRequest{ProductID: productID, Quantity: *body.Quantity}
	resp, err := h.warehouses.UpsertStock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListStock returns a warehouse's stock entries
func (h *WarehouseHandler) ListStock(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.warehouses.ListStock(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}
