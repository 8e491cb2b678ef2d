package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/nexbasket/backend/internal/application/order"
	"github.com/nexbasket/backend/internal/domain/shared"
	"github.com/nexbasket/backend/internal/interfaces/http/middleware"
)

// OrderService is the slice of the order service the endpoints need
type OrderService interface {
	Create(ctx context.Context, userID uuid.UUID, req orderapp.CreateOrderRequest) (*orderapp.PlacedOrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*orderapp.OrderResponse, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[orderapp.OrderResponse], error)
	ListByWarehouse(ctx context.Context, warehouseID uuid.UUID, statusRaw string, filter shared.Filter) (*shared.Paginated[orderapp.OrderResponse], error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req orderapp.UpdateStatusRequest) (*orderapp.OrderResponse, error)
}

// OrderHandler handles order endpoints. Customers place and read their
// own orders; warehouse staff drive the fulfilment flow.
type OrderHandler struct {
	BaseHandler
	orders  OrderService
	authMW  gin.HandlerFunc
	staffMW gin.HandlerFunc
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders OrderService, authMW, staffMW gin.HandlerFunc) *OrderHandler {
	return &OrderHandler{orders: orders, authMW: authMW, staffMW: staffMW}
}

// RegisterRoutes registers order routes on the API group
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders", h.authMW)
	orders.POST("", h.Create)
	orders.GET("/mine", h.ListMine)
	orders.GET("/:id", h.Get)
	orders.PUT("/:id/status", h.staffMW, h.UpdateStatus)

	rg.GET("/warehouses/:id/orders", h.authMW, h.staffMW, h.ListByWarehouse)
}

// Create places an order for the authenticated user
func (h *OrderHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orders.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns one order. Customers may only read their own.
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if !canReadOrder(c, resp.UserID) {
		h.NotFound(c, "Order not found")
		return
	}
	h.Success(c, resp)
}

// ListMine returns the authenticated user's orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.orders.ListByUser(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// ListByWarehouse returns a warehouse's orders, optionally filtered by
// status via ?status=
func (h *OrderHandler) ListByWarehouse(c *gin.Context) {
	warehouseID, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.orders.ListByWarehouse(c.Request.Context(), warehouseID, c.Query("status"), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// UpdateStatus moves an order through its lifecycle
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orders.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// canReadOrder reports whether the caller owns the order or has a
// staff role
func canReadOrder(c *gin.Context, ownerID uuid.UUID) bool {
	role := middleware.GetJWTRole(c)
	if role == "admin" || role == "manager" {
		return true
	}
	userID, err := getUserID(c)
	return err == nil && userID == ownerID
}
