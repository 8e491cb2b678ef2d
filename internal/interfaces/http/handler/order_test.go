package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/nexbasket/backend/internal/application/order"
	"github.com/nexbasket/backend/internal/domain/shared"
	"github.com/nexbasket/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService implements OrderService for testing
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, userID uuid.UUID, req orderapp.CreateOrderRequest) (*orderapp.PlacedOrderResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.PlacedOrderResponse), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, id uuid.UUID) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

func (m *MockOrderService) ListByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[orderapp.OrderResponse], error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[orderapp.OrderResponse]), args.Error(1)
}

func (m *MockOrderService) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID, statusRaw string, filter shared.Filter) (*shared.Paginated[orderapp.OrderResponse], error) {
	args := m.Called(ctx, warehouseID, statusRaw, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[orderapp.OrderResponse]), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req orderapp.UpdateStatusRequest) (*orderapp.OrderResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderapp.OrderResponse), args.Error(1)
}

// fakeAuth injects JWT context values without a real token
func fakeAuth(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Set(middleware.JWTRoleKey, role)
		c.Next()
	}
}

func passthrough(c *gin.Context) { c.Next() }

func newOrderRouter(svc OrderService, userID uuid.UUID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewOrderHandler(svc, fakeAuth(userID, role), passthrough)
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)
	return r
}

func TestOrderHandlerCreate(t *testing.T) {
	userID := uuid.New()
	warehouseID := uuid.New()

	t.Run("places an order", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("Create", mock.Anything, userID, mock.Anything).
			Return(&orderapp.PlacedOrderResponse{
				Order: orderapp.OrderResponse{ID: uuid.New(), UserID: userID, Status: "pending"},
			}, nil)

		body, _ := json.Marshal(orderapp.CreateOrderRequest{
			WarehouseID:     warehouseID,
			ShippingAddress: "12 MG Road, Bengaluru",
			Items: []orderapp.CreateOrderItem{
				{ProductID: uuid.New(), Quantity: 2},
			},
		})

		r := newOrderRouter(svc, userID, "customer")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "pending")
	})

	t.Run("rejects an order without items", func(t *testing.T) {
		svc := new(MockOrderService)

		body := []byte(`{"warehouseId":"` + warehouseID.String() + `","shippingAddress":"addr","items":[]}`)

		r := newOrderRouter(svc, userID, "customer")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrderHandlerGet(t *testing.T) {
	owner := uuid.New()
	orderID := uuid.New()

	t.Run("owner reads their order", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("Get", mock.Anything, orderID).
			Return(&orderapp.OrderResponse{ID: orderID, UserID: owner, Status: "pending"}, nil)

		r := newOrderRouter(svc, owner, "customer")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("another customer sees 404", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("Get", mock.Anything, orderID).
			Return(&orderapp.OrderResponse{ID: orderID, UserID: owner, Status: "pending"}, nil)

		r := newOrderRouter(svc, uuid.New(), "customer")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("staff read any order", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("Get", mock.Anything, orderID).
			Return(&orderapp.OrderResponse{ID: orderID, UserID: owner, Status: "pending"}, nil)

		r := newOrderRouter(svc, uuid.New(), "admin")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing order maps to 404", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("Get", mock.Anything, orderID).Return(nil, shared.ErrNotFound)

		r := newOrderRouter(svc, owner, "customer")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOrderHandlerUpdateStatus(t *testing.T) {
	orderID := uuid.New()

	t.Run("valid transition", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("UpdateStatus", mock.Anything, orderID, orderapp.UpdateStatusRequest{Status: "accepted"}).
			Return(&orderapp.OrderResponse{ID: orderID, Status: "accepted"}, nil)

		r := newOrderRouter(svc, uuid.New(), "admin")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/orders/"+orderID.String()+"/status",
			bytes.NewReader([]byte(`{"status":"accepted"}`)))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("illegal transition maps to 422", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("UpdateStatus", mock.Anything, orderID, mock.Anything).
			Return(nil, shared.NewDomainError("INVALID_TRANSITION", "Order cannot move from delivered to accepted"))

		r := newOrderRouter(svc, uuid.New(), "admin")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/orders/"+orderID.String()+"/status",
			bytes.NewReader([]byte(`{"status":"accepted"}`)))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestOrderHandlerListByWarehouse(t *testing.T) {
	warehouseID := uuid.New()

	svc := new(MockOrderService)
	page := shared.NewPaginated([]orderapp.OrderResponse{{ID: uuid.New(), Status: "pending"}}, 1, 1, 20)
	svc.On("ListByWarehouse", mock.Anything, warehouseID, "pending", mock.Anything).Return(&page, nil)

	r := newOrderRouter(svc, uuid.New(), "manager")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/warehouses/"+warehouseID.String()+"/orders?status=pending", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "meta")
}
