package warehouse

import (
	"context"
	"testing"

	"github.com/google/uuid"
	activityapp "github.com/nexbasket/backend/internal/application/activity"
	"github.com/nexbasket/backend/internal/domain/activity"
	"github.com/nexbasket/backend/internal/domain/shared"
	"github.com/nexbasket/backend/internal/domain/warehouse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mocks
// =============================================================================

type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindByName(ctx context.Context, name string) (*warehouse.Warehouse, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[warehouse.Warehouse], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[warehouse.Warehouse]), args.Error(1)
}

func (m *MockWarehouseRepository) FindActive(ctx context.Context) ([]warehouse.Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]warehouse.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) Save(ctx context.Context, w *warehouse.Warehouse) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) FindByWarehouseAndProduct(ctx context.Context, warehouseID, productID uuid.UUID) (*warehouse.StockEntry, error) {
	args := m.Called(ctx, warehouseID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.StockEntry), args.Error(1)
}

func (m *MockStockRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) (*shared.Paginated[warehouse.StockEntry], error) {
	args := m.Called(ctx, warehouseID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[warehouse.StockEntry]), args.Error(1)
}

func (m *MockStockRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]warehouse.StockEntry, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]warehouse.StockEntry), args.Error(1)
}

func (m *MockStockRepository) Upsert(ctx context.Context, entry *warehouse.StockEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStockRepository) Delete(ctx context.Context, warehouseID, productID uuid.UUID) error {
	args := m.Called(ctx, warehouseID, productID)
	return args.Error(0)
}

type nullActivityRepo struct{}

func (nullActivityRepo) Save(ctx context.Context, a *activity.Activity) error { return nil }
func (nullActivityRepo) FindRecent(ctx context.Context, limit int) ([]activity.Activity, error) {
	return nil, nil
}

func newService(warehouses *MockWarehouseRepository, stock *MockStockRepository) *Service {
	activities := activityapp.NewService(nullActivityRepo{}, zap.NewNop())
	return NewService(warehouses, stock, activities)
}

func mustWarehouse(t *testing.T, name, city string, lat, lng float64) warehouse.Warehouse {
	t.Helper()
	w, err := warehouse.NewWarehouse(name, "addr", city, "000000", lat, lng)
	require.NoError(t, err)
	return *w
}

// =============================================================================
// Tests
// =============================================================================

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates warehouse", func(t *testing.T) {
		warehouses := new(MockWarehouseRepository)
		warehouses.On("FindByName", ctx, "Hub").Return(nil, shared.ErrNotFound)
		warehouses.On("Save", ctx, mock.Anything).Return(nil)

		svc := newService(warehouses, new(MockStockRepository))
		resp, err := svc.Create(ctx, CreateWarehouseRequest{
			Name: "Hub", Address: "addr", City: "Bengaluru", Latitude: 12.9, Longitude: 77.6,
		})
		require.NoError(t, err)
		assert.True(t, resp.Active)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		existing := mustWarehouse(t, "Hub", "Bengaluru", 12.9, 77.6)
		warehouses := new(MockWarehouseRepository)
		warehouses.On("FindByName", ctx, "Hub").Return(&existing, nil)

		svc := newService(warehouses, new(MockStockRepository))
		_, err := svc.Create(ctx, CreateWarehouseRequest{
			Name: "Hub", Address: "addr", City: "Bengaluru",
		})
		require.Error(t, err)
		warehouses.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestServiceNearest(t *testing.T) {
	ctx := context.Background()

	t.Run("picks the closest active warehouse", func(t *testing.T) {
		bengaluru := mustWarehouse(t, "Bengaluru Hub", "Bengaluru", 12.9716, 77.5946)
		chennai := mustWarehouse(t, "Chennai Hub", "Chennai", 13.0827, 80.2707)
		mumbai := mustWarehouse(t, "Mumbai Hub", "Mumbai", 19.0760, 72.8777)

		warehouses := new(MockWarehouseRepository)
		warehouses.On("FindActive", ctx).Return([]warehouse.Warehouse{bengaluru, chennai, mumbai}, nil)

		svc := newService(warehouses, new(MockStockRepository))

		// Mysuru is much closer to Bengaluru than to Chennai or Mumbai
		resp, err := svc.Nearest(ctx, 12.2958, 76.6394)
		require.NoError(t, err)
		assert.Equal(t, "Bengaluru Hub", resp.Name)
		assert.InDelta(t, 128, resp.DistanceKm, 15)
	})

	t.Run("errors when no active warehouses exist", func(t *testing.T) {
		warehouses := new(MockWarehouseRepository)
		warehouses.On("FindActive", ctx).Return([]warehouse.Warehouse{}, nil)

		svc := newService(warehouses, new(MockStockRepository))
		_, err := svc.Nearest(ctx, 12.0, 77.0)
		require.Error(t, err)
	})

	t.Run("rejects out of range coordinates", func(t *testing.T) {
		svc := newService(new(MockWarehouseRepository), new(MockStockRepository))
		_, err := svc.Nearest(ctx, 91.0, 0.0)
		require.Error(t, err)
	})
}

func TestServiceSetActive(t *testing.T) {
	ctx := context.Background()

	w := mustWarehouse(t, "Hub", "Bengaluru", 12.9, 77.6)
	warehouses := new(MockWarehouseRepository)
	warehouses.On("FindByID", ctx, w.ID).Return(&w, nil)
	warehouses.On("Save", ctx, mock.Anything).Return(nil)

	svc := newService(warehouses, new(MockStockRepository))

	resp, err := svc.SetActive(ctx, w.ID, false)
	require.NoError(t, err)
	assert.False(t, resp.Active)

	resp, err = svc.SetActive(ctx, w.ID, true)
	require.NoError(t, err)
	assert.True(t, resp.Active)
}

func TestServiceUpsertStock(t *testing.T) {
	ctx := context.Background()

	t.Run("writes the submitted quantity", func(t *testing.T) {
		w := mustWarehouse(t, "Hub", "Bengaluru", 12.9, 77.6)
		productID := uuid.New()

		warehouses := new(MockWarehouseRepository)
		warehouses.On("FindByID", ctx, w.ID).Return(&w, nil)

		stock := new(MockStockRepository)
		stock.On("Upsert", ctx, mock.MatchedBy(func(e *warehouse.StockEntry) bool {
			return e.WarehouseID == w.ID && e.ProductID == productID && e.Quantity == 7
		})).Return(nil)

		svc := newService(warehouses, stock)
		resp, err := svc.UpsertStock(ctx, w.ID, UpsertStockRequest{ProductID: productID, Quantity: 7})
		require.NoError(t, err)
		assert.Equal(t, 7, resp.Quantity)
		stock.AssertExpectations(t)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		w := mustWarehouse(t, "Hub", "Bengaluru", 12.9, 77.6)
		warehouses := new(MockWarehouseRepository)
		warehouses.On("FindByID", ctx, w.ID).Return(&w, nil)

		svc := newService(warehouses, new(MockStockRepository))
		_, err := svc.UpsertStock(ctx, w.ID, UpsertStockRequest{ProductID: uuid.New(), Quantity: -1})
		require.Error(t, err)
	})

	t.Run("unknown warehouse propagates not found", func(t *testing.T) {
		id := uuid.New()
		warehouses := new(MockWarehouseRepository)
		warehouses.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		svc := newService(warehouses, new(MockStockRepository))
		_, err := svc.UpsertStock(ctx, id, UpsertStockRequest{ProductID: uuid.New(), Quantity: 1})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
