package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nexbasket/backend/internal/domain/catalog"
	"github.com/nexbasket/backend/internal/domain/identity"
	"github.com/nexbasket/backend/internal/domain/order"
	"github.com/nexbasket/backend/internal/domain/shared"
	"github.com/nexbasket/backend/internal/domain/warehouse"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Each test gets its own named in-memory database so parallel
	// connections within one test share state without leaking across tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func seedWarehouse(t *testing.T, db *gorm.DB, name string) *warehouse.Warehouse {
	t.Helper()
	w, err := warehouse.NewWarehouse(name, "80 Feet Rd", "Bengaluru", "560034", 12.93, 77.62)
	require.NoError(t, err)
	require.NoError(t, NewGormWarehouseRepository(db).Save(context.Background(), w))
	return w
}

func seedOrder(t *testing.T, db *gorm.DB, warehouseID uuid.UUID, status order.Status, total string) *order.Order {
	t.Helper()

	item, err := order.NewItem(uuid.Nil, uuid.New(), "Milk 1L", 1, decimal.RequireFromString(total), 0)
	require.NoError(t, err)

	o, err := order.NewOrder(uuid.New(), warehouseID, "221B Baker Street", []order.Item{*item})
	require.NoError(t, err)
	o.Status = status

	require.NoError(t, NewGormOrderRepository(db).Save(context.Background(), o))
	return o
}

func TestGormOrderRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	w := seedWarehouse(t, db, "Koramangala Hub")

	t.Run("save and find by id with items", func(t *testing.T) {
		o := seedOrder(t, db, w.ID, order.StatusPending, "99.00")

		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		require.True(t, found.TotalAmount.Equal(decimal.RequireFromString("99.00")))
	})

	t.Run("find by id returns ErrNotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		require.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("find by warehouse filters on status", func(t *testing.T) {
		other := seedWarehouse(t, db, "Indiranagar Hub")
		seedOrder(t, db, other.ID, order.StatusPending, "10.00")
		seedOrder(t, db, other.ID, order.StatusDelivered, "20.00")

		status := order.StatusDelivered
		page, err := repo.FindByWarehouse(ctx, other.ID, &status, shared.DefaultFilter())
		require.NoError(t, err)
		require.Equal(t, int64(1), page.Total)
		require.Equal(t, order.StatusDelivered, page.Items[0].Status)

		page, err = repo.FindByWarehouse(ctx, other.ID, nil, shared.DefaultFilter())
		require.NoError(t, err)
		require.Equal(t, int64(2), page.Total)
	})

	t.Run("count by status", func(t *testing.T) {
		n, err := repo.CountByStatus(ctx, order.StatusPending)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, int64(1))
	})

	t.Run("status updates persist", func(t *testing.T) {
		o := seedOrder(t, db, w.ID, order.StatusPending, "50.00")
		require.NoError(t, o.ChangeStatus(order.StatusAccepted))
		require.NoError(t, repo.Save(ctx, o))

		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		require.Equal(t, order.StatusAccepted, found.Status)
		require.NotNil(t, found.AcceptedAt)
	})
}

func TestGormStockRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormStockRepository(db)
	ctx := context.Background()

	w := seedWarehouse(t, db, "Stock Hub")
	productID := uuid.New()

	t.Run("upsert creates then replaces", func(t *testing.T) {
		entry, err := warehouse.NewStockEntry(w.ID, productID, 10)
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, entry))

		replacement, err := warehouse.NewStockEntry(w.ID, productID, 3)
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, replacement))

		found, err := repo.FindByWarehouseAndProduct(ctx, w.ID, productID)
		require.NoError(t, err)
		require.Equal(t, 3, found.Quantity)

		page, err := repo.FindByWarehouse(ctx, w.ID, shared.DefaultFilter())
		require.NoError(t, err)
		require.Equal(t, int64(1), page.Total, "upsert must not create a second row")
	})

	t.Run("overwrite returns the stored row's identity", func(t *testing.T) {
		pid := uuid.New()
		first, err := warehouse.NewStockEntry(w.ID, pid, 10)
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, first))

		second, err := warehouse.NewStockEntry(w.ID, pid, 7)
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, second))

		require.Equal(t, first.ID, second.ID)
		require.Equal(t, first.CreatedAt.UTC().Truncate(time.Second), second.CreatedAt.UTC().Truncate(time.Second))
		require.Equal(t, 7, second.Quantity)
	})

	t.Run("missing entry returns ErrNotFound", func(t *testing.T) {
		_, err := repo.FindByWarehouseAndProduct(ctx, w.ID, uuid.New())
		require.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("delete removes the pair", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, w.ID, productID))
		require.ErrorIs(t, repo.Delete(ctx, w.ID, productID), shared.ErrNotFound)
	})
}

func TestGormWarehouseRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormWarehouseRepository(db)
	ctx := context.Background()

	active := seedWarehouse(t, db, "Active Hub")
	inactive := seedWarehouse(t, db, "Inactive Hub")
	inactive.Deactivate()
	require.NoError(t, repo.Save(ctx, inactive))

	t.Run("find active excludes deactivated", func(t *testing.T) {
		list, err := repo.FindActive(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, active.ID, list[0].ID)
	})

	t.Run("find by name", func(t *testing.T) {
		found, err := repo.FindByName(ctx, "Active Hub")
		require.NoError(t, err)
		require.Equal(t, active.ID, found.ID)

		_, err = repo.FindByName(ctx, "Ghost Hub")
		require.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("count", func(t *testing.T) {
		n, err := repo.Count(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(2), n)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, inactive.ID))
		require.ErrorIs(t, repo.Delete(ctx, inactive.ID), shared.ErrNotFound)
	})
}

func TestGormCatalogRepositories(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	categories := NewGormCategoryRepository(db)
	subs := NewGormSubCategoryRepository(db)
	products := NewGormProductRepository(db)

	cat, err := catalog.NewCategory("Groceries", "")
	require.NoError(t, err)
	require.NoError(t, categories.Save(ctx, cat))

	sub, err := catalog.NewSubCategory(cat.ID, "Dairy", "")
	require.NoError(t, err)
	require.NoError(t, subs.Save(ctx, sub))

	p, err := catalog.NewProduct("Milk 1L", "Full cream", cat.ID, &sub.ID, decimal.RequireFromString("60.00"), 10, "pack", "")
	require.NoError(t, err)
	require.NoError(t, products.Save(ctx, p))

	t.Run("category round trip", func(t *testing.T) {
		found, err := categories.FindByName(ctx, "Groceries")
		require.NoError(t, err)
		require.Equal(t, cat.ID, found.ID)
	})

	t.Run("subcategories by category", func(t *testing.T) {
		list, err := subs.FindByCategory(ctx, cat.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run("products by category", func(t *testing.T) {
		page, err := products.FindByCategory(ctx, cat.ID, shared.DefaultFilter())
		require.NoError(t, err)
		require.Equal(t, int64(1), page.Total)
	})

	t.Run("counts", func(t *testing.T) {
		n, err := categories.Count(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(1), n)

		n, err = products.Count(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(1), n)
	})
}

func TestGormUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	u, err := identity.NewUser("Asha", "asha@example.com", "", "s3cretpass", identity.RoleCustomer)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, u))

	t.Run("find by email is case insensitive on input", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "  ASHA@example.com ")
		require.NoError(t, err)
		require.Equal(t, u.ID, found.ID)
	})

	t.Run("missing user returns ErrNotFound", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "ghost@example.com")
		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}
