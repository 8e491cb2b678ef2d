package activity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("creates entry", func(t *testing.T) {
		actor := uuid.New()
		a, err := New(TypeOrderPlaced, "Order placed by asha@example.com", &actor, nil)

		require.NoError(t, err)
		assert.Equal(t, TypeOrderPlaced, a.Type)
		assert.Equal(t, &actor, a.ActorID)
		assert.False(t, a.CreatedAt.IsZero())
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := New(Type("login_failed"), "something", nil, nil)
		assert.Error(t, err)
	})

	t.Run("rejects blank message", func(t *testing.T) {
		_, err := New(TypeStockUpdated, "   ", nil, nil)
		assert.Error(t, err)
	})
}

func TestTypeIsValid(t *testing.T) {
	for _, typ := range []Type{
		TypeProductAdded, TypeCategoryAdded, TypeSubCategoryAdded,
		TypeUserRegistered, TypeOrderPlaced, TypeOrderStatusChanged,
		TypeStockUpdated, TypeWarehouseAdded,
	} {
		assert.True(t, typ.IsValid(), "expected %s to be valid", typ)
	}
	assert.False(t, Type("").IsValid())
}
