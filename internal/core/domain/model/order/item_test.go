package order_test

import (
	"testing"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/pricing"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	orderID := kernel.NewUUID()
	serviceID := kernel.NewUUID()

	t.Run("should build piece item", func(t *testing.T) {
		line := pricing.NewPiece(serviceID, decimal.NewFromInt(2), decimal.NewFromInt(10000))

		item, err := order.NewItem(kernel.NewUUID(), orderID, "Shirt", line)

		require.NoError(t, err)
		assert.Equal(t, 2, item.Quantity())
		assert.Nil(t, item.Weight())
		assert.False(t, item.IsWeightBased())
		assert.True(t, decimal.NewFromInt(20000).Equal(item.Subtotal()))
		assert.True(t, item.ServiceID().IsEqual(serviceID))
		assert.Equal(t, "Shirt", item.ServiceName())
	})

	t.Run("should build weight item", func(t *testing.T) {
		line := pricing.NewWeight(serviceID, decimal.NewFromInt(3), decimal.NewFromInt(5000))

		item, err := order.NewItem(kernel.NewUUID(), orderID, "Wash & Fold", line)

		require.NoError(t, err)
		require.NotNil(t, item.Weight())
		assert.True(t, decimal.NewFromInt(3).Equal(*item.Weight()))
		assert.True(t, item.IsWeightBased())
		assert.True(t, decimal.NewFromInt(15000).Equal(item.Subtotal()))
		assert.True(t, item.EffectiveQuantity().Equal(decimal.NewFromInt(3)))
	})

	t.Run("should require service name", func(t *testing.T) {
		line := pricing.NewPiece(serviceID, decimal.NewFromInt(1), decimal.NewFromInt(1))

		_, err := order.NewItem(kernel.NewUUID(), orderID, "", line)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should require line", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), orderID, "Shirt", nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreItem(t *testing.T) {
	weight := decimal.RequireFromString("2.5")

	t.Run("should accept consistent subtotal", func(t *testing.T) {
		_, err := order.RestoreItem(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "Bedding", 1, &weight,
			decimal.NewFromInt(5000), decimal.NewFromInt(12500))

		require.NoError(t, err)
	})

	t.Run("should reject inconsistent subtotal", func(t *testing.T) {
		_, err := order.RestoreItem(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "Shirt", 2, nil,
			decimal.NewFromInt(10000), decimal.NewFromInt(10000))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "subtotal")
	})
}
