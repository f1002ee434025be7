package benefits

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaymentOrder(t *testing.T) {
	requestID := uuid.New()

	t.Run("creates pending order with normalized iban", func(t *testing.T) {
		order, err := NewPaymentOrder(requestID, decimal.NewFromInt(350), " de89 3704 0044 0532 0130 00 ")
		require.NoError(t, err)

		assert.Equal(t, requestID, order.RequestID)
		assert.Equal(t, "DE89370400440532013000", order.IBAN)
		assert.True(t, order.IsPending())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewPaymentOrder(uuid.Nil, decimal.NewFromInt(100), "DE89370400440532013000")
		assert.Error(t, err)

		_, err = NewPaymentOrder(requestID, decimal.Zero, "DE89370400440532013000")
		assert.Error(t, err)

		_, err = NewPaymentOrder(requestID, decimal.NewFromInt(100), "DE89")
		assert.Error(t, err)
	})
}

func TestPaymentOrderLifecycle(t *testing.T) {
	t.Run("clear", func(t *testing.T) {
		order, err := NewPaymentOrder(uuid.New(), decimal.NewFromInt(350), "DE89370400440532013000")
		require.NoError(t, err)

		require.NoError(t, order.MarkCleared())
		assert.Equal(t, PaymentStatusCleared, order.Status)
		require.NotNil(t, order.ClearedAt)

		assert.Error(t, order.MarkCleared())
		assert.Error(t, order.Cancel("late"))
	})

	t.Run("cancel", func(t *testing.T) {
		order, err := NewPaymentOrder(uuid.New(), decimal.NewFromInt(350), "DE89370400440532013000")
		require.NoError(t, err)

		require.NoError(t, order.Cancel("wrong account"))
		assert.Equal(t, PaymentStatusCancelled, order.Status)
		assert.Equal(t, "wrong account", order.Note)

		assert.Error(t, order.MarkCleared())
	})
}
