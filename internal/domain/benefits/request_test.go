package benefits

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraft(t *testing.T) *BenefitRequest {
	t.Helper()
	request, err := NewBenefitRequest(BenefitTypeHeating, "Winter heating support", decimal.NewFromInt(400))
	require.NoError(t, err)
	return request
}

func TestNewBenefitRequest(t *testing.T) {
	t.Run("creates draft without ownership stamped", func(t *testing.T) {
		request := newDraft(t)

		assert.Equal(t, RequestStatusDraft, request.Status)
		assert.True(t, request.IsOpen())
		assert.Nil(t, request.OwnerID)
		assert.Nil(t, request.UnitID)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewBenefitRequest(BenefitType("pension"), "x", decimal.NewFromInt(100))
		assert.Error(t, err)

		_, err = NewBenefitRequest(BenefitTypeHeating, "", decimal.NewFromInt(100))
		assert.Error(t, err)

		_, err = NewBenefitRequest(BenefitTypeHeating, "x", decimal.Zero)
		assert.Error(t, err)

		_, err = NewBenefitRequest(BenefitTypeHeating, "x", decimal.NewFromInt(-5))
		assert.Error(t, err)
	})
}

func TestBenefitRequestWorkflow(t *testing.T) {
	t.Run("full approval path", func(t *testing.T) {
		request := newDraft(t)

		require.NoError(t, request.Submit())
		assert.Equal(t, RequestStatusSubmitted, request.Status)
		require.NotNil(t, request.SubmittedAt)

		require.NoError(t, request.StartReview())
		assert.Equal(t, RequestStatusInReview, request.Status)

		require.NoError(t, request.Approve(decimal.NewFromInt(350), "standard rate"))
		assert.Equal(t, RequestStatusApproved, request.Status)
		require.NotNil(t, request.ApprovedAmount)
		assert.True(t, request.ApprovedAmount.Equal(decimal.NewFromInt(350)))
		require.NotNil(t, request.DecidedAt)

		require.NoError(t, request.MarkPaid())
		assert.Equal(t, RequestStatusPaid, request.Status)
		assert.False(t, request.IsOpen())
	})

	t.Run("rejection requires a reason", func(t *testing.T) {
		request := newDraft(t)
		require.NoError(t, request.Submit())
		require.NoError(t, request.StartReview())

		assert.Error(t, request.Reject("  "))
		require.NoError(t, request.Reject("insufficient documentation"))
		assert.Equal(t, RequestStatusRejected, request.Status)
		assert.Equal(t, "insufficient documentation", request.DecisionNote)
	})

	t.Run("approved amount cannot exceed requested", func(t *testing.T) {
		request := newDraft(t)
		require.NoError(t, request.Submit())
		require.NoError(t, request.StartReview())

		assert.Error(t, request.Approve(decimal.NewFromInt(500), ""))
	})

	t.Run("transitions only from the right state", func(t *testing.T) {
		request := newDraft(t)

		assert.Error(t, request.StartReview())
		assert.Error(t, request.Approve(decimal.NewFromInt(100), ""))
		assert.Error(t, request.MarkPaid())

		require.NoError(t, request.Submit())
		assert.Error(t, request.Submit())
	})
}
