package benefits

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReviewDocument(t *testing.T) {
	requestID := uuid.New()

	t.Run("creates metadata record", func(t *testing.T) {
		doc, err := NewReviewDocument(requestID, DocumentKindIncomeProof, "payslip-march.pdf", "application/pdf", 48211, "docs/2026/payslip-march.pdf")
		require.NoError(t, err)

		assert.Equal(t, requestID, doc.RequestID)
		assert.Equal(t, DocumentKindIncomeProof, doc.Kind)
		assert.False(t, doc.Verified)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewReviewDocument(uuid.Nil, DocumentKindIncomeProof, "a.pdf", "application/pdf", 1, "k")
		assert.Error(t, err)

		_, err = NewReviewDocument(requestID, DocumentKind("scan"), "a.pdf", "application/pdf", 1, "k")
		assert.Error(t, err)

		_, err = NewReviewDocument(requestID, DocumentKindInvoice, "", "application/pdf", 1, "k")
		assert.Error(t, err)

		_, err = NewReviewDocument(requestID, DocumentKindInvoice, "a.pdf", "application/pdf", 0, "k")
		assert.Error(t, err)

		_, err = NewReviewDocument(requestID, DocumentKindInvoice, "a.pdf", "application/pdf", 1, " ")
		assert.Error(t, err)
	})
}

func TestReviewDocumentMarkVerified(t *testing.T) {
	doc, err := NewReviewDocument(uuid.New(), DocumentKindResidencyProof, "lease.pdf", "application/pdf", 1024, "docs/lease.pdf")
	require.NoError(t, err)

	require.NoError(t, doc.MarkVerified())
	assert.True(t, doc.Verified)

	assert.Error(t, doc.MarkVerified())
}
