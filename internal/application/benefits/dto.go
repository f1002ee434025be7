package benefits

import (
	"github.com/benefits/backend/internal/domain/benefits"
	"github.com/benefits/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateRequestInput contains the input for filing a benefit request
type CreateRequestInput struct {
	Type            benefits.BenefitType
	Summary         string
	RequestedAmount decimal.Decimal
}

// DecideRequestInput contains the input for an approval or rejection
type DecideRequestInput struct {
	RequestID uuid.UUID
	Amount    decimal.Decimal // Approval only
	Note      string
}

// ListRequestsInput contains filters for listing requests
type ListRequestsInput struct {
	Status benefits.RequestStatus
	Type   benefits.BenefitType
	Filter shared.Filter
}

// StatusBreakdown is one row of the per-status aggregate
type StatusBreakdown struct {
	Status benefits.RequestStatus `json:"status"`
	Count  int64                  `json:"count"`
	Total  decimal.Decimal        `json:"total"`
}

// ExportRequestsInput contains the input for the program-wide export. The
// reason is recorded with every bypass entry in the audit log.
type ExportRequestsInput struct {
	Reason string
	Filter shared.Filter
}

// AttachDocumentInput contains the input for attaching a review document
type AttachDocumentInput struct {
	RequestID   uuid.UUID
	Kind        benefits.DocumentKind
	FileName    string
	ContentType string
	SizeBytes   int64
	StorageKey  string
}

// IssuePaymentInput contains the input for issuing a payment order
type IssuePaymentInput struct {
	RequestID uuid.UUID
	IBAN      string
}
