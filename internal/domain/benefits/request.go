// Package benefits holds the case data of the municipal benefits program:
// benefit requests, their review documents and the payment orders issued for
// approved requests. All three aggregates carry scope ownership metadata and
// are persisted exclusively through scoped stores.
package benefits

import (
	"strings"
	"time"

	"github.com/benefits/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BenefitType represents the kind of benefit applied for
type BenefitType string

const (
	BenefitTypeHousing   BenefitType = "housing"
	BenefitTypeHeating   BenefitType = "heating"
	BenefitTypeChildcare BenefitType = "childcare"
	BenefitTypeTransport BenefitType = "transport"
)

// Valid reports whether the benefit type is a known value
func (t BenefitType) Valid() bool {
	switch t {
	case BenefitTypeHousing, BenefitTypeHeating, BenefitTypeChildcare, BenefitTypeTransport:
		return true
	}
	return false
}

// RequestStatus represents the review state of a benefit request
type RequestStatus string

const (
	RequestStatusDraft     RequestStatus = "draft"
	RequestStatusSubmitted RequestStatus = "submitted"
	RequestStatusInReview  RequestStatus = "in_review"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusPaid      RequestStatus = "paid"
)

// BenefitRequest is an application for a benefit. It is the aggregate root of
// the review workflow: draft -> submitted -> in_review -> approved/rejected,
// and approved -> paid once a payment order clears.
type BenefitRequest struct {
	shared.ScopedAggregateRoot
	Type            BenefitType
	Status          RequestStatus
	Summary         string
	RequestedAmount decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	ApprovedAmount  *decimal.Decimal `gorm:"type:decimal(18,2)"`
	SubmittedAt     *time.Time
	DecidedAt       *time.Time
	DecisionNote    string
}

// TableName returns the database table name
func (BenefitRequest) TableName() string {
	return "benefit_requests"
}

// NewBenefitRequest creates a draft request. Ownership metadata is stamped by
// the store at creation time, not here.
func NewBenefitRequest(benefitType BenefitType, summary string, requestedAmount decimal.Decimal) (*BenefitRequest, error) {
	if !benefitType.Valid() {
		return nil, shared.NewDomainError("INVALID_BENEFIT_TYPE", "Unknown benefit type")
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil, shared.NewDomainError("INVALID_SUMMARY", "Summary cannot be empty")
	}
	if len(summary) > 2000 {
		return nil, shared.NewDomainError("INVALID_SUMMARY", "Summary cannot exceed 2000 characters")
	}
	if requestedAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.ErrInvalidAmount
	}

	return &BenefitRequest{
		ScopedAggregateRoot: shared.NewScopedAggregateRoot(),
		Type:                benefitType,
		Status:              RequestStatusDraft,
		Summary:             summary,
		RequestedAmount:     requestedAmount,
	}, nil
}

// Submit moves a draft into the review queue
func (r *BenefitRequest) Submit() error {
	if r.Status != RequestStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft requests can be submitted")
	}

	now := time.Now()
	r.Status = RequestStatusSubmitted
	r.SubmittedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// StartReview claims a submitted request for review
func (r *BenefitRequest) StartReview() error {
	if r.Status != RequestStatusSubmitted {
		return shared.NewDomainError("INVALID_STATE", "Only submitted requests can enter review")
	}

	r.Status = RequestStatusInReview
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// Approve grants the request with the given amount. The approved amount may
// be lower than the requested one but never higher.
func (r *BenefitRequest) Approve(amount decimal.Decimal, note string) error {
	if r.Status != RequestStatusInReview {
		return shared.NewDomainError("INVALID_STATE", "Only requests in review can be approved")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.ErrInvalidAmount
	}
	if amount.GreaterThan(r.RequestedAmount) {
		return shared.NewDomainError("INVALID_AMOUNT", "Approved amount cannot exceed the requested amount")
	}

	now := time.Now()
	r.Status = RequestStatusApproved
	r.ApprovedAmount = &amount
	r.DecisionNote = strings.TrimSpace(note)
	r.DecidedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// Reject denies the request. A reason is mandatory.
func (r *BenefitRequest) Reject(note string) error {
	if r.Status != RequestStatusInReview {
		return shared.NewDomainError("INVALID_STATE", "Only requests in review can be rejected")
	}
	note = strings.TrimSpace(note)
	if note == "" {
		return shared.NewDomainError("MISSING_DECISION_NOTE", "A rejection requires a reason")
	}

	now := time.Now()
	r.Status = RequestStatusRejected
	r.DecisionNote = note
	r.DecidedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// MarkPaid records that the payment order for this request has cleared
func (r *BenefitRequest) MarkPaid() error {
	if r.Status != RequestStatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Only approved requests can be marked paid")
	}

	r.Status = RequestStatusPaid
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// IsOpen reports whether the request is still in the workflow
func (r *BenefitRequest) IsOpen() bool {
	switch r.Status {
	case RequestStatusDraft, RequestStatusSubmitted, RequestStatusInReview:
		return true
	}
	return false
}
