package benefits

import (
	"strings"
	"time"

	"github.com/benefits/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the state of a payment order
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCleared   PaymentStatus = "cleared"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// PaymentOrder is the instruction to pay out an approved benefit request.
// One order per request; cancelling an order returns the request to the
// approved state so a corrected order can be issued.
type PaymentOrder struct {
	shared.ScopedAggregateRoot
	RequestID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	IBAN      string
	Status    PaymentStatus
	ClearedAt *time.Time
	Note      string
}

// TableName returns the database table name
func (PaymentOrder) TableName() string {
	return "payment_orders"
}

// NewPaymentOrder creates a pending payment order for an approved request
func NewPaymentOrder(requestID uuid.UUID, amount decimal.Decimal, iban string) (*PaymentOrder, error) {
	if requestID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REQUEST_ID", "Request ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.ErrInvalidAmount
	}
	iban = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(iban), " ", ""))
	if len(iban) < 15 || len(iban) > 34 {
		return nil, shared.NewDomainError("INVALID_IBAN", "IBAN must be 15-34 characters")
	}

	return &PaymentOrder{
		ScopedAggregateRoot: shared.NewScopedAggregateRoot(),
		RequestID:           requestID,
		Amount:              amount,
		IBAN:                iban,
		Status:              PaymentStatusPending,
	}, nil
}

// MarkCleared records that the transfer went out
func (p *PaymentOrder) MarkCleared() error {
	if p.Status != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can clear")
	}

	now := time.Now()
	p.Status = PaymentStatusCleared
	p.ClearedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// Cancel voids a pending order
func (p *PaymentOrder) Cancel(note string) error {
	if p.Status != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be cancelled")
	}

	p.Status = PaymentStatusCancelled
	p.Note = strings.TrimSpace(note)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsPending reports whether the order is awaiting transfer
func (p *PaymentOrder) IsPending() bool {
	return p.Status == PaymentStatusPending
}
