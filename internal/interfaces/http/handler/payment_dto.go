package handler

import (
	"time"

	domain "github.com/benefits/backend/internal/domain/benefits"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================
// Payment Request DTOs
// =====================

// IssuePaymentRequest represents the request body for issuing a payment order
type IssuePaymentRequest struct {
	RequestID string `json:"request_id" binding:"required,uuid"`
	IBAN      string `json:"iban" binding:"required,min=15,max=34"`
}

// CancelPaymentRequest represents the request body for cancelling a payment order
type CancelPaymentRequest struct {
	Note string `json:"note" binding:"required,max=2000"`
}

// PaymentListQuery represents query parameters for listing payment orders
type PaymentListQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Status    string `form:"status" binding:"omitempty,oneof=pending cleared cancelled"`
	RequestID string `form:"request_id" binding:"omitempty,uuid"`
}

// =====================
// Payment Response DTOs
// =====================

// PaymentResponse represents payment order data in responses
type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	RequestID uuid.UUID       `json:"request_id"`
	Amount    decimal.Decimal `json:"amount"`
	IBAN      string          `json:"iban"`
	Status    string          `json:"status"`
	ClearedAt *time.Time      `json:"cleared_at,omitempty"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toPaymentResponse(payment *domain.PaymentOrder) PaymentResponse {
	return PaymentResponse{
		ID:        payment.ID,
		RequestID: payment.RequestID,
		Amount:    payment.Amount,
		IBAN:      payment.IBAN,
		Status:    string(payment.Status),
		ClearedAt: payment.ClearedAt,
		Note:      payment.Note,
		CreatedAt: payment.CreatedAt,
		UpdatedAt: payment.UpdatedAt,
	}
}

func toPaymentResponses(payments []domain.PaymentOrder) []PaymentResponse {
	out := make([]PaymentResponse, len(payments))
	for i := range payments {
		out[i] = toPaymentResponse(&payments[i])
	}
	return out
}
