package handler

import (
	"time"

	"github.com/benefits/backend/internal/application/benefits"
	domain "github.com/benefits/backend/internal/domain/benefits"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================
// Request DTOs
// =====================

// CreateRequestRequest represents the request body for filing a benefit request
type CreateRequestRequest struct {
	Type            string  `json:"type" binding:"required,oneof=housing heating childcare transport"`
	Summary         string  `json:"summary" binding:"required,max=2000"`
	RequestedAmount float64 `json:"requested_amount" binding:"required,gt=0"`
}

// ApproveRequestRequest represents the request body for approving a request
type ApproveRequestRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Note   string  `json:"note" binding:"required,max=2000"`
}

// RejectRequestRequest represents the request body for rejecting a request
type RejectRequestRequest struct {
	Note string `json:"note" binding:"required,max=2000"`
}

// ExportRequestsRequest represents the request body for the program-wide export
type ExportRequestsRequest struct {
	Reason string `json:"reason" binding:"required,min=5,max=500"`
}

// RequestListQuery represents query parameters for listing benefit requests
type RequestListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=draft submitted in_review approved rejected paid"`
	Type     string `form:"type" binding:"omitempty,oneof=housing heating childcare transport"`
}

// =====================
// Request Response DTOs
// =====================

// RequestResponse represents benefit request data in responses
type RequestResponse struct {
	ID              uuid.UUID        `json:"id"`
	Type            string           `json:"type"`
	Status          string           `json:"status"`
	Summary         string           `json:"summary"`
	RequestedAmount decimal.Decimal  `json:"requested_amount"`
	ApprovedAmount  *decimal.Decimal `json:"approved_amount,omitempty"`
	SubmittedAt     *time.Time       `json:"submitted_at,omitempty"`
	DecidedAt       *time.Time       `json:"decided_at,omitempty"`
	DecisionNote    string           `json:"decision_note,omitempty"`
	OwnerID         *uuid.UUID       `json:"owner_id,omitempty"`
	UnitID          *uuid.UUID       `json:"unit_id,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// StatusBreakdownResponse is one row of the per-status aggregate
type StatusBreakdownResponse struct {
	Status string          `json:"status"`
	Count  int64           `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

func toRequestResponse(request *domain.BenefitRequest) RequestResponse {
	return RequestResponse{
		ID:              request.ID,
		Type:            string(request.Type),
		Status:          string(request.Status),
		Summary:         request.Summary,
		RequestedAmount: request.RequestedAmount,
		ApprovedAmount:  request.ApprovedAmount,
		SubmittedAt:     request.SubmittedAt,
		DecidedAt:       request.DecidedAt,
		DecisionNote:    request.DecisionNote,
		OwnerID:         request.OwnerID,
		UnitID:          request.UnitID,
		CreatedAt:       request.CreatedAt,
		UpdatedAt:       request.UpdatedAt,
	}
}

func toRequestResponses(requests []domain.BenefitRequest) []RequestResponse {
	out := make([]RequestResponse, len(requests))
	for i := range requests {
		out[i] = toRequestResponse(&requests[i])
	}
	return out
}

func toStatusBreakdownResponses(rows []benefits.StatusBreakdown) []StatusBreakdownResponse {
	out := make([]StatusBreakdownResponse, len(rows))
	for i, row := range rows {
		out[i] = StatusBreakdownResponse{
			Status: string(row.Status),
			Count:  row.Count,
			Total:  row.Total,
		}
	}
	return out
}
