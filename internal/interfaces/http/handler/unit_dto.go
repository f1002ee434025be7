package handler

import (
	"time"

	"github.com/benefits/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// =====================
// Unit Request DTOs
// =====================

// CreateUnitRequest represents the request body for creating a district office
type CreateUnitRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=200"`
	Code     string `json:"code" binding:"required,min=2,max=20"`
	District string `json:"district" binding:"omitempty,max=100"`
}

// RenameUnitRequest represents the request body for renaming a unit
type RenameUnitRequest struct {
	Name string `json:"name" binding:"required,min=2,max=200"`
}

// UnitListQuery represents query parameters for listing units
type UnitListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
}

// =====================
// Unit Response DTOs
// =====================

// UnitResponse represents district office data in responses
type UnitResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	District  string    `json:"district,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUnitResponse(unit *identity.Unit) UnitResponse {
	return UnitResponse{
		ID:        unit.ID,
		Name:      unit.Name,
		Code:      unit.Code,
		District:  unit.District,
		Status:    string(unit.Status),
		CreatedAt: unit.CreatedAt,
		UpdatedAt: unit.UpdatedAt,
	}
}

func toUnitResponses(units []*identity.Unit) []UnitResponse {
	out := make([]UnitResponse, len(units))
	for i, unit := range units {
		out[i] = toUnitResponse(unit)
	}
	return out
}
