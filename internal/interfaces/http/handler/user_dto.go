package handler

import (
	"time"

	"github.com/benefits/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// =====================
// User Request DTOs
// =====================

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Username    string  `json:"username" binding:"required,min=3,max=100"`
	Password    string  `json:"password" binding:"required,min=8,max=128"`
	Email       string  `json:"email" binding:"omitempty,email"`
	DisplayName string  `json:"display_name" binding:"omitempty,max=100"`
	Role        string  `json:"role" binding:"required,oneof=administrator caseworker resident"`
	UnitID      *string `json:"unit_id" binding:"omitempty,uuid"`
	Activate    bool    `json:"activate"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Email       *string `json:"email" binding:"omitempty,email"`
	DisplayName *string `json:"display_name" binding:"omitempty,max=100"`
}

// UserListQuery represents query parameters for listing users
type UserListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=administrator caseworker resident"`
	Status   string `form:"status"`
}

// =====================
// User Response DTOs
// =====================

// UserResponse represents user data in responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	Email       string     `json:"email,omitempty"`
	Role        string     `json:"role"`
	ScopeMode   string     `json:"scope_mode"`
	UnitID      *uuid.UUID `json:"unit_id,omitempty"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Role:        string(user.Role),
		ScopeMode:   user.Role.ScopeMode(),
		UnitID:      user.UnitID,
		Status:      string(user.Status),
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

func toUserResponses(users []*identity.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, user := range users {
		out[i] = toUserResponse(user)
	}
	return out
}
