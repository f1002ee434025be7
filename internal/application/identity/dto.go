package identity

import (
	"time"

	"github.com/benefits/backend/internal/domain/identity"
	"github.com/benefits/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID          uuid.UUID
	Username    string
	DisplayName string
	Email       string
	Role        identity.Role
	ScopeMode   string
	UnitID      *uuid.UUID
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	TokenTTL time.Duration // Remaining lifetime of the access token
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// CreateUserInput contains the input for creating a user
type CreateUserInput struct {
	Username    string
	Password    string
	Email       string
	DisplayName string
	Role        identity.Role
	UnitID      *uuid.UUID
	Activate    bool
}

// UpdateUserInput contains the mutable profile fields of a user
type UpdateUserInput struct {
	UserID      uuid.UUID
	Email       *string
	DisplayName *string
}

// ListUsersInput contains filters for listing users
type ListUsersInput struct {
	Filter shared.Filter
}

// CreateUnitInput contains the input for creating a district office
type CreateUnitInput struct {
	Name     string
	Code     string
	District string
}
