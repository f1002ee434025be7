package identity

import (
	"context"

	"github.com/benefits/backend/internal/domain/identity"
	"github.com/benefits/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles administration of program accounts
type UserService struct {
	userRepo identity.UserRepository
	unitRepo identity.UnitRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, unitRepo identity.UnitRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		unitRepo: unitRepo,
		logger:   logger,
	}
}

// CreateUser creates a new account. Administrators only: anything less could
// mint itself a wider role. A caseworker must be assigned to an existing
// active unit; the assignment decides which records the account can see once
// logged in.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*identity.User, error) {
	if err := requireAdministrator(ctx); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Error("Failed to check username availability", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check username availability")
	}
	if exists {
		return nil, shared.NewDomainError("USERNAME_TAKEN", "Username is already in use")
	}

	if input.Role == identity.RoleCaseworker {
		if input.UnitID == nil {
			return nil, shared.NewDomainError("UNIT_REQUIRED", "A caseworker must be assigned to a unit")
		}
		unit, err := s.unitRepo.FindByID(ctx, *input.UnitID)
		if err != nil {
			return nil, shared.NewDomainError("UNIT_NOT_FOUND", "Assigned unit does not exist")
		}
		if !unit.IsActive() {
			return nil, shared.NewDomainError("UNIT_INACTIVE", "Assigned unit is not active")
		}
	}

	var user *identity.User
	if input.Activate {
		user, err = identity.NewActiveUser(input.Username, input.Password, input.Role, input.UnitID)
	} else {
		user, err = identity.NewUser(input.Username, input.Password, input.Role, input.UnitID)
	}
	if err != nil {
		return nil, err
	}

	if input.Email != "" {
		if err := user.SetEmail(input.Email); err != nil {
			return nil, err
		}
	}
	if input.DisplayName != "" {
		if err := user.SetDisplayName(input.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	if err := requireAdministrator(ctx); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, id)
}

// ListUsers returns users matching the filter with pagination
func (s *UserService) ListUsers(ctx context.Context, input ListUsersInput) (*shared.Paginated[*identity.User], error) {
	if err := requireAdministrator(ctx); err != nil {
		return nil, err
	}

	users, total, err := s.userRepo.FindAll(ctx, input.Filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	page := shared.NewPaginated(users, total, input.Filter.Page, input.Filter.PageSize)
	return &page, nil
}

// UpdateUser updates the mutable profile fields of a user
func (s *UserService) UpdateUser(ctx context.Context, input UpdateUserInput) (*identity.User, error) {
	if err := requireAdministrator(ctx); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		if err := user.SetEmail(*input.Email); err != nil {
			return nil, err
		}
	}
	if input.DisplayName != nil {
		if err := user.SetDisplayName(*input.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update user")
	}

	return user, nil
}

// ActivateUser activates a pending or deactivated account
func (s *UserService) ActivateUser(ctx context.Context, id uuid.UUID) error {
	if err := requireAdministrator(ctx); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := user.Activate(); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to activate user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to activate user")
	}

	s.logger.Info("User activated", zap.String("user_id", id.String()))
	return nil
}

// DeactivateUser deactivates an account
func (s *UserService) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	if err := requireAdministrator(ctx); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := user.Deactivate(); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to deactivate user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to deactivate user")
	}

	s.logger.Info("User deactivated", zap.String("user_id", id.String()))
	return nil
}

// UnlockUser clears a login lock before it expires
func (s *UserService) UnlockUser(ctx context.Context, id uuid.UUID) error {
	if err := requireAdministrator(ctx); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := user.Unlock(); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to unlock user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to unlock user")
	}

	s.logger.Info("User unlocked", zap.String("user_id", id.String()))
	return nil
}

// DeleteUser removes an account
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := requireAdministrator(ctx); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}
