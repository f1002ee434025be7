package identity

import (
	"context"
	"testing"
	"time"

	"github.com/benefits/backend/internal/domain/identity"
	"github.com/benefits/backend/internal/domain/shared"
	"github.com/benefits/backend/internal/infrastructure/auth"
	"github.com/benefits/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*identity.User, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

var _ identity.UserRepository = (*MockUserRepository)(nil)

func newTestAuthService(userRepo identity.UserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-auth-service",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "benefits-test",
	})
	return NewAuthService(userRepo, jwtService, auth.NewInMemoryTokenBlacklist(), DefaultAuthServiceConfig(), zap.NewNop())
}

func activeUser(t *testing.T, role identity.Role, unitID *uuid.UUID) *identity.User {
	t.Helper()
	user, err := identity.NewActiveUser("maria.lopez", "s3cure-pass", role, unitID)
	require.NoError(t, err)
	return user
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("successful login carries the role's scope mode", func(t *testing.T) {
		unitID := uuid.New()
		user := activeUser(t, identity.RoleCaseworker, &unitID)

		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "maria.lopez").Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		svc := newTestAuthService(userRepo)
		result, err := svc.Login(ctx, LoginInput{Username: "maria.lopez", Password: "s3cure-pass", IP: "10.0.0.1"})
		require.NoError(t, err)

		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "UNIT", result.User.ScopeMode)
		require.NotNil(t, result.User.UnitID)
		assert.Equal(t, unitID, *result.User.UnitID)
		userRepo.AssertExpectations(t)
	})

	t.Run("administrator logs in with global mode and no unit", func(t *testing.T) {
		user := activeUser(t, identity.RoleAdministrator, nil)

		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "maria.lopez").Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		svc := newTestAuthService(userRepo)
		result, err := svc.Login(ctx, LoginInput{Username: "maria.lopez", Password: "s3cure-pass"})
		require.NoError(t, err)

		assert.Equal(t, "GLOBAL", result.User.ScopeMode)
		assert.Nil(t, result.User.UnitID)
	})

	t.Run("unknown username maps to invalid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "nobody").Return(nil, shared.ErrNotFound)

		svc := newTestAuthService(userRepo)
		_, err := svc.Login(ctx, LoginInput{Username: "nobody", Password: "whatever1"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("wrong password maps to invalid credentials", func(t *testing.T) {
		user := activeUser(t, identity.RoleResident, nil)

		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "maria.lopez").Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		svc := newTestAuthService(userRepo)
		_, err := svc.Login(ctx, LoginInput{Username: "maria.lopez", Password: "wrong-pass"})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
		assert.Equal(t, 1, user.FailedAttempts)
	})

	t.Run("repeated failures lock the account", func(t *testing.T) {
		user := activeUser(t, identity.RoleResident, nil)

		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "maria.lopez").Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		svc := newTestAuthService(userRepo)
		var lastErr error
		for i := 0; i < DefaultAuthServiceConfig().MaxLoginAttempts; i++ {
			_, lastErr = svc.Login(ctx, LoginInput{Username: "maria.lopez", Password: "wrong-pass"})
		}

		var domainErr *shared.DomainError
		require.ErrorAs(t, lastErr, &domainErr)
		assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
		assert.True(t, user.IsLocked())
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		user := activeUser(t, identity.RoleResident, nil)
		require.NoError(t, user.Deactivate())

		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "maria.lopez").Return(user, nil)

		svc := newTestAuthService(userRepo)
		_, err := svc.Login(ctx, LoginInput{Username: "maria.lopez", Password: "s3cure-pass"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("re-resolves scope mode from the current user record", func(t *testing.T) {
		unitID := uuid.New()
		user := activeUser(t, identity.RoleCaseworker, &unitID)

		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "maria.lopez").Return(user, nil)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		svc := newTestAuthService(userRepo)
		login, err := svc.Login(ctx, LoginInput{Username: "maria.lopez", Password: "s3cure-pass"})
		require.NoError(t, err)

		result, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		svc := newTestAuthService(new(MockUserRepository))
		_, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: "not-a-token"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})

	t.Run("rejects refresh for a deactivated user", func(t *testing.T) {
		user := activeUser(t, identity.RoleResident, nil)

		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "maria.lopez").Return(user, nil)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		svc := newTestAuthService(userRepo)
		login, err := svc.Login(ctx, LoginInput{Username: "maria.lopez", Password: "s3cure-pass"})
		require.NoError(t, err)

		require.NoError(t, user.Deactivate())

		_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_INACTIVE", domainErr.Code)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("force logout invalidates outstanding refresh tokens", func(t *testing.T) {
		user := activeUser(t, identity.RoleResident, nil)

		userRepo := new(MockUserRepository)
		userRepo.On("FindByUsername", ctx, "maria.lopez").Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		svc := newTestAuthService(userRepo)
		login, err := svc.Login(ctx, LoginInput{Username: "maria.lopez", Password: "s3cure-pass"})
		require.NoError(t, err)

		require.NoError(t, svc.ForceLogout(adminCtx(t), user.ID))

		_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: login.RefreshToken})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})

	t.Run("force logout requires an administrator", func(t *testing.T) {
		svc := newTestAuthService(new(MockUserRepository))

		err := svc.ForceLogout(residentCtx(t), uuid.New())
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("logout without token details is a no-op", func(t *testing.T) {
		svc := newTestAuthService(new(MockUserRepository))
		assert.NoError(t, svc.Logout(ctx, LogoutInput{UserID: uuid.New()}))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("changes password with correct old password", func(t *testing.T) {
		user := activeUser(t, identity.RoleResident, nil)

		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		svc := newTestAuthService(userRepo)
		err := svc.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "s3cure-pass",
			NewPassword: "even-m0re-secure",
		})
		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("even-m0re-secure"))
	})

	t.Run("rejects wrong old password", func(t *testing.T) {
		user := activeUser(t, identity.RoleResident, nil)

		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		svc := newTestAuthService(userRepo)
		err := svc.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "wrong-pass",
			NewPassword: "even-m0re-secure",
		})
		require.Error(t, err)
		assert.True(t, user.VerifyPassword("s3cure-pass"))
	})
}
