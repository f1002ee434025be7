package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	unitID := uuid.New()

	t.Run("creates resident with hashed password", func(t *testing.T) {
		user, err := NewUser("maria.lopez", "s3cure-pass", RoleResident, nil)
		require.NoError(t, err)

		assert.Equal(t, "maria.lopez", user.Username)
		assert.Equal(t, RoleResident, user.Role)
		assert.Equal(t, UserStatusPending, user.Status)
		assert.Nil(t, user.UnitID)
		assert.NotEqual(t, "s3cure-pass", user.PasswordHash)
		assert.True(t, user.VerifyPassword("s3cure-pass"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("caseworker requires a unit", func(t *testing.T) {
		_, err := NewUser("j.nguyen", "s3cure-pass", RoleCaseworker, nil)
		require.Error(t, err)

		user, err := NewUser("j.nguyen", "s3cure-pass", RoleCaseworker, &unitID)
		require.NoError(t, err)
		require.NotNil(t, user.UnitID)
		assert.Equal(t, unitID, *user.UnitID)
	})

	t.Run("non-caseworker roles drop the unit", func(t *testing.T) {
		user, err := NewUser("admin", "s3cure-pass", RoleAdministrator, &unitID)
		require.NoError(t, err)
		assert.Nil(t, user.UnitID)
	})

	t.Run("normalizes username", func(t *testing.T) {
		user, err := NewUser("  Maria.Lopez  ", "s3cure-pass", RoleResident, nil)
		require.NoError(t, err)
		assert.Equal(t, "maria.lopez", user.Username)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewUser("", "s3cure-pass", RoleResident, nil)
		assert.Error(t, err)

		_, err = NewUser("ab", "s3cure-pass", RoleResident, nil)
		assert.Error(t, err)

		_, err = NewUser("maria", "short", RoleResident, nil)
		assert.Error(t, err)

		_, err = NewUser("maria", "s3cure-pass", Role("auditor"), nil)
		assert.Error(t, err)
	})
}

func TestRoleScopeMode(t *testing.T) {
	assert.Equal(t, "GLOBAL", RoleAdministrator.ScopeMode())
	assert.Equal(t, "UNIT", RoleCaseworker.ScopeMode())
	assert.Equal(t, "OWN", RoleResident.ScopeMode())
}

func TestUserLifecycle(t *testing.T) {
	user, err := NewUser("maria", "s3cure-pass", RoleResident, nil)
	require.NoError(t, err)

	t.Run("activate", func(t *testing.T) {
		require.NoError(t, user.Activate())
		assert.True(t, user.IsActive())

		assert.Error(t, user.Activate())
	})

	t.Run("lock and unlock", func(t *testing.T) {
		require.NoError(t, user.Lock(time.Hour))
		assert.True(t, user.IsLocked())

		require.NoError(t, user.Unlock())
		assert.True(t, user.IsActive())
	})

	t.Run("expired lock is not locked", func(t *testing.T) {
		require.NoError(t, user.Lock(-time.Minute))
		assert.False(t, user.IsLocked())
		require.NoError(t, user.Unlock())
	})

	t.Run("deactivate", func(t *testing.T) {
		require.NoError(t, user.Deactivate())
		assert.True(t, user.IsDeactivated())

		assert.Error(t, user.Lock(time.Hour))
	})
}

func TestUserLoginTracking(t *testing.T) {
	user, err := NewActiveUser("maria", "s3cure-pass", RoleResident, nil)
	require.NoError(t, err)

	t.Run("failures accumulate and lock at the limit", func(t *testing.T) {
		assert.False(t, user.RecordLoginFailure(3, time.Hour))
		assert.False(t, user.RecordLoginFailure(3, time.Hour))
		assert.True(t, user.RecordLoginFailure(3, time.Hour))
		assert.True(t, user.IsLocked())
	})

	t.Run("success resets the counter", func(t *testing.T) {
		require.NoError(t, user.Unlock())
		user.RecordLoginSuccess("203.0.113.7")

		assert.Equal(t, 0, user.FailedAttempts)
		assert.Equal(t, "203.0.113.7", user.LastLoginIP)
		require.NotNil(t, user.LastLoginAt)
	})
}

func TestUserChangePassword(t *testing.T) {
	user, err := NewActiveUser("maria", "s3cure-pass", RoleResident, nil)
	require.NoError(t, err)

	t.Run("requires the current password", func(t *testing.T) {
		assert.Error(t, user.ChangePassword("wrong", "new-password-1"))
	})

	t.Run("changes with the current password", func(t *testing.T) {
		require.NoError(t, user.ChangePassword("s3cure-pass", "new-password-1"))
		assert.True(t, user.VerifyPassword("new-password-1"))
		assert.False(t, user.VerifyPassword("s3cure-pass"))
	})
}

func TestUserSetEmail(t *testing.T) {
	user, err := NewUser("maria", "s3cure-pass", RoleResident, nil)
	require.NoError(t, err)

	require.NoError(t, user.SetEmail("Maria.Lopez@Example.org"))
	assert.Equal(t, "maria.lopez@example.org", user.Email)

	assert.Error(t, user.SetEmail("not-an-email"))
}
