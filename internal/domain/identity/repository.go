package identity

import (
	"context"

	"github.com/benefits/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence. Users and units
// are identity records, not case data: they are looked up during
// authentication before any scope context exists, so they live outside the
// scoped store.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// UnitRepository defines the interface for unit persistence
type UnitRepository interface {
	Create(ctx context.Context, unit *Unit) error
	Update(ctx context.Context, unit *Unit) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Unit, error)
	FindByCode(ctx context.Context, code string) (*Unit, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Unit, int64, error)
}
