package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// ScopedAggregateRoot extends BaseAggregateRoot with the ownership metadata
// used by the scoped data-access engine. OwnerID is the principal that created
// the record; UnitID is the district office the record belongs to. Both are
// stamped by the engine at creation time and never re-stamped on updates.
type ScopedAggregateRoot struct {
	BaseAggregateRoot
	OwnerID *uuid.UUID `gorm:"type:uuid;index"`
	UnitID  *uuid.UUID `gorm:"type:uuid;index"`
}

// NewScopedAggregateRoot creates a new scope-bearing aggregate root
func NewScopedAggregateRoot() ScopedAggregateRoot {
	return ScopedAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
	}
}

// ScopeOwnerID returns the owning principal, nil if not yet stamped
func (s *ScopedAggregateRoot) ScopeOwnerID() *uuid.UUID {
	return s.OwnerID
}

// ScopeUnitID returns the owning unit, nil if not yet stamped
func (s *ScopedAggregateRoot) ScopeUnitID() *uuid.UUID {
	return s.UnitID
}

// SetScopeOwner records the owning principal
func (s *ScopedAggregateRoot) SetScopeOwner(id uuid.UUID) {
	s.OwnerID = &id
}

// SetScopeUnit records the owning unit
func (s *ScopedAggregateRoot) SetScopeUnit(id uuid.UUID) {
	s.UnitID = &id
}
