package identity

import (
	"strings"
	"time"

	"github.com/benefits/backend/internal/domain/shared"
)

// UnitStatus represents the status of a unit
type UnitStatus string

const (
	UnitStatusActive   UnitStatus = "active"
	UnitStatusInactive UnitStatus = "inactive"
)

// Unit represents a district office of the benefits program. Every
// caseworker belongs to exactly one unit, and unit-scoped callers see only
// the records stamped with their unit.
type Unit struct {
	shared.BaseAggregateRoot
	Name     string
	Code     string // Short administrative code, unique
	District string
	Status   UnitStatus
}

// TableName returns the database table name
func (Unit) TableName() string {
	return "units"
}

// NewUnit creates a new active unit
func NewUnit(name, code, district string) (*Unit, error) {
	name = strings.TrimSpace(name)
	code = strings.ToUpper(strings.TrimSpace(code))

	if name == "" {
		return nil, shared.NewDomainError("INVALID_UNIT_NAME", "Unit name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_UNIT_NAME", "Unit name cannot exceed 200 characters")
	}
	if code == "" || len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_UNIT_CODE", "Unit code must be 1-20 characters")
	}

	return &Unit{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Code:              code,
		District:          strings.TrimSpace(district),
		Status:            UnitStatusActive,
	}, nil
}

// Rename changes the unit's display name
func (u *Unit) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return shared.NewDomainError("INVALID_UNIT_NAME", "Unit name must be 1-200 characters")
	}

	u.Name = name
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// Deactivate takes the unit out of service. Users assigned to it keep their
// assignment but can no longer log in until reassigned.
func (u *Unit) Deactivate() error {
	if u.Status == UnitStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Unit is already inactive")
	}

	u.Status = UnitStatusInactive
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// Activate puts the unit back in service
func (u *Unit) Activate() error {
	if u.Status == UnitStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Unit is already active")
	}

	u.Status = UnitStatusActive
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// IsActive returns true if the unit is in service
func (u *Unit) IsActive() bool {
	return u.Status == UnitStatusActive
}
