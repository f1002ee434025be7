package scope

import (
	"fmt"

	"github.com/google/uuid"
)

// Column names carried by every scope-bearing table. They are fixed by the
// schema convention (shared.ScopedAggregateRoot), not configurable per query,
// which keeps the predicate free of caller-controlled identifiers.
const (
	ColumnOwnerID = "owner_id"
	ColumnUnitID  = "unit_id"
)

// Predicate is a single equality restriction merged into every scoped read
type Predicate struct {
	Column string
	Value  uuid.UUID
}

// Scoped is implemented by every scope-bearing entity. The engine uses it to
// read and stamp ownership metadata without knowing the concrete type.
type Scoped interface {
	ScopeOwnerID() *uuid.UUID
	ScopeUnitID() *uuid.UUID
	SetScopeOwner(id uuid.UUID)
	SetScopeUnit(id uuid.UUID)
}

// ReadPredicate resolves the read restriction for a scope context. The second
// return value is false when no restriction applies (GLOBAL mode). Pure: no
// storage, no context propagation.
func ReadPredicate(sc Context) (Predicate, bool) {
	switch sc.Mode {
	case ModeGlobal:
		return Predicate{}, false
	case ModeUnit:
		return Predicate{Column: ColumnUnitID, Value: sc.UnitID}, true
	case ModeOwn:
		return Predicate{Column: ColumnOwnerID, Value: sc.CallerID}, true
	}
	// New() guarantees a valid mode; an unknown one here is a programming error
	panic(fmt.Sprintf("scope: unknown mode %q", sc.Mode))
}

// StampFields resolves the ownership fields to set on a newly created record.
// The owner is always stamped; the unit only under UNIT mode. Pure mirror of
// ReadPredicate for the write side.
func StampFields(sc Context) map[string]uuid.UUID {
	fields := map[string]uuid.UUID{
		ColumnOwnerID: sc.CallerID,
	}
	if sc.Mode == ModeUnit {
		fields[ColumnUnitID] = sc.UnitID
	}
	return fields
}

// Stamp applies StampFields to an entity, skipping fields the caller already
// set: an administrator deliberately creating a record for another unit under
// GLOBAL mode keeps their explicit value.
func Stamp(sc Context, entity Scoped) {
	for column, value := range StampFields(sc) {
		switch column {
		case ColumnOwnerID:
			if entity.ScopeOwnerID() == nil {
				entity.SetScopeOwner(value)
			}
		case ColumnUnitID:
			if entity.ScopeUnitID() == nil {
				entity.SetScopeUnit(value)
			}
		}
	}
}

// AssertVisible reports whether the record falls inside the caller's scope,
// returning ErrViolation if not. Ordinary reads and writes never call this;
// it exists for security-sensitive batch paths that must fail loudly instead
// of narrowing silently.
func AssertVisible(sc Context, entity Scoped) error {
	predicate, restricted := ReadPredicate(sc)
	if !restricted {
		return nil
	}

	var actual *uuid.UUID
	switch predicate.Column {
	case ColumnOwnerID:
		actual = entity.ScopeOwnerID()
	case ColumnUnitID:
		actual = entity.ScopeUnitID()
	}

	if actual == nil || *actual != predicate.Value {
		return fmt.Errorf("%w: %s", ErrViolation, sc)
	}
	return nil
}
