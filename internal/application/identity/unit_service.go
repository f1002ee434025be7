package identity

import (
	"context"

	"github.com/benefits/backend/internal/domain/identity"
	"github.com/benefits/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UnitService handles administration of district offices
type UnitService struct {
	unitRepo identity.UnitRepository
	logger   *zap.Logger
}

// NewUnitService creates a new unit service
func NewUnitService(unitRepo identity.UnitRepository, logger *zap.Logger) *UnitService {
	return &UnitService{
		unitRepo: unitRepo,
		logger:   logger,
	}
}

// CreateUnit creates a new district office. Administrators only; lookups and
// listings stay open so caseworkers can resolve their own office.
func (s *UnitService) CreateUnit(ctx context.Context, input CreateUnitInput) (*identity.Unit, error) {
	if err := requireAdministrator(ctx); err != nil {
		return nil, err
	}

	if _, err := s.unitRepo.FindByCode(ctx, input.Code); err == nil {
		return nil, shared.NewDomainError("UNIT_CODE_TAKEN", "Unit code is already in use")
	}

	unit, err := identity.NewUnit(input.Name, input.Code, input.District)
	if err != nil {
		return nil, err
	}

	if err := s.unitRepo.Create(ctx, unit); err != nil {
		s.logger.Error("Failed to create unit", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create unit")
	}

	s.logger.Info("Unit created",
		zap.String("unit_id", unit.ID.String()),
		zap.String("code", unit.Code))

	return unit, nil
}

// GetUnit retrieves a unit by ID
func (s *UnitService) GetUnit(ctx context.Context, id uuid.UUID) (*identity.Unit, error) {
	return s.unitRepo.FindByID(ctx, id)
}

// GetUnitByCode retrieves a unit by its administrative code
func (s *UnitService) GetUnitByCode(ctx context.Context, code string) (*identity.Unit, error) {
	return s.unitRepo.FindByCode(ctx, code)
}

// ListUnits returns units matching the filter with pagination
func (s *UnitService) ListUnits(ctx context.Context, filter shared.Filter) (*shared.Paginated[*identity.Unit], error) {
	units, total, err := s.unitRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list units", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list units")
	}

	page := shared.NewPaginated(units, total, filter.Page, filter.PageSize)
	return &page, nil
}

// RenameUnit changes the display name of a unit
func (s *UnitService) RenameUnit(ctx context.Context, id uuid.UUID, name string) (*identity.Unit, error) {
	if err := requireAdministrator(ctx); err != nil {
		return nil, err
	}

	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := unit.Rename(name); err != nil {
		return nil, err
	}

	if err := s.unitRepo.Update(ctx, unit); err != nil {
		s.logger.Error("Failed to rename unit", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to rename unit")
	}

	return unit, nil
}

// ActivateUnit reopens a deactivated unit
func (s *UnitService) ActivateUnit(ctx context.Context, id uuid.UUID) error {
	if err := requireAdministrator(ctx); err != nil {
		return err
	}

	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := unit.Activate(); err != nil {
		return err
	}

	if err := s.unitRepo.Update(ctx, unit); err != nil {
		s.logger.Error("Failed to activate unit", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to activate unit")
	}

	return nil
}

// DeactivateUnit closes a unit. Accounts assigned to it keep their
// assignment but can no longer log in once deactivated by an administrator.
func (s *UnitService) DeactivateUnit(ctx context.Context, id uuid.UUID) error {
	if err := requireAdministrator(ctx); err != nil {
		return err
	}

	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := unit.Deactivate(); err != nil {
		return err
	}

	if err := s.unitRepo.Update(ctx, unit); err != nil {
		s.logger.Error("Failed to deactivate unit", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to deactivate unit")
	}

	s.logger.Info("Unit deactivated", zap.String("unit_id", id.String()))
	return nil
}
