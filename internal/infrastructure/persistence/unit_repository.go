package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/benefits/backend/internal/domain/identity"
	"github.com/benefits/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUnitRepository implements identity.UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// Create creates a new unit
func (r *GormUnitRepository) Create(ctx context.Context, unit *identity.Unit) error {
	return r.db.WithContext(ctx).Create(unit).Error
}

// Update updates an existing unit
func (r *GormUnitRepository) Update(ctx context.Context, unit *identity.Unit) error {
	result := r.db.WithContext(ctx).Save(unit)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a unit by ID
func (r *GormUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.Unit{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a unit by ID
func (r *GormUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Unit, error) {
	var unit identity.Unit
	if err := r.db.WithContext(ctx).First(&unit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FindByCode finds a unit by its administrative code
func (r *GormUnitRepository) FindByCode(ctx context.Context, code string) (*identity.Unit, error) {
	var unit identity.Unit
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FindAll returns all units matching the filter with pagination
func (r *GormUnitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*identity.Unit, int64, error) {
	var units []*identity.Unit
	var total int64

	query := r.db.WithContext(ctx).Model(&identity.Unit{})

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if district, ok := filter.Filters["district"]; ok {
		query = query.Where("district = ?", district)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := ValidateSortField(filter.OrderBy, UnitSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortBy + " " + sortOrder)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&units).Error; err != nil {
		return nil, 0, err
	}

	return units, total, nil
}

// Ensure GormUnitRepository implements UnitRepository
var _ identity.UnitRepository = (*GormUnitRepository)(nil)
