package persistence

import (
	"context"
	"errors"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/tenancy"
	"github.com/bizsuite/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPeriodRepository implements PeriodRepository using GORM
type GormPeriodRepository struct {
	db *gorm.DB
}

// NewGormPeriodRepository creates a new GormPeriodRepository
func NewGormPeriodRepository(db *gorm.DB) *GormPeriodRepository {
	return &GormPeriodRepository{db: db}
}

// FindByID finds a period by its ID
func (r *GormPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.AccountingPeriod, error) {
	var model models.PeriodModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTenantID finds all periods of a tenant, newest start date first
func (r *GormPeriodRepository) FindByTenantID(ctx context.Context, tenantID uuid.UUID) ([]tenancy.AccountingPeriod, error) {
	var periodModels []models.PeriodModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("start_date DESC").
		Find(&periodModels).Error; err != nil {
		return nil, err
	}

	periods := make([]tenancy.AccountingPeriod, len(periodModels))
	for i := range periodModels {
		periods[i] = *periodModels[i].ToDomain()
	}
	return periods, nil
}

// FindActiveByTenantID finds the tenant's active period, if any
func (r *GormPeriodRepository) FindActiveByTenantID(ctx context.Context, tenantID uuid.UUID) (*tenancy.AccountingPeriod, error) {
	var model models.PeriodModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a period
func (r *GormPeriodRepository) Save(ctx context.Context, period *tenancy.AccountingPeriod) error {
	model := models.PeriodModelFromDomain(period)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a period
func (r *GormPeriodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PeriodModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Activate clears the active flag on every period of the tenant and sets
// it on the target, in one transaction. Readers never observe zero or
// two active periods as a stable state.
func (r *GormPeriodRepository) Activate(ctx context.Context, tenantID, periodID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PeriodModel{}).
			Where("tenant_id = ? AND is_active = ?", tenantID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		result := tx.Model(&models.PeriodModel{}).
			Where("id = ? AND tenant_id = ?", periodID, tenantID).
			Update("is_active", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormPeriodRepository implements PeriodRepository
var _ tenancy.PeriodRepository = (*GormPeriodRepository)(nil)
