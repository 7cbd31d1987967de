package persistence

import (
	"context"
	"errors"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/tenancy"
	"github.com/bizsuite/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormScopeStateRepository implements ScopeStateRepository using GORM
type GormScopeStateRepository struct {
	db *gorm.DB
}

// NewGormScopeStateRepository creates a new GormScopeStateRepository
func NewGormScopeStateRepository(db *gorm.DB) *GormScopeStateRepository {
	return &GormScopeStateRepository{db: db}
}

// Load reads the persisted scope for a principal
func (r *GormScopeStateRepository) Load(ctx context.Context, principalID uuid.UUID) (*tenancy.ScopeState, error) {
	var model models.ScopeStateModel
	if err := r.db.WithContext(ctx).First(&model, "principal_id = ?", principalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save overwrites the persisted scope for a principal
func (r *GormScopeStateRepository) Save(ctx context.Context, state *tenancy.ScopeState) error {
	model := models.ScopeStateModelFromDomain(state)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "principal_id"}},
			UpdateAll: true,
		}).
		Create(model).Error
}

// Clear removes the persisted scope for a principal
func (r *GormScopeStateRepository) Clear(ctx context.Context, principalID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.ScopeStateModel{}, "principal_id = ?", principalID).Error
}

// Ensure GormScopeStateRepository implements ScopeStateRepository
var _ tenancy.ScopeStateRepository = (*GormScopeStateRepository)(nil)
