package tenancy

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ScopeState is the persisted session scope of a principal: the last
// selected tenant and period. It is read once at bootstrap and overwritten
// on every successful switch.
type ScopeState struct {
	PrincipalID uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID    *uuid.UUID `gorm:"type:uuid"`
	PeriodID    *uuid.UUID `gorm:"type:uuid"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ScopeState) TableName() string {
	return "scope_states"
}

// ScopeStateRepository is the persistence port for session scope state.
// Implementations must treat Load of an unknown principal as ErrNotFound,
// not as an empty state.
type ScopeStateRepository interface {
	// Load reads the persisted scope for a principal
	Load(ctx context.Context, principalID uuid.UUID) (*ScopeState, error)

	// Save overwrites the persisted scope for a principal
	Save(ctx context.Context, state *ScopeState) error

	// Clear removes the persisted scope for a principal (logout)
	Clear(ctx context.Context, principalID uuid.UUID) error
}
