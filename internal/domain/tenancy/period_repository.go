package tenancy

import (
	"context"

	"github.com/google/uuid"
)

// PeriodRepository defines the interface for accounting period persistence
type PeriodRepository interface {
	// FindByID finds a period by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*AccountingPeriod, error)

	// FindByTenantID finds all periods of a tenant, ordered by start date
	// descending
	FindByTenantID(ctx context.Context, tenantID uuid.UUID) ([]AccountingPeriod, error)

	// FindActiveByTenantID finds the tenant's active period, if any
	FindActiveByTenantID(ctx context.Context, tenantID uuid.UUID) (*AccountingPeriod, error)

	// Save creates or updates a period
	Save(ctx context.Context, period *AccountingPeriod) error

	// Delete deletes a period
	Delete(ctx context.Context, id uuid.UUID) error

	// Activate clears the active flag on every period of the tenant and
	// sets it on the target, in one transaction. No reader may observe
	// zero or two active periods as a stable state.
	Activate(ctx context.Context, tenantID, periodID uuid.UUID) error
}
