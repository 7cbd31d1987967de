package tenancy

import (
	"context"

	"github.com/google/uuid"
)

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	// FindByID finds a tenant by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindByCode finds a tenant by its unique code
	FindByCode(ctx context.Context, code string) (*Tenant, error)

	// FindAccessibleByPrincipal finds the tenants a principal may use,
	// ordered by when access was granted (insertion order)
	FindAccessibleByPrincipal(ctx context.Context, principalID uuid.UUID) ([]Tenant, error)

	// Save creates or updates a tenant
	Save(ctx context.Context, tenant *Tenant) error

	// GrantAccess records that a principal may use a tenant. Written by
	// company setup flows, read by the directory.
	GrantAccess(ctx context.Context, principalID, tenantID uuid.UUID) error

	// ExistsByCode checks if a tenant with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
