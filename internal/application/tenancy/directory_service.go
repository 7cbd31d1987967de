package tenancy

import (
	"context"
	"errors"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// parseTaxRate parses a decimal tax rate from its string form
func parseTaxRate(raw string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, shared.NewValidationError("default_tax_rate", "Tax rate must be a decimal number")
	}
	return rate, nil
}

// DirectoryService provides read-only access to the set of tenants a
// principal may use. Store failures propagate to the caller unchanged;
// there is no retry here.
type DirectoryService struct {
	tenantRepo tenancy.TenantRepository
	logger     *zap.Logger
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(tenantRepo tenancy.TenantRepository, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

// ListAccessibleTenants returns the tenants a principal may use, in the
// order access was granted. Empty if the principal has none.
func (s *DirectoryService) ListAccessibleTenants(ctx context.Context, principalID uuid.UUID) ([]TenantDTO, error) {
	tenants, err := s.tenantRepo.FindAccessibleByPrincipal(ctx, principalID)
	if err != nil {
		s.logger.Error("Failed to list accessible tenants",
			zap.String("principal_id", principalID.String()),
			zap.Error(err))
		return nil, err
	}
	return toTenantDTOs(tenants), nil
}

// GetTenant retrieves a single tenant by ID
func (s *DirectoryService) GetTenant(ctx context.Context, tenantID uuid.UUID) (*TenantDTO, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Tenant not found")
		}
		s.logger.Error("Failed to find tenant",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
		return nil, err
	}
	return toTenantDTO(tenant), nil
}

// UpdateSettingsInput contains input for updating tenant settings
type UpdateSettingsInput struct {
	ID              uuid.UUID
	Name            *string
	Country         *string
	Currency        *string
	Timezone        *string
	FiscalYearStart *string
	FiscalYearEnd   *string
	TaxRegistration *string
	DefaultTaxRate  *string
	ContactName     *string
	ContactPhone    *string
	ContactEmail    *string
	Address         *string
	// ProtectionSecret sets a new challenge secret when non-nil and
	// non-empty; an empty string disables protection.
	ProtectionSecret *string
}

// UpdateSettings updates a tenant's configuration from the settings screen
func (s *DirectoryService) UpdateSettings(ctx context.Context, gate *AccessGate, input UpdateSettingsInput) (*TenantDTO, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Tenant not found")
		}
		return nil, err
	}

	if input.Name != nil || input.Country != nil {
		name := tenant.Name
		country := tenant.Country
		if input.Name != nil {
			name = *input.Name
		}
		if input.Country != nil {
			country = *input.Country
		}
		if err := tenant.Update(name, country); err != nil {
			return nil, err
		}
	}

	if input.Currency != nil {
		if err := tenant.SetCurrency(*input.Currency); err != nil {
			return nil, err
		}
	}

	if input.Timezone != nil {
		if err := tenant.SetTimezone(*input.Timezone); err != nil {
			return nil, err
		}
	}

	if input.FiscalYearStart != nil || input.FiscalYearEnd != nil {
		start := tenant.FiscalYearStart
		end := tenant.FiscalYearEnd
		if input.FiscalYearStart != nil {
			start = *input.FiscalYearStart
		}
		if input.FiscalYearEnd != nil {
			end = *input.FiscalYearEnd
		}
		if err := tenant.SetFiscalYear(start, end); err != nil {
			return nil, err
		}
	}

	if input.TaxRegistration != nil || input.DefaultTaxRate != nil {
		cfg := tenant.Tax
		if input.TaxRegistration != nil {
			cfg.RegistrationNo = *input.TaxRegistration
		}
		if input.DefaultTaxRate != nil {
			rate, err := parseTaxRate(*input.DefaultTaxRate)
			if err != nil {
				return nil, err
			}
			cfg.DefaultRate = rate
		}
		if err := tenant.SetTaxConfig(cfg); err != nil {
			return nil, err
		}
	}

	if input.ContactName != nil || input.ContactPhone != nil || input.ContactEmail != nil {
		contactName := tenant.ContactName
		contactPhone := tenant.ContactPhone
		contactEmail := tenant.ContactEmail
		if input.ContactName != nil {
			contactName = *input.ContactName
		}
		if input.ContactPhone != nil {
			contactPhone = *input.ContactPhone
		}
		if input.ContactEmail != nil {
			contactEmail = *input.ContactEmail
		}
		if err := tenant.SetContact(contactName, contactPhone, contactEmail); err != nil {
			return nil, err
		}
	}

	if input.Address != nil {
		if err := tenant.SetAddress(*input.Address); err != nil {
			return nil, err
		}
	}

	if input.ProtectionSecret != nil {
		if *input.ProtectionSecret == "" {
			tenant.DisableProtection()
		} else {
			hash, err := gate.HashSecret(*input.ProtectionSecret)
			if err != nil {
				return nil, err
			}
			if err := tenant.EnableProtection(hash); err != nil {
				return nil, err
			}
		}
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		s.logger.Error("Failed to update tenant settings",
			zap.String("tenant_id", input.ID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Tenant settings updated", zap.String("tenant_id", input.ID.String()))

	return toTenantDTO(tenant), nil
}
