package tenancy

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TenantDTO represents tenant data exposed to the interface layer.
// Protection is reduced to a flag; the secret hash never leaves the core.
type TenantDTO struct {
	ID              uuid.UUID       `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Country         string          `json:"country,omitempty"`
	Currency        string          `json:"currency"`
	Timezone        string          `json:"timezone"`
	FiscalYearStart string          `json:"fiscal_year_start"`
	FiscalYearEnd   string          `json:"fiscal_year_end"`
	TaxRegistration string          `json:"tax_registration,omitempty"`
	DefaultTaxRate  decimal.Decimal `json:"default_tax_rate"`
	Protected       bool            `json:"protected"`
	ContactName     string          `json:"contact_name,omitempty"`
	ContactPhone    string          `json:"contact_phone,omitempty"`
	ContactEmail    string          `json:"contact_email,omitempty"`
	Address         string          `json:"address,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PeriodDTO represents accounting period data exposed to the interface layer
type PeriodDTO struct {
	ID        uuid.UUID          `json:"id"`
	TenantID  uuid.UUID          `json:"tenant_id"`
	Name      string             `json:"name"`
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
	Type      tenancy.PeriodType `json:"type"`
	IsActive  bool               `json:"is_active"`
	IsClosed  bool               `json:"is_closed"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ScopeDTO is the (tenant, period) pair every other subsystem filters
// and writes against. Both fields are nil only in the empty state.
type ScopeDTO struct {
	TenantID *uuid.UUID `json:"tenant_id"`
	PeriodID *uuid.UUID `json:"period_id"`
}

// SessionDTO represents a bootstrapped session
type SessionDTO struct {
	Scope   ScopeDTO    `json:"scope"`
	Tenants []TenantDTO `json:"tenants"`
	Periods []PeriodDTO `json:"periods"`
}

// toTenantDTO converts a domain Tenant to a TenantDTO
func toTenantDTO(tenant *tenancy.Tenant) *TenantDTO {
	return &TenantDTO{
		ID:              tenant.ID,
		Code:            tenant.Code,
		Name:            tenant.Name,
		Country:         tenant.Country,
		Currency:        tenant.Currency,
		Timezone:        tenant.Timezone,
		FiscalYearStart: tenant.FiscalYearStart,
		FiscalYearEnd:   tenant.FiscalYearEnd,
		TaxRegistration: tenant.Tax.RegistrationNo,
		DefaultTaxRate:  tenant.Tax.DefaultRate,
		Protected:       tenant.IsProtected(),
		ContactName:     tenant.ContactName,
		ContactPhone:    tenant.ContactPhone,
		ContactEmail:    tenant.ContactEmail,
		Address:         tenant.Address,
		CreatedAt:       tenant.CreatedAt,
		UpdatedAt:       tenant.UpdatedAt,
	}
}

// toTenantDTOs converts a slice of domain Tenants
func toTenantDTOs(tenants []tenancy.Tenant) []TenantDTO {
	dtos := make([]TenantDTO, len(tenants))
	for i := range tenants {
		dtos[i] = *toTenantDTO(&tenants[i])
	}
	return dtos
}

// toPeriodDTO converts a domain AccountingPeriod to a PeriodDTO
func toPeriodDTO(period *tenancy.AccountingPeriod) *PeriodDTO {
	return &PeriodDTO{
		ID:        period.ID,
		TenantID:  period.TenantID,
		Name:      period.Name,
		StartDate: period.StartDate,
		EndDate:   period.EndDate,
		Type:      period.Type,
		IsActive:  period.IsActive,
		IsClosed:  period.IsClosed,
		CreatedAt: period.CreatedAt,
		UpdatedAt: period.UpdatedAt,
	}
}

// toPeriodDTOs converts a slice of domain AccountingPeriods
func toPeriodDTOs(periods []tenancy.AccountingPeriod) []PeriodDTO {
	dtos := make([]PeriodDTO, len(periods))
	for i := range periods {
		dtos[i] = *toPeriodDTO(&periods[i])
	}
	return dtos
}
