package tenancy

import (
	"github.com/bizsuite/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeTenant = "Tenant"

// Event type constants
const (
	EventTypeTenantCreated           = "TenantCreated"
	EventTypeTenantSettingsUpdated   = "TenantSettingsUpdated"
	EventTypeTenantProtectionChanged = "TenantProtectionChanged"
)

// TenantCreatedEvent is published when a new tenant is created
type TenantCreatedEvent struct {
	shared.BaseDomainEvent
	Code     string `json:"code"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// NewTenantCreatedEvent creates a new TenantCreatedEvent
func NewTenantCreatedEvent(tenant *Tenant) *TenantCreatedEvent {
	return &TenantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantCreated, AggregateTypeTenant, tenant.ID, tenant.ID),
		Code:            tenant.Code,
		Name:            tenant.Name,
		Currency:        tenant.Currency,
	}
}

// TenantSettingsUpdatedEvent is published when tenant settings change
type TenantSettingsUpdatedEvent struct {
	shared.BaseDomainEvent
	Code            string `json:"code"`
	Name            string `json:"name"`
	Country         string `json:"country,omitempty"`
	Currency        string `json:"currency"`
	Timezone        string `json:"timezone"`
	FiscalYearStart string `json:"fiscal_year_start"`
	FiscalYearEnd   string `json:"fiscal_year_end"`
}

// NewTenantSettingsUpdatedEvent creates a new TenantSettingsUpdatedEvent
func NewTenantSettingsUpdatedEvent(tenant *Tenant) *TenantSettingsUpdatedEvent {
	return &TenantSettingsUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantSettingsUpdated, AggregateTypeTenant, tenant.ID, tenant.ID),
		Code:            tenant.Code,
		Name:            tenant.Name,
		Country:         tenant.Country,
		Currency:        tenant.Currency,
		Timezone:        tenant.Timezone,
		FiscalYearStart: tenant.FiscalYearStart,
		FiscalYearEnd:   tenant.FiscalYearEnd,
	}
}

// TenantProtectionChangedEvent is published when the credential challenge
// is enabled or disabled for a tenant. The secret itself is never carried.
type TenantProtectionChangedEvent struct {
	shared.BaseDomainEvent
	Enabled bool `json:"enabled"`
}

// NewTenantProtectionChangedEvent creates a new TenantProtectionChangedEvent
func NewTenantProtectionChangedEvent(tenant *Tenant, enabled bool) *TenantProtectionChangedEvent {
	return &TenantProtectionChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantProtectionChanged, AggregateTypeTenant, tenant.ID, tenant.ID),
		Enabled:         enabled,
	}
}
