package handler

// SwitchTenantRequest selects a tenant from the session's accessible
// set. Secret carries the challenge credential for protected tenants.
type SwitchTenantRequest struct {
	TenantID string  `json:"tenant_id" binding:"required,uuid"`
	Secret   *string `json:"secret,omitempty"`
}

// SwitchPeriodRequest selects a period from the loaded period set
type SwitchPeriodRequest struct {
	PeriodID string `json:"period_id" binding:"required,uuid"`
}

// CreatePeriodRequest creates a period under the session's current tenant
type CreatePeriodRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Type      string `json:"type" binding:"omitempty,oneof=fiscal_year quarter month"`
}

// UpdatePeriodRequest replaces a period's name, range and type
type UpdatePeriodRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Type      string `json:"type" binding:"omitempty,oneof=fiscal_year quarter month"`
}

// UpdateTenantSettingsRequest updates the settings of a tenant. All
// fields are optional; absent fields keep their current value.
type UpdateTenantSettingsRequest struct {
	Name            *string `json:"name,omitempty" binding:"omitempty,max=200"`
	Country         *string `json:"country,omitempty" binding:"omitempty,max=100"`
	Currency        *string `json:"currency,omitempty" binding:"omitempty,len=3"`
	Timezone        *string `json:"timezone,omitempty" binding:"omitempty,max=64"`
	FiscalYearStart *string `json:"fiscal_year_start,omitempty" binding:"omitempty,monthday"`
	FiscalYearEnd   *string `json:"fiscal_year_end,omitempty" binding:"omitempty,monthday"`
	TaxRegistration *string `json:"tax_registration,omitempty" binding:"omitempty,max=64"`
	DefaultTaxRate  *string `json:"default_tax_rate,omitempty"`
	ContactName     *string `json:"contact_name,omitempty" binding:"omitempty,max=100"`
	ContactPhone    *string `json:"contact_phone,omitempty" binding:"omitempty,max=32"`
	ContactEmail    *string `json:"contact_email,omitempty" binding:"omitempty,email"`
	Address         *string `json:"address,omitempty" binding:"omitempty,max=500"`
	// ProtectionSecret enables the switch challenge when set to a
	// non-empty value; an empty string disables it.
	ProtectionSecret *string `json:"protection_secret,omitempty"`
}
