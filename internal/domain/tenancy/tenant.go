package tenancy

import (
	"regexp"
	"strings"
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TaxConfig holds the tax settings of a tenant
type TaxConfig struct {
	RegistrationNo string          `json:"registration_no"`
	DefaultRate    decimal.Decimal `json:"default_rate"`
	PricesIncluded bool            `json:"prices_included"` // Whether listed prices already include tax
}

// DefaultTaxConfig returns the default tax configuration for a new tenant
func DefaultTaxConfig() TaxConfig {
	return TaxConfig{
		RegistrationNo: "",
		DefaultRate:    decimal.Zero,
		PricesIncluded: false,
	}
}

// Protection holds the optional credential challenge settings of a tenant.
// SecretHash is a bcrypt hash; the cleartext secret is never stored.
type Protection struct {
	Enabled    bool   `json:"enabled"`
	SecretHash string `json:"-"`
}

// Tenant represents an isolated business entity (company) owning its own
// accounting periods and data partition. It is the aggregate root for
// tenant-related operations.
type Tenant struct {
	shared.BaseAggregateRoot
	Code            string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name            string     `gorm:"type:varchar(200);not null"`
	Country         string     `gorm:"type:varchar(2)"`
	Currency        string     `gorm:"type:varchar(3);not null;default:'USD'"`
	Timezone        string     `gorm:"type:varchar(64);not null;default:'UTC'"`
	FiscalYearStart string     `gorm:"type:varchar(5);not null;default:'01-01'"` // MM-DD
	FiscalYearEnd   string     `gorm:"type:varchar(5);not null;default:'12-31'"` // MM-DD
	Tax             TaxConfig  `gorm:"embedded;embeddedPrefix:tax_"`
	Protection      Protection `gorm:"embedded;embeddedPrefix:protection_"`
	ContactName     string     `gorm:"type:varchar(100)"`
	ContactPhone    string     `gorm:"type:varchar(50)"`
	ContactEmail    string     `gorm:"type:varchar(200)"`
	Address         string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant creates a new tenant with required fields
func NewTenant(code, name string) (*Tenant, error) {
	if err := validateTenantCode(code); err != nil {
		return nil, err
	}
	if err := validateTenantName(name); err != nil {
		return nil, err
	}

	tenant := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Currency:          "USD",
		Timezone:          "UTC",
		FiscalYearStart:   "01-01",
		FiscalYearEnd:     "12-31",
		Tax:               DefaultTaxConfig(),
	}

	tenant.AddDomainEvent(NewTenantCreatedEvent(tenant))

	return tenant, nil
}

// Update updates the tenant's basic information
func (t *Tenant) Update(name, country string) error {
	if err := validateTenantName(name); err != nil {
		return err
	}
	if country != "" && len(country) != 2 {
		return shared.NewValidationError("country", "Country must be an ISO 3166-1 alpha-2 code")
	}

	t.Name = name
	t.Country = strings.ToUpper(country)
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantSettingsUpdatedEvent(t))

	return nil
}

// SetCurrency sets the tenant's default currency code
func (t *Tenant) SetCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return shared.NewValidationError("currency", "Currency must be an ISO 4217 code")
	}

	t.Currency = currency
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetTimezone sets the tenant's timezone
func (t *Tenant) SetTimezone(tz string) error {
	if tz == "" {
		return shared.NewValidationError("timezone", "Timezone cannot be empty")
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return shared.NewValidationError("timezone", "Unknown timezone")
	}

	t.Timezone = tz
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetFiscalYear sets the tenant's fiscal year anchor dates (MM-DD)
func (t *Tenant) SetFiscalYear(start, end string) error {
	if !monthDayPattern.MatchString(start) {
		return shared.NewValidationError("fiscal_year_start", "Fiscal year start must be in MM-DD format")
	}
	if !monthDayPattern.MatchString(end) {
		return shared.NewValidationError("fiscal_year_end", "Fiscal year end must be in MM-DD format")
	}

	t.FiscalYearStart = start
	t.FiscalYearEnd = end
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantSettingsUpdatedEvent(t))

	return nil
}

// SetTaxConfig sets the tenant's tax configuration
func (t *Tenant) SetTaxConfig(cfg TaxConfig) error {
	if cfg.DefaultRate.IsNegative() {
		return shared.NewValidationError("default_rate", "Tax rate cannot be negative")
	}
	if cfg.DefaultRate.GreaterThan(decimal.NewFromInt(1)) {
		return shared.NewValidationError("default_rate", "Tax rate must be a fraction between 0 and 1")
	}

	t.Tax = cfg
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetContact sets the tenant's contact information
func (t *Tenant) SetContact(contactName, phone, email string) error {
	if contactName != "" && len(contactName) > 100 {
		return shared.NewValidationError("contact_name", "Contact name cannot exceed 100 characters")
	}
	if phone != "" && len(phone) > 50 {
		return shared.NewValidationError("contact_phone", "Phone cannot exceed 50 characters")
	}
	if email != "" && len(email) > 200 {
		return shared.NewValidationError("contact_email", "Email cannot exceed 200 characters")
	}

	t.ContactName = contactName
	t.ContactPhone = phone
	t.ContactEmail = email
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetAddress sets the tenant's address
func (t *Tenant) SetAddress(address string) error {
	if address != "" && len(address) > 500 {
		return shared.NewValidationError("address", "Address cannot exceed 500 characters")
	}

	t.Address = address
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// EnableProtection turns on the credential challenge for tenant switching.
// secretHash must already be a bcrypt hash of the cleartext secret.
func (t *Tenant) EnableProtection(secretHash string) error {
	if secretHash == "" {
		return shared.NewValidationError("secret", "Protection secret cannot be empty")
	}

	t.Protection = Protection{Enabled: true, SecretHash: secretHash}
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantProtectionChangedEvent(t, true))

	return nil
}

// DisableProtection turns off the credential challenge and discards the secret
func (t *Tenant) DisableProtection() {
	if !t.Protection.Enabled {
		return
	}

	t.Protection = Protection{}
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantProtectionChangedEvent(t, false))
}

// IsProtected returns true if switching to this tenant requires a credential challenge
func (t *Tenant) IsProtected() bool {
	return t.Protection.Enabled
}

// Validation functions

var monthDayPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)

func validateTenantCode(code string) error {
	if code == "" {
		return shared.NewValidationError("code", "Tenant code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewValidationError("code", "Tenant code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewValidationError("code", "Tenant code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateTenantName(name string) error {
	if name == "" {
		return shared.NewValidationError("name", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("name", "Tenant name cannot exceed 200 characters")
	}
	return nil
}
