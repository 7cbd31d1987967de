package models

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TenantModel is the persistence model for the Tenant aggregate
type TenantModel struct {
	AggregateModel
	Code              string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name              string          `gorm:"type:varchar(200);not null"`
	Country           string          `gorm:"type:varchar(2)"`
	Currency          string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Timezone          string          `gorm:"type:varchar(64);not null;default:'UTC'"`
	FiscalYearStart   string          `gorm:"type:varchar(5);not null;default:'01-01'"`
	FiscalYearEnd     string          `gorm:"type:varchar(5);not null;default:'12-31'"`
	TaxRegistrationNo string          `gorm:"type:varchar(50)"`
	TaxDefaultRate    decimal.Decimal `gorm:"type:decimal(6,5);not null;default:0"`
	TaxPricesIncluded bool            `gorm:"not null;default:false"`
	ProtectionEnabled bool            `gorm:"not null;default:false"`
	ProtectionSecret  string          `gorm:"type:varchar(100)"`
	ContactName       string          `gorm:"type:varchar(100)"`
	ContactPhone      string          `gorm:"type:varchar(50)"`
	ContactEmail      string          `gorm:"type:varchar(200)"`
	Address           string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant
func (m *TenantModel) ToDomain() *tenancy.Tenant {
	tenant := &tenancy.Tenant{
		Code:            m.Code,
		Name:            m.Name,
		Country:         m.Country,
		Currency:        m.Currency,
		Timezone:        m.Timezone,
		FiscalYearStart: m.FiscalYearStart,
		FiscalYearEnd:   m.FiscalYearEnd,
		Tax: tenancy.TaxConfig{
			RegistrationNo: m.TaxRegistrationNo,
			DefaultRate:    m.TaxDefaultRate,
			PricesIncluded: m.TaxPricesIncluded,
		},
		Protection: tenancy.Protection{
			Enabled:    m.ProtectionEnabled,
			SecretHash: m.ProtectionSecret,
		},
		ContactName:  m.ContactName,
		ContactPhone: m.ContactPhone,
		ContactEmail: m.ContactEmail,
		Address:      m.Address,
	}
	m.PopulateAggregateRoot(&tenant.BaseAggregateRoot)
	return tenant
}

// TenantModelFromDomain builds the persistence model from a domain Tenant
func TenantModelFromDomain(t *tenancy.Tenant) *TenantModel {
	m := &TenantModel{
		Code:              t.Code,
		Name:              t.Name,
		Country:           t.Country,
		Currency:          t.Currency,
		Timezone:          t.Timezone,
		FiscalYearStart:   t.FiscalYearStart,
		FiscalYearEnd:     t.FiscalYearEnd,
		TaxRegistrationNo: t.Tax.RegistrationNo,
		TaxDefaultRate:    t.Tax.DefaultRate,
		TaxPricesIncluded: t.Tax.PricesIncluded,
		ProtectionEnabled: t.Protection.Enabled,
		ProtectionSecret:  t.Protection.SecretHash,
		ContactName:       t.ContactName,
		ContactPhone:      t.ContactPhone,
		ContactEmail:      t.ContactEmail,
		Address:           t.Address,
	}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	return m
}

// PeriodModel is the persistence model for the AccountingPeriod aggregate
type PeriodModel struct {
	TenantAggregateModel
	Name      string             `gorm:"type:varchar(100);not null"`
	StartDate time.Time          `gorm:"type:date;not null;index"`
	EndDate   time.Time          `gorm:"type:date;not null"`
	Type      tenancy.PeriodType `gorm:"type:varchar(20);not null;default:'fiscal_year'"`
	IsActive  bool               `gorm:"not null;default:false;index"`
	IsClosed  bool               `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (PeriodModel) TableName() string {
	return "accounting_periods"
}

// ToDomain converts the persistence model to a domain AccountingPeriod
func (m *PeriodModel) ToDomain() *tenancy.AccountingPeriod {
	period := &tenancy.AccountingPeriod{
		Name:      m.Name,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Type:      m.Type,
		IsActive:  m.IsActive,
		IsClosed:  m.IsClosed,
	}
	m.PopulateTenantAggregateRoot(&period.TenantAggregateRoot)
	return period
}

// PeriodModelFromDomain builds the persistence model from a domain AccountingPeriod
func PeriodModelFromDomain(p *tenancy.AccountingPeriod) *PeriodModel {
	m := &PeriodModel{
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Type:      p.Type,
		IsActive:  p.IsActive,
		IsClosed:  p.IsClosed,
	}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	return m
}

// TenantMemberModel records that a principal may use a tenant. Position
// preserves the grant order for directory listings.
type TenantMemberModel struct {
	PrincipalID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position    int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TenantMemberModel) TableName() string {
	return "tenant_members"
}

// ScopeStateModel is the persistence model for a principal's session scope
type ScopeStateModel struct {
	PrincipalID uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID    *uuid.UUID `gorm:"type:uuid"`
	PeriodID    *uuid.UUID `gorm:"type:uuid"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ScopeStateModel) TableName() string {
	return "scope_states"
}

// ToDomain converts the persistence model to a domain ScopeState
func (m *ScopeStateModel) ToDomain() *tenancy.ScopeState {
	return &tenancy.ScopeState{
		PrincipalID: m.PrincipalID,
		TenantID:    m.TenantID,
		PeriodID:    m.PeriodID,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ScopeStateModelFromDomain builds the persistence model from a domain ScopeState
func ScopeStateModelFromDomain(s *tenancy.ScopeState) *ScopeStateModel {
	return &ScopeStateModel{
		PrincipalID: s.PrincipalID,
		TenantID:    s.TenantID,
		PeriodID:    s.PeriodID,
		UpdatedAt:   s.UpdatedAt,
	}
}
