package tenancy

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PeriodType represents the granularity of an accounting period
type PeriodType string

const (
	PeriodTypeFiscalYear PeriodType = "fiscal_year"
	PeriodTypeQuarter    PeriodType = "quarter"
	PeriodTypeMonth      PeriodType = "month"
)

// AccountingPeriod represents a bounded date range scoping financial data
// for a tenant. At most one period per tenant is active at any time; closed
// periods are finalized history and cannot be edited.
type AccountingPeriod struct {
	shared.TenantAggregateRoot
	Name      string     `gorm:"type:varchar(100);not null"`
	StartDate time.Time  `gorm:"type:date;not null;index"`
	EndDate   time.Time  `gorm:"type:date;not null"`
	Type      PeriodType `gorm:"type:varchar(20);not null;default:'fiscal_year'"`
	IsActive  bool       `gorm:"not null;default:false;index"`
	IsClosed  bool       `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AccountingPeriod) TableName() string {
	return "accounting_periods"
}

// NewAccountingPeriod creates a new period for a tenant. The period starts
// inactive and open; activation is a separate store-level transition.
func NewAccountingPeriod(tenantID uuid.UUID, name string, start, end time.Time, periodType PeriodType) (*AccountingPeriod, error) {
	if err := validatePeriodName(name); err != nil {
		return nil, err
	}
	if err := validatePeriodType(periodType); err != nil {
		return nil, err
	}
	start, end = DateOnly(start), DateOnly(end)
	if err := validatePeriodRange(start, end); err != nil {
		return nil, err
	}

	period := &AccountingPeriod{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		StartDate:           start,
		EndDate:             end,
		Type:                periodType,
		IsActive:            false,
		IsClosed:            false,
	}

	period.AddDomainEvent(NewPeriodCreatedEvent(period))

	return period, nil
}

// Update changes the period's name, date range and type. Closed periods
// are immutable.
func (p *AccountingPeriod) Update(name string, start, end time.Time, periodType PeriodType) error {
	if p.IsClosed {
		return shared.NewDomainError("PERIOD_CLOSED", "Closed periods cannot be edited")
	}
	if err := validatePeriodName(name); err != nil {
		return err
	}
	if err := validatePeriodType(periodType); err != nil {
		return err
	}
	start, end = DateOnly(start), DateOnly(end)
	if err := validatePeriodRange(start, end); err != nil {
		return err
	}

	p.Name = name
	p.StartDate = start
	p.EndDate = end
	p.Type = periodType
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPeriodUpdatedEvent(p))

	return nil
}

// Overlaps reports whether the two periods' date ranges intersect.
// Boundaries are inclusive on both ends: two periods sharing a single
// calendar day overlap. A period ending the day before the next one
// starts does not.
func (p *AccountingPeriod) Overlaps(other *AccountingPeriod) bool {
	return !p.StartDate.After(other.EndDate) && !other.StartDate.After(p.EndDate)
}

// Contains reports whether the given date falls within the period (inclusive)
func (p *AccountingPeriod) Contains(date time.Time) bool {
	date = DateOnly(date)
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}

// Close marks the period as finalized history. Active periods cannot be
// closed while they are still the default transaction scope.
func (p *AccountingPeriod) Close() error {
	if p.IsClosed {
		return shared.NewDomainError("INVALID_STATE", "Period is already closed")
	}
	if p.IsActive {
		return shared.NewDomainError("PERIOD_ACTIVE", "Active periods cannot be closed")
	}

	p.IsClosed = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPeriodClosedEvent(p))

	return nil
}

// Reopen reverts a closed period to an editable state
func (p *AccountingPeriod) Reopen() error {
	if !p.IsClosed {
		return shared.NewDomainError("INVALID_STATE", "Period is not closed")
	}

	p.IsClosed = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPeriodReopenedEvent(p))

	return nil
}

// DateOnly truncates a timestamp to its UTC calendar date. Periods are
// whole-day ranges; comparisons must never depend on the time component.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Validation functions

func validatePeriodName(name string) error {
	if name == "" {
		return shared.NewValidationError("name", "Period name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewValidationError("name", "Period name cannot exceed 100 characters")
	}
	return nil
}

func validatePeriodRange(start, end time.Time) error {
	if !start.Before(end) {
		return shared.NewValidationError("end_date", "End date must be after start date")
	}
	return nil
}

func validatePeriodType(periodType PeriodType) error {
	switch periodType {
	case PeriodTypeFiscalYear, PeriodTypeQuarter, PeriodTypeMonth:
		return nil
	default:
		return shared.NewValidationError("type", "Invalid period type")
	}
}
