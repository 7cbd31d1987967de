package tenancy

import (
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypePeriod = "AccountingPeriod"

// Event type constants
const (
	EventTypePeriodCreated   = "PeriodCreated"
	EventTypePeriodUpdated   = "PeriodUpdated"
	EventTypePeriodActivated = "PeriodActivated"
	EventTypePeriodClosed    = "PeriodClosed"
	EventTypePeriodReopened  = "PeriodReopened"
	EventTypePeriodDeleted   = "PeriodDeleted"
)

// PeriodCreatedEvent is published when a new accounting period is created
type PeriodCreatedEvent struct {
	shared.BaseDomainEvent
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	Type      PeriodType `json:"period_type"`
}

// NewPeriodCreatedEvent creates a new PeriodCreatedEvent
func NewPeriodCreatedEvent(period *AccountingPeriod) *PeriodCreatedEvent {
	return &PeriodCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePeriodCreated, AggregateTypePeriod, period.ID, period.TenantID),
		Name:            period.Name,
		StartDate:       period.StartDate,
		EndDate:         period.EndDate,
		Type:            period.Type,
	}
}

// PeriodUpdatedEvent is published when a period's fields change
type PeriodUpdatedEvent struct {
	shared.BaseDomainEvent
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	Type      PeriodType `json:"period_type"`
}

// NewPeriodUpdatedEvent creates a new PeriodUpdatedEvent
func NewPeriodUpdatedEvent(period *AccountingPeriod) *PeriodUpdatedEvent {
	return &PeriodUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePeriodUpdated, AggregateTypePeriod, period.ID, period.TenantID),
		Name:            period.Name,
		StartDate:       period.StartDate,
		EndDate:         period.EndDate,
		Type:            period.Type,
	}
}

// PeriodActivatedEvent is published when a period becomes the tenant's
// active transaction scope. PreviousID is the period it displaced, if any.
type PeriodActivatedEvent struct {
	shared.BaseDomainEvent
	PreviousID *uuid.UUID `json:"previous_id,omitempty"`
}

// NewPeriodActivatedEvent creates a new PeriodActivatedEvent
func NewPeriodActivatedEvent(tenantID, periodID uuid.UUID, previousID *uuid.UUID) *PeriodActivatedEvent {
	return &PeriodActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePeriodActivated, AggregateTypePeriod, periodID, tenantID),
		PreviousID:      previousID,
	}
}

// PeriodClosedEvent is published when a period is finalized
type PeriodClosedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewPeriodClosedEvent creates a new PeriodClosedEvent
func NewPeriodClosedEvent(period *AccountingPeriod) *PeriodClosedEvent {
	return &PeriodClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePeriodClosed, AggregateTypePeriod, period.ID, period.TenantID),
		Name:            period.Name,
	}
}

// PeriodReopenedEvent is published when a closed period is reopened
type PeriodReopenedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewPeriodReopenedEvent creates a new PeriodReopenedEvent
func NewPeriodReopenedEvent(period *AccountingPeriod) *PeriodReopenedEvent {
	return &PeriodReopenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePeriodReopened, AggregateTypePeriod, period.ID, period.TenantID),
		Name:            period.Name,
	}
}
