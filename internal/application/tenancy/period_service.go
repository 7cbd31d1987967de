package tenancy

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PeriodService owns the accounting period lifecycle of a tenant and
// enforces the temporal-partition invariants: no overlapping ranges,
// at most one active period, closed periods immutable.
type PeriodService struct {
	periodRepo tenancy.PeriodRepository
	logger     *zap.Logger

	// activation is serialized per tenant so that concurrent activations
	// never interleave their clear-then-set transactions
	activationLocks sync.Map // uuid.UUID -> *sync.Mutex
}

// NewPeriodService creates a new period service
func NewPeriodService(periodRepo tenancy.PeriodRepository, logger *zap.Logger) *PeriodService {
	return &PeriodService{
		periodRepo: periodRepo,
		logger:     logger,
	}
}

// CreatePeriodInput contains input for creating a period
type CreatePeriodInput struct {
	TenantID  uuid.UUID
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Type      tenancy.PeriodType
}

// UpdatePeriodInput contains input for updating a period
type UpdatePeriodInput struct {
	ID        uuid.UUID
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Type      tenancy.PeriodType
}

// List returns all periods of a tenant, newest start date first
func (s *PeriodService) List(ctx context.Context, tenantID uuid.UUID) ([]PeriodDTO, error) {
	periods, err := s.periodRepo.FindByTenantID(ctx, tenantID)
	if err != nil {
		s.logger.Error("Failed to list periods",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
		return nil, err
	}
	return toPeriodDTOs(periods), nil
}

// Create validates and persists a new period. The new period starts
// inactive and open.
func (s *PeriodService) Create(ctx context.Context, input CreatePeriodInput) (*PeriodDTO, error) {
	period, err := tenancy.NewAccountingPeriod(input.TenantID, input.Name, input.StartDate, input.EndDate, input.Type)
	if err != nil {
		return nil, err
	}

	existing, err := s.periodRepo.FindByTenantID(ctx, input.TenantID)
	if err != nil {
		s.logger.Error("Failed to load periods for overlap check",
			zap.String("tenant_id", input.TenantID.String()),
			zap.Error(err))
		return nil, err
	}
	if conflict := findOverlap(period, existing, uuid.Nil); conflict != nil {
		return nil, overlapError(conflict)
	}

	if err := s.periodRepo.Save(ctx, period); err != nil {
		s.logger.Error("Failed to create period", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Period created",
		zap.String("period_id", period.ID.String()),
		zap.String("tenant_id", input.TenantID.String()),
		zap.String("name", period.Name))

	return toPeriodDTO(period), nil
}

// Update re-validates and persists changes to a period. Closed periods
// are rejected before any field is touched.
func (s *PeriodService) Update(ctx context.Context, input UpdatePeriodInput) (*PeriodDTO, error) {
	period, err := s.findPeriod(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := period.Update(input.Name, input.StartDate, input.EndDate, input.Type); err != nil {
		return nil, err
	}

	others, err := s.periodRepo.FindByTenantID(ctx, period.TenantID)
	if err != nil {
		return nil, err
	}
	if conflict := findOverlap(period, others, period.ID); conflict != nil {
		return nil, overlapError(conflict)
	}

	if err := s.periodRepo.Save(ctx, period); err != nil {
		s.logger.Error("Failed to update period",
			zap.String("period_id", input.ID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Period updated", zap.String("period_id", input.ID.String()))

	return toPeriodDTO(period), nil
}

// Delete removes a period. Active periods cannot be deleted; closed
// periods are finalized history and cannot be deleted either.
func (s *PeriodService) Delete(ctx context.Context, id uuid.UUID) error {
	period, err := s.findPeriod(ctx, id)
	if err != nil {
		return err
	}

	if period.IsActive {
		return shared.NewDomainError("PERIOD_ACTIVE", "Active periods cannot be deleted")
	}
	if period.IsClosed {
		return shared.NewDomainError("PERIOD_CLOSED", "Closed periods cannot be deleted")
	}

	if err := s.periodRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete period",
			zap.String("period_id", id.String()),
			zap.Error(err))
		return err
	}

	s.logger.Info("Period deleted", zap.String("period_id", id.String()))

	return nil
}

// Activate makes the target period the tenant's single active period.
// The clear-then-set runs in one repository transaction; calls for the
// same tenant are mutually excluded so no reader ever observes zero or
// two active periods as a stable state.
func (s *PeriodService) Activate(ctx context.Context, tenantID, periodID uuid.UUID) error {
	lock := s.tenantLock(tenantID)
	lock.Lock()
	defer lock.Unlock()

	period, err := s.findPeriod(ctx, periodID)
	if err != nil {
		return err
	}
	if period.TenantID != tenantID {
		return shared.NewDomainError("NOT_FOUND", "Period not found")
	}

	if err := s.periodRepo.Activate(ctx, tenantID, periodID); err != nil {
		s.logger.Error("Failed to activate period",
			zap.String("tenant_id", tenantID.String()),
			zap.String("period_id", periodID.String()),
			zap.Error(err))
		return err
	}

	s.logger.Info("Period activated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("period_id", periodID.String()))

	return nil
}

// Close finalizes a period
func (s *PeriodService) Close(ctx context.Context, id uuid.UUID) (*PeriodDTO, error) {
	period, err := s.findPeriod(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := period.Close(); err != nil {
		return nil, err
	}

	if err := s.periodRepo.Save(ctx, period); err != nil {
		return nil, err
	}

	s.logger.Info("Period closed", zap.String("period_id", id.String()))

	return toPeriodDTO(period), nil
}

// Reopen reverts a closed period to an editable state
func (s *PeriodService) Reopen(ctx context.Context, id uuid.UUID) (*PeriodDTO, error) {
	period, err := s.findPeriod(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := period.Reopen(); err != nil {
		return nil, err
	}

	if err := s.periodRepo.Save(ctx, period); err != nil {
		return nil, err
	}

	s.logger.Info("Period reopened", zap.String("period_id", id.String()))

	return toPeriodDTO(period), nil
}

func (s *PeriodService) findPeriod(ctx context.Context, id uuid.UUID) (*tenancy.AccountingPeriod, error) {
	period, err := s.periodRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Period not found")
		}
		return nil, err
	}
	return period, nil
}

func (s *PeriodService) tenantLock(tenantID uuid.UUID) *sync.Mutex {
	lock, _ := s.activationLocks.LoadOrStore(tenantID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// findOverlap scans a tenant's periods for a range conflict, skipping the
// period identified by exclude (the one being updated). O(n) over the
// tenant's periods; cardinalities here do not justify an interval index.
func findOverlap(candidate *tenancy.AccountingPeriod, periods []tenancy.AccountingPeriod, exclude uuid.UUID) *tenancy.AccountingPeriod {
	for i := range periods {
		if periods[i].ID == exclude {
			continue
		}
		if candidate.Overlaps(&periods[i]) {
			return &periods[i]
		}
	}
	return nil
}

// overlapError names the conflicting period so the screen can render it
func overlapError(conflict *tenancy.AccountingPeriod) error {
	return shared.NewDomainError("PERIOD_OVERLAP",
		fmt.Sprintf("Date range overlaps existing period %q (%s to %s)",
			conflict.Name,
			conflict.StartDate.Format("2006-01-02"),
			conflict.EndDate.Format("2006-01-02")))
}
