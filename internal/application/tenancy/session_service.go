package tenancy

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// session is the transient per-principal state: the loaded tenant set,
// the loaded period set for the current tenant, and the current
// selection. Exactly one logical owner mutates a session; the mutex
// guards against the registry itself being raced.
type session struct {
	mu       sync.Mutex
	tenants  []tenancy.Tenant
	periods  []tenancy.AccountingPeriod
	tenantID *uuid.UUID
	periodID *uuid.UUID
}

// SessionService is the single entry point the rest of the application
// uses for scope management. It composes the directory, the period
// service and the access gate, holds the current (tenant, period)
// selection per principal, and persists every successful switch.
type SessionService struct {
	tenantRepo    tenancy.TenantRepository
	periodRepo    tenancy.PeriodRepository
	scopeRepo     tenancy.ScopeStateRepository
	periodService *PeriodService
	gate          *AccessGate
	logger        *zap.Logger

	sessions sync.Map // uuid.UUID -> *session
}

// NewSessionService creates a new session service
func NewSessionService(
	tenantRepo tenancy.TenantRepository,
	periodRepo tenancy.PeriodRepository,
	scopeRepo tenancy.ScopeStateRepository,
	periodService *PeriodService,
	gate *AccessGate,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		tenantRepo:    tenantRepo,
		periodRepo:    periodRepo,
		scopeRepo:     scopeRepo,
		periodService: periodService,
		gate:          gate,
		logger:        logger,
	}
}

// Bootstrap hydrates a principal's session. The persisted scope is read
// exactly once, here. Tenant resolution: persisted tenant if still
// accessible, else first accessible, else none. Period resolution for
// the chosen tenant: persisted period if present, else the active one,
// else the first loaded, else none.
func (s *SessionService) Bootstrap(ctx context.Context, principalID uuid.UUID) (*SessionDTO, error) {
	sess := &session{}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	var persistedTenant, persistedPeriod *uuid.UUID
	state, err := s.scopeRepo.Load(ctx, principalID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to load persisted scope",
				zap.String("principal_id", principalID.String()),
				zap.Error(err))
			return nil, err
		}
	} else {
		persistedTenant = state.TenantID
		persistedPeriod = state.PeriodID
	}

	tenants, err := s.tenantRepo.FindAccessibleByPrincipal(ctx, principalID)
	if err != nil {
		s.logger.Error("Failed to load accessible tenants",
			zap.String("principal_id", principalID.String()),
			zap.Error(err))
		return nil, err
	}
	sess.tenants = tenants

	if tenant := resolveTenant(tenants, persistedTenant); tenant != nil {
		id := tenant.ID
		sess.tenantID = &id

		periods, err := s.periodRepo.FindByTenantID(ctx, id)
		if err != nil {
			return nil, err
		}
		sess.periods = periods
		sess.periodID = resolvePeriod(periods, persistedPeriod)
	}

	s.sessions.Store(principalID, sess)

	s.logger.Info("Session bootstrapped",
		zap.String("principal_id", principalID.String()),
		zap.Int("tenant_count", len(tenants)),
		zap.Bool("tenant_selected", sess.tenantID != nil))

	return sess.toDTO(), nil
}

// CurrentScope returns the (tenant, period) pair the rest of the
// application filters and writes against
func (s *SessionService) CurrentScope(ctx context.Context, principalID uuid.UUID) (*ScopeDTO, error) {
	sess, err := s.lockedSession(principalID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	return &ScopeDTO{TenantID: sess.tenantID, PeriodID: sess.periodID}, nil
}

// SwitchTenant changes the session's tenant. Protected tenants fail with
// CHALLENGE_REQUIRED; callers must retry through
// SwitchTenantWithCredential. The tenant write is persisted before the
// period reload is issued.
func (s *SessionService) SwitchTenant(ctx context.Context, principalID, tenantID uuid.UUID) (*SessionDTO, error) {
	return s.switchTenant(ctx, principalID, tenantID, nil)
}

// SwitchTenantWithCredential validates the supplied secret and then
// behaves as SwitchTenant. On a failed challenge the session is left
// unchanged.
func (s *SessionService) SwitchTenantWithCredential(ctx context.Context, principalID, tenantID uuid.UUID, secret string) (*SessionDTO, error) {
	return s.switchTenant(ctx, principalID, tenantID, &secret)
}

func (s *SessionService) switchTenant(ctx context.Context, principalID, tenantID uuid.UUID, secret *string) (*SessionDTO, error) {
	sess, err := s.lockedSession(principalID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	tenant := sess.findTenant(tenantID)
	if tenant == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Tenant not found")
	}

	if s.gate.RequiresChallenge(tenant, sess.tenantID) {
		if secret == nil {
			return nil, shared.NewDomainError("CHALLENGE_REQUIRED", "Tenant requires a credential challenge")
		}
		if err := s.gate.Challenge(tenant, *secret); err != nil {
			return nil, err
		}
	}

	if err := s.scopeRepo.Save(ctx, &tenancy.ScopeState{
		PrincipalID: principalID,
		TenantID:    &tenantID,
		UpdatedAt:   time.Now(),
	}); err != nil {
		s.logger.Error("Failed to persist tenant switch",
			zap.String("principal_id", principalID.String()),
			zap.Error(err))
		return nil, err
	}

	periods, err := s.periodRepo.FindByTenantID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	sess.tenantID = &tenantID
	sess.periods = periods
	sess.periodID = resolvePeriod(periods, nil)

	if err := s.persistScope(ctx, principalID, sess); err != nil {
		return nil, err
	}

	s.logger.Info("Tenant switched",
		zap.String("principal_id", principalID.String()),
		zap.String("tenant_id", tenantID.String()),
		zap.Bool("period_selected", sess.periodID != nil))

	return sess.toDTO(), nil
}

// SwitchPeriod changes the session's period. The target must be a member
// of the loaded period set for the current tenant.
func (s *SessionService) SwitchPeriod(ctx context.Context, principalID, periodID uuid.UUID) (*ScopeDTO, error) {
	sess, err := s.lockedSession(principalID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	if sess.findPeriod(periodID) == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Period not found")
	}

	sess.periodID = &periodID
	if err := s.persistScope(ctx, principalID, sess); err != nil {
		return nil, err
	}

	s.logger.Info("Period switched",
		zap.String("principal_id", principalID.String()),
		zap.String("period_id", periodID.String()))

	return &ScopeDTO{TenantID: sess.tenantID, PeriodID: sess.periodID}, nil
}

// Logout discards the in-memory session. The persisted scope survives so
// the next bootstrap restores the last selection.
func (s *SessionService) Logout(ctx context.Context, principalID uuid.UUID) {
	s.sessions.Delete(principalID)
	s.logger.Info("Session discarded", zap.String("principal_id", principalID.String()))
}

// ListPeriods returns the loaded period set of the session's current tenant
func (s *SessionService) ListPeriods(ctx context.Context, principalID uuid.UUID) ([]PeriodDTO, error) {
	sess, err := s.lockedSession(principalID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	return toPeriodDTOs(sess.periods), nil
}

// CreatePeriod creates a period for the session's current tenant and
// refreshes the loaded period set
func (s *SessionService) CreatePeriod(ctx context.Context, principalID uuid.UUID, input CreatePeriodInput) (*PeriodDTO, error) {
	sess, err := s.lockedSession(principalID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	if sess.tenantID == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "No tenant selected")
	}
	input.TenantID = *sess.tenantID

	dto, err := s.periodService.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.reloadPeriods(ctx, principalID, sess); err != nil {
		return nil, err
	}
	return dto, nil
}

// UpdatePeriod updates a period of the session's current tenant and
// refreshes the loaded period set
func (s *SessionService) UpdatePeriod(ctx context.Context, principalID uuid.UUID, input UpdatePeriodInput) (*PeriodDTO, error) {
	sess, err := s.lockedSession(principalID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	if sess.findPeriod(input.ID) == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Period not found")
	}

	dto, err := s.periodService.Update(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.reloadPeriods(ctx, principalID, sess); err != nil {
		return nil, err
	}
	return dto, nil
}

// DeletePeriod deletes a period of the session's current tenant. If the
// deleted period was the current one, the selection falls back the same
// way bootstrap resolves it.
func (s *SessionService) DeletePeriod(ctx context.Context, principalID, periodID uuid.UUID) error {
	sess, err := s.lockedSession(principalID)
	if err != nil {
		return err
	}
	defer sess.mu.Unlock()

	if sess.findPeriod(periodID) == nil {
		return shared.NewDomainError("NOT_FOUND", "Period not found")
	}

	if err := s.periodService.Delete(ctx, periodID); err != nil {
		return err
	}
	return s.reloadPeriods(ctx, principalID, sess)
}

// ActivatePeriod makes a period of the session's current tenant the
// active one and refreshes the loaded period set
func (s *SessionService) ActivatePeriod(ctx context.Context, principalID, periodID uuid.UUID) error {
	sess, err := s.lockedSession(principalID)
	if err != nil {
		return err
	}
	defer sess.mu.Unlock()

	if sess.tenantID == nil || sess.findPeriod(periodID) == nil {
		return shared.NewDomainError("NOT_FOUND", "Period not found")
	}

	if err := s.periodService.Activate(ctx, *sess.tenantID, periodID); err != nil {
		return err
	}
	return s.reloadPeriods(ctx, principalID, sess)
}

// ClosePeriod finalizes a period of the session's current tenant
func (s *SessionService) ClosePeriod(ctx context.Context, principalID, periodID uuid.UUID) (*PeriodDTO, error) {
	sess, err := s.lockedSession(principalID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	if sess.findPeriod(periodID) == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Period not found")
	}

	dto, err := s.periodService.Close(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if err := s.reloadPeriods(ctx, principalID, sess); err != nil {
		return nil, err
	}
	return dto, nil
}

// ReopenPeriod reverts a closed period of the session's current tenant
func (s *SessionService) ReopenPeriod(ctx context.Context, principalID, periodID uuid.UUID) (*PeriodDTO, error) {
	sess, err := s.lockedSession(principalID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	if sess.findPeriod(periodID) == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Period not found")
	}

	dto, err := s.periodService.Reopen(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if err := s.reloadPeriods(ctx, principalID, sess); err != nil {
		return nil, err
	}
	return dto, nil
}

// lockedSession returns the principal's session with its mutex held
func (s *SessionService) lockedSession(principalID uuid.UUID) (*session, error) {
	value, ok := s.sessions.Load(principalID)
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Session not bootstrapped")
	}
	sess := value.(*session)
	sess.mu.Lock()
	return sess, nil
}

// reloadPeriods refreshes the session's period cache after a mutation.
// If the current period no longer exists the selection falls back to the
// active period, then the first, then none, and the scope is re-persisted.
func (s *SessionService) reloadPeriods(ctx context.Context, principalID uuid.UUID, sess *session) error {
	if sess.tenantID == nil {
		return nil
	}
	periods, err := s.periodRepo.FindByTenantID(ctx, *sess.tenantID)
	if err != nil {
		return err
	}
	sess.periods = periods

	if sess.periodID != nil && sess.findPeriod(*sess.periodID) == nil {
		sess.periodID = resolvePeriod(periods, nil)
		return s.persistScope(ctx, principalID, sess)
	}
	return nil
}

func (s *SessionService) persistScope(ctx context.Context, principalID uuid.UUID, sess *session) error {
	state := &tenancy.ScopeState{
		PrincipalID: principalID,
		TenantID:    sess.tenantID,
		PeriodID:    sess.periodID,
		UpdatedAt:   time.Now(),
	}
	if err := s.scopeRepo.Save(ctx, state); err != nil {
		s.logger.Error("Failed to persist scope",
			zap.String("principal_id", principalID.String()),
			zap.Error(err))
		return err
	}
	return nil
}

func (sess *session) findTenant(id uuid.UUID) *tenancy.Tenant {
	for i := range sess.tenants {
		if sess.tenants[i].ID == id {
			return &sess.tenants[i]
		}
	}
	return nil
}

func (sess *session) findPeriod(id uuid.UUID) *tenancy.AccountingPeriod {
	for i := range sess.periods {
		if sess.periods[i].ID == id {
			return &sess.periods[i]
		}
	}
	return nil
}

func (sess *session) toDTO() *SessionDTO {
	return &SessionDTO{
		Scope:   ScopeDTO{TenantID: sess.tenantID, PeriodID: sess.periodID},
		Tenants: toTenantDTOs(sess.tenants),
		Periods: toPeriodDTOs(sess.periods),
	}
}

// resolveTenant picks the persisted tenant if still accessible, else the
// first accessible tenant, else nil
func resolveTenant(tenants []tenancy.Tenant, persisted *uuid.UUID) *tenancy.Tenant {
	if persisted != nil {
		for i := range tenants {
			if tenants[i].ID == *persisted {
				return &tenants[i]
			}
		}
	}
	if len(tenants) > 0 {
		return &tenants[0]
	}
	return nil
}

// resolvePeriod picks the persisted period if present in the loaded set,
// else the active one, else the first loaded, else nil
func resolvePeriod(periods []tenancy.AccountingPeriod, persisted *uuid.UUID) *uuid.UUID {
	if persisted != nil {
		for i := range periods {
			if periods[i].ID == *persisted {
				id := periods[i].ID
				return &id
			}
		}
	}
	for i := range periods {
		if periods[i].IsActive {
			id := periods[i].ID
			return &id
		}
	}
	if len(periods) > 0 {
		id := periods[0].ID
		return &id
	}
	return nil
}
