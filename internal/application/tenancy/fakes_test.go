package tenancy

import (
	"context"
	"sort"
	"sync"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/tenancy"
	"github.com/google/uuid"
)

// fakeTenantRepository is an in-memory TenantRepository for service tests
type fakeTenantRepository struct {
	mu      sync.Mutex
	tenants []tenancy.Tenant
	grants  map[uuid.UUID][]uuid.UUID
	err     error
}

func newFakeTenantRepository() *fakeTenantRepository {
	return &fakeTenantRepository{grants: make(map[uuid.UUID][]uuid.UUID)}
}

func (r *fakeTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.tenants {
		if r.tenants[i].ID == id {
			tenant := r.tenants[i]
			return &tenant, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeTenantRepository) FindByCode(ctx context.Context, code string) (*tenancy.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.tenants {
		if r.tenants[i].Code == code {
			tenant := r.tenants[i]
			return &tenant, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeTenantRepository) FindAccessibleByPrincipal(ctx context.Context, principalID uuid.UUID) ([]tenancy.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var result []tenancy.Tenant
	for _, tenantID := range r.grants[principalID] {
		for i := range r.tenants {
			if r.tenants[i].ID == tenantID {
				result = append(result, r.tenants[i])
			}
		}
	}
	return result, nil
}

func (r *fakeTenantRepository) Save(ctx context.Context, tenant *tenancy.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for i := range r.tenants {
		if r.tenants[i].ID == tenant.ID {
			r.tenants[i] = *tenant
			return nil
		}
	}
	r.tenants = append(r.tenants, *tenant)
	return nil
}

func (r *fakeTenantRepository) GrantAccess(ctx context.Context, principalID, tenantID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grants[principalID] = append(r.grants[principalID], tenantID)
	return nil
}

func (r *fakeTenantRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tenants {
		if r.tenants[i].Code == code {
			return true, nil
		}
	}
	return false, nil
}

// fakePeriodRepository is an in-memory PeriodRepository for service tests
type fakePeriodRepository struct {
	mu      sync.Mutex
	periods []tenancy.AccountingPeriod
	err     error
}

func newFakePeriodRepository() *fakePeriodRepository {
	return &fakePeriodRepository{}
}

func (r *fakePeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.AccountingPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.periods {
		if r.periods[i].ID == id {
			period := r.periods[i]
			return &period, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakePeriodRepository) FindByTenantID(ctx context.Context, tenantID uuid.UUID) ([]tenancy.AccountingPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var result []tenancy.AccountingPeriod
	for i := range r.periods {
		if r.periods[i].TenantID == tenantID {
			result = append(result, r.periods[i])
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartDate.After(result[j].StartDate)
	})
	return result, nil
}

func (r *fakePeriodRepository) FindActiveByTenantID(ctx context.Context, tenantID uuid.UUID) (*tenancy.AccountingPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.periods {
		if r.periods[i].TenantID == tenantID && r.periods[i].IsActive {
			period := r.periods[i]
			return &period, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakePeriodRepository) Save(ctx context.Context, period *tenancy.AccountingPeriod) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for i := range r.periods {
		if r.periods[i].ID == period.ID {
			r.periods[i] = *period
			return nil
		}
	}
	r.periods = append(r.periods, *period)
	return nil
}

func (r *fakePeriodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for i := range r.periods {
		if r.periods[i].ID == id {
			r.periods = append(r.periods[:i], r.periods[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *fakePeriodRepository) Activate(ctx context.Context, tenantID, periodID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	found := false
	for i := range r.periods {
		if r.periods[i].TenantID == tenantID {
			r.periods[i].IsActive = r.periods[i].ID == periodID
			if r.periods[i].ID == periodID {
				found = true
			}
		}
	}
	if !found {
		return shared.ErrNotFound
	}
	return nil
}

// fakeScopeStateRepository is an in-memory ScopeStateRepository
type fakeScopeStateRepository struct {
	mu     sync.Mutex
	states map[uuid.UUID]tenancy.ScopeState
	err    error
}

func newFakeScopeStateRepository() *fakeScopeStateRepository {
	return &fakeScopeStateRepository{states: make(map[uuid.UUID]tenancy.ScopeState)}
}

func (r *fakeScopeStateRepository) Load(ctx context.Context, principalID uuid.UUID) (*tenancy.ScopeState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	state, ok := r.states[principalID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &state, nil
}

func (r *fakeScopeStateRepository) Save(ctx context.Context, state *tenancy.ScopeState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.states[state.PrincipalID] = *state
	return nil
}

func (r *fakeScopeStateRepository) Clear(ctx context.Context, principalID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, principalID)
	return nil
}

var (
	_ tenancy.TenantRepository     = (*fakeTenantRepository)(nil)
	_ tenancy.PeriodRepository     = (*fakePeriodRepository)(nil)
	_ tenancy.ScopeStateRepository = (*fakeScopeStateRepository)(nil)
)
