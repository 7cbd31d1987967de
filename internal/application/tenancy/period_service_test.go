package tenancy

import (
	"context"
	"testing"
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

func TestPeriodServiceCreate(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates adjacent fiscal years", func(t *testing.T) {
		repo := newFakePeriodRepository()
		service := NewPeriodService(repo, zap.NewNop())

		fy24, err := service.Create(context.Background(), CreatePeriodInput{
			TenantID:  tenantID,
			Name:      "FY24",
			StartDate: date(2023, time.April, 1),
			EndDate:   date(2024, time.March, 31),
			Type:      tenancy.PeriodTypeFiscalYear,
		})
		require.NoError(t, err)
		assert.False(t, fy24.IsActive)
		assert.False(t, fy24.IsClosed)

		fy25, err := service.Create(context.Background(), CreatePeriodInput{
			TenantID:  tenantID,
			Name:      "FY25",
			StartDate: date(2024, time.April, 1),
			EndDate:   date(2025, time.March, 31),
			Type:      tenancy.PeriodTypeFiscalYear,
		})
		require.NoError(t, err)
		assert.Equal(t, "FY25", fy25.Name)
	})

	t.Run("rejects overlapping range and names the conflict", func(t *testing.T) {
		repo := newFakePeriodRepository()
		service := NewPeriodService(repo, zap.NewNop())

		_, err := service.Create(context.Background(), CreatePeriodInput{
			TenantID:  tenantID,
			Name:      "FY24",
			StartDate: date(2023, time.April, 1),
			EndDate:   date(2024, time.March, 31),
			Type:      tenancy.PeriodTypeFiscalYear,
		})
		require.NoError(t, err)

		_, err = service.Create(context.Background(), CreatePeriodInput{
			TenantID:  tenantID,
			Name:      "Q1dup",
			StartDate: date(2024, time.January, 1),
			EndDate:   date(2024, time.June, 30),
			Type:      tenancy.PeriodTypeQuarter,
		})
		require.Error(t, err)
		assert.Equal(t, "PERIOD_OVERLAP", domainCode(t, err))
		assert.Contains(t, err.Error(), "FY24")

		periods, err := repo.FindByTenantID(context.Background(), tenantID)
		require.NoError(t, err)
		assert.Len(t, periods, 1)
	})

	t.Run("allows same range for another tenant", func(t *testing.T) {
		repo := newFakePeriodRepository()
		service := NewPeriodService(repo, zap.NewNop())

		_, err := service.Create(context.Background(), CreatePeriodInput{
			TenantID:  tenantID,
			Name:      "FY24",
			StartDate: date(2023, time.April, 1),
			EndDate:   date(2024, time.March, 31),
			Type:      tenancy.PeriodTypeFiscalYear,
		})
		require.NoError(t, err)

		_, err = service.Create(context.Background(), CreatePeriodInput{
			TenantID:  uuid.New(),
			Name:      "FY24",
			StartDate: date(2023, time.April, 1),
			EndDate:   date(2024, time.March, 31),
			Type:      tenancy.PeriodTypeFiscalYear,
		})
		assert.NoError(t, err)
	})

	t.Run("rejects invalid drafts with field errors", func(t *testing.T) {
		repo := newFakePeriodRepository()
		service := NewPeriodService(repo, zap.NewNop())

		_, err := service.Create(context.Background(), CreatePeriodInput{
			TenantID:  tenantID,
			Name:      "",
			StartDate: date(2024, time.January, 1),
			EndDate:   date(2024, time.December, 31),
			Type:      tenancy.PeriodTypeFiscalYear,
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION", domainCode(t, err))

		_, err = service.Create(context.Background(), CreatePeriodInput{
			TenantID:  tenantID,
			Name:      "Backwards",
			StartDate: date(2024, time.December, 31),
			EndDate:   date(2024, time.January, 1),
			Type:      tenancy.PeriodTypeFiscalYear,
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION", domainCode(t, err))
	})
}

func TestPeriodServiceUpdate(t *testing.T) {
	tenantID := uuid.New()

	setup := func(t *testing.T) (*PeriodService, *fakePeriodRepository, *PeriodDTO, *PeriodDTO) {
		repo := newFakePeriodRepository()
		service := NewPeriodService(repo, zap.NewNop())

		fy24, err := service.Create(context.Background(), CreatePeriodInput{
			TenantID:  tenantID,
			Name:      "FY24",
			StartDate: date(2023, time.April, 1),
			EndDate:   date(2024, time.March, 31),
			Type:      tenancy.PeriodTypeFiscalYear,
		})
		require.NoError(t, err)

		fy25, err := service.Create(context.Background(), CreatePeriodInput{
			TenantID:  tenantID,
			Name:      "FY25",
			StartDate: date(2024, time.April, 1),
			EndDate:   date(2025, time.March, 31),
			Type:      tenancy.PeriodTypeFiscalYear,
		})
		require.NoError(t, err)

		return service, repo, fy24, fy25
	}

	t.Run("updates within its own slot", func(t *testing.T) {
		service, _, fy24, _ := setup(t)

		updated, err := service.Update(context.Background(), UpdatePeriodInput{
			ID:        fy24.ID,
			Name:      "FY24 revised",
			StartDate: date(2023, time.May, 1),
			EndDate:   date(2024, time.March, 31),
			Type:      tenancy.PeriodTypeFiscalYear,
		})
		require.NoError(t, err)
		assert.Equal(t, "FY24 revised", updated.Name)
	})

	t.Run("rejects update that collides with a sibling", func(t *testing.T) {
		service, _, fy24, _ := setup(t)

		_, err := service.Update(context.Background(), UpdatePeriodInput{
			ID:        fy24.ID,
			Name:      "FY24 stretched",
			StartDate: date(2023, time.April, 1),
			EndDate:   date(2024, time.April, 30),
			Type:      tenancy.PeriodTypeFiscalYear,
		})
		require.Error(t, err)
		assert.Equal(t, "PERIOD_OVERLAP", domainCode(t, err))
		assert.Contains(t, err.Error(), "FY25")
	})

	t.Run("rejects update of a closed period and leaves the store unchanged", func(t *testing.T) {
		service, repo, fy24, _ := setup(t)

		_, err := service.Close(context.Background(), fy24.ID)
		require.NoError(t, err)

		_, err = service.Update(context.Background(), UpdatePeriodInput{
			ID:        fy24.ID,
			Name:      "FY24 tampered",
			StartDate: date(2023, time.April, 1),
			EndDate:   date(2024, time.March, 31),
			Type:      tenancy.PeriodTypeFiscalYear,
		})
		require.Error(t, err)
		assert.Equal(t, "PERIOD_CLOSED", domainCode(t, err))

		stored, err := repo.FindByID(context.Background(), fy24.ID)
		require.NoError(t, err)
		assert.Equal(t, "FY24", stored.Name)
	})

	t.Run("returns not found for unknown period", func(t *testing.T) {
		service, _, _, _ := setup(t)

		_, err := service.Update(context.Background(), UpdatePeriodInput{
			ID:        uuid.New(),
			Name:      "Ghost",
			StartDate: date(2030, time.January, 1),
			EndDate:   date(2030, time.December, 31),
			Type:      tenancy.PeriodTypeFiscalYear,
		})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", domainCode(t, err))
	})
}

func TestPeriodServiceDelete(t *testing.T) {
	tenantID := uuid.New()

	setup := func(t *testing.T) (*PeriodService, *fakePeriodRepository, *PeriodDTO) {
		repo := newFakePeriodRepository()
		service := NewPeriodService(repo, zap.NewNop())

		fy24, err := service.Create(context.Background(), CreatePeriodInput{
			TenantID:  tenantID,
			Name:      "FY24",
			StartDate: date(2023, time.April, 1),
			EndDate:   date(2024, time.March, 31),
			Type:      tenancy.PeriodTypeFiscalYear,
		})
		require.NoError(t, err)
		return service, repo, fy24
	}

	t.Run("deletes an inactive open period", func(t *testing.T) {
		service, repo, fy24 := setup(t)

		require.NoError(t, service.Delete(context.Background(), fy24.ID))

		_, err := repo.FindByID(context.Background(), fy24.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects deleting the active period and leaves the store unchanged", func(t *testing.T) {
		service, repo, fy24 := setup(t)
		require.NoError(t, service.Activate(context.Background(), tenantID, fy24.ID))

		err := service.Delete(context.Background(), fy24.ID)
		require.Error(t, err)
		assert.Equal(t, "PERIOD_ACTIVE", domainCode(t, err))

		stored, err := repo.FindByID(context.Background(), fy24.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsActive)
	})

	t.Run("rejects deleting a closed period", func(t *testing.T) {
		service, _, fy24 := setup(t)
		_, err := service.Close(context.Background(), fy24.ID)
		require.NoError(t, err)

		err = service.Delete(context.Background(), fy24.ID)
		require.Error(t, err)
		assert.Equal(t, "PERIOD_CLOSED", domainCode(t, err))
	})
}

func TestPeriodServiceActivate(t *testing.T) {
	tenantID := uuid.New()

	setup := func(t *testing.T) (*PeriodService, *fakePeriodRepository, *PeriodDTO, *PeriodDTO) {
		repo := newFakePeriodRepository()
		service := NewPeriodService(repo, zap.NewNop())

		fy24, err := service.Create(context.Background(), CreatePeriodInput{
			TenantID:  tenantID,
			Name:      "FY24",
			StartDate: date(2023, time.April, 1),
			EndDate:   date(2024, time.March, 31),
			Type:      tenancy.PeriodTypeFiscalYear,
		})
		require.NoError(t, err)

		fy25, err := service.Create(context.Background(), CreatePeriodInput{
			TenantID:  tenantID,
			Name:      "FY25",
			StartDate: date(2024, time.April, 1),
			EndDate:   date(2025, time.March, 31),
			Type:      tenancy.PeriodTypeFiscalYear,
		})
		require.NoError(t, err)

		return service, repo, fy24, fy25
	}

	t.Run("activation moves the flag atomically", func(t *testing.T) {
		service, repo, fy24, fy25 := setup(t)

		require.NoError(t, service.Activate(context.Background(), tenantID, fy25.ID))
		require.NoError(t, service.Activate(context.Background(), tenantID, fy24.ID))

		periods, err := repo.FindByTenantID(context.Background(), tenantID)
		require.NoError(t, err)
		activeCount := 0
		for _, p := range periods {
			if p.IsActive {
				activeCount++
				assert.Equal(t, fy24.ID, p.ID)
			}
		}
		assert.Equal(t, 1, activeCount)
	})

	t.Run("rejects activating a period of another tenant", func(t *testing.T) {
		service, _, fy24, _ := setup(t)

		err := service.Activate(context.Background(), uuid.New(), fy24.ID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", domainCode(t, err))
	})

	t.Run("rejects activating an unknown period", func(t *testing.T) {
		service, _, _, _ := setup(t)

		err := service.Activate(context.Background(), tenantID, uuid.New())
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", domainCode(t, err))
	})
}

func TestPeriodServiceCloseReopen(t *testing.T) {
	tenantID := uuid.New()

	t.Run("close and reopen round trip", func(t *testing.T) {
		repo := newFakePeriodRepository()
		service := NewPeriodService(repo, zap.NewNop())

		fy24, err := service.Create(context.Background(), CreatePeriodInput{
			TenantID:  tenantID,
			Name:      "FY24",
			StartDate: date(2023, time.April, 1),
			EndDate:   date(2024, time.March, 31),
			Type:      tenancy.PeriodTypeFiscalYear,
		})
		require.NoError(t, err)

		closed, err := service.Close(context.Background(), fy24.ID)
		require.NoError(t, err)
		assert.True(t, closed.IsClosed)

		reopened, err := service.Reopen(context.Background(), fy24.ID)
		require.NoError(t, err)
		assert.False(t, reopened.IsClosed)
	})

	t.Run("rejects closing the active period", func(t *testing.T) {
		repo := newFakePeriodRepository()
		service := NewPeriodService(repo, zap.NewNop())

		fy24, err := service.Create(context.Background(), CreatePeriodInput{
			TenantID:  tenantID,
			Name:      "FY24",
			StartDate: date(2023, time.April, 1),
			EndDate:   date(2024, time.March, 31),
			Type:      tenancy.PeriodTypeFiscalYear,
		})
		require.NoError(t, err)
		require.NoError(t, service.Activate(context.Background(), tenantID, fy24.ID))

		_, err = service.Close(context.Background(), fy24.ID)
		require.Error(t, err)
		assert.Equal(t, "PERIOD_ACTIVE", domainCode(t, err))
	})
}
