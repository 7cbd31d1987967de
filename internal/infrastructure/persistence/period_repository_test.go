package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormPeriodRepository_FindByID(t *testing.T) {
	t.Run("finds existing period", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPeriodRepository(db)

		periodID := uuid.New()
		tenantID := uuid.New()
		start := time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "name", "start_date", "end_date", "type", "is_active", "is_closed", "version"}).
			AddRow(periodID, tenantID, "FY24", start, end, "fiscal_year", true, false, 1)

		mock.ExpectQuery(`SELECT \* FROM "accounting_periods" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(periodID, 1).
			WillReturnRows(rows)

		period, err := repo.FindByID(context.Background(), periodID)

		require.NoError(t, err)
		assert.Equal(t, periodID, period.ID)
		assert.Equal(t, tenantID, period.TenantID)
		assert.Equal(t, "FY24", period.Name)
		assert.True(t, period.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing period", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPeriodRepository(db)

		periodID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "accounting_periods" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(periodID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		period, err := repo.FindByID(context.Background(), periodID)

		assert.Nil(t, period)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPeriodRepository_FindByTenantID(t *testing.T) {
	t.Run("orders by start date descending", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPeriodRepository(db)

		tenantID := uuid.New()
		fy24 := uuid.New()
		fy25 := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "name", "start_date", "end_date", "type", "is_active", "is_closed", "version"}).
			AddRow(fy25, tenantID, "FY25", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), "fiscal_year", false, false, 1).
			AddRow(fy24, tenantID, "FY24", time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), "fiscal_year", false, false, 1)

		mock.ExpectQuery(`SELECT \* FROM "accounting_periods" WHERE tenant_id = \$1 ORDER BY start_date DESC`).
			WithArgs(tenantID).
			WillReturnRows(rows)

		periods, err := repo.FindByTenantID(context.Background(), tenantID)

		require.NoError(t, err)
		require.Len(t, periods, 2)
		assert.Equal(t, "FY25", periods[0].Name)
		assert.Equal(t, "FY24", periods[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPeriodRepository_Delete(t *testing.T) {
	t.Run("deletes existing period", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPeriodRepository(db)

		periodID := uuid.New()
		mock.ExpectExec(`DELETE FROM "accounting_periods" WHERE id = \$1`).
			WithArgs(periodID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), periodID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when nothing was deleted", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPeriodRepository(db)

		periodID := uuid.New()
		mock.ExpectExec(`DELETE FROM "accounting_periods" WHERE id = \$1`).
			WithArgs(periodID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), periodID)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPeriodRepository_Activate(t *testing.T) {
	t.Run("clears and sets within one transaction", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPeriodRepository(db)

		tenantID := uuid.New()
		periodID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "accounting_periods" SET "is_active"=.*WHERE tenant_id = .* AND is_active = .*`).
			WithArgs(false, sqlmock.AnyArg(), tenantID, true).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "accounting_periods" SET "is_active"=.*WHERE id = .* AND tenant_id = .*`).
			WithArgs(true, sqlmock.AnyArg(), periodID, tenantID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Activate(context.Background(), tenantID, periodID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the target is missing", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPeriodRepository(db)

		tenantID := uuid.New()
		periodID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "accounting_periods" SET "is_active"=.*WHERE tenant_id = .* AND is_active = .*`).
			WithArgs(false, sqlmock.AnyArg(), tenantID, true).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "accounting_periods" SET "is_active"=.*WHERE id = .* AND tenant_id = .*`).
			WithArgs(true, sqlmock.AnyArg(), periodID, tenantID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Activate(context.Background(), tenantID, periodID)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
