package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormTenantRepository_FindByID(t *testing.T) {
	t.Run("finds existing tenant", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTenantRepository(db)

		tenantID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "code", "name", "currency", "timezone", "protection_enabled", "protection_secret", "version"}).
			AddRow(tenantID, "ACME01", "Acme Trading Ltd", "USD", "UTC", true, "$2a$10$hash", 3)

		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, 1).
			WillReturnRows(rows)

		tenant, err := repo.FindByID(context.Background(), tenantID)

		require.NoError(t, err)
		assert.Equal(t, tenantID, tenant.ID)
		assert.Equal(t, "ACME01", tenant.Code)
		assert.True(t, tenant.IsProtected())
		assert.Equal(t, "$2a$10$hash", tenant.Protection.SecretHash)
		assert.Equal(t, 3, tenant.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing tenant", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTenantRepository(db)

		tenantID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		tenant, err := repo.FindByID(context.Background(), tenantID)

		assert.Nil(t, tenant)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTenantRepository_FindByCode(t *testing.T) {
	t.Run("uppercases the code before querying", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTenantRepository(db)

		tenantID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "code", "name", "currency", "timezone", "version"}).
			AddRow(tenantID, "ACME01", "Acme Trading Ltd", "USD", "UTC", 1)

		mock.ExpectQuery(`SELECT \* FROM "tenants" WHERE code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ACME01", 1).
			WillReturnRows(rows)

		tenant, err := repo.FindByCode(context.Background(), "acme01")

		require.NoError(t, err)
		assert.Equal(t, "ACME01", tenant.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTenantRepository_FindAccessibleByPrincipal(t *testing.T) {
	t.Run("joins membership in grant order", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTenantRepository(db)

		principalID := uuid.New()
		first := uuid.New()
		second := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "code", "name", "currency", "timezone", "version"}).
			AddRow(first, "ALPHA", "Alpha Ltd", "USD", "UTC", 1).
			AddRow(second, "BETA", "Beta Ltd", "EUR", "UTC", 1)

		mock.ExpectQuery(`SELECT "tenants".* FROM "tenants" JOIN tenant_members ON tenant_members.tenant_id = tenants.id WHERE tenant_members.principal_id = \$1 ORDER BY tenant_members.position ASC`).
			WithArgs(principalID).
			WillReturnRows(rows)

		tenants, err := repo.FindAccessibleByPrincipal(context.Background(), principalID)

		require.NoError(t, err)
		require.Len(t, tenants, 2)
		assert.Equal(t, "ALPHA", tenants[0].Code)
		assert.Equal(t, "BETA", tenants[1].Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice when principal has no grants", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTenantRepository(db)

		principalID := uuid.New()
		mock.ExpectQuery(`SELECT "tenants".* FROM "tenants" JOIN tenant_members`).
			WithArgs(principalID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name"}))

		tenants, err := repo.FindAccessibleByPrincipal(context.Background(), principalID)

		require.NoError(t, err)
		assert.Empty(t, tenants)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTenantRepository_ExistsByCode(t *testing.T) {
	t.Run("reports existing code", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTenantRepository(db)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "tenants" WHERE code = \$1`).
			WithArgs("ACME01").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByCode(context.Background(), "acme01")

		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
