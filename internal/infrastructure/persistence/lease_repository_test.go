package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/leasing"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockLeaseRepository creates a GormLeaseRepository with a mocked SQL connection
func newMockLeaseRepository(t *testing.T) (*GormLeaseRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormLeaseRepository(gormDB), mock, mockDB
}

func leaseRows(leaseID, organizationID, unitID, tenantID uuid.UUID) *sqlmock.Rows {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "version", "organization_id", "unit_id", "tenant_id",
		"start_date", "end_date", "amount", "currency",
		"lease_type", "charge_type", "payment_frequency", "first_payment_date", "status",
	}).AddRow(
		leaseID, 1, organizationID, unitID, tenantID,
		start, end, decimal.NewFromInt(45000), "KES",
		"FIXED_TERM", "RENT", "MONTHLY", start, "ACTIVE",
	)
}

func TestGormLeaseRepository_FindByID(t *testing.T) {
	t.Run("finds existing lease", func(t *testing.T) {
		repo, mock, mockDB := newMockLeaseRepository(t)
		defer mockDB.Close()

		leaseID := uuid.New()
		organizationID := uuid.New()
		unitID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "lease_agreements" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(leaseID, 1).
			WillReturnRows(leaseRows(leaseID, organizationID, unitID, tenantID))

		lease, err := repo.FindByID(context.Background(), leaseID)

		assert.NoError(t, err)
		require.NotNil(t, lease)
		assert.Equal(t, leaseID, lease.ID)
		assert.Equal(t, organizationID, lease.OrganizationID)
		assert.Equal(t, leasing.FrequencyMonthly, lease.PaymentFrequency)
		assert.True(t, lease.Amount.Equal(decimal.NewFromInt(45000)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil for non-existent lease", func(t *testing.T) {
		repo, mock, mockDB := newMockLeaseRepository(t)
		defer mockDB.Close()

		leaseID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "lease_agreements" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(leaseID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		lease, err := repo.FindByID(context.Background(), leaseID)

		assert.NoError(t, err)
		assert.Nil(t, lease)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLeaseRepository_FindByIDForOrganization(t *testing.T) {
	t.Run("scopes lookup to organization", func(t *testing.T) {
		repo, mock, mockDB := newMockLeaseRepository(t)
		defer mockDB.Close()

		leaseID := uuid.New()
		organizationID := uuid.New()
		unitID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "lease_agreements" WHERE organization_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(organizationID, leaseID, 1).
			WillReturnRows(leaseRows(leaseID, organizationID, unitID, tenantID))

		lease, err := repo.FindByIDForOrganization(context.Background(), organizationID, leaseID)

		assert.NoError(t, err)
		require.NotNil(t, lease)
		assert.Equal(t, leaseID, lease.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil when lease belongs to another organization", func(t *testing.T) {
		repo, mock, mockDB := newMockLeaseRepository(t)
		defer mockDB.Close()

		leaseID := uuid.New()
		organizationID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "lease_agreements" WHERE organization_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(organizationID, leaseID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		lease, err := repo.FindByIDForOrganization(context.Background(), organizationID, leaseID)

		assert.NoError(t, err)
		assert.Nil(t, lease)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLeaseRepository_CountActiveByUnit(t *testing.T) {
	repo, mock, mockDB := newMockLeaseRepository(t)
	defer mockDB.Close()

	organizationID := uuid.New()
	unitID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "lease_agreements" WHERE organization_id = \$1 AND unit_id = \$2 AND status = \$3`).
		WithArgs(organizationID, unitID, string(leasing.LeaseStatusActive)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountActiveByUnit(context.Background(), organizationID, unitID)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormLeaseRepository_SaveWithLock(t *testing.T) {
	t.Run("returns conflict when version check fails", func(t *testing.T) {
		repo, mock, mockDB := newMockLeaseRepository(t)
		defer mockDB.Close()

		lease := mustTestLease(t)
		lease.IncrementVersion()

		mock.ExpectExec(`UPDATE "lease_agreements" SET .*`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), lease)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OPTIMISTIC_LOCK_ERROR", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func mustTestLease(t *testing.T) *leasing.LeaseAgreement {
	t.Helper()
	amount, err := valueobject.NewMoney(decimal.NewFromInt(45000), valueobject.KES)
	require.NoError(t, err)
	lease, err := leasing.NewLeaseAgreement(
		uuid.New(), uuid.New(), uuid.New(),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		amount, "", "", "", time.Time{},
	)
	require.NoError(t, err)
	return lease
}
