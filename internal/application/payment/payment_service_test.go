package payment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/propman/backend/internal/domain/leasing"
	"github.com/propman/backend/internal/domain/payment"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
)

// Mock implementations

type mockPaymentRepository struct {
	mock.Mock
}

func (m *mockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.PaymentRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentRecord), args.Error(1)
}

func (m *mockPaymentRepository) FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*payment.PaymentRecord, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentRecord), args.Error(1)
}

func (m *mockPaymentRepository) FindByLease(ctx context.Context, organizationID, leaseID uuid.UUID) ([]payment.PaymentRecord, error) {
	args := m.Called(ctx, organizationID, leaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.PaymentRecord), args.Error(1)
}

func (m *mockPaymentRepository) FindByLeaseInRange(ctx context.Context, organizationID, leaseID uuid.UUID, from, to time.Time) ([]payment.PaymentRecord, error) {
	args := m.Called(ctx, organizationID, leaseID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.PaymentRecord), args.Error(1)
}

func (m *mockPaymentRepository) FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter payment.PaymentFilter) ([]payment.PaymentRecord, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.PaymentRecord), args.Error(1)
}

func (m *mockPaymentRepository) Save(ctx context.Context, record *payment.PaymentRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockPaymentRepository) SumByLease(ctx context.Context, organizationID, leaseID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, organizationID, leaseID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockPaymentRepository) CountForOrganization(ctx context.Context, organizationID uuid.UUID, filter payment.PaymentFilter) (int64, error) {
	args := m.Called(ctx, organizationID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockPaymentTypeRepository struct {
	mock.Mock
}

func (m *mockPaymentTypeRepository) FindByCode(ctx context.Context, code string) (*payment.PaymentType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentType), args.Error(1)
}

func (m *mockPaymentTypeRepository) FindAllForOrganization(ctx context.Context, organizationID uuid.UUID) ([]payment.PaymentType, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.PaymentType), args.Error(1)
}

func (m *mockPaymentTypeRepository) Save(ctx context.Context, paymentType *payment.PaymentType) error {
	args := m.Called(ctx, paymentType)
	return args.Error(0)
}

type mockLeaseRepository struct {
	mock.Mock
}

func (m *mockLeaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*leasing.LeaseAgreement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.LeaseAgreement), args.Error(1)
}

func (m *mockLeaseRepository) FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*leasing.LeaseAgreement, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leasing.LeaseAgreement), args.Error(1)
}

func (m *mockLeaseRepository) FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter leasing.LeaseFilter) ([]leasing.LeaseAgreement, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]leasing.LeaseAgreement), args.Error(1)
}

func (m *mockLeaseRepository) FindByUnit(ctx context.Context, organizationID, unitID uuid.UUID) ([]leasing.LeaseAgreement, error) {
	args := m.Called(ctx, organizationID, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]leasing.LeaseAgreement), args.Error(1)
}

func (m *mockLeaseRepository) FindByProperty(ctx context.Context, organizationID, propertyID uuid.UUID) ([]leasing.LeaseAgreement, error) {
	args := m.Called(ctx, organizationID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]leasing.LeaseAgreement), args.Error(1)
}

func (m *mockLeaseRepository) FindActiveByTenant(ctx context.Context, organizationID, tenantID uuid.UUID) ([]leasing.LeaseAgreement, error) {
	args := m.Called(ctx, organizationID, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]leasing.LeaseAgreement), args.Error(1)
}

func (m *mockLeaseRepository) Save(ctx context.Context, lease *leasing.LeaseAgreement) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

func (m *mockLeaseRepository) SaveWithLock(ctx context.Context, lease *leasing.LeaseAgreement) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

func (m *mockLeaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockLeaseRepository) CountForOrganization(ctx context.Context, organizationID uuid.UUID, filter leasing.LeaseFilter) (int64, error) {
	args := m.Called(ctx, organizationID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLeaseRepository) CountActiveByUnit(ctx context.Context, organizationID, unitID uuid.UUID) (int64, error) {
	args := m.Called(ctx, organizationID, unitID)
	return args.Get(0).(int64), args.Error(1)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newStoredLease(t *testing.T, organizationID uuid.UUID) *leasing.LeaseAgreement {
	t.Helper()
	lease, err := leasing.NewLeaseAgreement(
		organizationID, uuid.New(), uuid.New(),
		date(2024, 1, 1), date(2024, 12, 31),
		valueobject.NewMoneyKESFromFloat(45000),
		"", "", leasing.FrequencyMonthly, time.Time{},
	)
	require.NoError(t, err)
	return lease
}

func globalType(t *testing.T, code string) *payment.PaymentType {
	t.Helper()
	pt, err := payment.NewPaymentType(code, code, nil)
	require.NoError(t, err)
	return pt
}

func TestPaymentService_RecordPayment(t *testing.T) {
	paymentRepo := new(mockPaymentRepository)
	typeRepo := new(mockPaymentTypeRepository)
	leaseRepo := new(mockLeaseRepository)
	svc := NewPaymentService(paymentRepo, typeRepo, leaseRepo)

	orgID := uuid.New()
	lease := newStoredLease(t, orgID)

	leaseRepo.On("FindByIDForOrganization", mock.Anything, orgID, lease.ID).Return(lease, nil)
	typeRepo.On("FindByCode", mock.Anything, "MPESA").Return(globalType(t, "MPESA"), nil)
	paymentRepo.On("Save", mock.Anything, mock.AnythingOfType("*payment.PaymentRecord")).Return(nil)

	resp, err := svc.RecordPayment(context.Background(), orgID, RecordPaymentRequest{
		LeaseID:        lease.ID,
		TypeCode:       "MPESA",
		Amount:         "45000",
		PaidAt:         date(2024, 1, 5),
		TransactionRef: "QC12345XYZ",
	})

	require.NoError(t, err)
	assert.Equal(t, lease.ID, resp.LeaseID)
	assert.Equal(t, lease.TenantID, resp.TenantID, "tenant comes from the lease, not the request")
	assert.Equal(t, "MPESA", resp.TypeCode)
	assert.Equal(t, "QC12345XYZ", resp.TransactionRef)
	assert.True(t, decimal.NewFromInt(45000).Equal(resp.Amount))
	paymentRepo.AssertExpectations(t)
}

func TestPaymentService_RecordPaymentLeaseNotFound(t *testing.T) {
	paymentRepo := new(mockPaymentRepository)
	typeRepo := new(mockPaymentTypeRepository)
	leaseRepo := new(mockLeaseRepository)
	svc := NewPaymentService(paymentRepo, typeRepo, leaseRepo)

	orgID := uuid.New()
	leaseID := uuid.New()
	leaseRepo.On("FindByIDForOrganization", mock.Anything, orgID, leaseID).Return(nil, nil)

	_, err := svc.RecordPayment(context.Background(), orgID, RecordPaymentRequest{
		LeaseID:  leaseID,
		TypeCode: "MPESA",
		Amount:   "45000",
		PaidAt:   date(2024, 1, 5),
	})

	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "LEASE_NOT_FOUND", derr.Code)
	paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPaymentService_RecordPaymentUnknownType(t *testing.T) {
	paymentRepo := new(mockPaymentRepository)
	typeRepo := new(mockPaymentTypeRepository)
	leaseRepo := new(mockLeaseRepository)
	svc := NewPaymentService(paymentRepo, typeRepo, leaseRepo)

	orgID := uuid.New()
	lease := newStoredLease(t, orgID)
	leaseRepo.On("FindByIDForOrganization", mock.Anything, orgID, lease.ID).Return(lease, nil)
	typeRepo.On("FindByCode", mock.Anything, "CHEQUE").Return(nil, nil)

	_, err := svc.RecordPayment(context.Background(), orgID, RecordPaymentRequest{
		LeaseID:  lease.ID,
		TypeCode: "CHEQUE",
		Amount:   "45000",
		PaidAt:   date(2024, 1, 5),
	})

	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_PAYMENT_TYPE", derr.Code)
}

func TestPaymentService_RecordPaymentTypeScopedToOtherOrg(t *testing.T) {
	paymentRepo := new(mockPaymentRepository)
	typeRepo := new(mockPaymentTypeRepository)
	leaseRepo := new(mockLeaseRepository)
	svc := NewPaymentService(paymentRepo, typeRepo, leaseRepo)

	orgID := uuid.New()
	otherOrg := uuid.New()
	lease := newStoredLease(t, orgID)
	scoped, err := payment.NewPaymentType("INTERNAL", "Internal Transfer", &otherOrg)
	require.NoError(t, err)

	leaseRepo.On("FindByIDForOrganization", mock.Anything, orgID, lease.ID).Return(lease, nil)
	typeRepo.On("FindByCode", mock.Anything, "INTERNAL").Return(scoped, nil)

	_, err = svc.RecordPayment(context.Background(), orgID, RecordPaymentRequest{
		LeaseID:  lease.ID,
		TypeCode: "INTERNAL",
		Amount:   "45000",
		PaidAt:   date(2024, 1, 5),
	})

	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "PAYMENT_TYPE_NOT_PERMITTED", derr.Code)
	paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestPaymentService_RecordPaymentNonPositiveAmount(t *testing.T) {
	paymentRepo := new(mockPaymentRepository)
	typeRepo := new(mockPaymentTypeRepository)
	leaseRepo := new(mockLeaseRepository)
	svc := NewPaymentService(paymentRepo, typeRepo, leaseRepo)

	orgID := uuid.New()
	lease := newStoredLease(t, orgID)
	leaseRepo.On("FindByIDForOrganization", mock.Anything, orgID, lease.ID).Return(lease, nil)
	typeRepo.On("FindByCode", mock.Anything, "MPESA").Return(globalType(t, "MPESA"), nil)

	_, err := svc.RecordPayment(context.Background(), orgID, RecordPaymentRequest{
		LeaseID:  lease.ID,
		TypeCode: "MPESA",
		Amount:   "0",
		PaidAt:   date(2024, 1, 5),
	})

	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_AMOUNT", derr.Code)
}

func TestPaymentService_ListLeasePayments(t *testing.T) {
	paymentRepo := new(mockPaymentRepository)
	svc := NewPaymentService(paymentRepo, new(mockPaymentTypeRepository), new(mockLeaseRepository))

	orgID := uuid.New()
	lease := newStoredLease(t, orgID)
	record, err := payment.NewPaymentRecord(
		orgID, lease.ID, lease.TenantID,
		"MPESA", valueobject.NewMoneyKESFromFloat(45000), date(2024, 1, 5),
	)
	require.NoError(t, err)

	paymentRepo.On("FindByLease", mock.Anything, orgID, lease.ID).
		Return([]payment.PaymentRecord{*record}, nil)

	responses, err := svc.ListLeasePayments(context.Background(), orgID, lease.ID)

	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, record.ID, responses[0].ID)
}
