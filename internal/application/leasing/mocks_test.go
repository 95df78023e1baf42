package leasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/propman/backend/internal/domain/leasing"
	"github.com/propman/backend/internal/domain/payment"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/domain/shared"
)

// Mock implementations

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

type mockUnitRepository struct {
	mock.Mock
}

func (m *mockUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Unit), args.Error(1)
}

func (m *mockUnitRepository) FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*property.Unit, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Unit), args.Error(1)
}

func (m *mockUnitRepository) FindByProperty(ctx context.Context, organizationID, propertyID uuid.UUID) ([]property.Unit, error) {
	args := m.Called(ctx, organizationID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Unit), args.Error(1)
}

func (m *mockUnitRepository) Save(ctx context.Context, unit *property.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *mockUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockPropertyRepository struct {
	mock.Mock
}

func (m *mockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *mockPropertyRepository) FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*property.Property, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *mockPropertyRepository) FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]property.Property, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Property), args.Error(1)
}

func (m *mockPropertyRepository) Save(ctx context.Context, prop *property.Property) error {
	args := m.Called(ctx, prop)
	return args.Error(0)
}

func (m *mockPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
