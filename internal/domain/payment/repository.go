package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentFilter defines filtering options for payment queries
type PaymentFilter struct {
	shared.Filter
	LeaseID   *uuid.UUID
	TenantID  *uuid.UUID
	TypeCode  *string
	PaidFrom  *time.Time
	PaidTo    *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentRecord, error)

	// FindByIDForOrganization finds a payment by ID scoped to an organization
	FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*PaymentRecord, error)

	// FindByLease lists a lease's payments ordered by paid_at ascending
	FindByLease(ctx context.Context, organizationID, leaseID uuid.UUID) ([]PaymentRecord, error)

	// FindByLeaseInRange lists a lease's payments with paid_at inside [from, to)
	FindByLeaseInRange(ctx context.Context, organizationID, leaseID uuid.UUID, from, to time.Time) ([]PaymentRecord, error)

	// FindAllForOrganization lists payments for an organization with filtering
	FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter PaymentFilter) ([]PaymentRecord, error)

	// Save creates or updates a payment record
	Save(ctx context.Context, record *PaymentRecord) error

	// SumByLease returns the total confirmed amount paid against a lease
	SumByLease(ctx context.Context, organizationID, leaseID uuid.UUID) (decimal.Decimal, error)

	// CountForOrganization counts payments for an organization
	CountForOrganization(ctx context.Context, organizationID uuid.UUID, filter PaymentFilter) (int64, error)
}

// PaymentTypeRepository defines the interface for payment type lookups
type PaymentTypeRepository interface {
	// FindByCode finds a payment type by its code
	FindByCode(ctx context.Context, code string) (*PaymentType, error)

	// FindAllForOrganization lists the types usable by an organization
	// (its own plus the global ones)
	FindAllForOrganization(ctx context.Context, organizationID uuid.UUID) ([]PaymentType, error)

	// Save creates or updates a payment type
	Save(ctx context.Context, paymentType *PaymentType) error
}
