package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentRecord is a confirmed payment against a lease. The record is a
// fact by the time it reaches this context: provider webhooks, validation
// and settlement all happen upstream, and the billing engine only ever
// consumes the amount and timestamp.
type PaymentRecord struct {
	shared.OrgAggregateRoot
	LeaseID        uuid.UUID            `json:"lease_id"`
	TenantID       uuid.UUID            `json:"tenant_id"` // the renter
	TypeCode       string               `json:"type_code"`
	Amount         decimal.Decimal      `json:"amount"`
	Currency       valueobject.Currency `json:"currency"`
	PaidAt         time.Time            `json:"paid_at"`
	TransactionRef string               `json:"transaction_ref,omitempty"` // external rail reference
	Remark         string               `json:"remark,omitempty"`
}

// NewPaymentRecord creates a new payment record
func NewPaymentRecord(
	organizationID uuid.UUID,
	leaseID uuid.UUID,
	tenantID uuid.UUID,
	typeCode string,
	amount valueobject.Money,
	paidAt time.Time,
) (*PaymentRecord, error) {
	if organizationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORGANIZATION", "Organization ID cannot be empty")
	}
	if leaseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LEASE", "Lease ID cannot be empty")
	}
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if typeCode == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Payment type code cannot be empty")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if paidAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_PAID_AT", "Payment timestamp is required")
	}

	record := &PaymentRecord{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		LeaseID:          leaseID,
		TenantID:         tenantID,
		TypeCode:         typeCode,
		Amount:           amount.Amount(),
		Currency:         amount.Currency(),
		PaidAt:           paidAt,
	}

	record.AddDomainEvent(NewPaymentRecordedEvent(record))

	return record, nil
}

// WithTransactionRef links the payment to an external transaction record
func (p *PaymentRecord) WithTransactionRef(ref string) *PaymentRecord {
	p.TransactionRef = ref
	return p
}

// WithRemark attaches a free-form remark
func (p *PaymentRecord) WithRemark(remark string) *PaymentRecord {
	p.Remark = remark
	return p
}

// GetAmountMoney returns the amount as Money
func (p *PaymentRecord) GetAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(p.Amount, p.Currency)
	return m
}
