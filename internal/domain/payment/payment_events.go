package payment

import (
	"time"

	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the payment aggregate
const (
	EventTypePaymentRecorded = "payment.recorded"
)

const aggregateTypePayment = "PaymentRecord"

// PaymentRecordedEvent is raised when a confirmed payment is recorded
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	LeaseID  string          `json:"lease_id"`
	TenantID string          `json:"tenant_id"`
	TypeCode string          `json:"type_code"`
	Amount   decimal.Decimal `json:"amount"`
	PaidAt   time.Time       `json:"paid_at"`
}

// NewPaymentRecordedEvent creates a PaymentRecordedEvent
func NewPaymentRecordedEvent(record *PaymentRecord) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRecorded, aggregateTypePayment, record.ID, record.OrganizationID),
		LeaseID:         record.LeaseID.String(),
		TenantID:        record.TenantID.String(),
		TypeCode:        record.TypeCode,
		Amount:          record.Amount,
		PaidAt:          record.PaidAt,
	}
}
