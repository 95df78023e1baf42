package leasing

import (
	"time"

	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the lease aggregate
const (
	EventTypeLeaseCreated    = "lease.created"
	EventTypeLeaseExtended   = "lease.extended"
	EventTypeLeaseTerminated = "lease.terminated"
)

const aggregateTypeLease = "LeaseAgreement"

// LeaseCreatedEvent is raised when a lease agreement is created
type LeaseCreatedEvent struct {
	shared.BaseDomainEvent
	UnitID           string          `json:"unit_id"`
	TenantID         string          `json:"tenant_id"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentFrequency string          `json:"payment_frequency"`
}

// NewLeaseCreatedEvent creates a LeaseCreatedEvent
func NewLeaseCreatedEvent(lease *LeaseAgreement) *LeaseCreatedEvent {
	return &LeaseCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeLeaseCreated, aggregateTypeLease, lease.ID, lease.OrganizationID),
		UnitID:           lease.UnitID.String(),
		TenantID:         lease.TenantID.String(),
		StartDate:        lease.StartDate,
		EndDate:          lease.EndDate,
		Amount:           lease.Amount,
		PaymentFrequency: lease.PaymentFrequency.String(),
	}
}

// LeaseExtendedEvent is raised when a lease's end date is pushed forward
type LeaseExtendedEvent struct {
	shared.BaseDomainEvent
	PreviousEndDate time.Time       `json:"previous_end_date"`
	NewEndDate      time.Time       `json:"new_end_date"`
	Amount          decimal.Decimal `json:"amount"`
}

// NewLeaseExtendedEvent creates a LeaseExtendedEvent
func NewLeaseExtendedEvent(lease *LeaseAgreement, previousEnd time.Time) *LeaseExtendedEvent {
	return &LeaseExtendedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeaseExtended, aggregateTypeLease, lease.ID, lease.OrganizationID),
		PreviousEndDate: previousEnd,
		NewEndDate:      lease.EndDate,
		Amount:          lease.Amount,
	}
}

// LeaseTerminatedEvent is raised when a lease is ended early
type LeaseTerminatedEvent struct {
	shared.BaseDomainEvent
	EffectiveEndDate time.Time `json:"effective_end_date"`
	Reason           string    `json:"reason,omitempty"`
}

// NewLeaseTerminatedEvent creates a LeaseTerminatedEvent
func NewLeaseTerminatedEvent(lease *LeaseAgreement, reason string) *LeaseTerminatedEvent {
	return &LeaseTerminatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeLeaseTerminated, aggregateTypeLease, lease.ID, lease.OrganizationID),
		EffectiveEndDate: lease.EndDate,
		Reason:           reason,
	}
}
