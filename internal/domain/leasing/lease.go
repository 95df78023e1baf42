package leasing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentFrequency represents how often rent falls due on a lease
type PaymentFrequency string

const (
	FrequencyWeekly    PaymentFrequency = "WEEKLY"
	FrequencyBiweekly  PaymentFrequency = "BIWEEKLY"
	FrequencyMonthly   PaymentFrequency = "MONTHLY"
	FrequencyQuarterly PaymentFrequency = "QUARTERLY"
	FrequencyYearly    PaymentFrequency = "YEARLY"
)

// IsValid checks if the frequency is a valid PaymentFrequency
func (f PaymentFrequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// String returns the string representation of PaymentFrequency
func (f PaymentFrequency) String() string {
	return string(f)
}

// PeriodsPerYear returns the approximate number of billing periods per year
func (f PaymentFrequency) PeriodsPerYear() int {
	switch f {
	case FrequencyWeekly:
		return 52
	case FrequencyBiweekly:
		return 26
	case FrequencyMonthly:
		return 12
	case FrequencyQuarterly:
		return 4
	case FrequencyYearly:
		return 1
	}
	return 0
}

// LeaseStatus represents the lifecycle state of a lease agreement
type LeaseStatus string

const (
	LeaseStatusActive     LeaseStatus = "ACTIVE"
	LeaseStatusTerminated LeaseStatus = "TERMINATED"
	LeaseStatusExpired    LeaseStatus = "EXPIRED"
)

// IsValid checks if the status is a valid LeaseStatus
func (s LeaseStatus) IsValid() bool {
	switch s {
	case LeaseStatusActive, LeaseStatusTerminated, LeaseStatusExpired:
		return true
	}
	return false
}

// String returns the string representation of LeaseStatus
func (s LeaseStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the lease can no longer be mutated
func (s LeaseStatus) IsTerminal() bool {
	return s == LeaseStatusTerminated || s == LeaseStatusExpired
}

// LeaseType represents the kind of tenancy
type LeaseType string

const (
	LeaseTypeFixedTerm LeaseType = "FIXED_TERM"
	LeaseTypePeriodic  LeaseType = "PERIODIC"
)

// IsValid checks if the lease type is valid
func (t LeaseType) IsValid() bool {
	return t == LeaseTypeFixedTerm || t == LeaseTypePeriodic
}

// ChargeType represents what the recurring amount pays for
type ChargeType string

const (
	ChargeTypeRent    ChargeType = "RENT"
	ChargeTypeService ChargeType = "SERVICE"
)

// IsValid checks if the charge type is valid
func (t ChargeType) IsValid() bool {
	return t == ChargeTypeRent || t == ChargeTypeService
}

// Defaults applied when a lease is created without explicit charging fields
const (
	DefaultLeaseType  = LeaseTypeFixedTerm
	DefaultChargeType = ChargeTypeRent
	DefaultFrequency  = FrequencyMonthly
)

// LeaseAgreement is the aggregate root for a tenancy over a unit.
// It owns the lease term and charging fields that the billing engine
// derives schedules from; payments against it live in the payment context.
type LeaseAgreement struct {
	shared.OrgAggregateRoot
	UnitID           uuid.UUID            `json:"unit_id"`
	TenantID         uuid.UUID            `json:"tenant_id"` // the renter
	LandlordID       *uuid.UUID           `json:"landlord_id,omitempty"`
	StartDate        time.Time            `json:"start_date"`
	EndDate          time.Time            `json:"end_date"`
	Amount           decimal.Decimal      `json:"amount"` // flat amount per billing period
	Currency         valueobject.Currency `json:"currency"`
	LeaseType        LeaseType            `json:"lease_type"`
	ChargeType       ChargeType           `json:"charge_type"`
	PaymentFrequency PaymentFrequency     `json:"payment_frequency"`
	FirstPaymentDate time.Time            `json:"first_payment_date"` // recurrence anchor
	Status           LeaseStatus          `json:"status"`
	Terms            Terms                `json:"terms"`
}

// NewLeaseAgreement creates a new lease agreement.
// FirstPaymentDate defaults to StartDate when zero; charging enums default
// per DefaultLeaseType/DefaultChargeType/DefaultFrequency when empty.
func NewLeaseAgreement(
	organizationID uuid.UUID,
	unitID uuid.UUID,
	tenantID uuid.UUID,
	startDate time.Time,
	endDate time.Time,
	amount valueobject.Money,
	leaseType LeaseType,
	chargeType ChargeType,
	frequency PaymentFrequency,
	firstPaymentDate time.Time,
) (*LeaseAgreement, error) {
	if organizationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORGANIZATION", "Organization ID cannot be empty")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit ID cannot be empty")
	}
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if startDate.IsZero() || endDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_TERM", "Lease start and end dates are required")
	}
	startDate = DateOnly(startDate)
	endDate = DateOnly(endDate)
	if !endDate.After(startDate) {
		return nil, shared.NewDomainError("INVALID_TERM", "Lease end date must be after start date")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Lease amount must be positive")
	}

	if leaseType == "" {
		leaseType = DefaultLeaseType
	}
	if chargeType == "" {
		chargeType = DefaultChargeType
	}
	if frequency == "" {
		frequency = DefaultFrequency
	}
	if !leaseType.IsValid() {
		return nil, shared.NewDomainError("INVALID_LEASE_TYPE", fmt.Sprintf("Unknown lease type %q", leaseType))
	}
	if !chargeType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHARGE_TYPE", fmt.Sprintf("Unknown charge type %q", chargeType))
	}
	if !frequency.IsValid() {
		return nil, shared.NewDomainError("INVALID_FREQUENCY", fmt.Sprintf("Unknown payment frequency %q", frequency))
	}

	if firstPaymentDate.IsZero() {
		firstPaymentDate = startDate
	} else {
		firstPaymentDate = DateOnly(firstPaymentDate)
	}

	lease := &LeaseAgreement{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		UnitID:           unitID,
		TenantID:         tenantID,
		StartDate:        startDate,
		EndDate:          endDate,
		Amount:           amount.Amount(),
		Currency:         amount.Currency(),
		LeaseType:        leaseType,
		ChargeType:       chargeType,
		PaymentFrequency: frequency,
		FirstPaymentDate: firstPaymentDate,
		Status:           LeaseStatusActive,
		Terms:            NewTerms(),
	}

	lease.AddDomainEvent(NewLeaseCreatedEvent(lease))

	return lease, nil
}

// Extend pushes the lease end date forward, optionally changing the
// per-period amount going forward. The new end date must be strictly
// after the current one; anything else is an input error, never a no-op.
func (l *LeaseAgreement) Extend(newEndDate time.Time, newAmount *valueobject.Money) error {
	if l.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot extend lease in %s status", l.Status))
	}
	newEndDate = DateOnly(newEndDate)
	if !newEndDate.After(l.EndDate) {
		return shared.NewDomainError("INVALID_EXTENSION", "New end date must be after the current end date")
	}
	if newAmount != nil {
		if newAmount.Amount().LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_AMOUNT", "Lease amount must be positive")
		}
	}

	previousEnd := l.EndDate
	l.EndDate = newEndDate
	if newAmount != nil {
		l.Amount = newAmount.Amount()
		l.Currency = newAmount.Currency()
	}
	l.Touch()
	l.IncrementVersion()

	l.AddDomainEvent(NewLeaseExtendedEvent(l, previousEnd))

	return nil
}

// Terminate ends the lease early. The effective end becomes
// min(currentEndDate, terminationDate); periods already due are not
// reversed. Termination metadata is recorded in the terms bag.
func (l *LeaseAgreement) Terminate(terminationDate time.Time, reason string) error {
	if l.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot terminate lease in %s status", l.Status))
	}
	if terminationDate.IsZero() {
		return shared.NewDomainError("INVALID_TERMINATION", "Termination date is required")
	}
	terminationDate = DateOnly(terminationDate)
	if terminationDate.Before(l.StartDate) {
		return shared.NewDomainError("INVALID_TERMINATION", "Termination date cannot be before the lease start date")
	}

	if terminationDate.Before(l.EndDate) {
		l.EndDate = terminationDate
	}
	l.Status = LeaseStatusTerminated
	l.Terms.SetTermination(TerminationRecord{
		TerminatedOn: terminationDate,
		Reason:       reason,
	})
	l.Touch()
	l.IncrementVersion()

	l.AddDomainEvent(NewLeaseTerminatedEvent(l, reason))

	return nil
}

// SetLandlord attaches the optional landlord reference
func (l *LeaseAgreement) SetLandlord(landlordID uuid.UUID) {
	l.LandlordID = &landlordID
}

// GetAmountMoney returns the per-period amount as Money
func (l *LeaseAgreement) GetAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(l.Amount, l.Currency)
	return m
}

// IsActive returns true if the lease is active
func (l *LeaseAgreement) IsActive() bool {
	return l.Status == LeaseStatusActive
}

// TermDays returns the length of the lease term in whole days
func (l *LeaseAgreement) TermDays() int {
	return int(l.EndDate.Sub(l.StartDate).Hours() / 24)
}

// DateOnly truncates a timestamp to a calendar date in UTC.
// All lease term and due-date arithmetic works on calendar dates.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
