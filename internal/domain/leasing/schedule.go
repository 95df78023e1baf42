package leasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxSchedulePeriods caps how many billing periods a single schedule can
// emit. Leases with pathological frequency/term combinations are truncated
// silently rather than surfaced as errors; the cap is a runaway guard, not
// part of the billing contract.
const MaxSchedulePeriods = 1000

// PaymentContribution records one payment's application to a billing period
type PaymentContribution struct {
	PaymentID uuid.UUID       `json:"payment_id"`
	Applied   decimal.Decimal `json:"applied"`
	PaidAt    time.Time       `json:"paid_at"`
}

// BillingPeriod is one recurring due date on a lease schedule. Periods are
// derived on demand and never persisted. AmountPaid, Balance and
// Contributions are filled in by ledger allocation; a freshly built
// schedule has AmountPaid zero and Balance equal to AmountDue.
type BillingPeriod struct {
	DueDate       time.Time             `json:"due_date"`
	AmountDue     decimal.Decimal       `json:"amount_due"`
	AmountPaid    decimal.Decimal       `json:"amount_paid"`
	Balance       decimal.Decimal       `json:"balance"`
	Contributions []PaymentContribution `json:"contributions,omitempty"`
}

// IsSettled returns true once the period carries no outstanding balance
func (p *BillingPeriod) IsSettled() bool {
	return p.Balance.LessThanOrEqual(decimal.Zero)
}

// ScheduleBuilder expands lease terms into ordered billing periods.
// The zero value uses MaxSchedulePeriods as the emission cap.
type ScheduleBuilder struct {
	MaxPeriods int
}

// NewScheduleBuilder creates a builder with the given emission cap;
// a non-positive cap falls back to MaxSchedulePeriods.
func NewScheduleBuilder(maxPeriods int) *ScheduleBuilder {
	return &ScheduleBuilder{MaxPeriods: maxPeriods}
}

func (b *ScheduleBuilder) cap() int {
	if b == nil || b.MaxPeriods <= 0 {
		return MaxSchedulePeriods
	}
	return b.MaxPeriods
}

// BuildSchedule expands the lease term into its ordered due periods.
// The first due date is the anchor reconciled into the term window; periods
// are emitted while due <= EndDate (a due date equal to the end date is
// included). Each period carries the lease's flat per-period amount.
//
// The result is a pure function of the lease fields: calling it twice
// yields identical output. A lease whose first in-term due date falls past
// the end date yields an empty schedule.
func (b *ScheduleBuilder) BuildSchedule(lease *LeaseAgreement) []BillingPeriod {
	due, err := FirstDueOnOrAfter(lease.StartDate, lease.FirstPaymentDate, lease.PaymentFrequency)
	if err != nil {
		return nil
	}

	end := DateOnly(lease.EndDate)
	periods := make([]BillingPeriod, 0)

	for !due.After(end) {
		periods = append(periods, BillingPeriod{
			DueDate:    due,
			AmountDue:  lease.Amount,
			AmountPaid: decimal.Zero,
			Balance:    lease.Amount,
		})
		if len(periods) >= b.cap() {
			break
		}

		next, err := Advance(due, lease.PaymentFrequency)
		if err != nil || !next.After(due) {
			break
		}
		due = next
	}

	return periods
}

// NextDueDate walks the schedule forward from the first due date and
// returns the first due date on or after asOf, or nil when that would
// fall past the lease end date.
func (b *ScheduleBuilder) NextDueDate(lease *LeaseAgreement, asOf time.Time) *time.Time {
	asOf = DateOnly(asOf)
	for _, period := range b.BuildSchedule(lease) {
		if !period.DueDate.Before(asOf) {
			due := period.DueDate
			return &due
		}
	}
	return nil
}

// BuildSchedule expands a lease using the default emission cap
func BuildSchedule(lease *LeaseAgreement) []BillingPeriod {
	return (*ScheduleBuilder)(nil).BuildSchedule(lease)
}

// NextDueDate resolves the next due date using the default emission cap
func NextDueDate(lease *LeaseAgreement, asOf time.Time) *time.Time {
	return (*ScheduleBuilder)(nil).NextDueDate(lease, asOf)
}
