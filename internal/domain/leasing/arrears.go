package leasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AgeBucket bands an overdue balance by how long its oldest unpaid period
// has been due.
type AgeBucket string

const (
	Bucket0To30  AgeBucket = "0-30"
	Bucket31To60 AgeBucket = "31-60"
	Bucket61To90 AgeBucket = "61-90"
	BucketOver90 AgeBucket = "90+"
)

// BucketForDays returns the age bucket for a days-past-due count
func BucketForDays(days int) AgeBucket {
	switch {
	case days <= 30:
		return Bucket0To30
	case days <= 60:
		return Bucket31To60
	case days <= 90:
		return Bucket61To90
	default:
		return BucketOver90
	}
}

// ArrearsRow is one lease's outstanding position as of the reference date
type ArrearsRow struct {
	LeaseID        uuid.UUID       `json:"lease_id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	UnitID         uuid.UUID       `json:"unit_id"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	MaxDaysPastDue int             `json:"max_days_past_due"`
	Bucket         AgeBucket       `json:"bucket"`
}

// ArrearsReport is the aging view across a set of leases
type ArrearsReport struct {
	AsOf    time.Time                     `json:"as_of"`
	Summary map[AgeBucket]decimal.Decimal `json:"summary"`
	Rows    []ArrearsRow                  `json:"rows"`
}

// ArrearsEntry pairs a lease with its payment events for aging
type ArrearsEntry struct {
	Lease    *LeaseAgreement
	Payments []PaymentEvent
}

// AgeArrears computes outstanding balances and age buckets across leases
// as of a reference date.
//
// Per lease it compares aggregate due (periods with dueDate <= asOf)
// against aggregate paid (payments with paidAt <= asOf); leases with zero
// outstanding are excluded entirely. The bucket comes from the oldest
// period the paid total cannot explain: walking periods oldest-first and
// subtracting each AmountDue from the outstanding balance, the first
// period left unexplained dates the arrears.
//
// This is an aggregate approximation, deliberately independent of the FIFO
// ledger: a tenant who paid against specific later periods can land in a
// different bucket than per-period allocation would suggest. The two views
// are not reconciled.
func AgeArrears(entries []ArrearsEntry, asOf time.Time) *ArrearsReport {
	asOf = DateOnly(asOf)
	report := &ArrearsReport{
		AsOf:    asOf,
		Summary: make(map[AgeBucket]decimal.Decimal),
		Rows:    make([]ArrearsRow, 0),
	}

	for _, entry := range entries {
		lease := entry.Lease
		if lease == nil {
			continue
		}

		duePeriods := make([]BillingPeriod, 0)
		dueUntil := decimal.Zero
		for _, period := range BuildSchedule(lease) {
			if period.DueDate.After(asOf) {
				break
			}
			duePeriods = append(duePeriods, period)
			dueUntil = dueUntil.Add(period.AmountDue)
		}

		paidUntil := decimal.Zero
		for _, payment := range entry.Payments {
			if !DateOnly(payment.PaidAt).After(asOf) {
				paidUntil = paidUntil.Add(payment.Amount)
			}
		}

		outstanding := dueUntil.Sub(paidUntil)
		if !outstanding.IsPositive() {
			continue
		}

		// Oldest period the paid total cannot cover dates the arrears.
		remaining := outstanding
		oldestUnpaid := duePeriods[len(duePeriods)-1].DueDate
		for i := len(duePeriods) - 1; i >= 0; i-- {
			oldestUnpaid = duePeriods[i].DueDate
			remaining = remaining.Sub(duePeriods[i].AmountDue)
			if !remaining.IsPositive() {
				break
			}
		}

		days := int(asOf.Sub(oldestUnpaid).Hours() / 24)
		if days < 0 {
			days = 0
		}
		bucket := BucketForDays(days)

		report.Rows = append(report.Rows, ArrearsRow{
			LeaseID:        lease.ID,
			TenantID:       lease.TenantID,
			UnitID:         lease.UnitID,
			Outstanding:    outstanding,
			MaxDaysPastDue: days,
			Bucket:         bucket,
		})

		total, ok := report.Summary[bucket]
		if !ok {
			total = decimal.Zero
		}
		report.Summary[bucket] = total.Add(outstanding)
	}

	return report
}
