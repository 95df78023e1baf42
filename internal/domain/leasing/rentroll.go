package leasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RentRollRow is one lease's due/paid/balance position for a single
// calendar month.
type RentRollRow struct {
	LeaseID  uuid.UUID       `json:"lease_id"`
	UnitID   uuid.UUID       `json:"unit_id"`
	TenantID uuid.UUID       `json:"tenant_id"`
	Due      decimal.Decimal `json:"due"`
	Paid     decimal.Decimal `json:"paid"`
	Balance  decimal.Decimal `json:"balance"`
}

// RentRollEntry pairs a lease with its payment events for reporting
type RentRollEntry struct {
	Lease    *LeaseAgreement
	Payments []PaymentEvent
}

// RentRoll reports due/paid/balance per lease for one calendar month.
//
// Due sums the schedule periods whose due date falls inside the month;
// leases with no in-month periods are skipped. Paid is cash-basis: every
// payment dated inside the month counts, regardless of which period the
// ledger allocated it to. The two views can therefore disagree on a
// lease's in-month balance when payments span period boundaries; that is
// intentional and not reconciled.
func RentRoll(entries []RentRollEntry, year int, month time.Month) []RentRollRow {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	rows := make([]RentRollRow, 0)
	for _, entry := range entries {
		lease := entry.Lease
		if lease == nil {
			continue
		}

		due := decimal.Zero
		inMonth := false
		for _, period := range BuildSchedule(lease) {
			if period.DueDate.Before(monthStart) {
				continue
			}
			if !period.DueDate.Before(nextMonth) {
				break
			}
			due = due.Add(period.AmountDue)
			inMonth = true
		}
		if !inMonth {
			continue
		}

		paid := decimal.Zero
		for _, payment := range entry.Payments {
			paidAt := DateOnly(payment.PaidAt)
			if !paidAt.Before(monthStart) && paidAt.Before(nextMonth) {
				paid = paid.Add(payment.Amount)
			}
		}

		balance := due.Sub(paid)
		if balance.IsNegative() {
			balance = decimal.Zero
		}

		rows = append(rows, RentRollRow{
			LeaseID:  lease.ID,
			UnitID:   lease.UnitID,
			TenantID: lease.TenantID,
			Due:      due,
			Paid:     paid,
			Balance:  balance,
		})
	}

	return rows
}
