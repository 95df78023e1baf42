package leasing

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentEvent is the ledger's view of a confirmed payment: an amount and
// when it was paid. Validation, provider webhooks and currency concerns
// all live upstream; by the time a payment reaches the ledger it is a fact.
type PaymentEvent struct {
	PaymentID uuid.UUID
	Amount    decimal.Decimal
	PaidAt    time.Time
}

// LedgerTotals aggregates a lease ledger
type LedgerTotals struct {
	TotalDue    decimal.Decimal `json:"total_due"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// LeaseLedger is a schedule enriched with FIFO payment allocation
type LeaseLedger struct {
	Periods []BillingPeriod `json:"periods"`
	Totals  LedgerTotals    `json:"totals"`
}

// Allocate reconciles payments against a billing schedule using FIFO
// invoice matching: payments are sorted by PaidAt ascending and each one
// fills the oldest period that still carries a balance, spilling any
// remainder into the next period. Which period the payer "intended" to pay
// is irrelevant.
//
// A payment amount in excess of the total still due is dropped, not
// carried as a credit. Payments dated before the first due date are
// allocated like any other.
//
// The input schedule is not mutated; the returned ledger owns its periods.
func Allocate(schedule []BillingPeriod, payments []PaymentEvent) *LeaseLedger {
	periods := make([]BillingPeriod, len(schedule))
	for i, p := range schedule {
		periods[i] = BillingPeriod{
			DueDate:    p.DueDate,
			AmountDue:  p.AmountDue,
			AmountPaid: decimal.Zero,
			Balance:    p.AmountDue,
		}
	}

	sorted := make([]PaymentEvent, len(payments))
	copy(sorted, payments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PaidAt.Before(sorted[j].PaidAt)
	})

	cursor := 0
	for _, payment := range sorted {
		remaining := payment.Amount
		for cursor < len(periods) && remaining.IsPositive() {
			period := &periods[cursor]
			if !period.Balance.IsPositive() {
				cursor++
				continue
			}

			applied := decimal.Min(remaining, period.Balance)
			period.AmountPaid = period.AmountPaid.Add(applied)
			period.Balance = period.Balance.Sub(applied)
			period.Contributions = append(period.Contributions, PaymentContribution{
				PaymentID: payment.PaymentID,
				Applied:   applied,
				PaidAt:    payment.PaidAt,
			})
			remaining = remaining.Sub(applied)
		}
	}

	totalDue := decimal.Zero
	totalPaid := decimal.Zero
	for _, p := range periods {
		totalDue = totalDue.Add(p.AmountDue)
		totalPaid = totalPaid.Add(p.AmountPaid)
	}

	return &LeaseLedger{
		Periods: periods,
		Totals: LedgerTotals{
			TotalDue:    totalDue,
			TotalPaid:   totalPaid,
			Outstanding: totalDue.Sub(totalPaid),
		},
	}
}
