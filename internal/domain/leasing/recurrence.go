package leasing

import (
	"fmt"
	"time"

	"github.com/propman/backend/internal/domain/shared"
)

// Day-of-month clamp applied when adding months lands in a shorter month.
// Clamping to 28 instead of the target month's length keeps the anchor day
// stable across every month of the year, at the cost of shifting leases
// anchored on the 29th-31st. Billing consumers depend on this behavior.
const monthClampDay = 28

// Advance returns the next due date one period after the given date.
func Advance(date time.Time, frequency PaymentFrequency) (time.Time, error) {
	date = DateOnly(date)
	switch frequency {
	case FrequencyWeekly:
		return date.AddDate(0, 0, 7), nil
	case FrequencyBiweekly:
		return date.AddDate(0, 0, 14), nil
	case FrequencyMonthly:
		return addMonthsClamped(date, 1), nil
	case FrequencyQuarterly:
		return addMonthsClamped(date, 3), nil
	case FrequencyYearly:
		return addMonthsClamped(date, 12), nil
	}
	return time.Time{}, shared.NewDomainError("INVALID_FREQUENCY", fmt.Sprintf("Unknown payment frequency %q", frequency))
}

// FirstDueOnOrAfter reconciles a recurrence anchor to the lease term:
// starting from the anchor it advances one period at a time until the
// result is on or after termStart. A mid-cycle anchor (a lease starting
// after its nominal first payment date) lands on the first in-term due date.
//
// An advance that fails to strictly increase the date aborts the loop;
// that is a safety fuse against a bad frequency, not a user-facing error.
func FirstDueOnOrAfter(termStart, anchor time.Time, frequency PaymentFrequency) (time.Time, error) {
	termStart = DateOnly(termStart)
	due := DateOnly(anchor)

	for due.Before(termStart) {
		next, err := Advance(due, frequency)
		if err != nil {
			return time.Time{}, err
		}
		if !next.After(due) {
			return time.Time{}, shared.NewDomainError("RECURRENCE_STALLED", "Recurrence did not advance the due date")
		}
		due = next
	}

	return due, nil
}

// addMonthsClamped adds months to a date. When the target month is too
// short for the original day-of-month, the day clamps to
// min(originalDay, monthClampDay).
func addMonthsClamped(date time.Time, months int) time.Time {
	year, month, day := date.Date()

	// Normalize via the first of the target month so a December rollover
	// never spills into the wrong month.
	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	targetDays := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month())

	if day > targetDays {
		day = min(day, monthClampDay)
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC)
}

// daysInMonth returns the number of days in the given month
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
