package leasing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLease builds a monthly lease over [start, end] at the given rent
func newTestLease(t *testing.T, start, end time.Time, amount float64, frequency PaymentFrequency) *LeaseAgreement {
	t.Helper()
	lease, err := NewLeaseAgreement(
		uuid.New(),
		uuid.New(),
		uuid.New(),
		start,
		end,
		valueobject.NewMoneyKESFromFloat(amount),
		"",
		"",
		frequency,
		time.Time{},
	)
	require.NoError(t, err)
	return lease
}

func dueDates(periods []BillingPeriod) []time.Time {
	dates := make([]time.Time, len(periods))
	for i, p := range periods {
		dates[i] = p.DueDate
	}
	return dates
}

func TestBuildSchedule_MonthlyTerm(t *testing.T) {
	// start=2024-01-01, end=2024-04-01, amount=1000, monthly, anchor defaults
	// to start. 2024-04-01 falls exactly on the end date and the boundary is
	// inclusive, so it is part of the schedule.
	lease := newTestLease(t, date(2024, 1, 1), date(2024, 4, 1), 1000, FrequencyMonthly)

	periods := BuildSchedule(lease)

	require.Len(t, periods, 4)
	assert.Equal(t, []time.Time{
		date(2024, 1, 1),
		date(2024, 2, 1),
		date(2024, 3, 1),
		date(2024, 4, 1),
	}, dueDates(periods))
	for _, p := range periods {
		assert.True(t, decimal.NewFromInt(1000).Equal(p.AmountDue))
		assert.True(t, p.Balance.Equal(p.AmountDue))
		assert.True(t, p.AmountPaid.IsZero())
	}
}

func TestBuildSchedule_EndBeforeLastPeriod(t *testing.T) {
	// End 2024-03-31 excludes the 2024-04-01 due date.
	lease := newTestLease(t, date(2024, 1, 1), date(2024, 3, 31), 1000, FrequencyMonthly)

	periods := BuildSchedule(lease)

	assert.Equal(t, []time.Time{
		date(2024, 1, 1),
		date(2024, 2, 1),
		date(2024, 3, 1),
	}, dueDates(periods))
}

func TestBuildSchedule_StrictlyIncreasingWithinTerm(t *testing.T) {
	frequencies := []PaymentFrequency{
		FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly,
	}

	for _, freq := range frequencies {
		t.Run(freq.String(), func(t *testing.T) {
			lease := newTestLease(t, date(2023, 1, 31), date(2026, 1, 31), 500, freq)
			periods := BuildSchedule(lease)
			require.NotEmpty(t, periods)

			first, err := FirstDueOnOrAfter(lease.StartDate, lease.FirstPaymentDate, freq)
			require.NoError(t, err)
			assert.True(t, first.Equal(periods[0].DueDate))

			for i := 1; i < len(periods); i++ {
				assert.True(t, periods[i].DueDate.After(periods[i-1].DueDate),
					"due dates must be strictly increasing")
			}
			last := periods[len(periods)-1]
			assert.False(t, last.DueDate.After(lease.EndDate))
		})
	}
}

func TestBuildSchedule_AnchorAfterEndYieldsEmpty(t *testing.T) {
	lease := newTestLease(t, date(2024, 1, 1), date(2024, 1, 20), 1000, FrequencyMonthly)
	lease.FirstPaymentDate = date(2024, 2, 1)

	assert.Empty(t, BuildSchedule(lease))
}

func TestBuildSchedule_Idempotent(t *testing.T) {
	lease := newTestLease(t, date(2024, 1, 1), date(2025, 1, 1), 1000, FrequencyMonthly)

	first := BuildSchedule(lease)
	second := BuildSchedule(lease)

	assert.Equal(t, first, second)
}

func TestBuildSchedule_CapTruncatesSilently(t *testing.T) {
	// ~20 years of weekly periods exceeds a cap of 50.
	lease := newTestLease(t, date(2020, 1, 1), date(2040, 1, 1), 100, FrequencyWeekly)

	builder := NewScheduleBuilder(50)
	periods := builder.BuildSchedule(lease)

	assert.Len(t, periods, 50)
}

func TestBuildSchedule_DefaultCap(t *testing.T) {
	// A 30-year weekly lease would emit >1500 periods without the guard.
	lease := newTestLease(t, date(2020, 1, 1), date(2050, 1, 1), 100, FrequencyWeekly)

	periods := BuildSchedule(lease)

	assert.Len(t, periods, MaxSchedulePeriods)
}

func TestNextDueDate(t *testing.T) {
	lease := newTestLease(t, date(2024, 1, 1), date(2024, 4, 1), 1000, FrequencyMonthly)

	tests := []struct {
		name string
		asOf time.Time
		want *time.Time
	}{
		{"before first due", date(2023, 12, 1), ptrDate(2024, 1, 1)},
		{"on a due date", date(2024, 2, 1), ptrDate(2024, 2, 1)},
		{"between due dates", date(2024, 2, 15), ptrDate(2024, 3, 1)},
		{"on the final due date", date(2024, 4, 1), ptrDate(2024, 4, 1)},
		{"past the end", date(2024, 4, 2), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDueDate(lease, tt.asOf)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "want %s, got %s", tt.want, got)
		})
	}
}

func ptrDate(y int, m time.Month, d int) *time.Time {
	dt := date(y, m, d)
	return &dt
}
