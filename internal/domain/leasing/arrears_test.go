package leasing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketForDays(t *testing.T) {
	tests := []struct {
		days int
		want AgeBucket
	}{
		{0, Bucket0To30},
		{30, Bucket0To30},
		{31, Bucket31To60},
		{60, Bucket31To60},
		{61, Bucket61To90},
		{90, Bucket61To90},
		{91, BucketOver90},
		{400, BucketOver90},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BucketForDays(tt.days), "days=%d", tt.days)
	}
}

func TestAgeArrears_PartiallyPaidLease(t *testing.T) {
	// Jan+Feb+Mar due by Mar 15 = 3000; 1100 paid. The 1100 fully covers
	// January and part of February, so February dates the arrears:
	// Mar 15 - Feb 1 = 43 days past due, bucket 31-60.
	lease := newTestLease(t, date(2024, 1, 1), date(2024, 12, 31), 1000, FrequencyMonthly)
	entries := []ArrearsEntry{{
		Lease: lease,
		Payments: []PaymentEvent{
			paymentAt(400, date(2024, 1, 5)),
			paymentAt(700, date(2024, 2, 10)),
		},
	}}

	report := AgeArrears(entries, date(2024, 3, 15))

	require.Len(t, report.Rows, 1)
	row := report.Rows[0]
	assert.Equal(t, lease.ID, row.LeaseID)
	assert.True(t, decimal.NewFromInt(1900).Equal(row.Outstanding), "outstanding = %s", row.Outstanding)
	assert.Equal(t, 43, row.MaxDaysPastDue)
	assert.Equal(t, Bucket31To60, row.Bucket)

	require.Contains(t, report.Summary, Bucket31To60)
	assert.True(t, decimal.NewFromInt(1900).Equal(report.Summary[Bucket31To60]))
}

func TestAgeArrears_FullyUnpaidLeaseAgesFromFirstPeriod(t *testing.T) {
	lease := newTestLease(t, date(2024, 1, 1), date(2024, 12, 31), 1000, FrequencyMonthly)
	entries := []ArrearsEntry{{Lease: lease}}

	report := AgeArrears(entries, date(2024, 4, 15))

	require.Len(t, report.Rows, 1)
	row := report.Rows[0]
	// Jan through Apr due, nothing paid: January dates the arrears.
	assert.True(t, decimal.NewFromInt(4000).Equal(row.Outstanding))
	assert.Equal(t, 105, row.MaxDaysPastDue) // Jan 1 -> Apr 15
	assert.Equal(t, BucketOver90, row.Bucket)
}

func TestAgeArrears_SettledLeaseExcluded(t *testing.T) {
	lease := newTestLease(t, date(2024, 1, 1), date(2024, 12, 31), 1000, FrequencyMonthly)
	entries := []ArrearsEntry{{
		Lease:    lease,
		Payments: []PaymentEvent{paymentAt(3000, date(2024, 1, 2))},
	}}

	report := AgeArrears(entries, date(2024, 3, 15))

	assert.Empty(t, report.Rows)
	assert.Empty(t, report.Summary)
}

func TestAgeArrears_PaymentsAfterAsOfIgnored(t *testing.T) {
	lease := newTestLease(t, date(2024, 1, 1), date(2024, 12, 31), 1000, FrequencyMonthly)
	entries := []ArrearsEntry{{
		Lease:    lease,
		Payments: []PaymentEvent{paymentAt(2000, date(2024, 3, 20))},
	}}

	report := AgeArrears(entries, date(2024, 3, 15))

	require.Len(t, report.Rows, 1)
	assert.True(t, decimal.NewFromInt(3000).Equal(report.Rows[0].Outstanding))
}

func TestAgeArrears_MostlyPaidAgesFromNewestPeriod(t *testing.T) {
	// 2500 of 3000 paid by Mar 15: only March remains unexplained,
	// 14 days past due.
	lease := newTestLease(t, date(2024, 1, 1), date(2024, 12, 31), 1000, FrequencyMonthly)
	entries := []ArrearsEntry{{
		Lease:    lease,
		Payments: []PaymentEvent{paymentAt(2500, date(2024, 2, 1))},
	}}

	report := AgeArrears(entries, date(2024, 3, 15))

	require.Len(t, report.Rows, 1)
	row := report.Rows[0]
	assert.True(t, decimal.NewFromInt(500).Equal(row.Outstanding))
	assert.Equal(t, 14, row.MaxDaysPastDue)
	assert.Equal(t, Bucket0To30, row.Bucket)
}

func TestAgeArrears_MixedLeasesAggregateByBucket(t *testing.T) {
	fresh := newTestLease(t, date(2024, 3, 1), date(2024, 12, 31), 800, FrequencyMonthly)
	stale := newTestLease(t, date(2023, 6, 1), date(2024, 12, 31), 1000, FrequencyMonthly)

	report := AgeArrears([]ArrearsEntry{
		{Lease: fresh},
		{Lease: stale},
	}, date(2024, 3, 15))

	require.Len(t, report.Rows, 2)
	require.Contains(t, report.Summary, Bucket0To30)
	require.Contains(t, report.Summary, BucketOver90)
	// fresh: only the Mar 1 period is due, 14 days old.
	assert.True(t, decimal.NewFromInt(800).Equal(report.Summary[Bucket0To30]))
	// stale: ten unpaid periods since Jun 2023, aged from the oldest.
	assert.True(t, decimal.NewFromInt(10000).Equal(report.Summary[BucketOver90]))
}
