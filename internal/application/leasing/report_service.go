package leasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propman/backend/internal/domain/leasing"
	"github.com/propman/backend/internal/domain/payment"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/telemetry"
)

// ReportService produces cross-lease views: monthly rent rolls and
// arrears aging. Both are read-only and derived entirely from lease
// terms plus confirmed payments.
type ReportService struct {
	leaseRepo   leasing.LeaseRepository
	paymentRepo payment.PaymentRepository
}

// NewReportService creates a new ReportService
func NewReportService(leaseRepo leasing.LeaseRepository, paymentRepo payment.PaymentRepository) *ReportService {
	return &ReportService{
		leaseRepo:   leaseRepo,
		paymentRepo: paymentRepo,
	}
}

// ParseMonth parses a "YYYY-MM" month key
func ParseMonth(yearMonth string) (int, time.Month, error) {
	parsed, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return 0, 0, shared.NewDomainError("INVALID_MONTH", fmt.Sprintf("Month must be formatted YYYY-MM, got %q", yearMonth))
	}
	return parsed.Year(), parsed.Month(), nil
}

// GetPropertyRentRoll reports each of a property's leases' due, paid and
// balance for one calendar month. Paid is cash-basis: the sum of payments
// dated inside the month, regardless of ledger allocation.
func (s *ReportService) GetPropertyRentRoll(ctx context.Context, organizationID, propertyID uuid.UUID, yearMonth string) (*RentRollResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "rent_roll")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrPropertyID, propertyID.String(),
		telemetry.SpanAttrMonth, yearMonth,
	)

	year, month, err := ParseMonth(yearMonth)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	leases, err := s.leaseRepo.FindByProperty(ctx, organizationID, propertyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load leases: %w", err)
	}

	entries := make([]leasing.RentRollEntry, 0, len(leases))
	for i := range leases {
		lease := &leases[i]
		records, err := s.paymentRepo.FindByLeaseInRange(ctx, organizationID, lease.ID, monthStart, nextMonth)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to load payments: %w", err)
		}
		entries = append(entries, leasing.RentRollEntry{
			Lease:    lease,
			Payments: ToPaymentEvents(records),
		})
	}

	rows := leasing.RentRoll(entries, year, month)

	resp := &RentRollResponse{
		PropertyID: propertyID,
		Month:      yearMonth,
		Rows:       make([]RentRollRowResponse, len(rows)),
		TotalDue:   decimal.Zero,
		TotalPaid:  decimal.Zero,
	}
	for i, row := range rows {
		resp.Rows[i] = RentRollRowResponse{
			LeaseID:  row.LeaseID,
			UnitID:   row.UnitID,
			TenantID: row.TenantID,
			Due:      row.Due,
			Paid:     row.Paid,
			Balance:  row.Balance,
		}
		resp.TotalDue = resp.TotalDue.Add(row.Due)
		resp.TotalPaid = resp.TotalPaid.Add(row.Paid)
	}

	telemetry.SetAttribute(span, "row_count", len(rows))

	return resp, nil
}

// GetArrearsAging ages a property's outstanding balances as of a
// reference date, bucketed by how long the oldest unpaid period has
// been due.
func (s *ReportService) GetArrearsAging(ctx context.Context, organizationID, propertyID uuid.UUID, asOf time.Time) (*ArrearsReportResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "arrears_aging")
	defer span.End()

	telemetry.SetAttribute(span, telemetry.SpanAttrPropertyID, propertyID.String())

	leases, err := s.leaseRepo.FindByProperty(ctx, organizationID, propertyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load leases: %w", err)
	}

	entries := make([]leasing.ArrearsEntry, 0, len(leases))
	for i := range leases {
		lease := &leases[i]
		records, err := s.paymentRepo.FindByLease(ctx, organizationID, lease.ID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to load payments: %w", err)
		}
		entries = append(entries, leasing.ArrearsEntry{
			Lease:    lease,
			Payments: ToPaymentEvents(records),
		})
	}

	report := leasing.AgeArrears(entries, asOf)

	resp := &ArrearsReportResponse{
		AsOf:    report.AsOf,
		Summary: make(map[string]decimal.Decimal, len(report.Summary)),
		Rows:    make([]ArrearsRowResponse, len(report.Rows)),
	}
	for bucket, total := range report.Summary {
		resp.Summary[string(bucket)] = total
	}
	for i, row := range report.Rows {
		resp.Rows[i] = ArrearsRowResponse{
			LeaseID:        row.LeaseID,
			TenantID:       row.TenantID,
			UnitID:         row.UnitID,
			Outstanding:    row.Outstanding,
			MaxDaysPastDue: row.MaxDaysPastDue,
			Bucket:         string(row.Bucket),
		}
	}

	telemetry.SetAttribute(span, "row_count", len(report.Rows))

	return resp, nil
}
