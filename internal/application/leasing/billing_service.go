package leasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/propman/backend/internal/domain/leasing"
	"github.com/propman/backend/internal/domain/payment"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/telemetry"
)

// BillingService derives billing schedules and payment ledgers from lease
// terms. Schedules are computed on demand and never persisted; the lease
// row and its payment records are the only stored state.
type BillingService struct {
	leaseRepo   leasing.LeaseRepository
	paymentRepo payment.PaymentRepository
	builder     *leasing.ScheduleBuilder
}

// NewBillingService creates a new BillingService. maxPeriods caps schedule
// expansion; a non-positive value falls back to the domain default.
func NewBillingService(
	leaseRepo leasing.LeaseRepository,
	paymentRepo payment.PaymentRepository,
	maxPeriods int,
) *BillingService {
	return &BillingService{
		leaseRepo:   leaseRepo,
		paymentRepo: paymentRepo,
		builder:     leasing.NewScheduleBuilder(maxPeriods),
	}
}

// GetBillingSchedule expands a lease's term into its due periods
func (s *BillingService) GetBillingSchedule(ctx context.Context, organizationID, leaseID uuid.UUID) (*ScheduleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "billing", "get_schedule")
	defer span.End()

	telemetry.SetAttribute(span, telemetry.SpanAttrLeaseID, leaseID.String())

	lease, err := s.findLease(ctx, organizationID, leaseID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	periods := s.builder.BuildSchedule(lease)
	telemetry.SetAttribute(span, telemetry.SpanAttrPeriodCount, len(periods))

	return &ScheduleResponse{
		LeaseID: lease.ID,
		Periods: toPeriodResponses(periods),
	}, nil
}

// GetLeaseLedger allocates a lease's confirmed payments against its
// schedule FIFO and returns the resulting per-period positions and totals.
func (s *BillingService) GetLeaseLedger(ctx context.Context, organizationID, leaseID uuid.UUID) (*LedgerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "billing", "get_ledger")
	defer span.End()

	telemetry.SetAttribute(span, telemetry.SpanAttrLeaseID, leaseID.String())

	lease, err := s.findLease(ctx, organizationID, leaseID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	records, err := s.paymentRepo.FindByLease(ctx, organizationID, leaseID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	ledger := leasing.Allocate(s.builder.BuildSchedule(lease), ToPaymentEvents(records))

	telemetry.SetAttributes(span,
		telemetry.SpanAttrPeriodCount, len(ledger.Periods),
		"outstanding", ledger.Totals.Outstanding.String(),
	)

	return &LedgerResponse{
		LeaseID:     lease.ID,
		Periods:     toPeriodResponses(ledger.Periods),
		TotalDue:    ledger.Totals.TotalDue,
		TotalPaid:   ledger.Totals.TotalPaid,
		Outstanding: ledger.Totals.Outstanding,
	}, nil
}

// GetNextDueDate resolves the first due date on or after asOf, or none
// when the lease term has no further periods.
func (s *BillingService) GetNextDueDate(ctx context.Context, organizationID, leaseID uuid.UUID, asOf time.Time) (*NextDueDateResponse, error) {
	lease, err := s.findLease(ctx, organizationID, leaseID)
	if err != nil {
		return nil, err
	}

	return &NextDueDateResponse{
		LeaseID:     lease.ID,
		AsOf:        leasing.DateOnly(asOf),
		NextDueDate: s.builder.NextDueDate(lease, asOf),
	}, nil
}

func (s *BillingService) findLease(ctx context.Context, organizationID, leaseID uuid.UUID) (*leasing.LeaseAgreement, error) {
	lease, err := s.leaseRepo.FindByIDForOrganization(ctx, organizationID, leaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, shared.NewDomainError("LEASE_NOT_FOUND", "Lease not found")
	}
	return lease, nil
}

// ToPaymentEvents maps stored payment records to the ledger's input shape
func ToPaymentEvents(records []payment.PaymentRecord) []leasing.PaymentEvent {
	events := make([]leasing.PaymentEvent, len(records))
	for i, r := range records {
		events[i] = leasing.PaymentEvent{
			PaymentID: r.ID,
			Amount:    r.Amount,
			PaidAt:    r.PaidAt,
		}
	}
	return events
}
