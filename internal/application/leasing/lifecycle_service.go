package leasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/propman/backend/internal/domain/leasing"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/propman/backend/internal/infrastructure/telemetry"
)

// LifecycleService handles lease creation, extension and termination.
// It is the only writer of lease aggregates; the billing and report
// services are read-only consumers.
type LifecycleService struct {
	leaseRepo    leasing.LeaseRepository
	unitRepo     property.UnitRepository
	propertyRepo property.PropertyRepository
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(
	leaseRepo leasing.LeaseRepository,
	unitRepo property.UnitRepository,
	propertyRepo property.PropertyRepository,
) *LifecycleService {
	return &LifecycleService{
		leaseRepo:    leaseRepo,
		unitRepo:     unitRepo,
		propertyRepo: propertyRepo,
	}
}

// CreateLease opens a lease on a unit.
//
// The unit is looked up unscoped so that a caller holding the wrong
// organization gets an explicit mismatch error instead of a 404; the
// unit's organization is the authority. The lease's billing metadata
// (next due date, cycle day, estimated period count) is snapshotted
// into the terms bag at creation time.
func (s *LifecycleService) CreateLease(ctx context.Context, organizationID uuid.UUID, req CreateLeaseRequest) (*LeaseResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "lease", "create")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrganizationID, organizationID.String(),
		telemetry.SpanAttrUnitID, req.UnitID.String(),
		telemetry.SpanAttrTenantID, req.TenantID.String(),
	)

	unit, err := s.unitRepo.FindByID(ctx, req.UnitID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load unit: %w", err)
	}
	if unit == nil {
		err := shared.NewDomainError("UNIT_NOT_FOUND", "Unit not found")
		telemetry.RecordError(span, err)
		return nil, err
	}
	if unit.OrganizationID != organizationID {
		telemetry.RecordError(span, shared.ErrOrganizationMismatch)
		return nil, shared.ErrOrganizationMismatch
	}

	currency := valueobject.Currency(req.Currency)
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	amount, err := valueobject.NewMoneyFromString(req.Amount, currency)
	if err != nil {
		derr := shared.NewDomainError("INVALID_AMOUNT", fmt.Sprintf("Invalid lease amount %q", req.Amount))
		telemetry.RecordError(span, derr)
		return nil, derr
	}

	firstPayment := timeOrZero(req.FirstPaymentDate)
	lease, err := leasing.NewLeaseAgreement(
		organizationID,
		req.UnitID,
		req.TenantID,
		req.StartDate,
		req.EndDate,
		amount,
		leasing.LeaseType(req.LeaseType),
		leasing.ChargeType(req.ChargeType),
		leasing.PaymentFrequency(req.PaymentFrequency),
		firstPayment,
	)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	prop, err := s.propertyRepo.FindByIDForOrganization(ctx, organizationID, unit.PropertyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	if prop != nil && prop.LandlordID != nil {
		lease.SetLandlord(*prop.LandlordID)
	}

	schedule := leasing.BuildSchedule(lease)
	snapshot := leasing.BillingSnapshot{
		BillingCycleDay:  lease.FirstPaymentDate.Day(),
		EstimatedPeriods: len(schedule),
	}
	if next := leasing.NextDueDate(lease, lease.StartDate); next != nil {
		snapshot.NextDueDate = next
	}
	lease.Terms.SetBillingSnapshot(snapshot)

	if err := s.leaseRepo.Save(ctx, lease); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save lease: %w", err)
	}

	unit.MarkOccupied()
	if err := s.unitRepo.Save(ctx, unit); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to update unit occupancy: %w", err)
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrLeaseID, lease.ID.String())
	telemetry.SetAttribute(span, telemetry.SpanAttrPeriodCount, len(schedule))

	return toLeaseResponse(lease), nil
}

// ExtendLease pushes a lease end date forward. A new end date on or
// before the current one is an input error, never a silent no-op.
func (s *LifecycleService) ExtendLease(ctx context.Context, organizationID, leaseID uuid.UUID, req ExtendLeaseRequest) (*LeaseResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "lease", "extend")
	defer span.End()

	telemetry.SetAttribute(span, telemetry.SpanAttrLeaseID, leaseID.String())

	lease, err := s.findLease(ctx, organizationID, leaseID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var newAmount *valueobject.Money
	if req.NewAmount != nil {
		m, err := valueobject.NewMoneyFromString(*req.NewAmount, lease.Currency)
		if err != nil {
			derr := shared.NewDomainError("INVALID_AMOUNT", fmt.Sprintf("Invalid lease amount %q", *req.NewAmount))
			telemetry.RecordError(span, derr)
			return nil, derr
		}
		newAmount = &m
	}

	if err := lease.Extend(req.NewEndDate, newAmount); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.leaseRepo.SaveWithLock(ctx, lease); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save lease: %w", err)
	}

	return toLeaseResponse(lease), nil
}

// TerminateLease ends a lease early and releases its unit. The effective
// end date becomes the earlier of the current end date and the
// termination date; periods already due stay due.
func (s *LifecycleService) TerminateLease(ctx context.Context, organizationID, leaseID uuid.UUID, req TerminateLeaseRequest) (*LeaseResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "lease", "terminate")
	defer span.End()

	telemetry.SetAttribute(span, telemetry.SpanAttrLeaseID, leaseID.String())

	lease, err := s.findLease(ctx, organizationID, leaseID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := lease.Terminate(req.TerminationDate, req.Reason); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.leaseRepo.SaveWithLock(ctx, lease); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save lease: %w", err)
	}

	// The unit only frees up when no other active lease remains on it.
	active, err := s.leaseRepo.CountActiveByUnit(ctx, organizationID, lease.UnitID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to count active leases: %w", err)
	}
	if active == 0 {
		unit, err := s.unitRepo.FindByIDForOrganization(ctx, organizationID, lease.UnitID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to load unit: %w", err)
		}
		if unit != nil {
			unit.MarkVacant()
			if err := s.unitRepo.Save(ctx, unit); err != nil {
				telemetry.RecordError(span, err)
				return nil, fmt.Errorf("failed to update unit occupancy: %w", err)
			}
		}
	}

	return toLeaseResponse(lease), nil
}

// GetLease returns a lease scoped to an organization
func (s *LifecycleService) GetLease(ctx context.Context, organizationID, leaseID uuid.UUID) (*LeaseResponse, error) {
	lease, err := s.findLease(ctx, organizationID, leaseID)
	if err != nil {
		return nil, err
	}
	return toLeaseResponse(lease), nil
}

// ListLeases lists an organization's leases with filtering
func (s *LifecycleService) ListLeases(ctx context.Context, organizationID uuid.UUID, filter LeaseListFilter) ([]LeaseResponse, int64, error) {
	domainFilter := leasing.LeaseFilter{
		UnitID:   filter.UnitID,
		TenantID: filter.TenantID,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	if filter.Status != "" {
		status := leasing.LeaseStatus(filter.Status)
		domainFilter.Status = &status
	}
	if filter.Frequency != "" {
		frequency := leasing.PaymentFrequency(filter.Frequency)
		domainFilter.Frequency = &frequency
	}

	leases, err := s.leaseRepo.FindAllForOrganization(ctx, organizationID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.leaseRepo.CountForOrganization(ctx, organizationID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]LeaseResponse, len(leases))
	for i := range leases {
		responses[i] = *toLeaseResponse(&leases[i])
	}
	return responses, total, nil
}

func (s *LifecycleService) findLease(ctx context.Context, organizationID, leaseID uuid.UUID) (*leasing.LeaseAgreement, error) {
	lease, err := s.leaseRepo.FindByIDForOrganization(ctx, organizationID, leaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, shared.NewDomainError("LEASE_NOT_FOUND", "Lease not found")
	}
	return lease, nil
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
