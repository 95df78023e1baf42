package leasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
)

// LeaseFilter defines filtering options for lease queries
type LeaseFilter struct {
	shared.Filter
	UnitID     *uuid.UUID        // Filter by unit
	TenantID   *uuid.UUID        // Filter by renter
	Status     *LeaseStatus      // Filter by lifecycle status
	ChargeType *ChargeType       // Filter by charge type
	Frequency  *PaymentFrequency // Filter by payment frequency
	StartFrom  *time.Time        // Filter by term start range
	StartTo    *time.Time
	EndFrom    *time.Time // Filter by term end range
	EndTo      *time.Time
}

// LeaseRepository defines the interface for lease persistence
type LeaseRepository interface {
	// FindByID finds a lease by ID
	FindByID(ctx context.Context, id uuid.UUID) (*LeaseAgreement, error)

	// FindByIDForOrganization finds a lease by ID scoped to an organization
	FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*LeaseAgreement, error)

	// FindAllForOrganization lists leases for an organization with filtering
	FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter LeaseFilter) ([]LeaseAgreement, error)

	// FindByUnit finds leases on a unit
	FindByUnit(ctx context.Context, organizationID, unitID uuid.UUID) ([]LeaseAgreement, error)

	// FindByProperty finds leases across a property's units
	FindByProperty(ctx context.Context, organizationID, propertyID uuid.UUID) ([]LeaseAgreement, error)

	// FindActiveByTenant finds a renter's active leases
	FindActiveByTenant(ctx context.Context, organizationID, tenantID uuid.UUID) ([]LeaseAgreement, error)

	// Save creates or updates a lease
	Save(ctx context.Context, lease *LeaseAgreement) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, lease *LeaseAgreement) error

	// Delete soft deletes a lease
	Delete(ctx context.Context, id uuid.UUID) error

	// CountForOrganization counts leases for an organization with optional filters
	CountForOrganization(ctx context.Context, organizationID uuid.UUID, filter LeaseFilter) (int64, error)

	// CountActiveByUnit counts active leases on a unit
	CountActiveByUnit(ctx context.Context, organizationID, unitID uuid.UUID) (int64, error)
}
