package property

import (
	"context"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
)

// PropertyRepository defines the interface for property persistence
type PropertyRepository interface {
	// FindByID finds a property by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)

	// FindByIDForOrganization finds a property by ID scoped to an organization
	FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*Property, error)

	// FindAllForOrganization lists an organization's properties
	FindAllForOrganization(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]Property, error)

	// Save creates or updates a property
	Save(ctx context.Context, property *Property) error

	// Delete soft deletes a property
	Delete(ctx context.Context, id uuid.UUID) error
}

// UnitRepository defines the interface for unit persistence
type UnitRepository interface {
	// FindByID finds a unit by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Unit, error)

	// FindByIDForOrganization finds a unit by ID scoped to an organization
	FindByIDForOrganization(ctx context.Context, organizationID, id uuid.UUID) (*Unit, error)

	// FindByProperty lists a property's units
	FindByProperty(ctx context.Context, organizationID, propertyID uuid.UUID) ([]Unit, error)

	// Save creates or updates a unit
	Save(ctx context.Context, unit *Unit) error

	// Delete soft deletes a unit
	Delete(ctx context.Context, id uuid.UUID) error
}
