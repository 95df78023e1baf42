package property

import (
	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
)

// Property is an aggregate root for a building or estate under management.
// Its owning organization is the authority consulted when a lease is
// created against one of its units.
type Property struct {
	shared.OrgAggregateRoot
	Name       string     `json:"name"`
	Address    string     `json:"address"`
	City       string     `json:"city"`
	Country    string     `json:"country"`
	LandlordID *uuid.UUID `json:"landlord_id,omitempty"`
}

// NewProperty creates a new property
func NewProperty(organizationID uuid.UUID, name, address, city, country string) (*Property, error) {
	if organizationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORGANIZATION", "Organization ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PROPERTY_NAME", "Property name cannot be empty")
	}
	return &Property{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		Name:             name,
		Address:          address,
		City:             city,
		Country:          country,
	}, nil
}

// SetLandlord attaches the optional landlord reference
func (p *Property) SetLandlord(landlordID uuid.UUID) {
	p.LandlordID = &landlordID
	p.Touch()
	p.IncrementVersion()
}

// Rename changes the property name
func (p *Property) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_PROPERTY_NAME", "Property name cannot be empty")
	}
	p.Name = name
	p.Touch()
	p.IncrementVersion()
	return nil
}
