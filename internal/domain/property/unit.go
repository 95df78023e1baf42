package property

import (
	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OccupancyStatus represents whether a unit is let
type OccupancyStatus string

const (
	OccupancyVacant   OccupancyStatus = "VACANT"
	OccupancyOccupied OccupancyStatus = "OCCUPIED"
)

// IsValid checks if the occupancy status is valid
func (s OccupancyStatus) IsValid() bool {
	return s == OccupancyVacant || s == OccupancyOccupied
}

// Unit is a lettable unit inside a property
type Unit struct {
	shared.OrgAggregateRoot
	PropertyID uuid.UUID       `json:"property_id"`
	Label      string          `json:"label"` // e.g. "A-12", "Shop 3"
	Bedrooms   int             `json:"bedrooms"`
	MarketRent decimal.Decimal `json:"market_rent"`
	Occupancy  OccupancyStatus `json:"occupancy"`
}

// NewUnit creates a new unit
func NewUnit(organizationID, propertyID uuid.UUID, label string, bedrooms int, marketRent valueobject.Money) (*Unit, error) {
	if organizationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORGANIZATION", "Organization ID cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}
	if label == "" {
		return nil, shared.NewDomainError("INVALID_UNIT_LABEL", "Unit label cannot be empty")
	}
	if marketRent.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Market rent cannot be negative")
	}
	return &Unit{
		OrgAggregateRoot: shared.NewOrgAggregateRoot(organizationID),
		PropertyID:       propertyID,
		Label:            label,
		Bedrooms:         bedrooms,
		MarketRent:       marketRent.Amount(),
		Occupancy:        OccupancyVacant,
	}, nil
}

// MarkOccupied flags the unit as let
func (u *Unit) MarkOccupied() {
	u.Occupancy = OccupancyOccupied
	u.Touch()
	u.IncrementVersion()
}

// MarkVacant flags the unit as available
func (u *Unit) MarkVacant() {
	u.Occupancy = OccupancyVacant
	u.Touch()
	u.IncrementVersion()
}
