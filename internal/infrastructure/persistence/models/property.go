package models

import (
	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/property"
	"github.com/shopspring/decimal"
)

// PropertyModel is the persistence model for the Property aggregate root.
type PropertyModel struct {
	OrgAggregateModel
	Name       string     `gorm:"type:varchar(200);not null"`
	Address    string     `gorm:"type:varchar(500)"`
	City       string     `gorm:"type:varchar(100);index"`
	Country    string     `gorm:"type:varchar(100)"`
	LandlordID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property entity.
func (m *PropertyModel) ToDomain() *property.Property {
	p := &property.Property{
		Name:       m.Name,
		Address:    m.Address,
		City:       m.City,
		Country:    m.Country,
		LandlordID: m.LandlordID,
	}
	m.PopulateOrgAggregateRoot(&p.OrgAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Property entity.
func (m *PropertyModel) FromDomain(p *property.Property) {
	m.FromDomainOrgAggregateRoot(p.OrgAggregateRoot)
	m.Name = p.Name
	m.Address = p.Address
	m.City = p.City
	m.Country = p.Country
	m.LandlordID = p.LandlordID
}

// PropertyModelFromDomain creates a new persistence model from a domain Property.
func PropertyModelFromDomain(p *property.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

// UnitModel is the persistence model for the Unit aggregate root.
type UnitModel struct {
	OrgAggregateModel
	PropertyID uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex:idx_unit_property_label,priority:1"`
	Label      string                   `gorm:"type:varchar(50);not null;uniqueIndex:idx_unit_property_label,priority:2"`
	Bedrooms   int                      `gorm:"not null;default:0"`
	MarketRent decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	Occupancy  property.OccupancyStatus `gorm:"type:varchar(20);not null;default:'VACANT';index"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts the persistence model to a domain Unit entity.
func (m *UnitModel) ToDomain() *property.Unit {
	u := &property.Unit{
		PropertyID: m.PropertyID,
		Label:      m.Label,
		Bedrooms:   m.Bedrooms,
		MarketRent: m.MarketRent,
		Occupancy:  m.Occupancy,
	}
	m.PopulateOrgAggregateRoot(&u.OrgAggregateRoot)
	return u
}

// FromDomain populates the persistence model from a domain Unit entity.
func (m *UnitModel) FromDomain(u *property.Unit) {
	m.FromDomainOrgAggregateRoot(u.OrgAggregateRoot)
	m.PropertyID = u.PropertyID
	m.Label = u.Label
	m.Bedrooms = u.Bedrooms
	m.MarketRent = u.MarketRent
	m.Occupancy = u.Occupancy
}

// UnitModelFromDomain creates a new persistence model from a domain Unit.
func UnitModelFromDomain(u *property.Unit) *UnitModel {
	m := &UnitModel{}
	m.FromDomain(u)
	return m
}
