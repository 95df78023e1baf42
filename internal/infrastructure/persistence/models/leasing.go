package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/leasing"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LeaseAgreementModel is the persistence model for the LeaseAgreement aggregate root.
type LeaseAgreementModel struct {
	OrgAggregateModel
	UnitID           uuid.UUID                `gorm:"type:uuid;not null;index"`
	TenantID         uuid.UUID                `gorm:"type:uuid;not null;index"`
	LandlordID       *uuid.UUID               `gorm:"type:uuid;index"`
	StartDate        time.Time                `gorm:"not null;index"`
	EndDate          time.Time                `gorm:"not null;index"`
	Amount           decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	Currency         valueobject.Currency     `gorm:"type:varchar(3);not null"`
	LeaseType        leasing.LeaseType        `gorm:"type:varchar(20);not null;default:'FIXED_TERM'"`
	ChargeType       leasing.ChargeType       `gorm:"type:varchar(20);not null;default:'RENT'"`
	PaymentFrequency leasing.PaymentFrequency `gorm:"type:varchar(20);not null;default:'MONTHLY'"`
	FirstPaymentDate time.Time                `gorm:"not null"`
	Status           leasing.LeaseStatus      `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	Terms            leasing.Terms            `gorm:"type:jsonb;default:'{}'"`
}

// TableName returns the table name for GORM
func (LeaseAgreementModel) TableName() string {
	return "lease_agreements"
}

// ToDomain converts the persistence model to a domain LeaseAgreement entity.
func (m *LeaseAgreementModel) ToDomain() *leasing.LeaseAgreement {
	lease := &leasing.LeaseAgreement{
		UnitID:           m.UnitID,
		TenantID:         m.TenantID,
		LandlordID:       m.LandlordID,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		Amount:           m.Amount,
		Currency:         m.Currency,
		LeaseType:        m.LeaseType,
		ChargeType:       m.ChargeType,
		PaymentFrequency: m.PaymentFrequency,
		FirstPaymentDate: m.FirstPaymentDate,
		Status:           m.Status,
		Terms:            m.Terms,
	}
	m.PopulateOrgAggregateRoot(&lease.OrgAggregateRoot)
	return lease
}

// FromDomain populates the persistence model from a domain LeaseAgreement entity.
func (m *LeaseAgreementModel) FromDomain(lease *leasing.LeaseAgreement) {
	m.FromDomainOrgAggregateRoot(lease.OrgAggregateRoot)
	m.UnitID = lease.UnitID
	m.TenantID = lease.TenantID
	m.LandlordID = lease.LandlordID
	m.StartDate = lease.StartDate
	m.EndDate = lease.EndDate
	m.Amount = lease.Amount
	m.Currency = lease.Currency
	m.LeaseType = lease.LeaseType
	m.ChargeType = lease.ChargeType
	m.PaymentFrequency = lease.PaymentFrequency
	m.FirstPaymentDate = lease.FirstPaymentDate
	m.Status = lease.Status
	m.Terms = lease.Terms
}

// LeaseAgreementModelFromDomain creates a new persistence model from a domain LeaseAgreement.
func LeaseAgreementModelFromDomain(lease *leasing.LeaseAgreement) *LeaseAgreementModel {
	m := &LeaseAgreementModel{}
	m.FromDomain(lease)
	return m
}
