package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/payment"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentRecordModel is the persistence model for the PaymentRecord aggregate root.
type PaymentRecordModel struct {
	OrgAggregateModel
	LeaseID        uuid.UUID            `gorm:"type:uuid;not null;index"`
	TenantID       uuid.UUID            `gorm:"type:uuid;not null;index"`
	TypeCode       string               `gorm:"type:varchar(50);not null;index"`
	Amount         decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency       valueobject.Currency `gorm:"type:varchar(3);not null"`
	PaidAt         time.Time            `gorm:"not null;index"`
	TransactionRef string               `gorm:"type:varchar(100);index"`
	Remark         string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentRecordModel) TableName() string {
	return "payment_records"
}

// ToDomain converts the persistence model to a domain PaymentRecord entity.
func (m *PaymentRecordModel) ToDomain() *payment.PaymentRecord {
	record := &payment.PaymentRecord{
		LeaseID:        m.LeaseID,
		TenantID:       m.TenantID,
		TypeCode:       m.TypeCode,
		Amount:         m.Amount,
		Currency:       m.Currency,
		PaidAt:         m.PaidAt,
		TransactionRef: m.TransactionRef,
		Remark:         m.Remark,
	}
	m.PopulateOrgAggregateRoot(&record.OrgAggregateRoot)
	return record
}

// FromDomain populates the persistence model from a domain PaymentRecord entity.
func (m *PaymentRecordModel) FromDomain(record *payment.PaymentRecord) {
	m.FromDomainOrgAggregateRoot(record.OrgAggregateRoot)
	m.LeaseID = record.LeaseID
	m.TenantID = record.TenantID
	m.TypeCode = record.TypeCode
	m.Amount = record.Amount
	m.Currency = record.Currency
	m.PaidAt = record.PaidAt
	m.TransactionRef = record.TransactionRef
	m.Remark = record.Remark
}

// PaymentRecordModelFromDomain creates a new persistence model from a domain PaymentRecord.
func PaymentRecordModelFromDomain(record *payment.PaymentRecord) *PaymentRecordModel {
	m := &PaymentRecordModel{}
	m.FromDomain(record)
	return m
}

// PaymentTypeModel is the persistence model for the PaymentType lookup.
// A row with a NULL organization_id is a global type usable by everyone.
type PaymentTypeModel struct {
	BaseModel
	Code           string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name           string     `gorm:"type:varchar(100);not null"`
	OrganizationID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (PaymentTypeModel) TableName() string {
	return "payment_types"
}

// ToDomain converts the persistence model to a domain PaymentType entity.
func (m *PaymentTypeModel) ToDomain() *payment.PaymentType {
	return &payment.PaymentType{
		BaseEntity:     m.BaseModel.ToDomain(),
		Code:           m.Code,
		Name:           m.Name,
		OrganizationID: m.OrganizationID,
	}
}

// FromDomain populates the persistence model from a domain PaymentType entity.
func (m *PaymentTypeModel) FromDomain(t *payment.PaymentType) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.Code = t.Code
	m.Name = t.Name
	m.OrganizationID = t.OrganizationID
}

// PaymentTypeModelFromDomain creates a new persistence model from a domain PaymentType.
func PaymentTypeModelFromDomain(t *payment.PaymentType) *PaymentTypeModel {
	m := &PaymentTypeModel{}
	m.FromDomain(t)
	return m
}
