package payment

import (
	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
)

// PaymentType is a lightweight lookup describing how a payment was made
// (e.g. MPESA, BANK_TRANSFER, CASH). A type is either global or scoped to
// one organization; the creation path uses it to validate that a payment's
// declared type is permitted for the lease's organization.
type PaymentType struct {
	shared.BaseEntity
	Code           string     `json:"code"`
	Name           string     `json:"name"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"` // nil = global
}

// NewPaymentType creates a new payment type
func NewPaymentType(code, name string, organizationID *uuid.UUID) (*PaymentType, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Payment type code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Payment type name cannot be empty")
	}
	return &PaymentType{
		BaseEntity:     shared.NewBaseEntity(),
		Code:           code,
		Name:           name,
		OrganizationID: organizationID,
	}, nil
}

// IsGlobal returns true when the type is not scoped to any organization
func (t *PaymentType) IsGlobal() bool {
	return t.OrganizationID == nil
}

// IsPermittedFor returns true when the type may be used by the given
// organization: either it is global or it belongs to that organization.
func (t *PaymentType) IsPermittedFor(organizationID uuid.UUID) bool {
	return t.IsGlobal() || *t.OrganizationID == organizationID
}
