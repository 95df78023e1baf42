package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propman/backend/internal/domain/leasing"
	"github.com/propman/backend/internal/domain/payment"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/propman/backend/internal/infrastructure/telemetry"
)

// PaymentService records confirmed payments against leases. Provider
// callbacks (M-Pesa and friends) are parsed upstream; by the time a
// request reaches this service the amount and timestamp are facts.
type PaymentService struct {
	paymentRepo payment.PaymentRepository
	typeRepo    payment.PaymentTypeRepository
	leaseRepo   leasing.LeaseRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo payment.PaymentRepository,
	typeRepo payment.PaymentTypeRepository,
	leaseRepo leasing.LeaseRepository,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		typeRepo:    typeRepo,
		leaseRepo:   leaseRepo,
	}
}

// RecordPaymentRequest carries a confirmed payment to record
type RecordPaymentRequest struct {
	LeaseID        uuid.UUID `json:"lease_id" binding:"required"`
	TypeCode       string    `json:"type_code" binding:"required"`
	Amount         string    `json:"amount" binding:"required"`
	PaidAt         time.Time `json:"paid_at" binding:"required"`
	TransactionRef string    `json:"transaction_ref,omitempty"`
	Remark         string    `json:"remark,omitempty"`
}

// PaymentResponse represents a payment record in API responses
type PaymentResponse struct {
	ID             uuid.UUID       `json:"id"`
	OrganizationID uuid.UUID       `json:"organization_id"`
	LeaseID        uuid.UUID       `json:"lease_id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	TypeCode       string          `json:"type_code"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	PaidAt         time.Time       `json:"paid_at"`
	TransactionRef string          `json:"transaction_ref,omitempty"`
	Remark         string          `json:"remark,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PaymentTypeResponse represents a payment type lookup row
type PaymentTypeResponse struct {
	ID     uuid.UUID `json:"id"`
	Code   string    `json:"code"`
	Name   string    `json:"name"`
	Global bool      `json:"global"`
}

// RecordPayment validates and persists a confirmed payment.
//
// The lease must exist in the caller's organization and the declared
// payment type must be permitted for that organization (its own or a
// global one). The tenant reference is taken from the lease, not the
// request.
func (s *PaymentService) RecordPayment(ctx context.Context, organizationID uuid.UUID, req RecordPaymentRequest) (*PaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "record")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrganizationID, organizationID.String(),
		telemetry.SpanAttrLeaseID, req.LeaseID.String(),
		telemetry.SpanAttrPaymentType, req.TypeCode,
	)

	lease, err := s.leaseRepo.FindByIDForOrganization(ctx, organizationID, req.LeaseID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load lease: %w", err)
	}
	if lease == nil {
		err := shared.NewDomainError("LEASE_NOT_FOUND", "Lease not found")
		telemetry.RecordError(span, err)
		return nil, err
	}

	paymentType, err := s.typeRepo.FindByCode(ctx, req.TypeCode)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to look up payment type: %w", err)
	}
	if paymentType == nil {
		err := shared.NewDomainError("INVALID_PAYMENT_TYPE", fmt.Sprintf("Unknown payment type %q", req.TypeCode))
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !paymentType.IsPermittedFor(organizationID) {
		err := shared.NewDomainError("PAYMENT_TYPE_NOT_PERMITTED", fmt.Sprintf("Payment type %q is not available to this organization", req.TypeCode))
		telemetry.RecordError(span, err)
		return nil, err
	}

	amount, err := valueobject.NewMoneyFromString(req.Amount, lease.Currency)
	if err != nil {
		derr := shared.NewDomainError("INVALID_AMOUNT", fmt.Sprintf("Invalid payment amount %q", req.Amount))
		telemetry.RecordError(span, derr)
		return nil, derr
	}

	record, err := payment.NewPaymentRecord(
		organizationID,
		lease.ID,
		lease.TenantID,
		paymentType.Code,
		amount,
		req.PaidAt,
	)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if req.TransactionRef != "" {
		record.WithTransactionRef(req.TransactionRef)
	}
	if req.Remark != "" {
		record.WithRemark(req.Remark)
	}

	if err := s.paymentRepo.Save(ctx, record); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrPaymentID, record.ID.String())

	return toPaymentResponse(record), nil
}

// ListLeasePayments lists a lease's payments ordered by paid_at ascending
func (s *PaymentService) ListLeasePayments(ctx context.Context, organizationID, leaseID uuid.UUID) ([]PaymentResponse, error) {
	records, err := s.paymentRepo.FindByLease(ctx, organizationID, leaseID)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, len(records))
	for i := range records {
		responses[i] = *toPaymentResponse(&records[i])
	}
	return responses, nil
}

// ListPaymentTypes lists the payment types usable by an organization
func (s *PaymentService) ListPaymentTypes(ctx context.Context, organizationID uuid.UUID) ([]PaymentTypeResponse, error) {
	types, err := s.typeRepo.FindAllForOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentTypeResponse, len(types))
	for i, t := range types {
		responses[i] = PaymentTypeResponse{
			ID:     t.ID,
			Code:   t.Code,
			Name:   t.Name,
			Global: t.IsGlobal(),
		}
	}
	return responses, nil
}

func toPaymentResponse(record *payment.PaymentRecord) *PaymentResponse {
	return &PaymentResponse{
		ID:             record.ID,
		OrganizationID: record.OrganizationID,
		LeaseID:        record.LeaseID,
		TenantID:       record.TenantID,
		TypeCode:       record.TypeCode,
		Amount:         record.Amount,
		Currency:       string(record.Currency),
		PaidAt:         record.PaidAt,
		TransactionRef: record.TransactionRef,
		Remark:         record.Remark,
		CreatedAt:      record.CreatedAt,
	}
}
