package leasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propman/backend/internal/domain/leasing"
)

// CreateLeaseRequest carries the fields needed to open a lease on a unit.
// The organization is resolved from the unit, never trusted from the body.
type CreateLeaseRequest struct {
	UnitID           uuid.UUID  `json:"unit_id" binding:"required"`
	TenantID         uuid.UUID  `json:"tenant_id" binding:"required"`
	StartDate        time.Time  `json:"start_date" binding:"required"`
	EndDate          time.Time  `json:"end_date" binding:"required"`
	Amount           string     `json:"amount" binding:"required"`
	Currency         string     `json:"currency"`
	LeaseType        string     `json:"lease_type"`
	ChargeType       string     `json:"charge_type"`
	PaymentFrequency string     `json:"payment_frequency"`
	FirstPaymentDate *time.Time `json:"first_payment_date,omitempty"`
}

// ExtendLeaseRequest pushes a lease end date forward
type ExtendLeaseRequest struct {
	NewEndDate time.Time `json:"new_end_date" binding:"required"`
	NewAmount  *string   `json:"new_amount,omitempty"`
}

// TerminateLeaseRequest ends a lease early
type TerminateLeaseRequest struct {
	TerminationDate time.Time `json:"termination_date" binding:"required"`
	Reason          string    `json:"reason,omitempty"`
}

// LeaseListFilter defines filtering options for lease list queries
type LeaseListFilter struct {
	UnitID    *uuid.UUID `form:"unit_id"`
	TenantID  *uuid.UUID `form:"tenant_id"`
	Status    string     `form:"status"`
	Frequency string     `form:"frequency"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
}

// BillingSnapshotResponse mirrors the billing metadata stored on the lease
type BillingSnapshotResponse struct {
	NextDueDate      *time.Time `json:"next_due_date,omitempty"`
	BillingCycleDay  int        `json:"billing_cycle_day"`
	EstimatedPeriods int        `json:"estimated_periods"`
}

// LeaseResponse represents a lease agreement in API responses
type LeaseResponse struct {
	ID               uuid.UUID                `json:"id"`
	OrganizationID   uuid.UUID                `json:"organization_id"`
	UnitID           uuid.UUID                `json:"unit_id"`
	TenantID         uuid.UUID                `json:"tenant_id"`
	LandlordID       *uuid.UUID               `json:"landlord_id,omitempty"`
	StartDate        time.Time                `json:"start_date"`
	EndDate          time.Time                `json:"end_date"`
	Amount           decimal.Decimal          `json:"amount"`
	Currency         string                   `json:"currency"`
	LeaseType        string                   `json:"lease_type"`
	ChargeType       string                   `json:"charge_type"`
	PaymentFrequency string                   `json:"payment_frequency"`
	FirstPaymentDate time.Time                `json:"first_payment_date"`
	Status           string                   `json:"status"`
	Billing          *BillingSnapshotResponse `json:"billing,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
	Version          int                      `json:"version"`
}

// PeriodResponse represents one billing period in API responses
type PeriodResponse struct {
	DueDate       time.Time              `json:"due_date"`
	AmountDue     decimal.Decimal        `json:"amount_due"`
	AmountPaid    decimal.Decimal        `json:"amount_paid"`
	Balance       decimal.Decimal        `json:"balance"`
	Contributions []ContributionResponse `json:"contributions,omitempty"`
}

// ContributionResponse records a payment's share of one period
type ContributionResponse struct {
	PaymentID uuid.UUID       `json:"payment_id"`
	Applied   decimal.Decimal `json:"applied"`
	PaidAt    time.Time       `json:"paid_at"`
}

// ScheduleResponse is a lease's expanded billing schedule
type ScheduleResponse struct {
	LeaseID uuid.UUID        `json:"lease_id"`
	Periods []PeriodResponse `json:"periods"`
}

// LedgerResponse is a lease's schedule after payment allocation
type LedgerResponse struct {
	LeaseID     uuid.UUID        `json:"lease_id"`
	Periods     []PeriodResponse `json:"periods"`
	TotalDue    decimal.Decimal  `json:"total_due"`
	TotalPaid   decimal.Decimal  `json:"total_paid"`
	Outstanding decimal.Decimal  `json:"outstanding"`
}

// NextDueDateResponse carries the next due date, if any remains in term
type NextDueDateResponse struct {
	LeaseID     uuid.UUID  `json:"lease_id"`
	AsOf        time.Time  `json:"as_of"`
	NextDueDate *time.Time `json:"next_due_date,omitempty"`
}

// RentRollRowResponse is one lease's position in a monthly rent roll
type RentRollRowResponse struct {
	LeaseID  uuid.UUID       `json:"lease_id"`
	UnitID   uuid.UUID       `json:"unit_id"`
	TenantID uuid.UUID       `json:"tenant_id"`
	Due      decimal.Decimal `json:"due"`
	Paid     decimal.Decimal `json:"paid"`
	Balance  decimal.Decimal `json:"balance"`
}

// RentRollResponse is a property's cash-basis view of one month
type RentRollResponse struct {
	PropertyID uuid.UUID             `json:"property_id"`
	Month      string                `json:"month"`
	Rows       []RentRollRowResponse `json:"rows"`
	TotalDue   decimal.Decimal       `json:"total_due"`
	TotalPaid  decimal.Decimal       `json:"total_paid"`
}

// ArrearsRowResponse is one lease's arrears position
type ArrearsRowResponse struct {
	LeaseID        uuid.UUID       `json:"lease_id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	UnitID         uuid.UUID       `json:"unit_id"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	MaxDaysPastDue int             `json:"max_days_past_due"`
	Bucket         string          `json:"bucket"`
}

// ArrearsReportResponse is the organization-wide aging view
type ArrearsReportResponse struct {
	AsOf    time.Time                  `json:"as_of"`
	Summary map[string]decimal.Decimal `json:"summary"`
	Rows    []ArrearsRowResponse       `json:"rows"`
}

func toLeaseResponse(lease *leasing.LeaseAgreement) *LeaseResponse {
	resp := &LeaseResponse{
		ID:               lease.ID,
		OrganizationID:   lease.OrganizationID,
		UnitID:           lease.UnitID,
		TenantID:         lease.TenantID,
		LandlordID:       lease.LandlordID,
		StartDate:        lease.StartDate,
		EndDate:          lease.EndDate,
		Amount:           lease.Amount,
		Currency:         string(lease.Currency),
		LeaseType:        string(lease.LeaseType),
		ChargeType:       string(lease.ChargeType),
		PaymentFrequency: string(lease.PaymentFrequency),
		FirstPaymentDate: lease.FirstPaymentDate,
		Status:           string(lease.Status),
		CreatedAt:        lease.CreatedAt,
		UpdatedAt:        lease.UpdatedAt,
		Version:          lease.GetVersion(),
	}
	if lease.Terms.Billing != nil {
		resp.Billing = &BillingSnapshotResponse{
			NextDueDate:      lease.Terms.Billing.NextDueDate,
			BillingCycleDay:  lease.Terms.Billing.BillingCycleDay,
			EstimatedPeriods: lease.Terms.Billing.EstimatedPeriods,
		}
	}
	return resp
}

func toPeriodResponses(periods []leasing.BillingPeriod) []PeriodResponse {
	out := make([]PeriodResponse, len(periods))
	for i, p := range periods {
		resp := PeriodResponse{
			DueDate:    p.DueDate,
			AmountDue:  p.AmountDue,
			AmountPaid: p.AmountPaid,
			Balance:    p.Balance,
		}
		for _, c := range p.Contributions {
			resp.Contributions = append(resp.Contributions, ContributionResponse{
				PaymentID: c.PaymentID,
				Applied:   c.Applied,
				PaidAt:    c.PaidAt,
			})
		}
		out[i] = resp
	}
	return out
}
