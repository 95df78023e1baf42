package handler

import (
	"github.com/gin-gonic/gin"
	apppayment "github.com/propman/backend/internal/application/payment"
)

// PaymentHandler handles payment recording and lookup API endpoints
type PaymentHandler struct {
	BaseHandler
	payments *apppayment.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(payments *apppayment.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// RegisterRoutes registers payment routes on the API group
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", h.RecordPayment)
		payments.GET("/types", h.ListPaymentTypes)
	}
	rg.GET("/leases/:id/payments", h.ListLeasePayments)
}

// RecordPayment records a confirmed payment against a lease
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context is required")
		return
	}

	var req apppayment.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	record, err := h.payments.RecordPayment(c.Request.Context(), organizationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, record)
}

// ListLeasePayments lists a lease's payments in paid-at order
func (h *PaymentHandler) ListLeasePayments(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context is required")
		return
	}
	leaseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid lease ID")
		return
	}

	records, err := h.payments.ListLeasePayments(c.Request.Context(), organizationID, leaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// ListPaymentTypes lists the payment types usable by the acting organization
func (h *PaymentHandler) ListPaymentTypes(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context is required")
		return
	}

	types, err := h.payments.ListPaymentTypes(c.Request.Context(), organizationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, types)
}
