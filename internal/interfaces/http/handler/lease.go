package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	appleasing "github.com/propman/backend/internal/application/leasing"
)

// LeaseHandler handles lease lifecycle and billing API endpoints
type LeaseHandler struct {
	BaseHandler
	lifecycle *appleasing.LifecycleService
	billing   *appleasing.BillingService
}

// NewLeaseHandler creates a new LeaseHandler
func NewLeaseHandler(lifecycle *appleasing.LifecycleService, billing *appleasing.BillingService) *LeaseHandler {
	return &LeaseHandler{
		lifecycle: lifecycle,
		billing:   billing,
	}
}

// RegisterRoutes registers lease routes on the API group
func (h *LeaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	leases := rg.Group("/leases")
	{
		leases.POST("", h.CreateLease)
		leases.GET("", h.ListLeases)
		leases.GET("/:id", h.GetLease)
		leases.POST("/:id/extend", h.ExtendLease)
		leases.POST("/:id/terminate", h.TerminateLease)
		leases.GET("/:id/schedule", h.GetBillingSchedule)
		leases.GET("/:id/ledger", h.GetLeaseLedger)
		leases.GET("/:id/next-due", h.GetNextDueDate)
	}
}

// CreateLease creates a new lease agreement on a unit
func (h *LeaseHandler) CreateLease(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context is required")
		return
	}

	var req appleasing.CreateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	lease, err := h.lifecycle.CreateLease(c.Request.Context(), organizationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, lease)
}

// GetLease returns a single lease by ID
func (h *LeaseHandler) GetLease(c *gin.Context) {
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

	lease, err := h.lifecycle.GetLease(c.Request.Context(), organizationID, leaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lease)
}

// ListLeases lists leases for the acting organization
func (h *LeaseHandler) ListLeases(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context is required")
		return
	}

	var filter appleasing.LeaseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	leases, total, err := h.lifecycle.ListLeases(c.Request.Context(), organizationID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, leases, total, filter.Page, filter.PageSize)
}

// ExtendLease pushes a lease end date forward
func (h *LeaseHandler) ExtendLease(c *gin.Context) {
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

	var req appleasing.ExtendLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	lease, err := h.lifecycle.ExtendLease(c.Request.Context(), organizationID, leaseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lease)
}

// TerminateLease ends a lease early
func (h *LeaseHandler) TerminateLease(c *gin.Context) {
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

	var req appleasing.TerminateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	lease, err := h.lifecycle.TerminateLease(c.Request.Context(), organizationID, leaseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lease)
}

// GetBillingSchedule returns the derived billing schedule for a lease
func (h *LeaseHandler) GetBillingSchedule(c *gin.Context) {
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

	schedule, err := h.billing.GetBillingSchedule(c.Request.Context(), organizationID, leaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, schedule)
}

// GetLeaseLedger returns the schedule with payments allocated against it
func (h *LeaseHandler) GetLeaseLedger(c *gin.Context) {
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

	ledger, err := h.billing.GetLeaseLedger(c.Request.Context(), organizationID, leaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ledger)
}

// GetNextDueDate returns the next due date on or after the given date.
// The "as_of" query parameter defaults to today.
func (h *LeaseHandler) GetNextDueDate(c *gin.Context) {
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

	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid as_of date, expected YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	next, err := h.billing.GetNextDueDate(c.Request.Context(), organizationID, leaseID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, next)
}
