package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	appleasing "github.com/propman/backend/internal/application/leasing"
)

// ReportHandler handles property-level reporting API endpoints
type ReportHandler struct {
	BaseHandler
	reports *appleasing.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *appleasing.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// RegisterRoutes registers report routes on the API group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	properties := rg.Group("/properties")
	{
		properties.GET("/:id/rent-roll", h.GetRentRoll)
		properties.GET("/:id/arrears", h.GetArrearsAging)
	}
}

// GetRentRoll returns the rent roll for a property and month.
// The "month" query parameter is required, formatted YYYY-MM.
func (h *ReportHandler) GetRentRoll(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context is required")
		return
	}
	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	month := c.Query("month")
	if month == "" {
		h.BadRequest(c, "Query parameter 'month' is required (YYYY-MM)")
		return
	}

	report, err := h.reports.GetPropertyRentRoll(c.Request.Context(), organizationID, propertyID, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// GetArrearsAging returns the arrears aging report for a property.
// The "as_of" query parameter defaults to today.
func (h *ReportHandler) GetArrearsAging(c *gin.Context) {
	organizationID, err := getOrganizationID(c)
	if err != nil {
		h.Unauthorized(c, "Organization context is required")
		return
	}
	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
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

	report, err := h.reports.GetArrearsAging(c.Request.Context(), organizationID, propertyID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}
