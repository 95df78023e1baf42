package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/propman/backend/internal/infrastructure/logger"
	"github.com/propman/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Organization context keys
const (
	OrganizationIDKey     = "organization_id"
	OrganizationHeaderKey = "X-Organization-ID"
)

// OrganizationMiddlewareConfig holds configuration for organization middleware
type OrganizationMiddlewareConfig struct {
	// HeaderEnabled enables X-Organization-ID header extraction as a fallback
	HeaderEnabled bool
	// JWTEnabled enables JWT claim extraction (requires JWT middleware to run first)
	JWTEnabled bool
	// SkipPaths are paths that don't require organization context
	SkipPaths []string
	// Required determines if organization context is mandatory
	Required bool
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultOrganizationConfig returns default organization middleware configuration
func DefaultOrganizationConfig() OrganizationMiddlewareConfig {
	return OrganizationMiddlewareConfig{
		HeaderEnabled: true,
		JWTEnabled:    true,
		SkipPaths:     []string{"/health", "/healthz", "/ready", "/api/v1/health"},
		Required:      true,
		Logger:        nil,
	}
}

// OrganizationMiddleware extracts the acting organization from the request.
// Extraction order: JWT claims > X-Organization-ID header.
func OrganizationMiddleware() gin.HandlerFunc {
	return OrganizationMiddlewareWithConfig(DefaultOrganizationConfig())
}

// OrganizationMiddlewareWithConfig returns organization middleware with custom configuration
func OrganizationMiddlewareWithConfig(cfg OrganizationMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		var organizationID string
		if cfg.JWTEnabled {
			organizationID = GetJWTOrganizationID(c)
		}
		if organizationID == "" && cfg.HeaderEnabled {
			organizationID = c.GetHeader(OrganizationHeaderKey)
		}

		if organizationID == "" {
			if cfg.Required {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Organization context is required"))
				return
			}
			c.Next()
			return
		}

		parsed, err := uuid.Parse(organizationID)
		if err != nil || parsed == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrCodeBadRequest, "Invalid organization ID"))
			return
		}

		c.Set(OrganizationIDKey, parsed)

		// Enrich the request-scoped context and logger with the organization.
		reqLogger := logger.FromContext(c.Request.Context())
		ctx, _ := logger.WithOrganizationID(c.Request.Context(), reqLogger, parsed.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetOrganizationID retrieves the parsed organization ID from gin.Context
func GetOrganizationID(c *gin.Context) (uuid.UUID, bool) {
	if v, exists := c.Get(OrganizationIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id, true
		}
	}
	return uuid.Nil, false
}
