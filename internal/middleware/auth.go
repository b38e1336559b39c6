package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/tenant"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/identity"
)

const (
	ContextUserID   = "userID"
	ContextTenantID = "tenantID"
	ContextUserRole = "userRole"
)

// AuthMiddleware validates the bearer token and attaches the principal to
// both the gin context and the request context.
func AuthMiddleware(issuer *identity.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Authorization header is required.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Expected a bearer token.")
			return
		}

		principal, err := issuer.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Token is invalid or expired.")
			return
		}

		c.Set(ContextUserID, principal.ID)
		c.Set(ContextUserRole, principal.Role)
		c.Request = c.Request.WithContext(identity.WithPrincipal(c.Request.Context(), principal))

		c.Next()
	}
}

// TenantMiddleware resolves the caller's tenant. It must run after
// AuthMiddleware.
func TenantMiddleware(resolver *tenant.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := identity.CurrentPrincipal(c.Request.Context())

		tenantID, err := resolver.Resolve(c.Request.Context(), principal)
		if errors.Is(err, tenant.ErrTenantNotFound) {
			httperr.Abort(c, http.StatusForbidden, "tenant_not_found", "No shop is linked to this account.")
			return
		}
		if err != nil {
			_ = c.Error(err)
			httperr.Abort(c, http.StatusInternalServerError, "tenant_resolution_failed", "Could not resolve the shop.")
			return
		}

		c.Set(ContextTenantID, tenantID)
		c.Next()
	}
}

func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !identity.CurrentPrincipal(c.Request.Context()).HasRole(roles...) {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "Insufficient role.")
			return
		}
		c.Next()
	}
}
