package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/operation"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/tenant"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/imaging"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	opusecase "github.com/BruksfildServices01/salon-scheduler/internal/usecase/operation"
)

var conflictCodes = map[string]bool{
	"time_conflict":        true,
	"invalid_transition":   true,
	"appointment_busy":     true,
	"code_already_exists":  true,
	"email_already_exists": true,
}

// businessStatus maps a business code to its HTTP status.
func businessStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "_not_found"):
		return http.StatusNotFound
	case conflictCodes[code]:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// writeError renders err as {"error_code","message"}. Unknown errors are
// attached to the context for the access log and reported as 500.
func writeError(c *gin.Context, err error) {
	if code, ok := httperr.Code(err); ok {
		httperr.Write(c, businessStatus(code), code, humanize(code))
		return
	}

	switch {
	case errors.Is(err, tenant.ErrTenantNotFound):
		httperr.Forbidden(c, "tenant_not_found", "No shop is linked to this account.")
	case errors.Is(err, operation.ErrCrossTenantViolation):
		_ = c.Error(err)
		httperr.Forbidden(c, "cross_tenant_violation", "Personnel does not belong to this shop.")
	case errors.Is(err, operation.ErrOperationNotFound):
		httperr.NotFound(c, "operation_not_found", "Operation not found.")
	case errors.Is(err, opusecase.ErrTooManyPhotos):
		httperr.BadRequest(c, "photo_limit_reached", "This operation already has the maximum number of photos.")
	case errors.Is(err, storage.ErrNotConfigured):
		httperr.Write(c, http.StatusServiceUnavailable, "storage_not_configured", "Photo storage is not configured.")
	case errors.Is(err, imaging.ErrUnsupportedImage):
		httperr.BadRequest(c, "unsupported_image", "Only JPEG and PNG images are accepted.")
	default:
		_ = c.Error(err)
		var writeErr *operation.StoreWriteError
		if errors.As(err, &writeErr) {
			httperr.Internal(c, "operation_write_failed", "Could not record the operations.")
			return
		}
		httperr.Internal(c, "internal_error", "Unexpected error.")
	}
}

func humanize(code string) string {
	s := strings.ReplaceAll(code, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

func tenantID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextTenantID).(uint)
}

func userID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}
