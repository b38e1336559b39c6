package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/tenant"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/identity"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type MeHandler struct {
	db       *gorm.DB
	resolver *tenant.Resolver
}

func NewMeHandler(db *gorm.DB, resolver *tenant.Resolver) *MeHandler {
	return &MeHandler{db: db, resolver: resolver}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()
	principal := identity.CurrentPrincipal(ctx)

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, principal.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		writeError(c, err)
		return
	}

	resp := gin.H{"user": user}

	var profile models.Profile
	if err := h.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
		resp["profile"] = profile
	}

	tid, err := h.resolver.Resolve(ctx, principal)
	switch {
	case err == nil:
		var shop models.Tenant
		if err := h.db.WithContext(ctx).First(&shop, tid).Error; err == nil {
			resp["tenant"] = shop
		}
	case !errors.Is(err, tenant.ErrTenantNotFound):
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
