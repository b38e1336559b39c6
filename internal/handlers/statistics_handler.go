package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/stats"
)

type StatisticsHandler struct {
	agg *stats.Aggregator
	key string
}

// NewStatisticsHandler serves the shop dashboard and the internal refresh
// endpoint. An empty key disables the internal endpoint.
func NewStatisticsHandler(agg *stats.Aggregator, key string) *StatisticsHandler {
	return &StatisticsHandler{agg: agg, key: key}
}

func (h *StatisticsHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	tid := tenantID(c)

	s, err := h.agg.Get(ctx, tid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s, err = h.agg.Recompute(ctx, tid)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}

// Refresh recomputes one tenant (tenant_id query) or all active tenants.
func (h *StatisticsHandler) Refresh(c *gin.Context) {
	if !h.authorized(c.GetHeader("Authorization")) {
		httperr.Unauthorized(c, "unauthorized", "Invalid function key.")
		return
	}

	ctx := c.Request.Context()

	if raw := c.Query("tenant_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			httperr.BadRequest(c, "invalid_tenant_id", "Invalid tenant id.")
			return
		}
		s, err := h.agg.Recompute(ctx, uint(id))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
		return
	}

	if err := h.agg.RecomputeAll(ctx); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"refreshed": "all"})
}

func (h *StatisticsHandler) authorized(header string) bool {
	if h.key == "" {
		return false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.key)) == 1
}
