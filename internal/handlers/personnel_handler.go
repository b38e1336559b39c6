package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type PersonnelHandler struct {
	db *gorm.DB
}

func NewPersonnelHandler(db *gorm.DB) *PersonnelHandler {
	return &PersonnelHandler{db: db}
}

type PersonnelRequest struct {
	Name                 *string  `json:"name"`
	Phone                *string  `json:"phone"`
	Email                *string  `json:"email"`
	UserID               *uint    `json:"user_id"`
	CommissionPercentage *float64 `json:"commission_percentage"`
	Active               *bool    `json:"active"`
}

func (r PersonnelRequest) apply(p *models.Personnel) string {
	if r.Name != nil {
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.Phone != nil {
		p.Phone = *r.Phone
	}
	if r.Email != nil {
		p.Email = *r.Email
	}
	if r.UserID != nil {
		p.UserID = r.UserID
	}
	if r.CommissionPercentage != nil {
		if *r.CommissionPercentage < 0 || *r.CommissionPercentage > 100 {
			return "invalid_commission"
		}
		p.CommissionPercentage = *r.CommissionPercentage
	}
	if r.Active != nil {
		p.Active = *r.Active
	}
	if p.Name == "" {
		return "name_required"
	}
	return ""
}

func (h *PersonnelHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Where("tenant_id = ?", tenantID(c))
	if c.Query("active") == "true" {
		q = q.Where("active = ?", true)
	}

	var list []models.Personnel
	if err := q.Order("name ASC").Find(&list).Error; err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PersonnelHandler) Create(c *gin.Context) {
	var req PersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	p := models.Personnel{TenantID: tenantID(c), Active: true}
	if code := req.apply(&p); code != "" {
		httperr.BadRequest(c, code, humanize(code))
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&p).Error; err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PersonnelHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var p models.Personnel
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND tenant_id = ?", id, tenantID(c)).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "personnel_not_found", "Personnel not found.")
			return
		}
		writeError(c, err)
		return
	}

	var req PersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if code := req.apply(&p); code != "" {
		httperr.BadRequest(c, code, humanize(code))
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&p).Error; err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
