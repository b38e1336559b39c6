package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	DurationMin  int      `json:"duration_min" binding:"required,min=1"`
	Price        *float64 `json:"price" binding:"omitempty,min=0"`
	Cost         *float64 `json:"cost" binding:"omitempty,min=0"`
	PointValue   *int     `json:"point_value" binding:"omitempty,min=0"`
	CategoryID   *uint    `json:"category_id"`
	DisplayOrder int      `json:"display_order"`
}

type UpdateServiceRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	DurationMin  *int     `json:"duration_min,omitempty" binding:"omitempty,min=1"`
	Price        *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	Cost         *float64 `json:"cost,omitempty" binding:"omitempty,min=0"`
	PointValue   *int     `json:"point_value,omitempty" binding:"omitempty,min=0"`
	CategoryID   *uint    `json:"category_id,omitempty"`
	DisplayOrder *int     `json:"display_order,omitempty"`
	Active       *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Where("tenant_id = ?", tenantID(c))

	if cat, err := strconv.ParseUint(c.Query("category_id"), 10, 64); err == nil {
		q = q.Where("category_id = ?", cat)
	}

	switch activeStr {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.
		Order("display_order ASC, id ASC").
		Find(&services).Error; err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !h.categoryBelongs(c, req.CategoryID) {
		return
	}

	svc := models.Service{
		TenantID:     tenantID(c),
		CategoryID:   req.CategoryID,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		DurationMin:  req.DurationMin,
		Price:        req.Price,
		Cost:         req.Cost,
		PointValue:   req.PointValue,
		DisplayOrder: req.DisplayOrder,
		Active:       true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&svc).Error; err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND tenant_id = ?", id, tenantID(c)).
		First(&svc).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		writeError(c, err)
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.CategoryID != nil {
		if !h.categoryBelongs(c, req.CategoryID) {
			return
		}
		svc.CategoryID = req.CategoryID
	}
	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMin != nil {
		svc.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		svc.Price = req.Price
	}
	if req.Cost != nil {
		svc.Cost = req.Cost
	}
	if req.PointValue != nil {
		svc.PointValue = req.PointValue
	}
	if req.DisplayOrder != nil {
		svc.DisplayOrder = *req.DisplayOrder
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&svc).Error; err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) categoryBelongs(c *gin.Context, categoryID *uint) bool {
	if categoryID == nil {
		return true
	}

	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Category{}).
		Where("id = ? AND tenant_id = ?", *categoryID, tenantID(c)).
		Count(&count).Error; err != nil {
		writeError(c, err)
		return false
	}
	if count == 0 {
		httperr.NotFound(c, "category_not_found", "Category not found.")
		return false
	}
	return true
}
