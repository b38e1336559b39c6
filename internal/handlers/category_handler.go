package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CategoryHandler struct {
	db *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{db: db}
}

type CreateCategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	DisplayOrder int    `json:"display_order"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	var list []models.Category
	if err := h.db.WithContext(c.Request.Context()).
		Where("tenant_id = ?", tenantID(c)).
		Order("display_order ASC, name ASC").
		Find(&list).Error; err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	cat := models.Category{
		TenantID:     tenantID(c),
		Name:         strings.TrimSpace(req.Name),
		DisplayOrder: req.DisplayOrder,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&cat).Error; err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}
