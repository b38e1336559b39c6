package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the unauthenticated booking pages, keyed by shop code.
type PublicHandler struct {
	db           *gorm.DB
	create       *appointment.CreateAppointment
	availability *appointment.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	create *appointment.CreateAppointment,
	availability *appointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		create:       create,
		availability: availability,
	}
}

type PublicCreateAppointmentRequest struct {
	PersonnelID   uint   `json:"personnel_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	ServiceIDs    []uint `json:"service_ids" binding:"required,min=1"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required"` // HH:mm
	Notes         string `json:"notes"`
}

// shop loads the active tenant named by the :code path parameter.
func (h *PublicHandler) shop(c *gin.Context) (*models.Tenant, bool) {
	code := strings.ToLower(strings.TrimSpace(c.Param("code")))

	var shop models.Tenant
	if err := h.db.WithContext(c.Request.Context()).
		Where("code = ? AND active = ?", code, true).
		First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "tenant_not_found", "Shop not found.")
			return nil, false
		}
		writeError(c, err)
		return nil, false
	}
	return &shop, true
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	q := h.db.WithContext(c.Request.Context()).
		Where("tenant_id = ? AND active = ?", shop.ID, true)

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("display_order ASC, id ASC").Find(&services).Error; err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shop":     shop,
		"services": services,
	})
}

func (h *PublicHandler) ListPersonnel(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	var staff []models.Personnel
	if err := h.db.WithContext(c.Request.Context()).
		Select("id", "tenant_id", "name").
		Where("tenant_id = ? AND active = ?", shop.ID, true).
		Order("name ASC").
		Find(&staff).Error; err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, staff)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	in, ok := availabilityInput(c)
	if !ok {
		return
	}

	date, err := timezone.ParseDate(shop.Timezone, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}
	in.TenantID = shop.ID
	in.Date = date

	slots, err := h.availability.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  c.Query("date"),
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		TenantID:      shop.ID,
		PersonnelID:   req.PersonnelID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		ServiceIDs:    req.ServiceIDs,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}
