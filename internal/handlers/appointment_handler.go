package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	repo         domain.Repository
	create       *appointment.CreateAppointment
	setStatus    *appointment.SetStatus
	list         *appointment.ListAppointments
	availability *appointment.GetAvailability
}

func NewAppointmentHandler(
	repo domain.Repository,
	create *appointment.CreateAppointment,
	setStatus *appointment.SetStatus,
	list *appointment.ListAppointments,
	availability *appointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:         repo,
		create:       create,
		setStatus:    setStatus,
		list:         list,
		availability: availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PersonnelID   uint   `json:"personnel_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	ServiceIDs    []uint `json:"service_ids" binding:"required,min=1"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required"` // HH:mm
	Notes         string `json:"notes"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	actor := userID(c)
	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		TenantID:      tenantID(c),
		PersonnelID:   req.PersonnelID,
		ActorID:       &actor,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		ServiceIDs:    req.ServiceIDs,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
		BookedByStaff: true,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST
// ======================================================

// personnelFilter reads the optional personnel_id query parameter.
func personnelFilter(c *gin.Context) (*uint, bool) {
	raw := strings.TrimSpace(c.Query("personnel_id"))
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_personnel_id", "Invalid personnel id.")
		return nil, false
	}
	v := uint(id)
	return &v, true
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	personnelID, ok := personnelFilter(c)
	if !ok {
		return
	}

	items, err := h.list.ByDate(c.Request.Context(), tenantID(c), personnelID, date)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	personnelID, ok := personnelFilter(c)
	if !ok {
		return
	}

	items, err := h.list.ByMonth(c.Request.Context(), tenantID(c), personnelID, year, month)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": items,
	})
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) SetStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	res, err := h.setStatus.Execute(c.Request.Context(), appointment.SetStatusInput{
		TenantID:      tenantID(c),
		ActorID:       userID(c),
		AppointmentID: id,
		Status:        strings.ToLower(strings.TrimSpace(req.Status)),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	tid := tenantID(c)

	in, ok := availabilityInput(c)
	if !ok {
		return
	}

	shop, err := h.repo.GetTenantByID(c.Request.Context(), tid)
	if err != nil {
		writeError(c, err)
		return
	}

	date, err := timezone.ParseDate(shop.Timezone, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}
	in.TenantID = tid
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

// availabilityInput reads personnel_id and the comma separated service_ids.
func availabilityInput(c *gin.Context) (domain.AvailabilityInput, bool) {
	var in domain.AvailabilityInput

	pid, err := strconv.ParseUint(c.Query("personnel_id"), 10, 64)
	if err != nil || pid == 0 {
		httperr.BadRequest(c, "invalid_personnel_id", "Invalid personnel id.")
		return in, false
	}
	in.PersonnelID = uint(pid)

	for _, raw := range strings.Split(c.Query("service_ids"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			httperr.BadRequest(c, "invalid_service_ids", "Invalid service ids.")
			return in, false
		}
		in.ServiceIDs = append(in.ServiceIDs, uint(id))
	}
	if len(in.ServiceIDs) == 0 {
		httperr.BadRequest(c, "services_required", "At least one service is required.")
		return in, false
	}

	return in, true
}
