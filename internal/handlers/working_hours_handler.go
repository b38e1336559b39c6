package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

func validClock(hm string) bool {
	if hm == "" {
		return true
	}
	_, err := time.Parse("15:04", hm)
	return err == nil
}

func (d WorkingDayConfig) valid() bool {
	for _, hm := range []string{d.StartTime, d.EndTime, d.LunchStart, d.LunchEnd} {
		if !validClock(hm) {
			return false
		}
	}
	if d.Active && (d.StartTime == "" || d.EndTime == "" || d.StartTime >= d.EndTime) {
		return false
	}
	return (d.LunchStart == "") == (d.LunchEnd == "")
}

// personnel loads the :id personnel of the caller's tenant.
func (h *WorkingHoursHandler) personnel(c *gin.Context) (uint, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return 0, false
	}

	var p models.Personnel
	if err := h.db.WithContext(c.Request.Context()).
		Select("id").
		Where("id = ? AND tenant_id = ?", id, tenantID(c)).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "personnel_not_found", "Personnel not found.")
			return 0, false
		}
		writeError(c, err)
		return 0, false
	}
	return p.ID, true
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	personnelID, ok := h.personnel(c)
	if !ok {
		return
	}

	var hours []models.WorkingHours
	if err := h.db.WithContext(c.Request.Context()).
		Where("personnel_id = ?", personnelID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	personnelID, ok := h.personnel(c)
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	seen := map[int]bool{}
	toCreate := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		if !d.valid() || seen[d.Weekday] {
			httperr.BadRequest(c, "invalid_working_hours", "Invalid or duplicated working day.")
			return
		}
		seen[d.Weekday] = true

		toCreate = append(toCreate, models.WorkingHours{
			PersonnelID: personnelID,
			Weekday:     d.Weekday,
			Active:      d.Active,
			StartTime:   d.StartTime,
			EndTime:     d.EndTime,
			LunchStart:  d.LunchStart,
			LunchEnd:    d.LunchEnd,
		})
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("personnel_id = ?", personnelID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCreate)
}
