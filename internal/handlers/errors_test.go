package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/operation"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/tenant"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/storage"
)

func TestBusinessStatus(t *testing.T) {
	cases := map[string]int{
		"appointment_not_found": http.StatusNotFound,
		"service_not_found":     http.StatusNotFound,
		"time_conflict":         http.StatusConflict,
		"invalid_transition":    http.StatusConflict,
		"appointment_busy":      http.StatusConflict,
		"too_soon":              http.StatusBadRequest,
		"invalid_status":        http.StatusBadRequest,
	}
	for code, want := range cases {
		assert.Equal(t, want, businessStatus(code), code)
	}
}

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"business", fmt.Errorf("set status: %w", httperr.ErrBusiness("invalid_transition")), http.StatusConflict, "invalid_transition"},
		{"tenant", tenant.ErrTenantNotFound, http.StatusForbidden, "tenant_not_found"},
		{"cross tenant", &operation.CrossTenantError{AppointmentID: 9, PersonnelID: 3, ActingTenantID: 1, PersonnelTenant: 2}, http.StatusForbidden, "cross_tenant_violation"},
		{"store write", &operation.StoreWriteError{Op: "insert", Err: errors.New("disk full")}, http.StatusInternalServerError, "operation_write_failed"},
		{"storage", storage.ErrNotConfigured, http.StatusServiceUnavailable, "storage_not_configured"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			writeError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error_code":"`+tc.code+`"`)
		})
	}
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Time conflict.", humanize("time_conflict"))
	assert.Equal(t, "", humanize(""))
}

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "0"}}

	_, ok := parseID(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := parseID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)
}

func TestWorkingDayConfigValid(t *testing.T) {
	assert.True(t, WorkingDayConfig{Active: true, StartTime: "09:00", EndTime: "18:00", LunchStart: "12:00", LunchEnd: "13:00"}.valid())
	assert.True(t, WorkingDayConfig{Active: false}.valid())
	assert.False(t, WorkingDayConfig{Active: true, StartTime: "18:00", EndTime: "09:00"}.valid())
	assert.False(t, WorkingDayConfig{Active: true, StartTime: "9am", EndTime: "18:00"}.valid())
	assert.False(t, WorkingDayConfig{Active: true, StartTime: "09:00", EndTime: "18:00", LunchStart: "12:00"}.valid())
}
