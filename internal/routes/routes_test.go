package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/stats"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
)

type app struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := testutil.NewDB(t)
	logger := logging.Discard()
	agg := stats.NewAggregator(infraRepo.NewStatisticsGormRepository(gdb), logger)

	r := gin.New()
	routes.RegisterRoutes(r, routes.Dependencies{
		DB:         gdb,
		Config:     &config.Config{JWTSecret: "test-secret", RetryMaxAttempts: 2, StatsFunctionKey: "fn-key"},
		Logger:     logger,
		Audit:      audit.Nop{},
		Refresher:  stats.NewRefresher(stats.NewLocalTrigger(agg), logger),
		Aggregator: agg,
		EmailCheck: func(string) bool { return true },
	})

	return &app{t: t, db: gdb, router: r}
}

func (a *app) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (a *app) register(code, email string) string {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"shop_name": "Salon " + code,
		"shop_code": code,
		"timezone":  "UTC",
		"name":      "Owner",
		"email":     email,
		"password":  "secret123",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	return decode[struct {
		Token string `json:"token"`
	}](a.t, w).Token
}

// seedCatalog creates one personnel working every day 09:00-18:00 and one
// service through the API.
func (a *app) seedCatalog(token string) (personnelID, serviceID uint) {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/me/personnel", token, map[string]any{
		"name":                  "Elif",
		"commission_percentage": 40,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	personnelID = decode[models.Personnel](a.t, w).ID

	w = a.do(http.MethodPost, "/api/me/services", token, map[string]any{
		"name":         "Haircut",
		"duration_min": 30,
		"price":        200,
		"point_value":  5,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	serviceID = decode[models.Service](a.t, w).ID

	days := make([]map[string]any, 0, 7)
	for d := 0; d < 7; d++ {
		days = append(days, map[string]any{
			"weekday": d, "active": true, "start_time": "09:00", "end_time": "18:00",
		})
	}
	w = a.do(http.MethodPut, fmt.Sprintf("/api/me/personnel/%d/working-hours", personnelID), token,
		map[string]any{"days": days})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	return personnelID, serviceID
}

func bookingDate() string {
	return time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
}

func TestHealth(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestPrivateRoutes_RequireToken(t *testing.T) {
	a := newApp(t)

	w := a.do(http.MethodGet, "/api/me/services", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodGet, "/api/me/services", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_DuplicateCode(t *testing.T) {
	a := newApp(t)
	a.register("studio", "one@salon.test")

	w := a.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"shop_name": "Other",
		"shop_code": "STUDIO",
		"name":      "Other",
		"email":     "two@salon.test",
		"password":  "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "code_already_exists")
}

func TestCompleteAppointment_DerivesOperationsAndStatistics(t *testing.T) {
	a := newApp(t)
	token := a.register("studio", "owner@salon.test")
	personnelID, serviceID := a.seedCatalog(token)

	// book as staff: starts confirmed
	w := a.do(http.MethodPost, "/api/me/appointments", token, map[string]any{
		"personnel_id":   personnelID,
		"customer_name":  "Zeynep",
		"customer_phone": "+905551112233",
		"service_ids":    []uint{serviceID},
		"date":           bookingDate(),
		"time":           "10:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ap := decode[models.Appointment](t, w)
	assert.Equal(t, "confirmed", ap.Status)

	// same slot again conflicts
	w = a.do(http.MethodPost, "/api/me/appointments", token, map[string]any{
		"personnel_id":   personnelID,
		"customer_name":  "Deniz",
		"customer_phone": "+905559998877",
		"service_ids":    []uint{serviceID},
		"date":           bookingDate(),
		"time":           "10:15",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "time_conflict")

	statusPath := fmt.Sprintf("/api/me/appointments/%d/status", ap.ID)
	w = a.do(http.MethodPatch, statusPath, token, map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	res := decode[struct {
		Changed    bool               `json:"changed"`
		Operations []models.Operation `json:"operations"`
	}](t, w)
	assert.True(t, res.Changed)
	require.Len(t, res.Operations, 1)
	assert.Equal(t, 200.0, res.Operations[0].Amount)
	assert.Equal(t, 80.0, res.Operations[0].PaidAmount)
	assert.Equal(t, 5, res.Operations[0].Points)
	assert.Equal(t, "Haircut performed - Zeynep (Appointment #"+fmt.Sprint(ap.ID)+")", res.Operations[0].Description)

	// completing again reconciles without duplicating
	w = a.do(http.MethodPatch, statusPath, token, map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodGet, "/api/me/operations", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Total int64 `json:"total"`
	}](t, w)
	assert.Equal(t, int64(1), list.Total)

	// terminal
	w = a.do(http.MethodPatch, statusPath, token, map[string]any{"status": "cancelled"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_transition")

	w = a.do(http.MethodGet, "/api/me/statistics", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	st := decode[models.ShopStatistics](t, w)
	assert.Equal(t, int64(1), st.CompletedAppointments)
	assert.Equal(t, int64(1), st.TotalOperations)
	assert.Equal(t, 200.0, st.TotalRevenue)
}

func TestSetStatus_UnknownStatusAndMissingAppointment(t *testing.T) {
	a := newApp(t)
	token := a.register("studio", "owner@salon.test")

	w := a.do(http.MethodPatch, "/api/me/appointments/999/status", token, map[string]any{"status": "done"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_status")

	w = a.do(http.MethodPatch, "/api/me/appointments/999/status", token, map[string]any{"status": "completed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "appointment_not_found")

	w = a.do(http.MethodPatch, "/api/me/appointments/abc/status", token, map[string]any{"status": "completed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_id")
}

func TestTenantIsolation_OtherShopResources(t *testing.T) {
	a := newApp(t)
	tokenA := a.register("alpha", "alpha@salon.test")
	tokenB := a.register("beta", "beta@salon.test")
	_, serviceA := a.seedCatalog(tokenA)

	w := a.do(http.MethodPatch, fmt.Sprintf("/api/me/services/%d", serviceA), tokenB, map[string]any{"name": "Stolen"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodGet, "/api/me/services", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.Service](t, w))
}

func TestPublicBooking_StartsPending(t *testing.T) {
	a := newApp(t)
	token := a.register("studio", "owner@salon.test")
	personnelID, serviceID := a.seedCatalog(token)

	w := a.do(http.MethodGet, "/api/public/studio/services", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Haircut")

	w = a.do(http.MethodGet, fmt.Sprintf("/api/public/studio/availability?date=%s&personnel_id=%d&service_ids=%d",
		bookingDate(), personnelID, serviceID), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	slots := decode[struct {
		Slots []struct {
			Start string `json:"start"`
		} `json:"slots"`
	}](t, w).Slots
	require.NotEmpty(t, slots)
	assert.Equal(t, "09:00", slots[0].Start)

	w = a.do(http.MethodPost, "/api/public/studio/appointments", "", map[string]any{
		"personnel_id":   personnelID,
		"customer_name":  "Zeynep",
		"customer_phone": "+905551112233",
		"service_ids":    []uint{serviceID},
		"date":           bookingDate(),
		"time":           "11:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "pending", decode[models.Appointment](t, w).Status)

	w = a.do(http.MethodGet, "/api/public/nowhere/services", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInternalStatsRefresh_RequiresKey(t *testing.T) {
	a := newApp(t)
	a.register("studio", "owner@salon.test")

	w := a.do(http.MethodPost, "/api/internal/stats/refresh", "wrong", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/api/internal/stats/refresh", "fn-key", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	require.NoError(t, a.db.Model(&models.ShopStatistics{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestStaffCannotReachAdminRoutes(t *testing.T) {
	a := newApp(t)
	a.register("studio", "owner@salon.test")

	var shop models.Tenant
	require.NoError(t, a.db.Where("code = ?", "studio").First(&shop).Error)

	staffUser := models.User{Name: "Staff", Email: "staff@salon.test", PasswordHash: "x", Role: models.RoleStaff}
	require.NoError(t, a.db.Create(&staffUser).Error)
	require.NoError(t, a.db.Create(&models.Personnel{TenantID: shop.ID, UserID: &staffUser.ID, Name: "Staff", Active: true}).Error)

	staffToken := issueToken(t, &staffUser)

	w := a.do(http.MethodGet, "/api/me/services", staffToken, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/api/me/services", staffToken, map[string]any{"name": "X", "duration_min": 10})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodGet, "/api/me/audit-logs", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
