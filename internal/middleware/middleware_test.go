package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/tenant"
	"github.com/BruksfildServices01/salon-scheduler/internal/identity"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type stubLookup struct {
	owner map[uint]uint
	err   error
}

func (s stubLookup) TenantIDByOwner(_ context.Context, userID uint) (uint, bool, error) {
	id, ok := s.owner[userID]
	return id, ok, s.err
}

func (s stubLookup) TenantIDByPersonnel(context.Context, uint) (uint, bool, error) {
	return 0, false, nil
}

func (s stubLookup) TenantIDByProfile(context.Context, uint) (uint, bool, error) {
	return 0, false, nil
}

func newRouter(lookup tenant.Lookup, roles ...string) (*gin.Engine, *identity.Issuer) {
	gin.SetMode(gin.TestMode)
	issuer := identity.NewIssuer("mw-secret")

	r := gin.New()
	r.Use(AuthMiddleware(issuer), RequireRole(roles...), TenantMiddleware(tenant.NewResolver(lookup)))
	r.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user":   c.GetUint(ContextUserID),
			"tenant": c.GetUint(ContextTenantID),
		})
	})
	return r, issuer
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r, issuer := newRouter(stubLookup{owner: map[uint]uint{7: 70}}, models.RoleAdmin)

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer abc").Code)

	token, err := issuer.Issue(&models.User{ID: 7, Role: models.RoleAdmin})
	require.NoError(t, err)

	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":7,"tenant":70}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	r, issuer := newRouter(stubLookup{owner: map[uint]uint{7: 70}}, models.RoleAdmin, models.RoleStaff)

	token, err := issuer.Issue(&models.User{ID: 7, Role: models.RoleCustomer})
	require.NoError(t, err)

	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "forbidden")
}

func TestTenantMiddleware(t *testing.T) {
	t.Run("no tenant", func(t *testing.T) {
		r, issuer := newRouter(stubLookup{}, models.RoleAdmin)
		token, err := issuer.Issue(&models.User{ID: 7, Role: models.RoleAdmin})
		require.NoError(t, err)

		w := get(r, "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "tenant_not_found")
	})

	t.Run("lookup failure", func(t *testing.T) {
		r, issuer := newRouter(stubLookup{err: errors.New("db down")}, models.RoleAdmin)
		token, err := issuer.Issue(&models.User{ID: 7, Role: models.RoleAdmin})
		require.NoError(t, err)

		w := get(r, "Bearer "+token)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestRequestIDAndAccessLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer

	r := gin.New()
	r.Use(RequestID(), AccessLog(logging.NewWithWriter(&buf, "test", "debug")))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(HeaderRequestID))
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
	assert.Contains(t, buf.String(), `"status":204`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://salon.app"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://salon.app")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://salon.app", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
