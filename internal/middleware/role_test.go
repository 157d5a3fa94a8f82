package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmbfi/scholar-portal/internal/middleware"
	"github.com/fmbfi/scholar-portal/internal/model"
	"github.com/fmbfi/scholar-portal/internal/utils"
)

func TestRequireRoleAllows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/students", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", model.RoleAdmin)

	h := middleware.RequireRole(model.RoleAdmin)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleForbids(t *testing.T) {
	for _, role := range []interface{}{model.RoleUser, "Superuser", nil, 5} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/v1/students", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}

		h := middleware.RequireRole(model.RoleAdmin)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusForbidden, rec.Code, "role %v", role)
	}
}

// gateRequest runs one request with an optional session cookie through a
// RoleGate protecting the given role and reports status plus Location.
func gateRequest(t *testing.T, requiredRole, token string) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := middleware.RoleGate(testSecret, requiredRole)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec.Code, rec.Header().Get("Location")
}

func TestRoleGateUnauthenticated(t *testing.T) {
	code, loc := gateRequest(t, model.RoleUser, "")
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/auth/login", loc)
}

func TestRoleGateExpiredSession(t *testing.T) {
	code, loc := gateRequest(t, model.RoleUser, issueToken(t, model.RoleUser, -time.Minute))
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/auth/login", loc)
}

func TestRoleGateWrongRoleRedirectsHome(t *testing.T) {
	// A student hitting an Admin page always lands on the student
	// dashboard, never the admin one.
	code, loc := gateRequest(t, model.RoleAdmin, issueToken(t, model.RoleUser, time.Hour))
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/user/dashboard", loc)

	code, loc = gateRequest(t, model.RoleUser, issueToken(t, model.RoleAdmin, time.Hour))
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/admin/dashboard", loc)
}

func TestRoleGateUnrecognizedRoleRedirectsRoot(t *testing.T) {
	code, loc := gateRequest(t, model.RoleAdmin, issueToken(t, "Superuser", time.Hour))
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/", loc)
}

func TestRoleGateAuthorized(t *testing.T) {
	code, _ := gateRequest(t, model.RoleUser, issueToken(t, model.RoleUser, time.Hour))
	assert.Equal(t, http.StatusOK, code)
}
