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

const testSecret = "middleware-test-secret"

func issueToken(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	tok, err := utils.NewSessionToken(testSecret, model.User{
		ScholarID: 7,
		Username:  "mdlsantos",
		Email:     "maria@example.com",
		Role:      role,
	}, ttl)
	require.NoError(t, err)
	return tok.Token
}

// invoke runs a request through the given middleware chain with a
// terminal handler that records the identity it sees.
func invoke(t *testing.T, req *http.Request, mws ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Map) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen echo.Map
	h := func(c echo.Context) error {
		seen = echo.Map{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
			"email":   c.Get("email"),
		}
		return c.NoContent(http.StatusOK)
	}
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	require.NoError(t, h(c))
	return rec, seen
}

func TestJWTAuthMissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/grades", nil)
	rec, _ := invoke(t, req, middleware.JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/grades", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec, _ := invoke(t, req, middleware.JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/grades", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, model.RoleUser, -time.Minute))
	rec, _ := invoke(t, req, middleware.JWTAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthBearerHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/grades", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, model.RoleUser, time.Hour))
	rec, seen := invoke(t, req, middleware.JWTAuth(testSecret))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(7), seen["user_id"])
	assert.Equal(t, model.RoleUser, seen["role"])
	assert.Equal(t, "maria@example.com", seen["email"])
}

func TestJWTAuthSessionCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/grades", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: issueToken(t, model.RoleAdmin, time.Hour)})
	rec, seen := invoke(t, req, middleware.JWTAuth(testSecret))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.RoleAdmin, seen["role"])
}
