package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmbfi/scholar-portal/internal/auth"
	"github.com/fmbfi/scholar-portal/internal/handler"
	"github.com/fmbfi/scholar-portal/internal/model"
	"github.com/fmbfi/scholar-portal/internal/utils"
)

// fakeProvider stands in for Google: it records the state it was asked to
// embed and returns a canned identity assertion for code "good-code".
type fakeProvider struct {
	info        *auth.UserInfo
	exchangeErr error
	lastState   string
}

func (f *fakeProvider) LoginURL(state string) string {
	f.lastState = state
	return "https://provider.example/consent?state=" + url.QueryEscape(state)
}

func (f *fakeProvider) Exchange(ctx context.Context, code string) (*auth.UserInfo, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	if code != "good-code" {
		return nil, errors.New("invalid code")
	}
	return f.info, nil
}

var _ auth.Provider = (*fakeProvider)(nil)

const oauthErrorLocation = "/auth/login?error=OAuthSignin"

func oauthGet(t *testing.T, h echo.HandlerFunc, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func stateCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "fmbfi_oauth_state" {
			return ck
		}
	}
	t.Fatal("no state cookie set")
	return nil
}

func TestOAuthLoginRedirectsToProvider(t *testing.T) {
	p := &fakeProvider{}
	h := handler.NewOAuthHandler(testConfig(), newFakeUserStore(), p)

	rec := oauthGet(t, h.Login, "/v1/auth/google/login")
	require.Equal(t, http.StatusFound, rec.Code)

	ck := stateCookieFrom(t, rec)
	assert.NotEmpty(t, ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, ck.Value, p.lastState, "redirect carries the state planted in the cookie")
	assert.Contains(t, rec.Header().Get("Location"), "https://provider.example/consent")
}

func TestOAuthCallbackUnknownEmailFailsClosed(t *testing.T) {
	store := newFakeUserStore()
	p := &fakeProvider{info: &auth.UserInfo{ProviderUserID: "g-1", Email: "stranger@fmbfi.test", Name: "Stranger"}}
	h := handler.NewOAuthHandler(testConfig(), store, p)

	state := &http.Cookie{Name: "fmbfi_oauth_state", Value: "abc123"}
	rec := oauthGet(t, h.Callback, "/v1/auth/google/callback?state=abc123&code=good-code", state)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, oauthErrorLocation, rec.Header().Get("Location"))

	// The assertion must never provision an account.
	_, err := store.GetByEmail(context.Background(), "stranger@fmbfi.test")
	assert.Error(t, err)
	// And no session cookie is set on the failure path.
	for _, ck := range rec.Result().Cookies() {
		assert.NotEqual(t, utils.SessionCookieName, ck.Name)
	}
}

func TestOAuthCallbackKnownEmailSignsIn(t *testing.T) {
	store := newFakeUserStore()
	store.add("scholar@fmbfi.test", "unused", model.RoleAdmin)
	p := &fakeProvider{info: &auth.UserInfo{ProviderUserID: "g-2", Email: "scholar@fmbfi.test", Name: "Scholar"}}
	cfg := testConfig()
	h := handler.NewOAuthHandler(cfg, store, p)

	state := &http.Cookie{Name: "fmbfi_oauth_state", Value: "xyz789"}
	rec := oauthGet(t, h.Callback, "/v1/auth/google/callback?state=xyz789&code=good-code", state)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))

	var session *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == utils.SessionCookieName {
			session = ck
		}
	}
	require.NotNil(t, session)
	claims, err := utils.ParseSessionToken(cfg.JWTSecret, session.Value)
	require.NoError(t, err)
	assert.Equal(t, "scholar@fmbfi.test", claims.Email)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestOAuthCallbackStateMismatch(t *testing.T) {
	store := newFakeUserStore()
	store.add("scholar@fmbfi.test", "unused", model.RoleUser)
	p := &fakeProvider{info: &auth.UserInfo{Email: "scholar@fmbfi.test"}}
	h := handler.NewOAuthHandler(testConfig(), store, p)

	cases := []struct {
		name   string
		target string
		cookie *http.Cookie
	}{
		{"missing state", "/v1/auth/google/callback?code=good-code", &http.Cookie{Name: "fmbfi_oauth_state", Value: "abc"}},
		{"missing code", "/v1/auth/google/callback?state=abc", &http.Cookie{Name: "fmbfi_oauth_state", Value: "abc"}},
		{"wrong cookie value", "/v1/auth/google/callback?state=abc&code=good-code", &http.Cookie{Name: "fmbfi_oauth_state", Value: "other"}},
		{"no cookie", "/v1/auth/google/callback?state=abc&code=good-code", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var rec *httptest.ResponseRecorder
			if tc.cookie != nil {
				rec = oauthGet(t, h.Callback, tc.target, tc.cookie)
			} else {
				rec = oauthGet(t, h.Callback, tc.target)
			}
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, oauthErrorLocation, rec.Header().Get("Location"))
		})
	}
}

func TestOAuthCallbackExchangeFailure(t *testing.T) {
	store := newFakeUserStore()
	store.add("scholar@fmbfi.test", "unused", model.RoleUser)
	p := &fakeProvider{exchangeErr: errors.New("provider unavailable")}
	h := handler.NewOAuthHandler(testConfig(), store, p)

	state := &http.Cookie{Name: "fmbfi_oauth_state", Value: "abc123"}
	rec := oauthGet(t, h.Callback, "/v1/auth/google/callback?state=abc123&code=good-code", state)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, oauthErrorLocation, rec.Header().Get("Location"))
}
