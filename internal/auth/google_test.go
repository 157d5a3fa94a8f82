package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmbfi/scholar-portal/internal/auth"
)

func stubGoogle(t *testing.T, userInfoStatus int, userInfoBody string) *auth.GoogleProvider {
	t.Helper()

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostFormValue("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		assert.Equal(t, "authorization_code", r.PostFormValue("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"stub-access","token_type":"Bearer","expires_in":3600}`))
	}))
	t.Cleanup(tokenSrv.Close)

	infoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer stub-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(userInfoStatus)
		w.Write([]byte(userInfoBody))
	}))
	t.Cleanup(infoSrv.Close)

	return auth.NewGoogleProvider(auth.GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "https://portal.fmbfi.test/v1/auth/google/callback",
		AuthURL:      "https://accounts.google.test/auth",
		TokenURL:     tokenSrv.URL,
		UserInfoURL:  infoSrv.URL,
	})
}

func TestGoogleLoginURL(t *testing.T) {
	p := auth.NewGoogleProvider(auth.GoogleConfig{
		ClientID:    "client-id",
		RedirectURL: "https://portal.fmbfi.test/v1/auth/google/callback",
		AuthURL:     "https://accounts.google.test/auth",
	})

	raw := p.LoginURL("state-123")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "https://portal.fmbfi.test/v1/auth/google/callback", q.Get("redirect_uri"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "openid email profile", q.Get("scope"))
	assert.Equal(t, "state-123", q.Get("state"))
}

func TestGoogleExchange(t *testing.T) {
	p := stubGoogle(t, http.StatusOK, `{"sub":"g-42","email":"scholar@fmbfi.test","name":"Scholar"}`)

	info, err := p.Exchange(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "g-42", info.ProviderUserID)
	assert.Equal(t, "scholar@fmbfi.test", info.Email)
	assert.Equal(t, "Scholar", info.Name)
}

func TestGoogleExchangeBadCode(t *testing.T) {
	p := stubGoogle(t, http.StatusOK, `{}`)

	_, err := p.Exchange(context.Background(), "stolen-code")
	assert.Error(t, err)
}

func TestGoogleExchangeRejectsEmptyEmail(t *testing.T) {
	p := stubGoogle(t, http.StatusOK, `{"sub":"g-42","name":"No Email"}`)

	_, err := p.Exchange(context.Background(), "good-code")
	assert.Error(t, err)
}

func TestGoogleExchangeUserInfoFailure(t *testing.T) {
	p := stubGoogle(t, http.StatusInternalServerError, `{"error":"backend"}`)

	_, err := p.Exchange(context.Background(), "good-code")
	assert.Error(t, err)
}
