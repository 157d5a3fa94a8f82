package handler

import (
    "context"
    "crypto/rand"
    "encoding/hex"
    "errors"
    "log"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/fmbfi/scholar-portal/internal/auth"
    "github.com/fmbfi/scholar-portal/internal/config"
    "github.com/fmbfi/scholar-portal/internal/model"
    "github.com/fmbfi/scholar-portal/internal/repository"
    "github.com/fmbfi/scholar-portal/internal/utils"
)

// oauthErrorRedirect is where a failed federated sign-in lands. The error
// code mirrors what the portal frontend historically checked for.
const oauthErrorRedirect = "/auth/login?error=OAuthSignin"

// stateCookieName holds the CSRF state value between the redirect to the
// provider and the callback.
const stateCookieName = "fmbfi_oauth_state"

// OAuthHandler implements federated sign-in. The provider asserts email
// ownership; the portal then requires a matching local account. A
// federated sign-in for an email with no account fails closed: it never
// creates one, keeping the credential store authoritative.
type OAuthHandler struct {
    Cfg      config.Config
    Users    repository.UserStore
    Provider auth.Provider
}

func NewOAuthHandler(cfg config.Config, u repository.UserStore, p auth.Provider) *OAuthHandler {
    return &OAuthHandler{Cfg: cfg, Users: u, Provider: p}
}

// Login starts the provider flow: it plants a random state cookie and
// redirects the browser to the provider's consent page.
func (h *OAuthHandler) Login(c echo.Context) error {
    state, err := randomState()
    if err != nil {
        log.Printf("oauth: generate state: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
    }
    c.SetCookie(&http.Cookie{
        Name:     stateCookieName,
        Value:    state,
        Path:     "/",
        Expires:  time.Now().Add(10 * time.Minute),
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    })
    return c.Redirect(http.StatusFound, h.Provider.LoginURL(state))
}

// Callback completes the provider flow: it verifies the state, exchanges
// the authorization code for the provider's identity assertion, and looks
// the asserted email up locally. On success the standard session token is
// issued and the browser is sent to the role's landing route.
func (h *OAuthHandler) Callback(c echo.Context) error {
    state := c.QueryParam("state")
    code := c.QueryParam("code")
    cookie, err := c.Cookie(stateCookieName)
    if state == "" || code == "" || err != nil || cookie.Value != state {
        return c.Redirect(http.StatusFound, oauthErrorRedirect)
    }

    info, err := h.Provider.Exchange(c.Request().Context(), code)
    if err != nil {
        log.Printf("oauth: code exchange: %v", err)
        return c.Redirect(http.StatusFound, oauthErrorRedirect)
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    u, err := h.Users.GetByEmail(ctx, info.Email)
    if err != nil {
        if !errors.Is(err, repository.ErrNotFound) {
            log.Printf("oauth: query user: %v", err)
        }
        // No local account for the asserted email: reject. Auto-provisioning
        // is deliberately not done here.
        return c.Redirect(http.StatusFound, oauthErrorRedirect)
    }

    tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, u, time.Duration(h.Cfg.SessionTTLHours)*time.Hour)
    if err != nil {
        log.Printf("oauth: issue session: %v", err)
        return c.Redirect(http.StatusFound, oauthErrorRedirect)
    }
    c.SetCookie(utils.NewSessionCookie(tok))

    return c.Redirect(http.StatusFound, utils.RoleLanding(model.DefaultRole(u.Role)))
}

// randomState returns a hex-encoded string generated from 24 bytes of
// cryptographically secure random data.
func randomState() (string, error) {
    buf := make([]byte, 24)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
