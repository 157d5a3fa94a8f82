package utils

import (
    "net/http"
    "time"
)

// SessionCookieName is the cookie under which the session token travels
// for browser page loads. API clients may instead send the token as a
// Bearer Authorization header; both carry the same JWT.
const SessionCookieName = "fmbfi_session"

// NewSessionCookie wraps a freshly issued session token in an HttpOnly
// cookie scoped to the whole site. The cookie expiry mirrors the token
// expiry so the browser drops both together.
func NewSessionCookie(tok SessionToken) *http.Cookie {
    return &http.Cookie{
        Name:     SessionCookieName,
        Value:    tok.Token,
        Path:     "/",
        Expires:  tok.Exp,
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    }
}

// ClearSessionCookie returns an expired cookie that instructs the browser
// to discard the session token. Sign-out is purely client-side token
// deletion; the token itself remains valid until its natural expiry.
func ClearSessionCookie() *http.Cookie {
    return &http.Cookie{
        Name:     SessionCookieName,
        Value:    "",
        Path:     "/",
        Expires:  time.Unix(0, 0),
        MaxAge:   -1,
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    }
}
