package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/fmbfi/scholar-portal/internal/utils"
)

// tokenFromRequest extracts the raw session token from an incoming
// request. The Authorization header wins when both carriers are present;
// browser page loads normally carry the token only in the session cookie.
func tokenFromRequest(c echo.Context) string {
    auth := c.Request().Header.Get("Authorization")
    if strings.HasPrefix(auth, "Bearer ") {
        return strings.TrimPrefix(auth, "Bearer ")
    }
    if cookie, err := c.Cookie(utils.SessionCookieName); err == nil {
        return cookie.Value
    }
    return ""
}

// JWTAuth returns an Echo middleware that validates the session token and
// injects the verified identity claims into the request context. The
// provided secret must match the one used when issuing tokens. This
// middleware guards the JSON API routes: a missing or invalid token yields
// a 401 response. Handlers can access the authenticated identity via
// `c.Get("user_id")`, `c.Get("role")`, `c.Get("email")` and
// `c.Get("name")`.
//
// Validation is a pure function of the presented token; nothing is cached
// between requests and there is no server-side session record to consult.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw := tokenFromRequest(c)
            if raw == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session token"})
            }
            claims, err := utils.ParseSessionToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            // Store the verified claims in the context for handlers and
            // downstream middleware.
            c.Set("user_id", claims.ScholarID)
            c.Set("role", claims.Role)
            c.Set("email", claims.Email)
            c.Set("name", claims.Username)
            return next(c)
        }
    }
}
