package middleware

// identity.go holds small helpers shared across middleware files.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// currentUserID renders the authenticated scholar ID stored by JWTAuth or
// RoleGate as a string for use in cache and rate-limit keys. It returns
// "anon" when no user is authenticated.
func currentUserID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case uint64:
        if v != 0 {
            return strconv.FormatUint(v, 10)
        }
    case string:
        if v != "" {
            return v
        }
    }
    return "anon"
}
