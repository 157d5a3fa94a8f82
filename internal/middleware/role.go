package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // http package defines standard HTTP status codes

    "github.com/labstack/echo/v4" // echo provides middleware chaining and context

    "github.com/fmbfi/scholar-portal/internal/utils"
)

// signInRoute is where unauthenticated page loads are sent.
const signInRoute = "/auth/login"

// RequireRole returns a middleware function that enforces that the
// authenticated user has one of the specified roles. The roles accepted
// should correspond to the values stored in the session token's "role"
// claim. If the user's role is not in the allowed set, the request is
// aborted with a 403 Forbidden response. It assumes a previous middleware
// has extracted the role into the context under the key "role". This is
// the API flavor of the gate; page routes use RoleGate, which redirects
// instead of failing.
func RequireRole(roles ...string) echo.MiddlewareFunc {
    allowed := make(map[string]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            v := c.Get("role")
            role, ok := v.(string)
            if !ok || !allowed[role] {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}

// RoleGate returns the per-request authorization decision point for a
// protected page route. Given the route's required role and the session
// presented with the request, it resolves to exactly one of three
// outcomes:
//
//   - no valid token:        redirect to the sign-in page
//   - valid token, wrong role: redirect to that role's own landing route
//   - valid token, right role: render the protected view
//
// The decision is recomputed on every navigation from (token, required
// role) alone; nothing is cached and authorization failures never surface
// as errors, only as redirects. Sign-out works by deleting the client's
// cookie, which forces the first outcome on the next check.
func RoleGate(secret, requiredRole string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw := tokenFromRequest(c)
            if raw == "" {
                return c.Redirect(http.StatusFound, signInRoute)
            }
            claims, err := utils.ParseSessionToken(secret, raw)
            if err != nil {
                return c.Redirect(http.StatusFound, signInRoute)
            }
            if claims.Role != requiredRole {
                return c.Redirect(http.StatusFound, utils.RoleLanding(claims.Role))
            }

            c.Set("user_id", claims.ScholarID)
            c.Set("role", claims.Role)
            c.Set("email", claims.Email)
            c.Set("name", claims.Username)
            return next(c)
        }
    }
}
