package router // package router defines how HTTP routes are registered for the portal

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/fmbfi/scholar-portal/internal/handler"    // import the handlers that implement business logic
	"github.com/fmbfi/scholar-portal/internal/middleware" // import middleware for session authentication and role enforcement
	"github.com/fmbfi/scholar-portal/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance: the health check, the application root and
// the sign-in landing route that the authorization gate redirects to.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/", handler.Root)
	e.GET("/auth/login", handler.SignIn)
}

// RegisterAuth registers the credential endpoints and applies the
// rate-limit middleware to the two that accept passwords. The session,
// refresh and logout endpoints parse the token themselves, so none of
// these routes sit behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, rl echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	// Credential submission endpoints are the brute-force target; they
	// share the token-bucket budget.
	g.POST("/register", a.Register, rl)
	g.POST("/login", a.Login, rl)
	g.GET("/session", a.Session)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
}

// RegisterOAuth registers the federated sign-in routes. Called only when
// the Google client configuration is complete.
func RegisterOAuth(e *echo.Echo, o *handler.OAuthHandler) {
	g := e.Group("/v1/auth/google")
	g.GET("/login", o.Login)
	g.GET("/callback", o.Callback)
}

// RegisterPortal registers the JSON API consumed by the signed-in pages,
// plus the public reference endpoints. Protected routes sit behind the
// JWT middleware; the admin listing additionally requires the Admin role.
// The public reference endpoints go through the response cache.
func RegisterPortal(e *echo.Echo, jwtSecret string, st *handler.StudentHandler, sc *handler.SchoolHandler, gr *handler.GradeHandler, an *handler.AnnouncementHandler, cache echo.MiddlewareFunc) {
	// Public reference data: no session required, cacheable.
	e.GET("/v1/subjects", sc.ListSubjects, cache)
	e.GET("/v1/announcements", an.List, cache)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))

	auth.GET("/students/by-email", st.GetByEmail)
	auth.GET("/schools", sc.GetSchool)
	auth.GET("/grades", gr.ListGrades)
	auth.POST("/grades", gr.AddGrades, middleware.RequireRole(model.RoleUser))

	admin := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))
	admin.GET("/students", st.ListAccounts)
}

// RegisterPages registers the protected landing pages. Each one sits
// behind the role gate for its own area: unauthenticated visitors are
// redirected to sign-in and authenticated visitors with the wrong role
// are redirected to their own landing route.
func RegisterPages(e *echo.Echo, jwtSecret string, d *handler.DashboardHandler) {
	e.GET("/user/dashboard", d.UserDashboard, middleware.RoleGate(jwtSecret, model.RoleUser))
	e.GET("/admin/dashboard", d.AdminDashboard, middleware.RoleGate(jwtSecret, model.RoleAdmin))
}
