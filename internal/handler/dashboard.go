package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fmbfi/scholar-portal/internal/repository"
)

// DashboardHandler renders the role-specific landing views. These are the
// protected pages behind the authorization gate; the view models bundle
// what the corresponding page needs so the frontend makes one call per
// navigation.
type DashboardHandler struct {
	Users         repository.UserStore
	Students      repository.StudentStore
	Schools       repository.SchoolStore
	Announcements repository.AnnouncementStore
}

func NewDashboardHandler(u repository.UserStore, st repository.StudentStore, sc repository.SchoolStore, a repository.AnnouncementStore) *DashboardHandler {
	return &DashboardHandler{Users: u, Students: st, Schools: sc, Announcements: a}
}

// UserDashboard is the scholar landing page: the signed-in student's
// profile, their school name, and recent announcements. A missing profile
// row is not an error; newly registered accounts have no tblstudent
// record until the encoding staff creates one.
func (d *DashboardHandler) UserDashboard(c echo.Context) error {
	email, _ := c.Get("email").(string)
	name, _ := c.Get("name").(string)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	resp := echo.Map{
		"user": echo.Map{"email": email, "name": name, "role": c.Get("role")},
	}

	student, err := d.Students.GetByEmail(ctx, email)
	switch {
	case err == nil:
		resp["student"] = toStudentView(student)
		if school, err := d.Schools.GetByID(ctx, student.SchoolID); err == nil {
			resp["schoolname"] = school.SchoolName
		} else if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("dashboard: get school: %v", err)
		}
	case errors.Is(err, repository.ErrNotFound):
		resp["student"] = nil
	default:
		log.Printf("dashboard: get student: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	if items, err := d.Announcements.ListRecent(ctx, 5); err == nil {
		views := make([]announcementView, 0, len(items))
		for _, a := range items {
			views = append(views, announcementView{ID: a.ID, Title: a.Title, Body: a.Body, PublishedAt: a.PublishedAt})
		}
		resp["announcements"] = views
	} else {
		log.Printf("dashboard: list announcements: %v", err)
	}

	return c.JSON(http.StatusOK, resp)
}

// AdminDashboard is the staff landing page: account totals plus recent
// announcements.
func (d *DashboardHandler) AdminDashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	users, err := d.Users.List(ctx)
	if err != nil {
		log.Printf("dashboard: list accounts: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	resp := echo.Map{
		"user":     echo.Map{"email": c.Get("email"), "name": c.Get("name"), "role": c.Get("role")},
		"accounts": len(users),
	}

	if items, err := d.Announcements.ListRecent(ctx, 5); err == nil {
		views := make([]announcementView, 0, len(items))
		for _, a := range items {
			views = append(views, announcementView{ID: a.ID, Title: a.Title, Body: a.Body, PublishedAt: a.PublishedAt})
		}
		resp["announcements"] = views
	} else {
		log.Printf("dashboard: list announcements: %v", err)
	}

	return c.JSON(http.StatusOK, resp)
}

// SignIn is the unauthenticated sign-in landing route that the gate
// redirects to. The page itself is frontend glue; this endpoint only
// echoes back any error code (e.g. OAuthSignin) so the form can show the
// matching inline message.
func SignIn(c echo.Context) error {
	resp := echo.Map{"message": "sign in required"}
	if e := c.QueryParam("error"); e != "" {
		resp["error"] = e
	}
	return c.JSON(http.StatusOK, resp)
}

// Root is the fallback landing route for sessions whose role claim maps
// to no known area.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "FMBFI scholarship portal"})
}
