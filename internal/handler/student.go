// Package handler exposes HTTP handlers for the portal API. This file
// defines the scholar-facing and admin-facing student endpoints. Responses
// use the column names the portal frontend has always consumed
// (scholarid, lastname, coursecode, ...), and never include credentials.
package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fmbfi/scholar-portal/internal/model"
	"github.com/fmbfi/scholar-portal/internal/repository"
)

// StudentHandler aggregates the stores needed by the student endpoints.
type StudentHandler struct {
	Users    repository.UserStore
	Students repository.StudentStore
}

func NewStudentHandler(u repository.UserStore, s repository.StudentStore) *StudentHandler {
	return &StudentHandler{Users: u, Students: s}
}

// accountView is an account record stripped to admin-safe fields.
type accountView struct {
	ScholarID uint64    `json:"scholarid"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	AuditDate time.Time `json:"auditdate"`
}

// studentView mirrors the tblstudent row shape consumed by the dashboard
// and grades pages.
type studentView struct {
	ScholarID            uint64     `json:"scholarid"`
	LastName             string     `json:"lastname"`
	FirstName            string     `json:"firstname"`
	MiddleName           *string    `json:"middlename"`
	SchoolID             string     `json:"schoolid"`
	Email                string     `json:"email"`
	MobileNo             string     `json:"mobileno"`
	CourseCode           string     `json:"coursecode"`
	CourseYear           string     `json:"courseyear"`
	Course               *string    `json:"course"`
	GPA                  *float64   `json:"gpa"`
	DateOfBirth          time.Time  `json:"dateofbirth"`
	BatchNo              string     `json:"batchno"`
	SchoolYear           string     `json:"schoolyear"`
	EndOfScholarshipDate *time.Time `json:"endofscholarshipdate"`
	Status               *string    `json:"status"`
}

func toStudentView(s model.Student) studentView {
	return studentView{
		ScholarID:            s.ScholarID,
		LastName:             s.LastName,
		FirstName:            s.FirstName,
		MiddleName:           s.MiddleName,
		SchoolID:             s.SchoolID,
		Email:                s.Email,
		MobileNo:             s.MobileNo,
		CourseCode:           s.CourseCode,
		CourseYear:           s.CourseYear,
		Course:               s.Course,
		GPA:                  s.GPA,
		DateOfBirth:          s.DateOfBirth,
		BatchNo:              s.BatchNo,
		SchoolYear:           s.SchoolYear,
		EndOfScholarshipDate: s.EndOfScholarshipDate,
		Status:               s.Status,
	}
}

// ListAccounts returns every account with safe fields only. Admin route.
func (h *StudentHandler) ListAccounts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		log.Printf("students: list accounts: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	out := make([]accountView, 0, len(users))
	for _, u := range users {
		out = append(out, accountView{
			ScholarID: u.ScholarID,
			Username:  u.Username,
			Email:     u.Email,
			Role:      model.DefaultRole(u.Role),
			AuditDate: u.AuditDate,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": out})
}

// GetByEmail returns the scholar profile for the given email query
// parameter.
func (h *StudentHandler) GetByEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	s, err := h.Students.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		log.Printf("students: get by email: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, toStudentView(s))
}
