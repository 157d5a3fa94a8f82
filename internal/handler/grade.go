package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fmbfi/scholar-portal/internal/model"
	"github.com/fmbfi/scholar-portal/internal/repository"
)

// GradeHandler serves grade encoding and viewing for signed-in scholars.
type GradeHandler struct {
	Grades repository.GradeStore
}

func NewGradeHandler(g repository.GradeStore) *GradeHandler {
	return &GradeHandler{Grades: g}
}

// gradeEntry is one row of the encoding form. The email may be omitted;
// it then defaults to the session's email claim so a student can only
// ever encode under their own identity unless they are staff.
type gradeEntry struct {
	Email      string  `json:"email"`
	Course     string  `json:"course"`
	Subject    string  `json:"subject"`
	YearAndSem string  `json:"yearandsem"`
	Grade      float64 `json:"grade"`
}

type gradeView struct {
	GradeID    uint64    `json:"gradeid"`
	Email      string    `json:"email"`
	Course     string    `json:"course"`
	Subject    string    `json:"subject"`
	YearAndSem string    `json:"yearandsem"`
	Grade      float64   `json:"grade"`
	AuditDate  time.Time `json:"auditdate"`
}

// AddGrades accepts a batch of grade entries from the encoding form.
// Every entry must name a subject and a grade; an empty batch is a
// validation error.
func (h *GradeHandler) AddGrades(c echo.Context) error {
	var entries []gradeEntry
	if err := c.Bind(&entries); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(entries) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one subject and grade is required"})
	}

	sessionEmail, _ := c.Get("email").(string)

	grades := make([]model.Grade, 0, len(entries))
	for _, e := range entries {
		email := strings.ToLower(strings.TrimSpace(e.Email))
		if email == "" {
			email = sessionEmail
		}
		if email == "" || strings.TrimSpace(e.Subject) == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "subject and email are required for every entry"})
		}
		grades = append(grades, model.Grade{
			Email:      email,
			Course:     e.Course,
			Subject:    e.Subject,
			YearAndSem: e.YearAndSem,
			Grade:      e.Grade,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Grades.CreateBatch(ctx, grades); err != nil {
		log.Printf("grades: create batch: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "grades submitted successfully"})
}

// ListGrades returns the grades encoded for a student. Without an email
// query parameter it defaults to the session's own email.
func (h *GradeHandler) ListGrades(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		email, _ = c.Get("email").(string)
	}
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	grades, err := h.Grades.ListByEmail(ctx, email)
	if err != nil {
		log.Printf("grades: list by email: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	out := make([]gradeView, 0, len(grades))
	for _, g := range grades {
		out = append(out, gradeView{
			GradeID:    g.GradeID,
			Email:      g.Email,
			Course:     g.Course,
			Subject:    g.Subject,
			YearAndSem: g.YearAndSem,
			Grade:      g.Grade,
			AuditDate:  g.AuditDate,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"grades": out})
}
