package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fmbfi/scholar-portal/internal/repository"
)

// SchoolHandler serves partner-school and subject reference data.
type SchoolHandler struct {
	Students repository.StudentStore
	Schools  repository.SchoolStore
}

func NewSchoolHandler(st repository.StudentStore, sc repository.SchoolStore) *SchoolHandler {
	return &SchoolHandler{Students: st, Schools: sc}
}

type courseEntry struct {
	SubjectCode        string `json:"subjectcode"`
	SubjectDescription string `json:"subjectdescription"`
}

type schoolResp struct {
	SchoolID   string        `json:"schoolid"`
	SchoolName string        `json:"schoolname"`
	Campus     string        `json:"campus"`
	Courses    []courseEntry `json:"courses"`
}

type subjectEntry struct {
	SchoolID           string `json:"schoolid"`
	SchoolName         string `json:"schoolname"`
	Course             string `json:"course"`
	SubjectCode        string `json:"subjectcode"`
	SubjectDescription string `json:"subjectdescription"`
}

// GetSchool resolves a student's school and course offerings: the student
// row supplies (schoolid, course), refschool supplies the school identity,
// and the master file supplies the subjects for that school and course.
// A missing refschool row is not an error; the name and campus degrade to
// "-" placeholders as the frontend expects.
func (h *SchoolHandler) GetSchool(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	student, err := h.Students.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		log.Printf("school: get student: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	resp := schoolResp{SchoolID: student.SchoolID, SchoolName: "-", Campus: "-", Courses: []courseEntry{}}

	school, err := h.Schools.GetByID(ctx, student.SchoolID)
	switch {
	case err == nil:
		resp.SchoolName = school.SchoolName
		resp.Campus = school.Campus
	case !errors.Is(err, repository.ErrNotFound):
		log.Printf("school: get school %q: %v", student.SchoolID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	course := ""
	if student.Course != nil {
		course = *student.Course
	}
	subjects, err := h.Schools.SubjectsBySchoolAndCourse(ctx, student.SchoolID, course)
	if err != nil {
		log.Printf("school: list subjects: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	for _, s := range subjects {
		resp.Courses = append(resp.Courses, courseEntry{
			SubjectCode:        s.SubjectCode,
			SubjectDescription: s.SubjectDescription,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// ListSubjects returns the entire subject master file. Public and cached.
func (h *SchoolHandler) ListSubjects(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	subjects, err := h.Schools.AllSubjects(ctx)
	if err != nil {
		log.Printf("school: all subjects: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch subjects"})
	}

	out := make([]subjectEntry, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, subjectEntry{
			SchoolID:           s.SchoolID,
			SchoolName:         s.SchoolName,
			Course:             s.Course,
			SubjectCode:        s.SubjectCode,
			SubjectDescription: s.SubjectDescription,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"subjects": out})
}
