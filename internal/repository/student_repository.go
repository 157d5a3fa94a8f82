package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fmbfi/scholar-portal/internal/model"
)

// StudentRepo reads scholar profiles from the 'tblstudent' table.
// Profiles are maintained by the foundation's encoding staff; the portal
// only ever reads them.
type StudentRepo struct{ DB *sql.DB }

func NewStudentRepo(db *sql.DB) *StudentRepo { return &StudentRepo{DB: db} }

const studentColumns = "scholarid,lastname,firstname,middlename,schoolid,email,mobileno," +
	"coursecode,courseyear,course,gpa,dateofbirth,batchno,schoolyear,endofscholarshipdate,status"

// GetByEmail fetches a scholar profile by normalized email.
func (r *StudentRepo) GetByEmail(ctx context.Context, email string) (model.Student, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var s model.Student
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+studentColumns+" FROM tblstudent WHERE email=? LIMIT 1",
		email).Scan(
		&s.ScholarID, &s.LastName, &s.FirstName, &s.MiddleName, &s.SchoolID,
		&s.Email, &s.MobileNo, &s.CourseCode, &s.CourseYear, &s.Course, &s.GPA,
		&s.DateOfBirth, &s.BatchNo, &s.SchoolYear, &s.EndOfScholarshipDate, &s.Status)
	if err == sql.ErrNoRows {
		return s, ErrNotFound
	}
	return s, err
}
