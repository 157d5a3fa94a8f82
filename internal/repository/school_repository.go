package repository

import (
	"context"
	"database/sql"

	"github.com/fmbfi/scholar-portal/internal/model"
)

// SchoolRepo reads partner-school reference data: the 'refschool' table
// for school identity and the 'refschoolmasterfile' table for the subjects
// offered per school and course.
type SchoolRepo struct{ DB *sql.DB }

func NewSchoolRepo(db *sql.DB) *SchoolRepo { return &SchoolRepo{DB: db} }

// GetByID fetches a school by its reference ID.
func (r *SchoolRepo) GetByID(ctx context.Context, schoolID string) (model.School, error) {
	var s model.School
	err := r.DB.QueryRowContext(ctx,
		"SELECT schoolid,schoolname,campus FROM refschool WHERE schoolid=? LIMIT 1",
		schoolID).Scan(&s.SchoolID, &s.SchoolName, &s.Campus)
	if err == sql.ErrNoRows {
		return s, ErrNotFound
	}
	return s, err
}

// SubjectsBySchoolAndCourse returns the master-file subjects offered by a
// school for one course.
func (r *SchoolRepo) SubjectsBySchoolAndCourse(ctx context.Context, schoolID, course string) ([]model.Subject, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT schoolid,schoolname,course,subjectcode,subjectdescription FROM refschoolmasterfile WHERE schoolid=? AND course=?",
		schoolID, course)
	if err != nil {
		return nil, err
	}
	return scanSubjects(rows)
}

// AllSubjects returns the entire subject master file.
func (r *SchoolRepo) AllSubjects(ctx context.Context) ([]model.Subject, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT schoolid,schoolname,course,subjectcode,subjectdescription FROM refschoolmasterfile")
	if err != nil {
		return nil, err
	}
	return scanSubjects(rows)
}

func scanSubjects(rows *sql.Rows) ([]model.Subject, error) {
	defer rows.Close()
	var subjects []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.SchoolID, &s.SchoolName, &s.Course, &s.SubjectCode, &s.SubjectDescription); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}
