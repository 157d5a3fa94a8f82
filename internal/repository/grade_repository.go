package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fmbfi/scholar-portal/internal/model"
)

// GradeRepo persists student-encoded grades in the 'tblgrades' table.
type GradeRepo struct{ DB *sql.DB }

func NewGradeRepo(db *sql.DB) *GradeRepo { return &GradeRepo{DB: db} }

// CreateBatch inserts a batch of grade entries. Each entry is a single
// atomic statement; the batch itself is not transactional, matching how
// the encoding form submits entries independently.
func (r *GradeRepo) CreateBatch(ctx context.Context, grades []model.Grade) error {
	for _, g := range grades {
		_, err := r.DB.ExecContext(ctx,
			"INSERT INTO tblgrades (email, course, subject, yearandsem, grade) VALUES (?,?,?,?,?)",
			strings.ToLower(strings.TrimSpace(g.Email)), g.Course, g.Subject, g.YearAndSem, g.Grade)
		if err != nil {
			return err
		}
	}
	return nil
}

// ListByEmail returns all grades encoded for a student, newest first.
func (r *GradeRepo) ListByEmail(ctx context.Context, email string) ([]model.Grade, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	rows, err := r.DB.QueryContext(ctx,
		"SELECT gradeid,email,course,subject,yearandsem,grade,auditdate FROM tblgrades WHERE email=? ORDER BY auditdate DESC, gradeid DESC",
		email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []model.Grade
	for rows.Next() {
		var g model.Grade
		if err := rows.Scan(&g.GradeID, &g.Email, &g.Course, &g.Subject, &g.YearAndSem, &g.Grade, &g.AuditDate); err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}
