package repository

import (
	"context"

	"github.com/fmbfi/scholar-portal/internal/model"
)

// The interfaces below describe what handlers need from the repository
// layer. Handlers depend on these rather than on the concrete *Repo
// structs so tests can substitute in-memory fakes without a live
// database. The concrete repositories are asserted against them at
// compile time.

// UserStore is the credential store contract consumed by the
// authentication and registration handlers.
type UserStore interface {
	Create(ctx context.Context, email, password, role string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// StudentStore provides scholar profile lookups.
type StudentStore interface {
	GetByEmail(ctx context.Context, email string) (model.Student, error)
}

// SchoolStore provides partner-school and subject reference lookups.
type SchoolStore interface {
	GetByID(ctx context.Context, schoolID string) (model.School, error)
	SubjectsBySchoolAndCourse(ctx context.Context, schoolID, course string) ([]model.Subject, error)
	AllSubjects(ctx context.Context) ([]model.Subject, error)
}

// GradeStore persists and lists encoded grades.
type GradeStore interface {
	CreateBatch(ctx context.Context, grades []model.Grade) error
	ListByEmail(ctx context.Context, email string) ([]model.Grade, error)
}

// AnnouncementStore lists published announcements.
type AnnouncementStore interface {
	ListRecent(ctx context.Context, limit int) ([]model.Announcement, error)
}

var (
	_ UserStore         = (*UserRepo)(nil)
	_ StudentStore      = (*StudentRepo)(nil)
	_ SchoolStore       = (*SchoolRepo)(nil)
	_ GradeStore        = (*GradeRepo)(nil)
	_ AnnouncementStore = (*AnnouncementRepo)(nil)
)
