package repository

import (
	"context"
	"database/sql"

	"github.com/fmbfi/scholar-portal/internal/model"
)

// AnnouncementRepo reads foundation news items from 'tblannouncements'.
type AnnouncementRepo struct{ DB *sql.DB }

func NewAnnouncementRepo(db *sql.DB) *AnnouncementRepo { return &AnnouncementRepo{DB: db} }

// ListRecent returns up to limit announcements, newest first.
func (r *AnnouncementRepo) ListRecent(ctx context.Context, limit int) ([]model.Announcement, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,title,body,published_at FROM tblannouncements ORDER BY published_at DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Announcement
	for rows.Next() {
		var a model.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.PublishedAt); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
