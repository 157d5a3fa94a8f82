package model

import "time"

// Announcement represents one news/announcement row in the
// `tblannouncements` table, displayed on the portal landing pages.
type Announcement struct {
    ID          uint64    // tblannouncements.id
    Title       string    // tblannouncements.title
    Body        string    // tblannouncements.body
    PublishedAt time.Time // tblannouncements.published_at
}
