package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fmbfi/scholar-portal/internal/repository"
)

// AnnouncementHandler serves the foundation's published news items.
type AnnouncementHandler struct {
	Announcements repository.AnnouncementStore
}

func NewAnnouncementHandler(a repository.AnnouncementStore) *AnnouncementHandler {
	return &AnnouncementHandler{Announcements: a}
}

type announcementView struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	PublishedAt time.Time `json:"published_at"`
}

// List returns recent announcements, newest first. Public and cached;
// the carousel on the landing page polls this endpoint.
func (h *AnnouncementHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Announcements.ListRecent(ctx, 20)
	if err != nil {
		log.Printf("announcements: list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	out := make([]announcementView, 0, len(items))
	for _, a := range items {
		out = append(out, announcementView{ID: a.ID, Title: a.Title, Body: a.Body, PublishedAt: a.PublishedAt})
	}
	return c.JSON(http.StatusOK, echo.Map{"announcements": out})
}
