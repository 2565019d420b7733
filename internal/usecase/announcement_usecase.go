package usecase

import (
	"context"

	"unione/internal/domain/entity"
)

// CreateAnnouncementInput represents the input for posting an announcement
type CreateAnnouncementInput struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Priority string `json:"priority"`
}

// AnnouncementUsecase defines the interface for announcement use cases.
// Mutations return the refreshed list so callers always render backend truth.
type AnnouncementUsecase interface {
	// List retrieves all announcements, newest first
	List(ctx context.Context) ([]*entity.Announcement, error)

	// Create posts a new announcement attributed to the current session
	Create(ctx context.Context, input *CreateAnnouncementInput) ([]*entity.Announcement, error)

	// Delete removes an announcement authored by the current session
	Delete(ctx context.Context, id string) ([]*entity.Announcement, error)
}
