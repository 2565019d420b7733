package service

import (
	"context"
	"time"
)

// AnnouncementEvent is published whenever an announcement is created, so
// downstream consumers (digests, notification fan-out) can react without the
// portal waiting on them.
type AnnouncementEvent struct {
	AnnouncementID string    `json:"announcement_id"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	Priority       string    `json:"priority"`
	CreatedAt      time.Time `json:"created_at"`
}

// EventPublisher defines the interface for publishing announcement events.
// Publishing is fire-and-forget from the portal's point of view: failures are
// logged by the caller, never surfaced to the user.
type EventPublisher interface {
	// PublishAnnouncementEvent publishes an announcement-created event.
	PublishAnnouncementEvent(ctx context.Context, event *AnnouncementEvent) error

	// Close releases publisher resources.
	Close() error
}
