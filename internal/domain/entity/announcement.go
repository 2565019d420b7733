package entity

import "time"

// Priority classifies how urgently an announcement should be displayed.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether the priority is one of the three known levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}

	return false
}

// Announcement is a post on the announcements board. Any authenticated user can
// create one; only its author may delete it. There is no update operation.
type Announcement struct {
	ID        string    // Backend document ID.
	Title     string
	Content   string
	Author    string // Display name of the creator, falling back to their email.
	Priority  Priority
	CreatedAt time.Time
}

// Record converts the announcement to its backend document representation.
// The document ID is not part of the record.
func (a *Announcement) Record() map[string]any {
	return map[string]any{
		"title":     a.Title,
		"content":   a.Content,
		"author":    a.Author,
		"priority":  string(a.Priority),
		"createdAt": a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// AnnouncementFromRecord rebuilds an announcement from a backend document.
func AnnouncementFromRecord(id string, record map[string]any) *Announcement {
	announcement := &Announcement{
		ID:       id,
		Title:    stringField(record, "title"),
		Content:  stringField(record, "content"),
		Author:   stringField(record, "author"),
		Priority: Priority(stringField(record, "priority")),
	}
	if raw := stringField(record, "createdAt"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			announcement.CreatedAt = ts
		}
	}

	return announcement
}
