package handler

import (
	"time"

	"unione/internal/domain/entity"
)

// The JSON shapes below are the public API contract; entity field names stay
// internal.

type profileJSON struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Year       string `json:"year"`
	StudentID  string `json:"studentId"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

type sessionJSON struct {
	Phase   string       `json:"phase"`
	Email   string       `json:"email,omitempty"`
	Profile *profileJSON `json:"profile,omitempty"`
}

type announcementJSON struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Priority  string `json:"priority"`
	CreatedAt string `json:"createdAt"`
}

type archiveItemJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	Year        string `json:"year"`
	Semester    string `json:"semester"`
	DownloadURL string `json:"downloadUrl"`
	FileName    string `json:"fileName"`
	UploadedBy  string `json:"uploadedBy"`
	UploadedAt  string `json:"uploadedAt"`
}

func toProfileJSON(profile *entity.Profile) *profileJSON {
	if profile == nil {
		return nil
	}

	out := &profileJSON{
		Email:      profile.Email,
		Name:       profile.Name,
		Department: profile.Department,
		Year:       profile.Year,
		StudentID:  profile.StudentID,
	}
	if !profile.CreatedAt.IsZero() {
		out.CreatedAt = profile.CreatedAt.UTC().Format(time.RFC3339)
	}

	return out
}

func toSessionJSON(snapshot entity.SessionSnapshot) sessionJSON {
	out := sessionJSON{
		Phase:   string(snapshot.Phase),
		Profile: toProfileJSON(snapshot.Profile),
	}
	if snapshot.Identity != nil {
		out.Email = snapshot.Identity.Email
	}

	return out
}

func toAnnouncementJSON(announcements []*entity.Announcement) []announcementJSON {
	out := make([]announcementJSON, 0, len(announcements))
	for _, a := range announcements {
		out = append(out, announcementJSON{
			ID:        a.ID,
			Title:     a.Title,
			Content:   a.Content,
			Author:    a.Author,
			Priority:  string(a.Priority),
			CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return out
}

func toArchiveItemJSON(items []*entity.ArchiveItem) []archiveItemJSON {
	out := make([]archiveItemJSON, 0, len(items))
	for _, item := range items {
		out = append(out, archiveItemJSON{
			ID:          item.ID,
			Title:       item.Title,
			Subject:     item.Subject,
			Year:        item.Year,
			Semester:    item.Semester,
			DownloadURL: item.DownloadURL,
			FileName:    item.FileName,
			UploadedBy:  item.UploadedBy,
			UploadedAt:  item.UploadedAt.UTC().Format(time.RFC3339),
		})
	}

	return out
}
