package entity

import "time"

// ArchiveItem is a previous-exam-question (PYQ) entry: descriptive metadata for
// one uploaded PDF. Items are created together with their blob upload, never
// updated, and the portal exposes no delete operation for them.
type ArchiveItem struct {
	ID          string // Backend document ID.
	Title       string
	Subject     string
	Year        string // Exam year, kept as a string ("2023").
	Semester    string // "N/A" when not provided.
	DownloadURL string // Resolvable URL for the uploaded blob.
	FileName    string // Original file name, kept for display.
	UploadedBy  string // Email of the uploading identity.
	UploadedAt  time.Time
}

// Record converts the item to its backend document representation.
func (i *ArchiveItem) Record() map[string]any {
	return map[string]any{
		"title":       i.Title,
		"subject":     i.Subject,
		"year":        i.Year,
		"semester":    i.Semester,
		"downloadUrl": i.DownloadURL,
		"fileName":    i.FileName,
		"uploadedBy":  i.UploadedBy,
		"uploadedAt":  i.UploadedAt.UTC().Format(time.RFC3339),
	}
}

// ArchiveItemFromRecord rebuilds an archive item from a backend document.
func ArchiveItemFromRecord(id string, record map[string]any) *ArchiveItem {
	item := &ArchiveItem{
		ID:          id,
		Title:       stringField(record, "title"),
		Subject:     stringField(record, "subject"),
		Year:        stringField(record, "year"),
		Semester:    stringField(record, "semester"),
		DownloadURL: stringField(record, "downloadUrl"),
		FileName:    stringField(record, "fileName"),
		UploadedBy:  stringField(record, "uploadedBy"),
	}
	if raw := stringField(record, "uploadedAt"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			item.UploadedAt = ts
		}
	}

	return item
}

// NoteSource is an embedded study-note viewer shown on the notes screen.
type NoteSource struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}
