package impl

import (
	"context"
	"testing"

	"unione/internal/domain/constants"
	domainerrors "unione/internal/domain/errors"
	"unione/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pdfUpload() *usecase.UploadArchiveInput {
	return &usecase.UploadArchiveInput{
		Title:       "Algorithms Final 2023",
		Subject:     "Algorithms",
		Year:        "2023",
		Semester:    "6",
		FileName:    "algo-final-2023.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4 fake exam paper"),
	}
}

func TestArchiveService_UploadRequiresSession(t *testing.T) {
	client := newMemoryBackend(t)
	session := NewSessionProvider(client, newDiscardLogger())
	svc := NewArchiveService(client, session, newDiscardLogger())

	_, err := svc.Upload(context.Background(), pdfUpload())
	assert.ErrorIs(t, err, domainerrors.ErrAuthRequired)
}

func TestArchiveService_UploadRoundTrip(t *testing.T) {
	client := newMemoryBackend(t)
	session := signedUpSession(t, client, "jane@university.edu")
	svc := NewArchiveService(client, session, newDiscardLogger())

	items, err := svc.Upload(context.Background(), pdfUpload())
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Algorithms Final 2023", item.Title)
	assert.Equal(t, "Algorithms", item.Subject)
	assert.Equal(t, "2023", item.Year)
	assert.Equal(t, "6", item.Semester)
	assert.Equal(t, "algo-final-2023.pdf", item.FileName)
	assert.Equal(t, "jane@university.edu", item.UploadedBy)
	assert.NotEmpty(t, item.DownloadURL)
	assert.False(t, item.UploadedAt.IsZero())

	// The blob behind the download URL exists
	_, err = client.BlobURL(context.Background(), item.DownloadURL[len("memory://"):])
	assert.NoError(t, err)
}

func TestArchiveService_UploadDefaultsSemester(t *testing.T) {
	client := newMemoryBackend(t)
	session := signedUpSession(t, client, "jane@university.edu")
	svc := NewArchiveService(client, session, newDiscardLogger())

	input := pdfUpload()
	input.Semester = ""
	items, err := svc.Upload(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "N/A", items[0].Semester)
}

func TestArchiveService_UploadValidation(t *testing.T) {
	client := newMemoryBackend(t)
	session := signedUpSession(t, client, "jane@university.edu")
	svc := NewArchiveService(client, session, newDiscardLogger())

	tests := []struct {
		name   string
		mutate func(input *usecase.UploadArchiveInput)
	}{
		{"missing title", func(i *usecase.UploadArchiveInput) { i.Title = "" }},
		{"missing subject", func(i *usecase.UploadArchiveInput) { i.Subject = "" }},
		{"missing year", func(i *usecase.UploadArchiveInput) { i.Year = "" }},
		{"wrong content type", func(i *usecase.UploadArchiveInput) { i.ContentType = "image/png" }},
		{"empty payload", func(i *usecase.UploadArchiveInput) { i.Data = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := pdfUpload()
			tt.mutate(input)

			_, err := svc.Upload(context.Background(), input)
			require.Error(t, err)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
		})
	}

	// Nothing was stored
	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestArchiveService_ListNewestFirst(t *testing.T) {
	client := newMemoryBackend(t)
	session := signedUpSession(t, client, "jane@university.edu")
	svc := NewArchiveService(client, session, newDiscardLogger())

	ctx := context.Background()
	require.NoError(t, client.SetDocument(ctx, constants.CollectionArchive, "old", map[string]any{
		"title":      "Databases Final 2021",
		"subject":    "Databases",
		"year":       "2021",
		"semester":   "4",
		"fileName":   "db-2021.pdf",
		"uploadedBy": "bob@university.edu",
		"uploadedAt": "2021-06-01T00:00:00Z",
	}, false))

	items, err := svc.Upload(ctx, pdfUpload())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Algorithms Final 2023", items[0].Title)
	assert.Equal(t, "Databases Final 2021", items[1].Title)
}
