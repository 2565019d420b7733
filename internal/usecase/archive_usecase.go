package usecase

import (
	"context"

	"unione/internal/domain/entity"
)

// UploadArchiveInput represents the input for uploading a past paper
type UploadArchiveInput struct {
	Title       string `json:"title" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Year        string `json:"year" validate:"required"`
	Semester    string `json:"semester"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"-"`
}

// ArchiveUsecase defines the interface for the past-paper archive use cases
type ArchiveUsecase interface {
	// List retrieves all archive entries, newest upload first
	List(ctx context.Context) ([]*entity.ArchiveItem, error)

	// Upload stores the PDF, registers its metadata, and returns the
	// refreshed list
	Upload(ctx context.Context, input *UploadArchiveInput) ([]*entity.ArchiveItem, error)
}
