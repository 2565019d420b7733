package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"unione/internal/domain/constants"
	"unione/internal/domain/entity"
	domainerrors "unione/internal/domain/errors"
	"unione/internal/domain/service"
	"unione/internal/usecase"
	"unione/internal/util"
)

const (
	pdfContentType  = "application/pdf"
	defaultSemester = "N/A"
)

type archiveService struct {
	backend service.BackendClient
	session usecase.SessionUsecase
	logger  *slog.Logger
}

// NewArchiveService creates a new archive service instance
func NewArchiveService(
	backend service.BackendClient,
	session usecase.SessionUsecase,
	logger *slog.Logger,
) usecase.ArchiveUsecase {
	return &archiveService{
		backend: backend,
		session: session,
		logger:  logger,
	}
}

// List retrieves all archive entries ordered by newest upload first.
func (s *archiveService) List(ctx context.Context) ([]*entity.ArchiveItem, error) {
	documents, err := s.backend.ListDocuments(ctx, constants.CollectionArchive, "uploadedAt", true)
	if err != nil {
		return nil, domainerrors.ErrBackendUnavailable.WrapMessage(err.Error())
	}

	items := make([]*entity.ArchiveItem, 0, len(documents))
	for _, document := range documents {
		items = append(items, entity.ArchiveItemFromRecord(document.ID, document.Data))
	}

	return items, nil
}

// Upload stores the PDF blob, registers its metadata document, and returns
// the refreshed list. The blob path carries an upload timestamp so repeated
// uploads of the same file name never collide.
func (s *archiveService) Upload(ctx context.Context, input *usecase.UploadArchiveInput) ([]*entity.ArchiveItem, error) {
	snapshot := s.session.Current()
	if !snapshot.Authenticated() {
		return nil, domainerrors.ErrAuthRequired.WrapMessage("archive upload requires a session")
	}

	if input.Title == "" || input.Subject == "" || input.Year == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("title, subject, and year are required")
	}
	if input.ContentType != pdfContentType {
		return nil, domainerrors.ErrValidationFailed.WithDetails("only PDF files are accepted")
	}
	if len(input.Data) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("uploaded file is empty")
	}

	semester := input.Semester
	if semester == "" {
		semester = defaultSemester
	}

	uploadedAt := time.Now().UTC()
	path := fmt.Sprintf("pyqs/%d_%s", uploadedAt.UnixMilli(), input.FileName)

	if err := s.backend.UploadBlob(ctx, path, input.Data, input.ContentType); err != nil {
		return nil, domainerrors.ErrBackendUnavailable.WrapMessage(err.Error())
	}

	downloadURL, err := s.backend.BlobURL(ctx, path)
	if err != nil {
		return nil, domainerrors.ErrBackendUnavailable.WrapMessage(err.Error())
	}

	item := &entity.ArchiveItem{
		Title:       input.Title,
		Subject:     input.Subject,
		Year:        input.Year,
		Semester:    semester,
		DownloadURL: downloadURL,
		FileName:    input.FileName,
		UploadedBy:  snapshot.Identity.Email,
		UploadedAt:  uploadedAt,
	}
	if _, err := s.backend.AddDocument(ctx, constants.CollectionArchive, item.Record()); err != nil {
		return nil, domainerrors.ErrBackendUnavailable.WrapMessage(err.Error())
	}

	s.logger.Info("Archive entry uploaded",
		slog.String("path", path),
		slog.String("size", util.FormatBytes(int64(len(input.Data)))),
		slog.String("checksum", util.ChecksumBytes(input.Data)),
	)

	return s.List(ctx)
}
