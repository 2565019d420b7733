package impl

import (
	"context"
	"log/slog"
	"time"

	"unione/internal/domain/constants"
	"unione/internal/domain/entity"
	domainerrors "unione/internal/domain/errors"
	"unione/internal/domain/service"
	"unione/internal/errors"
	"unione/internal/usecase"
)

type announcementService struct {
	backend   service.BackendClient
	session   usecase.SessionUsecase
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewAnnouncementService creates a new announcement service instance
func NewAnnouncementService(
	backend service.BackendClient,
	session usecase.SessionUsecase,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.AnnouncementUsecase {
	return &announcementService{
		backend:   backend,
		session:   session,
		publisher: publisher,
		logger:    logger,
	}
}

// List retrieves all announcements ordered newest first.
func (s *announcementService) List(ctx context.Context) ([]*entity.Announcement, error) {
	documents, err := s.backend.ListDocuments(ctx, constants.CollectionAnnouncements, "createdAt", true)
	if err != nil {
		return nil, domainerrors.ErrBackendUnavailable.WrapMessage(err.Error())
	}

	announcements := make([]*entity.Announcement, 0, len(documents))
	for _, document := range documents {
		announcements = append(announcements, entity.AnnouncementFromRecord(document.ID, document.Data))
	}

	return announcements, nil
}

// Create posts a new announcement attributed to the current session and
// returns the refreshed list. The author label prefers the profile name and
// falls back to the login email.
func (s *announcementService) Create(ctx context.Context, input *usecase.CreateAnnouncementInput) ([]*entity.Announcement, error) {
	snapshot := s.session.Current()
	if !snapshot.Authenticated() {
		return nil, domainerrors.ErrAuthRequired.WrapMessage("announcement creation requires a session")
	}

	priority := entity.Priority(input.Priority)
	if input.Priority == "" {
		priority = entity.PriorityMedium
	}
	if !priority.Valid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("priority must be high, medium, or low")
	}

	announcement := &entity.Announcement{
		Title:     input.Title,
		Content:   input.Content,
		Author:    authorLabel(snapshot),
		Priority:  priority,
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.backend.AddDocument(ctx, constants.CollectionAnnouncements, announcement.Record())
	if err != nil {
		return nil, domainerrors.ErrBackendUnavailable.WrapMessage(err.Error())
	}
	announcement.ID = id

	// Event publishing never blocks the user-facing flow.
	event := &service.AnnouncementEvent{
		AnnouncementID: id,
		Title:          announcement.Title,
		Author:         announcement.Author,
		Priority:       string(announcement.Priority),
		CreatedAt:      announcement.CreatedAt,
	}
	if err := s.publisher.PublishAnnouncementEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish announcement event",
			slog.String("announcement_id", id),
			slog.Any("error", err),
		)
	}

	return s.List(ctx)
}

// Delete removes an announcement if the current session authored it and
// returns the refreshed list. Authorship matches either the stored author
// label against the profile name, or against the login email for entries
// created before a profile existed.
func (s *announcementService) Delete(ctx context.Context, id string) ([]*entity.Announcement, error) {
	snapshot := s.session.Current()
	if !snapshot.Authenticated() {
		return nil, domainerrors.ErrAuthRequired.WrapMessage("announcement deletion requires a session")
	}

	record, err := s.backend.GetDocument(ctx, constants.CollectionAnnouncements, id)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("announcement not found")
		}

		return nil, domainerrors.ErrBackendUnavailable.WrapMessage(err.Error())
	}

	announcement := entity.AnnouncementFromRecord(id, record)
	authorized := snapshot.Identity.Email == announcement.Author ||
		(snapshot.Profile != nil && snapshot.Profile.Name == announcement.Author)
	if !authorized {
		return nil, domainerrors.ErrForbidden.WrapMessage("only the author may delete an announcement")
	}

	if err := s.backend.DeleteDocument(ctx, constants.CollectionAnnouncements, id); err != nil {
		return nil, domainerrors.ErrBackendUnavailable.WrapMessage(err.Error())
	}

	return s.List(ctx)
}

// authorLabel resolves the display label stored on created records.
func authorLabel(snapshot entity.SessionSnapshot) string {
	if snapshot.Profile != nil && snapshot.Profile.Name != "" {
		return snapshot.Profile.Name
	}
	if snapshot.Identity != nil && snapshot.Identity.Email != "" {
		return snapshot.Identity.Email
	}

	return "Unknown"
}
