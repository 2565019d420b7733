package impl

import (
	"unione/config"
	"unione/internal/domain/entity"
	"unione/internal/usecase"
)

type notesService struct {
	sources []entity.NoteSource
}

// NewNotesService creates a new notes service instance from configuration.
// The source list is fixed at startup; there is no runtime mutation.
func NewNotesService(cfg *config.Config) usecase.NotesUsecase {
	var sources []entity.NoteSource
	if cfg.Notes != nil {
		for _, source := range cfg.Notes.Sources {
			sources = append(sources, entity.NoteSource{
				Title:       source.Title,
				URL:         source.URL,
				Description: source.Description,
			})
		}
	}

	return &notesService{sources: sources}
}

// Sources returns the configured note sources in display order.
func (s *notesService) Sources() []entity.NoteSource {
	copied := make([]entity.NoteSource, len(s.sources))
	copy(copied, s.sources)

	return copied
}
