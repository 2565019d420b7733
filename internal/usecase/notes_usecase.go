package usecase

import "unione/internal/domain/entity"

// NotesUsecase defines the interface for the curated study-note sources
type NotesUsecase interface {
	// Sources returns the configured note sources in display order
	Sources() []entity.NoteSource
}
