package service

import "unione/internal/domain/entity"

// IDCardService defines the interface for digital student ID card generation.
type IDCardService interface {
	// GenerateStudentID renders a scannable digital ID card for a profile as a
	// PNG image.
	GenerateStudentID(profile *entity.Profile) ([]byte, error)
}
