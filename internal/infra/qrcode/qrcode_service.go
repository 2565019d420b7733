package qrcode

import (
	"encoding/json"
	"fmt"

	"unione/internal/domain/entity"
	"unione/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type idCardService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// IDCardData represents the payload encoded into the student ID card
type IDCardData struct {
	Type       string `json:"type"`
	Name       string `json:"name"`
	StudentID  string `json:"student_id"`
	Department string `json:"department"`
	Year       string `json:"year"`
	Email      string `json:"email"`
}

// NewIDCardService creates a new ID card service instance
func NewIDCardService(size int, errorCorrectionLevel string) service.IDCardService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &idCardService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateStudentID renders the profile as a scannable QR card
func (s *idCardService) GenerateStudentID(profile *entity.Profile) ([]byte, error) {
	data := IDCardData{
		Type:       "student-id",
		Name:       profile.Name,
		StudentID:  profile.StudentID,
		Department: profile.Department,
		Year:       profile.Year,
		Email:      profile.Email,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ID card data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
