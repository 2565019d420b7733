package usecase

import (
	"context"

	"unione/internal/domain/entity"
)

// LoginInput represents the credentials for an email/password login
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupInput represents the registration form for a new student account
type SignupInput struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Name       string `json:"name" validate:"required"`
	Department string `json:"department" validate:"required"`
	Year       string `json:"year" validate:"required"`
	StudentID  string `json:"studentId" validate:"required"`
}

// UpdateProfileInput represents a partial profile update; only set fields
// are written
type UpdateProfileInput struct {
	Name       *string `json:"name,omitempty"`
	Department *string `json:"department,omitempty"`
	Year       *string `json:"year,omitempty"`
	StudentID  *string `json:"studentId,omitempty"`
}

// SessionUsecase defines the interface for session and profile use cases.
// Implementations own the process-wide session state and keep it in sync
// with the backend's session-change notifications.
type SessionUsecase interface {
	// Login signs in with email and password and returns the resulting session
	Login(ctx context.Context, input *LoginInput) (*entity.SessionSnapshot, error)

	// Signup registers a new account, stores its profile, and signs it in
	Signup(ctx context.Context, input *SignupInput) (*entity.SessionSnapshot, error)

	// Logout ends the current session; already-signed-out is not an error
	Logout(ctx context.Context) error

	// UpdateProfile merges the set fields into the current profile
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.Profile, error)

	// Current returns a snapshot of the session state
	Current() entity.SessionSnapshot
}
