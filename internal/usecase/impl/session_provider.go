// Package impl provides the concrete use case implementations.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"unione/internal/domain/constants"
	"unione/internal/domain/entity"
	domainerrors "unione/internal/domain/errors"
	"unione/internal/domain/lifecycle"
	"unione/internal/domain/service"
	"unione/internal/errors"
	"unione/internal/usecase"
)

// sessionProvider owns the process-wide session state. It subscribes to the
// backend's session-change notifications for its whole lifetime and keeps the
// (identity, profile) pair consistent: the profile is only ever non-nil while
// its identity is the active one.
type sessionProvider struct {
	backend service.BackendClient
	logger  *slog.Logger

	mu       sync.Mutex
	phase    entity.SessionPhase
	identity *entity.Identity
	profile  *entity.Profile

	unsubscribe func()
}

// NewSessionProvider creates the session provider and subscribes it to the
// backend's session changes. The subscription delivers the current state
// immediately, so the provider leaves SessionUnknown as soon as the backend
// has reported anything.
func NewSessionProvider(backend service.BackendClient, logger *slog.Logger) usecase.SessionUsecase {
	provider := &sessionProvider{
		backend: backend,
		logger:  logger,
		phase:   entity.SessionUnknown,
	}
	provider.unsubscribe = backend.OnSessionChange(provider.handleSessionChange)

	return provider
}

// handleSessionChange reacts to the backend reporting a new session state.
// On sign-in the profile is fetched outside the lock; the fetched profile is
// discarded if the identity changed again in the meantime.
func (s *sessionProvider) handleSessionChange(identity *entity.Identity) {
	s.mu.Lock()
	if identity == nil {
		s.phase = entity.SessionAnonymous
		s.identity = nil
		s.profile = nil
		s.mu.Unlock()

		return
	}
	s.phase = entity.SessionAuthenticated
	s.identity = identity
	s.profile = nil
	s.mu.Unlock()

	profile := s.fetchProfile(identity)
	if profile == nil {
		return
	}

	s.mu.Lock()
	if s.identity != nil && s.identity.Token == identity.Token {
		s.profile = profile
	}
	s.mu.Unlock()
}

// fetchProfile loads the identity's profile document. A missing document or a
// backend failure both yield nil: "authenticated without profile" is a valid
// state the caller may render.
func (s *sessionProvider) fetchProfile(identity *entity.Identity) *entity.Profile {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	record, err := s.backend.GetDocument(ctx, constants.CollectionProfiles, identity.UID)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			s.logger.Warn("No profile document for session",
				slog.String("uid", identity.UID),
			)
		} else {
			s.logger.Error("Failed to load profile for session",
				slog.String("uid", identity.UID),
				slog.Any("error", err),
			)
		}

		return nil
	}

	return entity.ProfileFromRecord(record)
}

// Login signs in with the given credentials. The session state is updated
// through the change notification before SignIn returns.
func (s *sessionProvider) Login(ctx context.Context, input *usecase.LoginInput) (*entity.SessionSnapshot, error) {
	if _, err := s.backend.SignIn(ctx, input.Email, input.Password); err != nil {
		if errors.Is(err, service.ErrCredentialsRejected) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login rejected")
		}

		return nil, domainerrors.ErrBackendUnavailable.WrapMessage(err.Error())
	}

	snapshot := s.Current()

	return &snapshot, nil
}

// Signup registers the account, then writes its profile document. If the
// profile write fails the identity stays registered without a profile; the
// user can complete it later from the profile page.
func (s *sessionProvider) Signup(ctx context.Context, input *usecase.SignupInput) (*entity.SessionSnapshot, error) {
	identity, err := s.backend.SignUp(ctx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return nil, domainerrors.ErrEmailAlreadyRegistered.WrapMessage("signup rejected")
		}

		return nil, domainerrors.ErrBackendUnavailable.WrapMessage(err.Error())
	}

	profile := &entity.Profile{
		Email:      input.Email,
		Name:       input.Name,
		Department: input.Department,
		Year:       input.Year,
		StudentID:  input.StudentID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.backend.SetDocument(ctx, constants.CollectionProfiles, identity.UID, profile.Record(), false); err != nil {
		s.logger.Error("Profile write failed after signup, identity remains without profile",
			slog.String("uid", identity.UID),
			slog.Any("error", err),
		)

		return nil, domainerrors.ErrBackendUnavailable.WrapMessage("profile creation failed")
	}

	s.mu.Lock()
	if s.identity != nil && s.identity.Token == identity.Token {
		s.profile = profile
	}
	s.mu.Unlock()

	snapshot := s.Current()

	return &snapshot, nil
}

// Logout ends the active session. Logging out while already signed out is
// a no-op, not an error.
func (s *sessionProvider) Logout(ctx context.Context) error {
	if !s.Current().Authenticated() {
		return nil
	}

	if err := s.backend.SignOut(ctx); err != nil {
		return domainerrors.ErrBackendUnavailable.WrapMessage(err.Error())
	}

	return nil
}

// UpdateProfile merges the set fields into the remote profile document, then
// into the local copy, and returns the merged profile.
func (s *sessionProvider) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*entity.Profile, error) {
	s.mu.Lock()
	identity := s.identity
	s.mu.Unlock()

	if identity == nil {
		return nil, domainerrors.ErrAuthRequired.WrapMessage("profile update requires a session")
	}

	update := entity.ProfileUpdate{
		Name:       input.Name,
		Department: input.Department,
		Year:       input.Year,
		StudentID:  input.StudentID,
	}
	record := update.Record()
	if len(record) > 0 {
		if err := s.backend.SetDocument(ctx, constants.CollectionProfiles, identity.UID, record, true); err != nil {
			return nil, domainerrors.ErrBackendUnavailable.WrapMessage(err.Error())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == nil || s.identity.Token != identity.Token {
		return nil, domainerrors.ErrAuthRequired.WrapMessage("session ended during profile update")
	}
	if s.profile == nil {
		// A merge write creates the document when it was missing; mirror
		// that locally instead of reporting absence.
		s.profile = &entity.Profile{Email: identity.Email}
	}
	update.Apply(s.profile)
	merged := *s.profile

	return &merged, nil
}

// Current returns a copy of the session state.
func (s *sessionProvider) Current() entity.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := entity.SessionSnapshot{Phase: s.phase}
	if s.identity != nil {
		identity := *s.identity
		snapshot.Identity = &identity
	}
	if s.profile != nil {
		profile := *s.profile
		snapshot.Profile = &profile
	}

	return snapshot
}
