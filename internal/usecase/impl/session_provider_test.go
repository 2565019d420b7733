package impl

import (
	"context"
	"testing"
	"time"

	"unione/internal/domain/entity"
	domainerrors "unione/internal/domain/errors"
	"unione/internal/errors"
	"unione/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionProvider_StartsAnonymous(t *testing.T) {
	client := newMemoryBackend(t)
	provider := NewSessionProvider(client, newDiscardLogger())

	snapshot := provider.Current()
	assert.Equal(t, entity.SessionAnonymous, snapshot.Phase)
	assert.Nil(t, snapshot.Identity)
	assert.Nil(t, snapshot.Profile)
}

func TestSessionProvider_SignupEstablishesSessionWithProfile(t *testing.T) {
	client := newMemoryBackend(t)
	provider := NewSessionProvider(client, newDiscardLogger())

	before := time.Now()
	snapshot, err := provider.Signup(context.Background(), &usecase.SignupInput{
		Email:      "jane@university.edu",
		Password:   "secret123",
		Name:       "Jane Doe",
		Department: "Computer Science",
		Year:       "3",
		StudentID:  "CS2023042",
	})
	require.NoError(t, err)

	assert.True(t, snapshot.Authenticated())
	assert.Equal(t, "jane@university.edu", snapshot.Identity.Email)
	require.NotNil(t, snapshot.Profile)
	assert.Equal(t, "Jane Doe", snapshot.Profile.Name)
	assert.Equal(t, "jane@university.edu", snapshot.Profile.Email)
	assert.False(t, snapshot.Profile.CreatedAt.Before(before.Add(-time.Second)))
	assert.False(t, snapshot.Profile.CreatedAt.After(time.Now()))
}

func TestSessionProvider_SignupDuplicateEmail(t *testing.T) {
	client := newMemoryBackend(t)
	signedUpSession(t, client, "jane@university.edu")

	provider := NewSessionProvider(client, newDiscardLogger())
	_, err := provider.Signup(context.Background(), &usecase.SignupInput{
		Email:      "jane@university.edu",
		Password:   "other456",
		Name:       "Someone Else",
		Department: "Physics",
		Year:       "1",
		StudentID:  "PH2026001",
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
}

func TestSessionProvider_LoginLoadsStoredProfile(t *testing.T) {
	client := newMemoryBackend(t)
	first := signedUpSession(t, client, "jane@university.edu")
	require.NoError(t, first.Logout(context.Background()))

	provider := NewSessionProvider(client, newDiscardLogger())
	snapshot, err := provider.Login(context.Background(), &usecase.LoginInput{
		Email:    "jane@university.edu",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.True(t, snapshot.Authenticated())
	require.NotNil(t, snapshot.Profile)
	assert.Equal(t, "Jane Doe", snapshot.Profile.Name)
	assert.Equal(t, "CS2023042", snapshot.Profile.StudentID)
}

func TestSessionProvider_LoginWrongPasswordLeavesStateUnchanged(t *testing.T) {
	client := newMemoryBackend(t)
	provider := signedUpSession(t, client, "jane@university.edu")
	require.NoError(t, provider.Logout(context.Background()))

	_, err := provider.Login(context.Background(), &usecase.LoginInput{
		Email:    "jane@university.edu",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	snapshot := provider.Current()
	assert.Equal(t, entity.SessionAnonymous, snapshot.Phase)
	assert.Nil(t, snapshot.Profile)
}

func TestSessionProvider_LogoutClearsSession(t *testing.T) {
	client := newMemoryBackend(t)
	provider := signedUpSession(t, client, "jane@university.edu")

	require.NoError(t, provider.Logout(context.Background()))

	snapshot := provider.Current()
	assert.Equal(t, entity.SessionAnonymous, snapshot.Phase)
	assert.Nil(t, snapshot.Identity)
	assert.Nil(t, snapshot.Profile)

	// Logging out while signed out is a no-op
	assert.NoError(t, provider.Logout(context.Background()))
}

func TestSessionProvider_UpdateProfileMerges(t *testing.T) {
	client := newMemoryBackend(t)
	provider := signedUpSession(t, client, "jane@university.edu")

	year := "4"
	profile, err := provider.UpdateProfile(context.Background(), &usecase.UpdateProfileInput{Year: &year})
	require.NoError(t, err)

	assert.Equal(t, "4", profile.Year)
	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, "jane@university.edu", profile.Email)

	// The merged fields survive a fresh session
	require.NoError(t, provider.Logout(context.Background()))
	snapshot, err := provider.Login(context.Background(), &usecase.LoginInput{
		Email:    "jane@university.edu",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, snapshot.Profile)
	assert.Equal(t, "4", snapshot.Profile.Year)
	assert.Equal(t, "Jane Doe", snapshot.Profile.Name)
}

func TestSessionProvider_UpdateProfileWithoutSession(t *testing.T) {
	client := newMemoryBackend(t)
	provider := NewSessionProvider(client, newDiscardLogger())

	name := "Jane Doe"
	_, err := provider.UpdateProfile(context.Background(), &usecase.UpdateProfileInput{Name: &name})
	assert.True(t, errors.Is(err, domainerrors.ErrAuthRequired))
}

func TestSessionProvider_SignupProfileWriteFailure(t *testing.T) {
	client := newMemoryBackend(t)
	failing := &profileWriteFailingBackend{BackendClient: client}
	provider := NewSessionProvider(failing, newDiscardLogger())

	_, err := provider.Signup(context.Background(), &usecase.SignupInput{
		Email:      "jane@university.edu",
		Password:   "secret123",
		Name:       "Jane Doe",
		Department: "Computer Science",
		Year:       "3",
		StudentID:  "CS2023042",
	})
	assert.ErrorIs(t, err, domainerrors.ErrBackendUnavailable)

	// The identity is registered; the session stays active without a profile
	snapshot := provider.Current()
	assert.True(t, snapshot.Authenticated())
	assert.Nil(t, snapshot.Profile)
}
