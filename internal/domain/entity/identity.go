// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Identity is the backend-issued proof that a user is currently signed in.
// It is opaque to the application: the token is never inspected locally, only
// held for as long as the backend reports the session as active.
type Identity struct {
	UID       string    // The backend's unique identifier for the account.
	Email     string    // The email address the session was established with.
	Token     string    // Opaque session token issued by the backend.
	ExpiresAt time.Time // When the backend will consider this session expired.
}

// SessionPhase describes where the session provider is in its lifecycle.
type SessionPhase string

const (
	// SessionUnknown is the initial state before the backend has reported
	// whether a session exists. The provider only re-enters it at process start.
	SessionUnknown SessionPhase = "unknown"

	// SessionAnonymous means the backend reported no active session.
	SessionAnonymous SessionPhase = "anonymous"

	// SessionAuthenticated means an identity is active. The profile may still
	// be nil: "authenticated without profile" is a valid, displayable state.
	SessionAuthenticated SessionPhase = "authenticated"
)

// SessionSnapshot is a point-in-time copy of the provider's state.
// Identity and Profile are copies; mutating them does not affect the provider.
type SessionSnapshot struct {
	Phase    SessionPhase
	Identity *Identity
	Profile  *Profile
}

// Authenticated reports whether the snapshot carries an active identity.
func (s SessionSnapshot) Authenticated() bool {
	return s.Phase == SessionAuthenticated && s.Identity != nil
}
