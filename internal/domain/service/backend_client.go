// Package service defines the interfaces for external collaborators.
// These interfaces act as a contract between the domain/application layers and
// the infrastructure layer.
package service

import (
	"context"
	"errors"

	"unione/internal/domain/entity"
)

// Sentinel errors for the backend client. The application layer translates
// these into user-facing errors without depending on backend-specific codes.
var (
	// ErrCredentialsRejected is returned when the backend refuses an
	// email/password pair.
	ErrCredentialsRejected = errors.New("credentials rejected by backend")
	// ErrEmailTaken is returned when signing up with an already registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrDocumentNotFound is returned when a document does not exist.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrBlobNotFound is returned when a blob path has no stored object.
	ErrBlobNotFound = errors.New("blob not found")
)

// Document is one record from a backend collection.
type Document struct {
	ID   string
	Data map[string]any
}

// BackendClient is the backend-as-a-service contract the portal is built on:
// credential-based session issuance, schemaless document CRUD, and blob
// storage. Everything the portal persists goes through this interface; the
// application keeps no store of its own.
//
// Session state is push-based: implementations report every session change
// (sign-in, sign-out, expiry) through OnSessionChange, delivering the current
// state once on subscribe.
type BackendClient interface {
	// SignIn establishes a session for an existing account.
	SignIn(ctx context.Context, email, password string) (*entity.Identity, error)

	// SignUp creates a new account and establishes a session for it.
	SignUp(ctx context.Context, email, password string) (*entity.Identity, error)

	// SignOut ends the active session. Idempotent.
	SignOut(ctx context.Context) error

	// OnSessionChange registers a handler for session-change events. A nil
	// identity means no session is active. The handler is invoked once with
	// the current state before OnSessionChange returns. The returned function
	// cancels the subscription; the caller owns that lifetime.
	OnSessionChange(handler func(identity *entity.Identity)) (unsubscribe func())

	// GetDocument fetches a single document, or ErrDocumentNotFound.
	GetDocument(ctx context.Context, collection, id string) (map[string]any, error)

	// SetDocument writes a document under a caller-chosen ID. With merge, only
	// the provided fields are changed; without, the record replaces the document.
	SetDocument(ctx context.Context, collection, id string, record map[string]any, merge bool) error

	// ListDocuments returns all documents of a collection, ordered by the named
	// field when orderBy is non-empty. There is no pagination.
	ListDocuments(ctx context.Context, collection, orderBy string, descending bool) ([]Document, error)

	// AddDocument stores a document under a backend-generated ID.
	AddDocument(ctx context.Context, collection string, record map[string]any) (string, error)

	// DeleteDocument removes a document. Deleting a missing document is not an error.
	DeleteDocument(ctx context.Context, collection, id string) error

	// UploadBlob stores raw bytes under a path.
	UploadBlob(ctx context.Context, path string, data []byte, contentType string) error

	// BlobURL resolves a stored blob to a downloadable URL.
	BlobURL(ctx context.Context, path string) (string, error)

	// Close releases backend resources.
	Close() error
}
