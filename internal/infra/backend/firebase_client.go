package backend

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"unione/config"
	"unione/internal/domain/entity"
	"unione/internal/domain/service"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/gcsblob" // register the gs:// bucket scheme
	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const blobURLExpiry = 24 * time.Hour

// firebaseClient implements BackendClient against a Firebase project:
// Identity Toolkit for password sessions, Firestore for documents, and the
// project's storage bucket (via gocloud) for blobs.
type firebaseClient struct {
	*sessionBroadcaster

	logger    *slog.Logger
	auth      *firebaseauth.Client
	store     *firestore.Client
	accounts  *identitytoolkit.RelyingpartyService
	bucket    *blob.Bucket
	projectID string

	mu           sync.Mutex
	currentUID   string
	currentToken string
	expiryTimer  *time.Timer
}

// NewFirebaseClient creates the Firebase-backed client from project credentials.
func NewFirebaseClient(ctx context.Context, cfg *config.FirebaseBackendConfig, logger *slog.Logger) (service.BackendClient, error) {
	credentials := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}, credentials)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}

	store, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get firestore client")
	}

	// Password sign-in is not part of the Admin SDK; it goes through the
	// Identity Toolkit REST API keyed by the web API key.
	toolkit, err := identitytoolkit.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create identity toolkit service")
	}

	bucket, err := blob.OpenBucket(ctx, "gs://"+cfg.StorageBucket)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open storage bucket")
	}

	return &firebaseClient{
		sessionBroadcaster: newSessionBroadcaster(),
		logger:             logger,
		auth:               authClient,
		store:              store,
		accounts:           toolkit.Relyingparty,
		bucket:             bucket,
		projectID:          cfg.ProjectID,
	}, nil
}

// SignIn verifies the password with Identity Toolkit and establishes a session.
func (c *firebaseClient) SignIn(ctx context.Context, email, password string) (*entity.Identity, error) {
	response, err := c.accounts.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, translateToolkitError(err, "sign-in failed")
	}

	return c.establishSession(response.LocalId, email, response.IdToken, response.ExpiresIn), nil
}

// SignUp creates the account and establishes a session for it.
func (c *firebaseClient) SignUp(ctx context.Context, email, password string) (*entity.Identity, error) {
	response, err := c.accounts.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:    email,
		Password: password,
	}).Context(ctx).Do()
	if err != nil {
		return nil, translateToolkitError(err, "sign-up failed")
	}

	return c.establishSession(response.LocalId, email, response.IdToken, response.ExpiresIn), nil
}

// SignOut revokes the account's refresh tokens and pushes a signed-out state.
func (c *firebaseClient) SignOut(ctx context.Context) error {
	c.mu.Lock()
	uid := c.currentUID
	c.currentUID = ""
	c.currentToken = ""
	if c.expiryTimer != nil {
		c.expiryTimer.Stop()
		c.expiryTimer = nil
	}
	c.mu.Unlock()

	if uid != "" {
		if err := c.auth.RevokeRefreshTokens(ctx, uid); err != nil {
			// Local state is already cleared; revocation failure only extends
			// the remote token's lifetime.
			c.logger.Warn("Failed to revoke refresh tokens", slog.String("uid", uid), slog.Any("error", err))
		}
	}
	c.emit(nil)

	return nil
}

func (c *firebaseClient) establishSession(uid, email, token string, expiresIn int64) *entity.Identity {
	ttl := time.Duration(expiresIn) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	expiresAt := time.Now().Add(ttl)

	c.mu.Lock()
	c.currentUID = uid
	c.currentToken = token
	if c.expiryTimer != nil {
		c.expiryTimer.Stop()
	}
	c.expiryTimer = time.AfterFunc(ttl, func() {
		c.expireSession(token)
	})
	c.mu.Unlock()

	identity := &entity.Identity{
		UID:       uid,
		Email:     email,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	c.emit(identity)

	return identity
}

func (c *firebaseClient) expireSession(token string) {
	c.mu.Lock()
	if c.currentToken != token {
		c.mu.Unlock()

		return
	}
	c.currentUID = ""
	c.currentToken = ""
	c.expiryTimer = nil
	c.mu.Unlock()

	c.logger.Debug("Session token expired", slog.String("backend", "firebase"))
	c.emit(nil)
}

// GetDocument fetches a single Firestore document.
func (c *firebaseClient) GetDocument(ctx context.Context, collection, id string) (map[string]any, error) {
	snapshot, err := c.store.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.Wrapf(service.ErrDocumentNotFound, "%s/%s", collection, id)
		}

		return nil, errors.Wrapf(err, "failed to get document %s/%s", collection, id)
	}

	return snapshot.Data(), nil
}

// SetDocument writes a Firestore document, merging when asked.
func (c *firebaseClient) SetDocument(ctx context.Context, collection, id string, record map[string]any, merge bool) error {
	document := c.store.Collection(collection).Doc(id)

	var err error
	if merge {
		_, err = document.Set(ctx, record, firestore.MergeAll)
	} else {
		_, err = document.Set(ctx, record)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to set document %s/%s", collection, id)
	}

	return nil
}

// ListDocuments returns every document of a collection in one query.
func (c *firebaseClient) ListDocuments(ctx context.Context, collection, orderBy string, descending bool) ([]service.Document, error) {
	query := c.store.Collection(collection).Query
	if orderBy != "" {
		direction := firestore.Asc
		if descending {
			direction = firestore.Desc
		}
		query = query.OrderBy(orderBy, direction)
	}

	snapshots, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list collection %s", collection)
	}

	documents := make([]service.Document, 0, len(snapshots))
	for _, snapshot := range snapshots {
		documents = append(documents, service.Document{ID: snapshot.Ref.ID, Data: snapshot.Data()})
	}

	return documents, nil
}

// AddDocument stores a Firestore document under a generated ID.
func (c *firebaseClient) AddDocument(ctx context.Context, collection string, record map[string]any) (string, error) {
	reference, _, err := c.store.Collection(collection).Add(ctx, record)
	if err != nil {
		return "", errors.Wrapf(err, "failed to add document to %s", collection)
	}

	return reference.ID, nil
}

// DeleteDocument removes a Firestore document. Missing documents are ignored.
func (c *firebaseClient) DeleteDocument(ctx context.Context, collection, id string) error {
	if _, err := c.store.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return errors.Wrapf(err, "failed to delete document %s/%s", collection, id)
	}

	return nil
}

// UploadBlob writes the bytes to the storage bucket.
func (c *firebaseClient) UploadBlob(ctx context.Context, path string, data []byte, contentType string) error {
	writer, err := c.bucket.NewWriter(ctx, path, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrapf(err, "failed to open blob writer for %s", path)
	}
	if _, err := writer.Write(data); err != nil {
		writer.Close()

		return errors.Wrapf(err, "failed to write blob %s", path)
	}

	return errors.Wrapf(writer.Close(), "failed to finish blob %s", path)
}

// BlobURL returns a time-limited signed URL for a stored blob.
func (c *firebaseClient) BlobURL(ctx context.Context, path string) (string, error) {
	url, err := c.bucket.SignedURL(ctx, path, &blob.SignedURLOptions{Expiry: blobURLExpiry})
	if err != nil {
		return "", errors.Wrapf(err, "failed to sign blob URL for %s", path)
	}

	return url, nil
}

// Close releases the Firestore and bucket handles.
func (c *firebaseClient) Close() error {
	c.mu.Lock()
	if c.expiryTimer != nil {
		c.expiryTimer.Stop()
		c.expiryTimer = nil
	}
	c.mu.Unlock()

	storeErr := c.store.Close()
	bucketErr := c.bucket.Close()
	if storeErr != nil {
		return errors.Wrap(storeErr, "failed to close firestore client")
	}

	return errors.Wrap(bucketErr, "failed to close storage bucket")
}

// translateToolkitError maps Identity Toolkit REST failures onto the backend
// sentinel errors. 400-class responses carry the reason in the message body
// (EMAIL_NOT_FOUND, INVALID_PASSWORD, EMAIL_EXISTS, ...).
func translateToolkitError(err error, message string) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code >= 400 && apiErr.Code < 500 {
		if strings.Contains(apiErr.Message, "EMAIL_EXISTS") {
			return errors.Wrap(service.ErrEmailTaken, message)
		}

		return errors.Wrap(service.ErrCredentialsRejected, message)
	}

	return errors.Wrap(err, message)
}
