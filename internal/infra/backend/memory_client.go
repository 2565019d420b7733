package backend

import (
	"context"
	"crypto/rand"
	"log/slog"
	"sort"
	"sync"
	"time"

	"unione/config"
	"unione/internal/domain/entity"
	"unione/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultBcryptCost = bcrypt.DefaultCost
	defaultSessionTTL = time.Hour
)

type memoryCredential struct {
	uid          string
	passwordHash []byte
}

type memoryBlob struct {
	data        []byte
	contentType string
}

// memoryClient is an in-process BackendClient. It mimics the managed backend
// closely enough for development and tests: bcrypt-checked credentials, signed
// session tokens with expiry, schemaless document collections, and a blob
// store resolving to memory:// URLs. Nothing survives a restart.
type memoryClient struct {
	*sessionBroadcaster

	logger     *slog.Logger
	bcryptCost int
	sessionTTL time.Duration
	signingKey []byte

	mu           sync.RWMutex
	credentials  map[string]memoryCredential         // keyed by email
	collections  map[string]map[string]map[string]any // collection -> id -> record
	blobs        map[string]memoryBlob
	currentToken string
	expiryTimer  *time.Timer
}

// NewMemoryClient creates the in-memory backend client.
func NewMemoryClient(cfg *config.MemoryBackendConfig, logger *slog.Logger) (service.BackendClient, error) {
	signingKey := make([]byte, 32)
	if _, err := rand.Read(signingKey); err != nil {
		return nil, errors.Wrap(err, "failed to generate session signing key")
	}

	client := &memoryClient{
		sessionBroadcaster: newSessionBroadcaster(),
		logger:             logger,
		bcryptCost:         defaultBcryptCost,
		sessionTTL:         defaultSessionTTL,
		signingKey:         signingKey,
		credentials:        make(map[string]memoryCredential),
		collections:        make(map[string]map[string]map[string]any),
		blobs:              make(map[string]memoryBlob),
	}
	if cfg != nil {
		if cfg.BcryptCost >= bcrypt.MinCost {
			client.bcryptCost = cfg.BcryptCost
		}
		if cfg.SessionTTL > 0 {
			client.sessionTTL = cfg.SessionTTL
		}
	}

	return client, nil
}

// SignIn checks the stored credential and establishes a session.
func (c *memoryClient) SignIn(ctx context.Context, email, password string) (*entity.Identity, error) {
	c.mu.RLock()
	credential, ok := c.credentials[email]
	c.mu.RUnlock()

	if !ok {
		return nil, errors.Wrap(service.ErrCredentialsRejected, "unknown email")
	}
	if err := bcrypt.CompareHashAndPassword(credential.passwordHash, []byte(password)); err != nil {
		return nil, errors.Wrap(service.ErrCredentialsRejected, "password mismatch")
	}

	return c.establishSession(credential.uid, email)
}

// SignUp registers a new credential and establishes a session for it.
func (c *memoryClient) SignUp(ctx context.Context, email, password string) (*entity.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.bcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	c.mu.Lock()
	if _, exists := c.credentials[email]; exists {
		c.mu.Unlock()

		return nil, errors.Wrap(service.ErrEmailTaken, "signup failed")
	}
	uid := uuid.New().String()
	c.credentials[email] = memoryCredential{uid: uid, passwordHash: hash}
	c.mu.Unlock()

	return c.establishSession(uid, email)
}

// SignOut ends the active session, if any.
func (c *memoryClient) SignOut(ctx context.Context) error {
	c.mu.Lock()
	c.currentToken = ""
	if c.expiryTimer != nil {
		c.expiryTimer.Stop()
		c.expiryTimer = nil
	}
	c.mu.Unlock()

	c.emit(nil)

	return nil
}

// establishSession issues a signed token, schedules its expiry, and notifies
// subscribers. The token is opaque to callers; signing it keeps the shape of
// the managed backend's ID tokens.
func (c *memoryClient) establishSession(uid, email string) (*entity.Identity, error) {
	expiresAt := time.Now().Add(c.sessionTTL)
	claims := jwt.MapClaims{
		"sub":   uid,
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.signingKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign session token")
	}

	c.mu.Lock()
	c.currentToken = token
	if c.expiryTimer != nil {
		c.expiryTimer.Stop()
	}
	c.expiryTimer = time.AfterFunc(c.sessionTTL, func() {
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

	return identity, nil
}

// expireSession pushes a signed-out state when the given token is still the
// active one. A later sign-in supersedes the pending expiry.
func (c *memoryClient) expireSession(token string) {
	c.mu.Lock()
	if c.currentToken != token {
		c.mu.Unlock()

		return
	}
	c.currentToken = ""
	c.expiryTimer = nil
	c.mu.Unlock()

	c.logger.Debug("Session token expired", slog.String("backend", "memory"))
	c.emit(nil)
}

// GetDocument fetches a copy of a stored document.
func (c *memoryClient) GetDocument(ctx context.Context, collection, id string) (map[string]any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	record, ok := c.collections[collection][id]
	if !ok {
		return nil, errors.Wrapf(service.ErrDocumentNotFound, "%s/%s", collection, id)
	}

	return copyRecord(record), nil
}

// SetDocument writes a document, merging into any existing record when asked.
func (c *memoryClient) SetDocument(ctx context.Context, collection, id string, record map[string]any, merge bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	documents, ok := c.collections[collection]
	if !ok {
		documents = make(map[string]map[string]any)
		c.collections[collection] = documents
	}

	if existing, exists := documents[id]; merge && exists {
		for key, value := range record {
			existing[key] = value
		}

		return nil
	}
	documents[id] = copyRecord(record)

	return nil
}

// ListDocuments returns all documents of a collection, ordered by the string
// form of the named field. RFC 3339 timestamps order chronologically this way.
func (c *memoryClient) ListDocuments(ctx context.Context, collection, orderBy string, descending bool) ([]service.Document, error) {
	c.mu.RLock()
	documents := make([]service.Document, 0, len(c.collections[collection]))
	for id, record := range c.collections[collection] {
		documents = append(documents, service.Document{ID: id, Data: copyRecord(record)})
	}
	c.mu.RUnlock()

	if orderBy != "" {
		sort.SliceStable(documents, func(i, j int) bool {
			left, _ := documents[i].Data[orderBy].(string)
			right, _ := documents[j].Data[orderBy].(string)
			if descending {
				return left > right
			}

			return left < right
		})
	}

	return documents, nil
}

// AddDocument stores a document under a generated ID.
func (c *memoryClient) AddDocument(ctx context.Context, collection string, record map[string]any) (string, error) {
	id := uuid.New().String()
	if err := c.SetDocument(ctx, collection, id, record, false); err != nil {
		return "", err
	}

	return id, nil
}

// DeleteDocument removes a document. Missing documents are ignored.
func (c *memoryClient) DeleteDocument(ctx context.Context, collection, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.collections[collection], id)

	return nil
}

// UploadBlob stores a copy of the bytes under the path.
func (c *memoryClient) UploadBlob(ctx context.Context, path string, data []byte, contentType string) error {
	stored := make([]byte, len(data))
	copy(stored, data)

	c.mu.Lock()
	c.blobs[path] = memoryBlob{data: stored, contentType: contentType}
	c.mu.Unlock()

	return nil
}

// BlobURL resolves a stored blob to a memory:// URL.
func (c *memoryClient) BlobURL(ctx context.Context, path string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.blobs[path]; !ok {
		return "", errors.Wrap(service.ErrBlobNotFound, path)
	}

	return "memory://" + path, nil
}

// Close stops the pending expiry timer.
func (c *memoryClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.expiryTimer != nil {
		c.expiryTimer.Stop()
		c.expiryTimer = nil
	}

	return nil
}

func copyRecord(record map[string]any) map[string]any {
	copied := make(map[string]any, len(record))
	for key, value := range record {
		copied[key] = value
	}

	return copied
}
