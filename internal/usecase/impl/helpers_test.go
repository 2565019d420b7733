package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"unione/config"
	"unione/internal/domain/service"
	"unione/internal/infra/backend"
	"unione/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMemoryBackend(t *testing.T) service.BackendClient {
	t.Helper()

	client, err := backend.NewMemoryClient(&config.MemoryBackendConfig{BcryptCost: 4}, newDiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client
}

// signedUpSession returns a provider with a fresh authenticated account.
func signedUpSession(t *testing.T, client service.BackendClient, email string) usecase.SessionUsecase {
	t.Helper()

	provider := NewSessionProvider(client, newDiscardLogger())
	_, err := provider.Signup(context.Background(), &usecase.SignupInput{
		Email:      email,
		Password:   "secret123",
		Name:       "Jane Doe",
		Department: "Computer Science",
		Year:       "3",
		StudentID:  "CS2023042",
	})
	require.NoError(t, err)

	return provider
}

// recordingPublisher captures announcement events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.AnnouncementEvent
	fail   bool
}

func (p *recordingPublisher) PublishAnnouncementEvent(_ context.Context, event *service.AnnouncementEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fail {
		return errors.New("publisher down")
	}
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) recorded() []*service.AnnouncementEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*service.AnnouncementEvent(nil), p.events...)
}

// profileWriteFailingBackend rejects profile document writes to exercise the
// signup failure path.
type profileWriteFailingBackend struct {
	service.BackendClient
}

func (b *profileWriteFailingBackend) SetDocument(ctx context.Context, collection, id string, record map[string]any, merge bool) error {
	if collection == "users" {
		return errors.New("document store down")
	}

	return b.BackendClient.SetDocument(ctx, collection, id, record, merge)
}
