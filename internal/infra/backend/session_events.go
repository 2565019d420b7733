// Package backend provides concrete implementations of the BackendClient
// contract: the Firebase-backed production client and an in-memory client for
// development and tests.
package backend

import (
	"sync"

	"unione/internal/domain/entity"
)

// sessionBroadcaster fans session-change events out to subscribers. It keeps
// the last emitted identity so late subscribers immediately learn the current
// state, matching the managed backend's observer behavior.
type sessionBroadcaster struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]func(identity *entity.Identity)
	current  *entity.Identity
}

func newSessionBroadcaster() *sessionBroadcaster {
	return &sessionBroadcaster{
		handlers: make(map[int]func(identity *entity.Identity)),
	}
}

// OnSessionChange registers a handler and synchronously delivers the current
// session state to it. The returned function cancels the subscription.
func (b *sessionBroadcaster) OnSessionChange(handler func(identity *entity.Identity)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = handler
	current := b.current
	b.mu.Unlock()

	handler(current)

	return func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}
}

// emit records the new session state and notifies all subscribers. Handlers
// run outside the lock so they may re-enter the broadcaster.
func (b *sessionBroadcaster) emit(identity *entity.Identity) {
	b.mu.Lock()
	b.current = identity
	handlers := make([]func(identity *entity.Identity), 0, len(b.handlers))
	for _, handler := range b.handlers {
		handlers = append(handlers, handler)
	}
	b.mu.Unlock()

	for _, handler := range handlers {
		handler(identity)
	}
}

// currentIdentity returns the last emitted session state.
func (b *sessionBroadcaster) currentIdentity() *entity.Identity {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.current
}
