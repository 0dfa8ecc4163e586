// Package store implements the storefront's reactive data store: three
// durable collections (products, config, session) with synchronous
// multi-listener fan-out after every successful mutation. It gives UI
// clients the illusion of a live backend over plain document storage.
package store

import (
	"cblls_server/storage"
	"cblls_server/structs"
	"context"
	"sync"

	"github.com/MonkyMars/gecho"
)

// IdentityProvider is the seam to the authentication backend. The store
// adapts the provider's user into the internal session shape and owns
// session persistence; the provider owns credentials.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*structs.User, error)
	SignUp(ctx context.Context, name, email, password string) (*structs.User, error)
	// Lookup returns a fresh snapshot of the user, picking up
	// out-of-band changes such as a flipped verification flag.
	Lookup(ctx context.Context, uid string) (*structs.User, error)
}

// Store is the single point of truth for reading, mutating and
// observing the durable collections. Construct with New and pass by
// reference; Close tears down every subscription.
type Store struct {
	mu       sync.Mutex // serializes mutations (persist-then-notify)
	backend  storage.Backend
	provider IdentityProvider
	logger   *gecho.Logger

	productListeners *listenerSet[[]structs.Product]
	configListeners  *listenerSet[structs.AppConfig]
	authListeners    *listenerSet[*structs.User]
}

func New(backend storage.Backend, provider IdentityProvider, logger *gecho.Logger) *Store {
	return &Store{
		backend:          backend,
		provider:         provider,
		logger:           logger,
		productListeners: newListenerSet[[]structs.Product](),
		configListeners:  newListenerSet[structs.AppConfig](),
		authListeners:    newListenerSet[*structs.User](),
	}
}

// SubscribeToProducts registers the callback and immediately invokes it
// once with the current snapshot, so subscribers never wait for a first
// mutation to see data. The returned handle removes only this callback.
func (s *Store) SubscribeToProducts(cb func([]structs.Product)) func() {
	unsubscribe := s.productListeners.add(cb)
	cb(s.Products())
	return unsubscribe
}

// SubscribeToConfig registers the callback and immediately invokes it
// once with the current merged configuration.
func (s *Store) SubscribeToConfig(cb func(structs.AppConfig)) func() {
	unsubscribe := s.configListeners.add(cb)
	cb(s.Config())
	return unsubscribe
}

// SubscribeToAuth registers the callback and immediately invokes it once
// with the current session, nil when nobody is logged in.
func (s *Store) SubscribeToAuth(cb func(*structs.User)) func() {
	unsubscribe := s.authListeners.add(cb)
	cb(s.CurrentUser())
	return unsubscribe
}

// Close clears every listener set. After Close the store can still be
// read, but no subscriber will be notified again.
func (s *Store) Close() {
	s.productListeners.clear()
	s.configListeners.clear()
	s.authListeners.clear()
}
