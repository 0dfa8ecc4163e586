package store

import "sync"

// listenerSet is an ordered registry of subscription callbacks.
// Callbacks are invoked in registration order; unsubscribing removes
// exactly one callback and leaves the others untouched.
type listenerSet[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id int
	cb func(T)
}

func newListenerSet[T any]() *listenerSet[T] {
	return &listenerSet[T]{}
}

// add registers the callback and returns its deregistration handle.
func (ls *listenerSet[T]) add(cb func(T)) func() {
	ls.mu.Lock()
	id := ls.nextID
	ls.nextID++
	ls.subs = append(ls.subs, subscriber[T]{id: id, cb: cb})
	ls.mu.Unlock()

	return func() {
		ls.mu.Lock()
		defer ls.mu.Unlock()
		for i, sub := range ls.subs {
			if sub.id == id {
				ls.subs = append(ls.subs[:i], ls.subs[i+1:]...)
				return
			}
		}
	}
}

// notify invokes every registered callback with the value, in
// registration order. The callbacks run outside the registry lock so a
// subscriber may read from or subscribe to the store.
func (ls *listenerSet[T]) notify(value T) {
	ls.mu.Lock()
	snapshot := make([]subscriber[T], len(ls.subs))
	copy(snapshot, ls.subs)
	ls.mu.Unlock()

	for _, sub := range snapshot {
		sub.cb(value)
	}
}

// clear drops every subscriber. Used for deterministic teardown.
func (ls *listenerSet[T]) clear() {
	ls.mu.Lock()
	ls.subs = nil
	ls.mu.Unlock()
}

func (ls *listenerSet[T]) count() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return len(ls.subs)
}
