package state

import (
	"sync"
	"sync/atomic"
)

// Store owns the application state. Dispatch is the only way to change it.
type Store struct {
	mu     sync.RWMutex
	state  State
	subs   map[int]chan struct{}
	nextID int
	tokens atomic.Uint64
}

// NewStore creates a store holding initial
func NewStore(initial State) *Store {
	return &Store{
		state: initial,
		subs:  make(map[int]chan struct{}),
	}
}

// Dispatch applies actions in order and notifies subscribers once
func (s *Store) Dispatch(actions ...Action) {
	if len(actions) == 0 {
		return
	}

	s.mu.Lock()
	for _, a := range actions {
		s.state = Reduce(s.state, a)
	}
	subs := make([]chan struct{}, 0, len(s.subs))
	for _, ch := range s.subs {
		subs = append(subs, ch)
	}
	s.mu.Unlock()

	for _, ch := range subs {
		// Coalesce: a pending notification already covers this change
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Snapshot returns the current state. The reducer never mutates shared
// slices, so the copy is safe to read without locking.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe returns a channel that receives a value after state changes.
// Notifications are coalesced. Call the returned function to unsubscribe.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// NextToken returns a fresh request token, never 0
func (s *Store) NextToken() uint64 {
	return s.tokens.Add(1)
}
