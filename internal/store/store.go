// Package store holds the single authoritative session state and the
// action algebra that changes it.
//
// State transitions are computed by the pure Reduce function; Store wraps
// it with serialised dispatch, change subscriptions and a dispatch observer.
package store

import (
	"sync"
	"sync/atomic"
	"time"
)

// Store owns the current State. It is safe for concurrent use; dispatches
// are applied one at a time, each running to completion before the next.
type Store struct {
	mu       sync.Mutex
	state    State
	observer DispatchObserver
	now      func() time.Time

	seed *State

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int

	confirmSeq atomic.Uint64
}

// Option configures a Store at construction.
type Option func(*Store)

// WithObserver sets the observer notified after every dispatch.
func WithObserver(o DispatchObserver) Option {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithClock overrides the clock used for the initial state.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithState seeds the store with an existing snapshot instead of InitialState.
func WithState(st State) Option {
	return func(s *Store) {
		s.seed = &st
	}
}

// New returns a store holding a fresh session.
func New(opts ...Option) *Store {
	s := &Store{
		observer: NoopObserver{},
		now:      time.Now,
		subs:     make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.seed != nil {
		s.state = *s.seed
	} else {
		s.state = InitialState(s.now())
	}
	return s
}

// State returns the current snapshot. Snapshots share their slices with the
// store and are read-only: change state only through Dispatch.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a to the current state and returns the new snapshot.
// Subscribers are notified only when the action changed something.
func (s *Store) Dispatch(a Action) State {
	if a == nil {
		return s.State()
	}

	s.mu.Lock()
	start := time.Now()
	next, applied := reduce(s.state, a)
	s.state = next
	elapsed := time.Since(start)
	s.mu.Unlock()

	s.observer.ObserveDispatch(DispatchEvent{
		Action:   a.Kind(),
		Applied:  applied,
		Duration: elapsed,
		Events:   len(next.Events),
		Projects: len(next.Projects),
	})

	if applied {
		s.notify(next)
	}
	return next
}

// Subscribe registers fn to receive every changed snapshot. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(st State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}
