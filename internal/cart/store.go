package cart

import (
	"context"
	"sync"
	"time"
)

// Committer observes every committed transition. Committers run
// synchronously, in registration order, while the store lock is held, so a
// commit always finishes before the next dispatch begins.
type Committer interface {
	Commit(ctx context.Context, prev, next State, a Action)
}

type CommitterFunc func(ctx context.Context, prev, next State, a Action)

func (f CommitterFunc) Commit(ctx context.Context, prev, next State, a Action) {
	f(ctx, prev, next, a)
}

// Store is the single owner of one visitor's cart state.
type Store struct {
	mu         sync.Mutex
	state      State
	committers []Committer
	now        func() time.Time
}

type Option func(*Store)

// WithItems seeds the store, typically from Storage.
func WithItems(items []LineItem) Option {
	return func(s *Store) {
		s.state.Items = append([]LineItem{}, items...)
	}
}

func WithCommitter(c Committer) Option {
	return func(s *Store) {
		s.committers = append(s.committers, c)
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		state: State{Items: []LineItem{}},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch applies a and returns a copy of the committed state.
func (s *Store) Dispatch(ctx context.Context, a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	next := Reduce(prev, a, s.now())
	s.state = next

	for _, c := range s.committers {
		c.Commit(ctx, prev.Clone(), next.Clone(), a)
	}
	return next.Clone()
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}
