package engage

import (
	"sync"

	"github.com/writersguild/quill/domain"
)

// Store holds the posts currently known to the client, keyed by ID, and
// notifies subscribers after every change. It is the single owner of
// engagement state; views render from it and never keep their own copies.
//
// The store is safe for concurrent use: settlement runs on network
// goroutines while a rendering context reads.
type Store struct {
	mu      sync.RWMutex
	posts   map[string]domain.Post
	nextSub int
	subs    map[int]func(domain.Post)
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		posts: make(map[string]domain.Post),
		subs:  make(map[int]func(domain.Post)),
	}
}

// Put inserts or replaces a post and notifies subscribers.
func (s *Store) Put(p domain.Post) {
	s.mu.Lock()
	s.posts[p.ID] = p
	subs := s.snapshotSubs()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(p)
	}
}

// PutAll inserts or replaces a batch of posts. Subscribers are notified once
// per post.
func (s *Store) PutAll(posts []domain.Post) {
	for _, p := range posts {
		s.Put(p)
	}
}

// Get returns a copy of the post with the given ID.
func (s *Store) Get(id string) (domain.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	return p, ok
}

// Remove deletes a post from the store. Removing an unknown ID is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	delete(s.posts, id)
	s.mu.Unlock()
}

// Apply atomically mutates the post with the given ID and notifies
// subscribers with the result. It returns false, leaving the store untouched,
// when the ID is unknown — callers settling against a post that has since
// been deleted rely on this being a safe no-op.
func (s *Store) Apply(id string, mutate func(*domain.Post)) (domain.Post, bool) {
	s.mu.Lock()
	p, ok := s.posts[id]
	if !ok {
		s.mu.Unlock()
		return domain.Post{}, false
	}
	mutate(&p)
	s.posts[id] = p
	subs := s.snapshotSubs()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(p)
	}
	return p, true
}

// Subscribe registers fn to be called after every post change. The returned
// func cancels the subscription.
func (s *Store) Subscribe(fn func(domain.Post)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// snapshotSubs copies the subscriber list so callbacks run outside the lock.
// Callers must hold mu.
func (s *Store) snapshotSubs() []func(domain.Post) {
	out := make([]func(domain.Post), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}
