// Package session holds the per-user conversational context for the lifetime
// of the process. Nothing here is persisted.
package session

import "sync"

// Context is the single-slot memory kept between messages of one user.
type Context struct {
	LastEntity string
}

// Store maps an opaque user identifier to its Context, created lazily on first
// contact. Individual reads and writes are synchronized; a read-modify-write
// spanning two overlapping messages from the same user is last-write-wins.
type Store struct {
	mu       sync.RWMutex
	contexts map[string]*Context
}

func NewStore() *Store {
	return &Store{
		contexts: make(map[string]*Context),
	}
}

// Get returns a snapshot of the user's context, creating an empty one on first
// contact.
func (s *Store) Get(userID string) Context {
	s.mu.RLock()
	ctx, exists := s.contexts[userID]
	s.mu.RUnlock()
	if exists {
		return *ctx
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx, exists := s.contexts[userID]; exists {
		return *ctx
	}
	s.contexts[userID] = &Context{}
	return Context{}
}

// SetLastEntity records the entity under discussion for the user.
func (s *Store) SetLastEntity(userID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, exists := s.contexts[userID]
	if !exists {
		ctx = &Context{}
		s.contexts[userID] = ctx
	}
	ctx.LastEntity = name
}

// ClearLastEntity forgets the entity under discussion for the user.
func (s *Store) ClearLastEntity(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx, exists := s.contexts[userID]; exists {
		ctx.LastEntity = ""
	}
}

// Len reports how many users have contacted the bot since process start.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contexts)
}
