// internal/session/memory.go
package session

import "sync"

// MemoryStore keeps the session in process memory. Used by tests and by
// callers that do not want the session to survive a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	sess *Session
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the current session, or ErrNoSession when none is stored
func (s *MemoryStore) Load() (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.sess == nil {
		return nil, ErrNoSession
	}
	copied := *s.sess
	return &copied, nil
}

// Save replaces the stored session
func (s *MemoryStore) Save(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *sess
	s.sess = &copied
	return nil
}

// Clear removes the stored session
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sess = nil
	return nil
}
