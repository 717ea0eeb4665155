package access

import "sync"

// Session holds the current identity for the lifetime of the process.
// It is written only by Login and Logout and read everywhere else;
// last writer wins. Callers inject it rather than reading ambient
// global state, so role checks happen in exactly one place.
type Session struct {
	mu       sync.RWMutex
	identity *Identity
}

func NewSession() *Session {
	return &Session{}
}

// Login installs the identity issued by a successful sign-in.
func (s *Session) Login(id Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &id
}

// Logout clears the session. There is no further transition afterward
// except a new Login.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
}

// Current returns a copy of the held identity, or nil when anonymous.
func (s *Session) Current() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}
