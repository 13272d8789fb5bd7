package httpapi

import (
	"sync"

	"github.com/google/uuid"
)

// sessionToken maps the store's single signed-in session onto the HTTP
// surface: login issues an opaque token, and any backend sign-out (the
// store clearing its session) invalidates it implicitly because the
// middleware re-reads the store's current user on every request.
type sessionToken struct {
	mu    sync.Mutex
	token string
}

func (s *sessionToken) Issue() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = uuid.NewString()
	return s.token
}

func (s *sessionToken) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

func (s *sessionToken) Matches(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return token != "" && token == s.token
}
