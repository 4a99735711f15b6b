package handlers

import (
	"sync"

	"projectFlow/internal/service"

	"github.com/google/uuid"
)

// SessionRegistry хранит открытые сессии процесса по токену
type SessionRegistry struct {
	mtx      sync.RWMutex
	sessions map[string]service.Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]service.Session)}
}

func (s *SessionRegistry) Open(session service.Session) string {
	token := uuid.NewString()

	s.mtx.Lock()
	s.sessions[token] = session
	s.mtx.Unlock()

	return token
}

func (s *SessionRegistry) Lookup(token string) (service.Session, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	session, ok := s.sessions[token]
	return session, ok
}

func (s *SessionRegistry) Close(token string) {
	s.mtx.Lock()
	delete(s.sessions, token)
	s.mtx.Unlock()
}
