package main

import (
	"sync"

	"github.com/rs/zerolog"

	"helpdesk/backend"
	"helpdesk/conversation"
	"helpdesk/session"
	"helpdesk/store"
)

// Server wires the HTTP surface to the backend API. Ticket stores are kept
// per browser session so each login sees its own role-scoped snapshot.
type Server struct {
	cfg      Config
	log      zerolog.Logger
	sessions *session.Manager
	tokens   *session.TokenManager

	mu     sync.Mutex
	stores map[string]*store.Store
}

func NewServer(cfg Config, log zerolog.Logger, sessions *session.Manager, tokens *session.TokenManager) *Server {
	return &Server{
		cfg:      cfg,
		log:      log,
		sessions: sessions,
		tokens:   tokens,
		stores:   make(map[string]*store.Store),
	}
}

func (s *Server) apiFor(sess *session.Session) *backend.Client {
	return backend.New(s.cfg.APIBaseURL, backend.StaticToken(sess.Token), s.log)
}

func (s *Server) storeFor(sess *session.Session) *store.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stores[sess.ID]
	if !ok {
		st = store.New(s.apiFor(sess), sess.User)
		s.stores[sess.ID] = st
	}
	return st
}

func (s *Server) dropStore(sessionID string) {
	s.mu.Lock()
	delete(s.stores, sessionID)
	s.mu.Unlock()
}

func (s *Server) pollerFor(sess *session.Session) *conversation.Poller {
	return conversation.NewPoller(s.apiFor(sess), s.log)
}
