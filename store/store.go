// Package store holds the authoritative in-memory ticket list for one
// browser session. Every mutation is followed by a full re-fetch-and-replace
// rather than a local patch, so the snapshot always matches the backend at
// the cost of one extra round trip per mutation.
package store

import (
	"context"
	"sync"

	"helpdesk/backend"
	"helpdesk/types"
)

type Store struct {
	mu      sync.RWMutex
	api     *backend.Client
	user    types.User
	tickets []types.Ticket
}

func New(api *backend.Client, user types.User) *Store {
	return &Store{api: api, user: user}
}

func (s *Store) User() types.User {
	return s.user
}

// List returns the current snapshot. The slice is a copy; callers may not
// mutate stored tickets.
func (s *Store) List() []types.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Ticket, len(s.tickets))
	copy(out, s.tickets)
	return out
}

// Replace overwrites the snapshot wholesale.
func (s *Store) Replace(tickets []types.Ticket) {
	s.mu.Lock()
	s.tickets = tickets
	s.mu.Unlock()
}

// Refresh re-fetches the full list for the session's role: plain users see
// their own tickets (server-filtered), agents and admins see everything.
func (s *Store) Refresh(ctx context.Context) error {
	var tickets []types.Ticket
	var err error
	if s.user.RolID == types.RolUsuario {
		tickets, err = s.api.ListMyTickets(ctx)
	} else {
		tickets, err = s.api.ListAllTickets(ctx)
	}
	if err != nil {
		return err
	}
	s.Replace(tickets)
	return nil
}
