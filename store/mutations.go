package store

import (
	"context"
	"fmt"

	"helpdesk/backend"
	"helpdesk/types"
)

// PartialClaimError reports a two-step assign+status sequence whose second
// call failed: the ticket is assigned on the backend but its status never
// moved to Asignado. There is no unassign endpoint to compensate with, so
// the caller must surface the stuck ticket.
type PartialClaimError struct {
	TicketID int
	Err      error
}

func (e *PartialClaimError) Error() string {
	return fmt.Sprintf("ticket %d was assigned but the status update failed: %v", e.TicketID, e.Err)
}

func (e *PartialClaimError) Unwrap() error { return e.Err }

func (s *Store) Create(ctx context.Context, data types.CreateTicketData) (*types.Ticket, error) {
	ticket, err := s.api.CreateTicket(ctx, data)
	if err != nil {
		return nil, err
	}
	return ticket, s.Refresh(ctx)
}

func (s *Store) CreateWithImages(ctx context.Context, data types.CreateTicketData, images []backend.Image) (*types.Ticket, error) {
	ticket, err := s.api.CreateTicketWithImages(ctx, data, images)
	if err != nil {
		return nil, err
	}
	return ticket, s.Refresh(ctx)
}

func (s *Store) ChangeStatus(ctx context.Context, ticketID, swStatus int, description string) error {
	if description == "" {
		description = "Actualización de estado"
	}
	if err := s.api.UpdateTicketStatus(ctx, ticketID, swStatus, description); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *Store) ChangePriority(ctx context.Context, ticketID, priorityID int) error {
	if err := s.api.UpdateTicketPriority(ctx, ticketID, priorityID); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *Store) ChangeCategory(ctx context.Context, ticketID, categoryID int) error {
	if err := s.api.UpdateTicketCategory(ctx, ticketID, categoryID); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *Store) Return(ctx context.Context, ticketID int, reason string) error {
	if err := s.api.ReturnTicket(ctx, ticketID, reason); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Claim self-assigns an open or returned ticket and moves it to Asignado.
// The two backend calls are not atomic; when the status call fails the
// snapshot is still refreshed (showing the intermediate state) and a
// *PartialClaimError comes back.
func (s *Store) Claim(ctx context.Context, ticketID int) error {
	return s.assignAndMark(ctx, ticketID, s.user.ID, "Agente se asignó ticket")
}

// AssignToAgent is the admin path: free reassignment to any agent, with the
// status forced to Asignado.
func (s *Store) AssignToAgent(ctx context.Context, ticketID int, agentID string) error {
	return s.assignAndMark(ctx, ticketID, agentID, "Asignado a agente")
}

func (s *Store) assignAndMark(ctx context.Context, ticketID int, agentID, description string) error {
	if err := s.api.AssignTicket(ctx, ticketID, agentID); err != nil {
		return err
	}
	statusErr := s.api.UpdateTicketStatus(ctx, ticketID, types.StatusAsignado, description)
	refreshErr := s.Refresh(ctx)
	if statusErr != nil {
		return &PartialClaimError{TicketID: ticketID, Err: statusErr}
	}
	return refreshErr
}
