// Package conversation drives the per-ticket message flow: the open-time
// fetch with its single delayed retry, and the role-routed send path with
// append-then-refetch reconciliation.
package conversation

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"helpdesk/backend"
	"helpdesk/types"
)

// DefaultRetryDelay covers the backend race where a freshly created
// ticket's welcome message is not yet visible right after creation.
const DefaultRetryDelay = 700 * time.Millisecond

type Poller struct {
	API        *backend.Client
	RetryDelay time.Duration
	Log        zerolog.Logger
}

func NewPoller(api *backend.Client, log zerolog.Logger) *Poller {
	return &Poller{API: api, RetryDelay: DefaultRetryDelay, Log: log}
}

func (p *Poller) delay() time.Duration {
	if p.RetryDelay > 0 {
		return p.RetryDelay
	}
	return DefaultRetryDelay
}

// Open fetches the conversation for a ticket. An empty first result gets
// exactly one delayed retry before loading is considered finished. The wait
// honors ctx: closing the chat cancels the retry instead of firing a
// callback into a torn-down surface.
func (p *Poller) Open(ctx context.Context, ticketID int) ([]types.Message, error) {
	messages, err := p.API.GetConversation(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if len(messages) > 0 {
		return messages, nil
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.delay()):
	}
	return p.API.GetConversation(ctx, ticketID)
}

// Send submits a message through the endpoint matching the sender's role:
// agents and admins reply, plain users send. On success the returned
// message is appended locally and the conversation re-fetched immediately;
// if that re-fetch fails the appended list stands, so the sender always
// sees their own message.
func (p *Poller) Send(ctx context.Context, ticketID int, sender types.User, content string, current []types.Message) ([]types.Message, error) {
	var msg types.Message
	var err error
	if sender.RolID == types.RolAgente || sender.RolID == types.RolAdmin {
		msg, err = p.API.ReplyToTicket(ctx, ticketID, content)
	} else {
		msg, err = p.API.SendMessage(ctx, ticketID, content)
	}
	if err != nil {
		return current, err
	}

	merged := make([]types.Message, len(current), len(current)+1)
	copy(merged, current)
	merged = append(merged, msg)

	refreshed, fetchErr := p.API.GetConversation(ctx, ticketID)
	if fetchErr != nil {
		p.Log.Warn().Err(fetchErr).Int("ticket_id", ticketID).Msg("conversation re-fetch after send failed")
		return merged, nil
	}
	return refreshed, nil
}
